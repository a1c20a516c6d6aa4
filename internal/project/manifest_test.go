package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "zinc.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadFromNestedDir(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[build]\nentry = \"src/main.zn\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("manifest not found from nested dir")
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("package name = %q", m.Config.Package.Name)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	_, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatalf("unexpected manifest in empty dir")
	}
}

func TestLoadRejectsIncomplete(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no package", "[build]\nentry = \"main.zn\"\n", "missing [package]"},
		{"empty name", "[package]\nname = \"\"\n\n[build]\nentry = \"main.zn\"\n", "missing [package].name"},
		{"no build", "[package]\nname = \"demo\"\n", "missing [build]"},
		{"no entry", "[package]\nname = \"demo\"\n\n[build]\n", "missing [build].entry"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tc.content)
			_, ok, err := Load(dir)
			if !ok {
				t.Fatalf("manifest should be found")
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestEntryPathValidation(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[build]\nentry = \"main.zn\"\n")

	m, _, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := m.EntryPath(); err == nil {
		t.Fatalf("missing entry file should fail")
	}

	if err := os.WriteFile(filepath.Join(root, "main.zn"), []byte("fn main() {}\n"), 0o644); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	path, err := m.EntryPath()
	if err != nil {
		t.Fatalf("EntryPath: %v", err)
	}
	if filepath.Base(path) != "main.zn" {
		t.Fatalf("entry = %q", path)
	}
}

func TestOutputPathDefaults(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[build]\nentry = \"src/app.zn\"\n")
	m, _, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := m.OutputPath(), filepath.Join(root, "app.rs"); got != want {
		t.Fatalf("default output = %q, want %q", got, want)
	}

	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[build]\nentry = \"src/app.zn\"\noutput = \"gen/app.rs\"\n")
	m, _, err = Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := m.OutputPath(), filepath.Join(root, "gen", "app.rs"); got != want {
		t.Fatalf("explicit output = %q, want %q", got, want)
	}
}
