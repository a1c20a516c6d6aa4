package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const goodProgram = `fn greet(name) {
    print("hello {name}")
}

fn main() {
    greet("world")
}
`

const badProgram = `fn main() {
    print(missing)
}
`

func TestCompileFileRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.zn")
	if err := os.WriteFile(path, []byte(goodProgram), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := Compile(path, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if !strings.Contains(res.Rust, "fn main()") {
		t.Fatalf("generated source lacks main:\n%s", res.Rust)
	}
	if len(res.Timing.Phases) == 0 {
		t.Fatalf("expected phase timings")
	}
}

func TestCompileSourceErrors(t *testing.T) {
	res := CompileSource("bad.zn", []byte(badProgram), Options{})
	if !res.HasErrors() {
		t.Fatalf("expected diagnostics for unresolved identifier")
	}
	if res.Rust != "" {
		t.Fatalf("no Rust should be produced for a failing program, got:\n%s", res.Rust)
	}
}

func TestCheckOnlySkipsCodegen(t *testing.T) {
	res := CompileSource("main.zn", []byte(goodProgram), Options{CheckOnly: true})
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if res.Rust != "" {
		t.Fatalf("check-only run should not emit Rust")
	}
	if res.Table == nil {
		t.Fatalf("check-only run should still resolve symbols")
	}
}

func TestDiskCacheHit(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("zinc-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "main.zn")
	if err := os.WriteFile(path, []byte(goodProgram), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	first, err := Compile(path, Options{Cache: cache})
	if err != nil {
		t.Fatalf("first compile: %v", err)
	}
	if first.FromCache {
		t.Fatalf("first compile should miss the cache")
	}

	second, err := Compile(path, Options{Cache: cache})
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}
	if !second.FromCache {
		t.Fatalf("second compile should hit the cache")
	}
	if second.Rust != first.Rust {
		t.Fatalf("cached Rust differs from generated Rust")
	}
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("zinc-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	var key Digest
	key[0] = 0xab
	if err := cache.Put(key, &CachePayload{Schema: cacheSchemaVersion + 1, Rust: "stale"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out CachePayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("stale schema should read as a miss")
	}
}

func TestCheckDirReportsPerFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "good.zn"), []byte(goodProgram), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.zn"), []byte(badProgram), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	events := make(chan Event, 64)
	results, err := CheckDir(context.Background(), dir, Options{CheckOnly: true}, 2, ChannelSink{Ch: events})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	close(events)

	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d", len(results))
	}
	// ListSourceFiles sorts, so bad.zn comes first.
	if !results[0].HasErrors() {
		t.Fatalf("bad.zn should carry diagnostics")
	}
	if results[1].HasErrors() {
		t.Fatalf("good.zn should be clean: %v", results[1].Bag.Items())
	}

	status := map[string]Status{}
	for ev := range events {
		status[ev.File] = ev.Status
	}
	if status[filepath.Join(dir, "bad.zn")] != StatusError {
		t.Fatalf("bad.zn final status = %v, want error", status[filepath.Join(dir, "bad.zn")])
	}
	if status[filepath.Join(dir, "good.zn")] != StatusDone {
		t.Fatalf("good.zn final status = %v, want done", status[filepath.Join(dir, "good.zn")])
	}
}
