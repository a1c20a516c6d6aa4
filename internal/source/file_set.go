package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// FileSet manages the collection of loaded source files and resolves spans
// into line/column positions.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0, 4),
		index: make(map[string]FileID),
	}
}

// Add stores normalized content under path and returns its FileID.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: file count overflow: %w", err))
	}
	id := FileID(lenFiles)
	path = normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[path] = id
	return id
}

// Load reads a file from disk, normalizes BOM/CRLF and NFC-normalizes the
// text before adding it to the set.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	content = norm.NFC.Bytes(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file (tests, stdin).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// GetByPath returns the file previously loaded under path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fs.index[normalizePath(path)]; ok {
		return &fs.files[id], true
	}
	return nil, false
}

// Resolve converts a span into start and end line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// buildLineIndex records the byte offset of every line start.
func buildLineIndex(content []byte) []uint32 {
	idx := []uint32{0}
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i)+1)
		}
	}
	return idx
}

func toLineCol(lineIdx []uint32, offset uint32) LineCol {
	line := sort.Search(len(lineIdx), func(i int) bool {
		return lineIdx[i] > offset
	})
	if line == 0 {
		return LineCol{Line: 1, Col: offset + 1}
	}
	lineNum, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(fmt.Errorf("source: line count overflow: %w", err))
	}
	return LineCol{Line: lineNum, Col: offset - lineIdx[line-1] + 1}
}

func normalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
