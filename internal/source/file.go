package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was loaded.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position in a source file, both 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}

// GetLine returns the text of a 1-based line number, without the trailing
// newline. Out-of-range lines yield the empty string.
func (f *File) GetLine(lineNum uint32) string {
	if f == nil || lineNum == 0 || int(lineNum) > len(f.LineIdx) {
		return ""
	}
	start := f.LineIdx[lineNum-1]
	end := uint32(len(f.Content))
	if int(lineNum) < len(f.LineIdx) {
		end = f.LineIdx[lineNum] - 1
	}
	if end < start {
		end = start
	}
	return string(f.Content[start:end])
}
