// Package source loads documents for the generation pipeline and normalizes
// them for line-oriented processing: UTF-8 BOM removed, CRLF line endings
// folded to LF. The markup passes and the manifest loader both work on
// normalized text only.
package source

import (
	"bytes"
	"crypto/sha256"
	"os"
)

// Flags encodes metadata about a loaded file.
type Flags uint8

const (
	// FileVirtual marks content added from memory (stdin, tests).
	FileVirtual Flags = 1 << iota
	// FileHadBOM is set when a UTF-8 BOM was removed during load.
	FileHadBOM
	// FileNormalizedCRLF is set when CRLF endings were folded to LF.
	FileNormalizedCRLF
)

// File is one normalized document.
type File struct {
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   Flags
}

// Load reads path from disk and normalizes the content.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := Flags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return newFile(path, content, flags), nil
}

// New wraps in-memory content (stdin, tests) as a normalized File.
func New(name string, content []byte) *File {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	return newFile(name, content, FileVirtual)
}

func newFile(path string, content []byte, flags Flags) *File {
	return &File{
		Path:    normalizePath(path),
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}

// Text returns the normalized content as a string.
func (f *File) Text() string { return string(f.Content) }

// LineCount returns the number of lines under the split-on-LF document
// model: empty content is one line, every newline opens another.
func (f *File) LineCount() int {
	return 1 + bytes.Count(f.Content, []byte{'\n'})
}
