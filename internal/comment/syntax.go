// Package comment catalogs the comment-delimiter families that generated
// files may use. Each family is a data value (no per-language branching), so
// the markup engine can stay syntax-agnostic and dispatch through a lookup.
package comment

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Built-in syntax identifiers. The catalog is immutable after init; project
// manifests may remap file extensions onto these identifiers but cannot
// register new families.
const (
	IDSlash  = "slash"  // // line comments, /* */ blocks (C family)
	IDHash   = "hash"   // # line comments, no blocks (shell, YAML, Ruby)
	IDMarkup = "markup" // <!-- --> blocks only (HTML, XML, Markdown)
)

// ErrUnknownSyntax is reported when a syntax identifier is not in the catalog.
var ErrUnknownSyntax = errors.New("unknown comment syntax")

// Syntax describes one comment-delimiter family. Line is empty for families
// without a line-comment token; BlockOpen and BlockClose are either both set
// or both empty.
type Syntax struct {
	ID         string
	Line       string
	BlockOpen  string
	BlockClose string
}

// HasLine reports whether the family has a line-comment token.
func (s Syntax) HasLine() bool { return s.Line != "" }

// HasBlock reports whether the family has a block-comment token pair.
func (s Syntax) HasBlock() bool { return s.BlockOpen != "" && s.BlockClose != "" }

var catalog = map[string]Syntax{
	IDSlash:  {ID: IDSlash, Line: "//", BlockOpen: "/*", BlockClose: "*/"},
	IDHash:   {ID: IDHash, Line: "#"},
	IDMarkup: {ID: IDMarkup, BlockOpen: "<!--", BlockClose: "-->"},
}

// Lookup resolves a syntax identifier to its definition.
func Lookup(id string) (Syntax, error) {
	if syn, ok := catalog[id]; ok {
		return syn, nil
	}
	return Syntax{}, fmt.Errorf("%w: %q", ErrUnknownSyntax, id)
}

// IDs returns the registered syntax identifiers in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Default extension table. Keys carry no leading dot; matching is
// case-insensitive. Covers the file kinds a scaffolded app tree contains.
var extSyntax = map[string]string{
	// C family
	"c": IDSlash, "h": IDSlash, "cc": IDSlash, "cpp": IDSlash, "hpp": IDSlash,
	"m": IDSlash, "mm": IDSlash,
	"go": IDSlash, "rs": IDSlash, "dart": IDSlash, "proto": IDSlash,
	"java": IDSlash, "kt": IDSlash, "kts": IDSlash, "gradle": IDSlash,
	"swift": IDSlash, "cs": IDSlash, "scala": IDSlash,
	"js": IDSlash, "jsx": IDSlash, "ts": IDSlash, "tsx": IDSlash,
	"mjs": IDSlash, "cjs": IDSlash, "json5": IDSlash,

	// hash family
	"sh": IDHash, "bash": IDHash, "zsh": IDHash,
	"py": IDHash, "rb": IDHash, "pl": IDHash, "podspec": IDHash,
	"yml": IDHash, "yaml": IDHash, "toml": IDHash,
	"properties": IDHash, "env": IDHash, "mk": IDHash,
	"cfg": IDHash, "conf": IDHash,
	"gitignore": IDHash, "gitattributes": IDHash, "dockerignore": IDHash,

	// markup family
	"html": IDMarkup, "htm": IDMarkup, "xml": IDMarkup, "svg": IDMarkup,
	"md": IDMarkup, "markdown": IDMarkup, "vue": IDMarkup, "plist": IDMarkup,
	"storyboard": IDMarkup, "xib": IDMarkup,
}

// Extension-less files recognized by base name.
var nameSyntax = map[string]string{
	"makefile":   IDHash,
	"dockerfile": IDHash,
	"gemfile":    IDHash,
	"rakefile":   IDHash,
	"podfile":    IDHash,
	"brewfile":   IDHash,
}

// ForPath picks the syntax for a file path. Template files are matched by the
// extension under their ".tmpl" suffix, so "App.tsx.tmpl" strips as "App.tsx".
// Overrides map extensions (no leading dot) to syntax identifiers and win
// over the defaults; an override naming an unknown identifier leaves the
// extension unmapped. The second result is false for unmapped files.
func ForPath(path string, overrides map[string]string) (Syntax, bool) {
	base := strings.ToLower(filepath.Base(path))
	base = strings.TrimSuffix(base, ".tmpl")

	key := strings.TrimPrefix(filepath.Ext(base), ".")
	if key == "" {
		// No extension: match the whole base name (Makefile, Podfile).
		key = base
	}
	if id, ok := overrides[key]; ok {
		return resolve(id)
	}
	if id, ok := nameSyntax[key]; ok {
		return resolve(id)
	}
	if id, ok := extSyntax[key]; ok {
		return resolve(id)
	}
	return Syntax{}, false
}

func resolve(id string) (Syntax, bool) {
	syn, err := Lookup(id)
	return syn, err == nil
}
