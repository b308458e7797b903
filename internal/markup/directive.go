package markup

import (
	"strings"

	"etch/internal/comment"
)

// Kind identifies a removal directive.
type Kind uint8

const (
	// KindNone marks an ordinary content line.
	KindNone Kind = iota
	// KindCurrentLine removes the directive line itself.
	KindCurrentLine
	// KindNextLine removes the directive line and the line after it.
	KindNextLine
	// KindBlockStart opens a removal span.
	KindBlockStart
	// KindBlockEnd closes a removal span.
	KindBlockEnd
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCurrentLine:
		return "remove-current-line"
	case KindNextLine:
		return "remove-next-line"
	case KindBlockStart:
		return "remove-block-start"
	case KindBlockEnd:
		return "remove-block-end"
	default:
		return "unknown"
	}
}

// Directive marker strings. Matching is exact and case-sensitive.
const (
	MarkerCurrentLine = "@test remove-current-line"
	MarkerNextLine    = "@test remove-next-line"
	MarkerBlockStart  = "@test remove-block-start"
	MarkerBlockEnd    = "@test remove-block-end"
)

// Shared marker prefix, used to skip documents that cannot contain directives.
const markerPrefix = "@test remove-"

// markers is scanned in order; no marker is a substring of another, so the
// order only fixes which one wins if an author stacks several on one line.
var markers = [...]struct {
	text string
	kind Kind
}{
	{MarkerCurrentLine, KindCurrentLine},
	{MarkerNextLine, KindNextLine},
	{MarkerBlockStart, KindBlockStart},
	{MarkerBlockEnd, KindBlockEnd},
}

// Match is the result of classifying one line. Tag is set only for block
// markers that carry a word after the marker text.
type Match struct {
	Kind Kind
	Tag  string
}

// Classify decides whether line is a whole-line removal directive under syn.
// A directive line starts (after leading spaces and tabs) with the syntax's
// line-comment token or block-open token and contains a marker anywhere after
// that opener. Inline directives trailing meaningful code are not recognized;
// such lines classify as KindNone.
func Classify(line string, syn comment.Syntax) Match {
	body, ok := commentBody(line, syn)
	if !ok {
		return Match{}
	}
	for _, m := range markers {
		idx := strings.Index(body, m.text)
		if idx < 0 {
			continue
		}
		match := Match{Kind: m.kind}
		if m.kind == KindBlockStart || m.kind == KindBlockEnd {
			match.Tag = tagAfter(body[idx+len(m.text):], syn)
		}
		return match
	}
	return Match{}
}

// commentBody returns the text after the comment opener when the line is a
// whole-line comment under syn.
func commentBody(line string, syn comment.Syntax) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if syn.HasLine() && strings.HasPrefix(trimmed, syn.Line) {
		return trimmed[len(syn.Line):], true
	}
	if syn.HasBlock() && strings.HasPrefix(trimmed, syn.BlockOpen) {
		return trimmed[len(syn.BlockOpen):], true
	}
	return "", false
}

// tagAfter extracts the optional tag word following a block marker. A closing
// block token on the same line is not part of the tag.
func tagAfter(rest string, syn comment.Syntax) string {
	if syn.HasBlock() {
		if idx := strings.Index(rest, syn.BlockClose); idx >= 0 {
			rest = rest[:idx]
		}
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// tagsMatch reports whether an end marker closes a block opened with the
// given tag. Untagged markers pair with anything.
func tagsMatch(open, end string) bool {
	return open == "" || end == "" || open == end
}
