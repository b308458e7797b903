package markup

import (
	"strings"

	"etch/internal/comment"
)

// StripComments deletes every comment span from text under the named syntax:
// line-comment suffixes up to end of line and block comments including
// multi-line ones. Lines are never removed, so the output has exactly as many
// lines as the input; a line that was all comment collapses to "". Text
// outside the deleted spans is untouched, with no whitespace normalization.
// A block comment left open at end of input strips to the end of the
// document. Fails only when syntaxID is not registered.
func StripComments(text, syntaxID string) (string, error) {
	syn, err := comment.Lookup(syntaxID)
	if err != nil {
		return "", err
	}
	lines := strings.Split(text, "\n")
	inBlock := false
	for i, line := range lines {
		lines[i], inBlock = stripLine(line, syn, inBlock)
	}
	return strings.Join(lines, "\n"), nil
}

// stripLine removes comment spans from one line. The inBlock flag carries the
// open-block-comment state across lines; the returned flag feeds the next
// call.
func stripLine(line string, syn comment.Syntax, inBlock bool) (string, bool) {
	var out strings.Builder
	rest := line
	for {
		if inBlock {
			end := strings.Index(rest, syn.BlockClose)
			if end < 0 {
				return out.String(), true
			}
			rest = rest[end+len(syn.BlockClose):]
			inBlock = false
			continue
		}

		lineAt := -1
		if syn.HasLine() {
			lineAt = strings.Index(rest, syn.Line)
		}
		blockAt := -1
		if syn.HasBlock() {
			blockAt = strings.Index(rest, syn.BlockOpen)
		}

		switch {
		case blockAt >= 0 && (lineAt < 0 || blockAt < lineAt):
			out.WriteString(rest[:blockAt])
			rest = rest[blockAt+len(syn.BlockOpen):]
			inBlock = true
		case lineAt >= 0:
			// Line comment wins: everything to EOL goes.
			out.WriteString(rest[:lineAt])
			return out.String(), false
		default:
			out.WriteString(rest)
			return out.String(), false
		}
	}
}
