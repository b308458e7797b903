package markup

import (
	"errors"
	"fmt"
	"strings"

	"etch/internal/comment"
)

// ErrUnterminatedBlock is reported when a remove-block-start directive has no
// matching remove-block-end before the end of the document. Surfacing the
// defect beats silently deleting to end of file: a truncated output hides the
// broken marker from the boilerplate author.
var ErrUnterminatedBlock = errors.New("unterminated removal block")

// BlockError carries the position of an unmatched remove-block-start. It
// unwraps to ErrUnterminatedBlock; callers prepend the file path.
type BlockError struct {
	Line int // 1-based line of the unmatched start
	Tag  string
}

func (e *BlockError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("line %d (tag %q): %v", e.Line, e.Tag, ErrUnterminatedBlock)
	}
	return fmt.Sprintf("line %d: %v", e.Line, ErrUnterminatedBlock)
}

func (e *BlockError) Unwrap() error { return ErrUnterminatedBlock }

// ApplyDirectives interprets removal directives in text under the named
// syntax: a single forward pass, no backtracking. The output contains none of
// the marker strings. Directive-free input comes back unchanged. Fails with
// comment.ErrUnknownSyntax for an unregistered syntax id and with
// ErrUnterminatedBlock (carrying the 1-based line of the unmatched start) for
// an open removal block; no partial output accompanies an error.
func ApplyDirectives(text, syntaxID string) (string, error) {
	syn, err := comment.Lookup(syntaxID)
	if err != nil {
		return "", err
	}
	if !strings.Contains(text, markerPrefix) {
		return text, nil
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	inBlock := false
	blockLine := 0 // 1-based line of the open remove-block-start
	blockTag := ""

	for i := 0; i < len(lines); i++ {
		m := Classify(lines[i], syn)

		if inBlock {
			// Everything inside the block goes, the matching end included.
			if m.Kind == KindBlockEnd && tagsMatch(blockTag, m.Tag) {
				inBlock = false
			}
			continue
		}

		switch m.Kind {
		case KindCurrentLine:
			// Drop the directive line.
		case KindNextLine:
			// Drop the directive and its follower, if the document has one.
			// The follower is consumed without interpretation.
			i++
		case KindBlockStart:
			inBlock = true
			blockLine = i + 1
			blockTag = m.Tag
		case KindBlockEnd:
			// Stray end with no open block: drop the marker line, carry on.
		default:
			kept = append(kept, lines[i])
		}
	}

	if inBlock {
		return "", &BlockError{Line: blockLine, Tag: blockTag}
	}
	return strings.Join(kept, "\n"), nil
}
