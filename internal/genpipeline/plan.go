package genpipeline

import "etch/internal/fsops"

// PlanFiles returns the relative paths a tree run over root would process,
// after exclusions. Callers that render per-file progress use it to seed
// their rows before StripTree starts emitting events.
func PlanFiles(root string, exclude []string) ([]string, error) {
	all, err := fsops.WalkFiles(root)
	if err != nil {
		return nil, err
	}
	return filterExcluded(all, exclude), nil
}
