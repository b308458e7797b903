// Package diagfmt renders diag values for the CLI: a pretty one-line-per
// finding form and a JSON form for tooling. Rendering only; collection and
// ordering stay in package diag.
package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	Max   int // обрезка вывода, не Bag; 0 - без лимита
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Max    int // как в PrettyOpts
	Indent bool
}
