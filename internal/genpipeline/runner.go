package genpipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"etch/internal/comment"
	"etch/internal/diag"
	"etch/internal/fsops"
	"etch/internal/markup"
	"etch/internal/source"
)

// Default per-file diagnostic cap when the request does not set one.
const defaultMaxDiagnostics = 64

// StripRequest describes one markup-stripping run over a file tree.
type StripRequest struct {
	// Root is the tree the relative paths resolve against.
	Root string
	// Files lists relative paths to process; empty walks Root.
	Files []string
	// Exclude names relative paths (files or whole directories) the walk
	// skips. Ignored when Files is given explicitly.
	Exclude []string
	// Syntaxes carries the manifest's extension overrides.
	Syntaxes map[string]string
	// StripComments requests the full comment pass after directives.
	StripComments bool

	Jobs           int
	MaxDiagnostics int
	Progress       ProgressSink
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string // relative, slash-separated
	Changed bool
	Skipped bool
	Bag     *diag.Bag
}

// Failed reports whether processing this file produced errors.
func (r FileResult) Failed() bool { return r.Bag != nil && r.Bag.HasErrors() }

// Summary aggregates a run.
type Summary struct {
	Results []FileResult
	Files   int
	Changed int
	Skipped int
	Failed  int
}

// Collect merges all per-file diagnostics into one sorted, deduplicated bag.
func (s *Summary) Collect() *diag.Bag {
	total := 0
	for i := range s.Results {
		if s.Results[i].Bag != nil {
			total += s.Results[i].Bag.Len()
		}
	}
	bag := diag.NewBag(total)
	for i := range s.Results {
		bag.Merge(s.Results[i].Bag)
	}
	bag.Sort()
	bag.Dedup()
	return bag
}

// StripTree runs the markup passes over a tree, many files in parallel.
// Per-file failures land in that file's diagnostic bag and never abort the
// run; the returned error is reserved for walk failures and cancellation.
func StripTree(ctx context.Context, req StripRequest) (*Summary, error) {
	files := req.Files
	if len(files) == 0 {
		all, err := fsops.WalkFiles(req.Root)
		if err != nil {
			return nil, err
		}
		files = filterExcluded(all, req.Exclude)
	}
	if len(files) == 0 {
		return &Summary{}, nil
	}

	emitQueued(req.Progress, files)

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты пишутся по уникальным индексам, мьютекс не нужен.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, rel := range files {
		g.Go(func(i int, rel string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = stripOne(&req, rel)
				return nil
			}
		}(i, rel))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := &Summary{Results: results, Files: len(files)}
	for i := range results {
		switch {
		case results[i].Failed():
			sum.Failed++
		case results[i].Skipped:
			sum.Skipped++
		case results[i].Changed:
			sum.Changed++
		}
	}
	return sum, nil
}

func stripOne(req *StripRequest, rel string) FileResult {
	started := time.Now()
	maxDiag := req.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiag)
	res := FileResult{Path: rel, Bag: bag}

	syn, ok := comment.ForPath(rel, req.Syntaxes)
	if !ok {
		res.Skipped = true
		emit(req.Progress, rel, StageDirectives, StatusSkipped, nil, time.Since(started))
		return res
	}

	emit(req.Progress, rel, StageDirectives, StatusWorking, nil, 0)

	full := filepath.Join(req.Root, filepath.FromSlash(rel))
	f, err := source.Load(full)
	if err != nil {
		bag.Add(diag.Errorf(diag.IOReadFailed, rel, 0, "failed to read file: %v", err))
		emit(req.Progress, rel, StageDirectives, StatusError, err, time.Since(started))
		return res
	}

	text := f.Text()
	out, err := markup.ApplyDirectives(text, syn.ID)
	if err != nil {
		bag.Add(DirectiveDiagnostic(rel, err))
		emit(req.Progress, rel, StageDirectives, StatusError, err, time.Since(started))
		return res
	}

	if req.StripComments {
		emit(req.Progress, rel, StageComments, StatusWorking, nil, 0)
		out, err = markup.StripComments(out, syn.ID)
		if err != nil {
			bag.Add(diag.Errorf(diag.StripUnknownSyntax, rel, 0, "%v", err))
			emit(req.Progress, rel, StageComments, StatusError, err, time.Since(started))
			return res
		}
	}

	if out == text {
		emit(req.Progress, rel, StageWrite, StatusDone, nil, time.Since(started))
		return res
	}

	emit(req.Progress, rel, StageWrite, StatusWorking, nil, 0)
	perm := fs.FileMode(0o644)
	if info, statErr := os.Stat(full); statErr == nil {
		perm = info.Mode().Perm()
	}
	if err := fsops.AtomicWrite(full, []byte(out), perm); err != nil {
		bag.Add(diag.Errorf(diag.IOWriteFailed, rel, 0, "failed to write file: %v", err))
		emit(req.Progress, rel, StageWrite, StatusError, err, time.Since(started))
		return res
	}
	res.Changed = true
	emit(req.Progress, rel, StageWrite, StatusDone, nil, time.Since(started))
	return res
}

// DirectiveDiagnostic translates a markup engine failure into a diagnostic
// anchored at rel. Callers running the engine outside a tree walk reuse it so
// every surface reports the same codes.
func DirectiveDiagnostic(rel string, err error) diag.Diagnostic {
	var blockErr *markup.BlockError
	if errors.As(err, &blockErr) {
		return diag.Errorf(diag.StripUnterminatedBlock, rel, blockErr.Line, "%v", err)
	}
	if errors.Is(err, comment.ErrUnknownSyntax) {
		return diag.Errorf(diag.StripUnknownSyntax, rel, 0, "%v", err)
	}
	return diag.Errorf(diag.UnknownCode, rel, 0, "%v", err)
}

func filterExcluded(files, exclude []string) []string {
	if len(exclude) == 0 {
		return files
	}
	kept := make([]string, 0, len(files))
	for _, f := range files {
		if excluded(f, exclude) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func excluded(rel string, exclude []string) bool {
	for _, ex := range exclude {
		ex = strings.Trim(filepath.ToSlash(ex), "/")
		if ex == "" {
			continue
		}
		if rel == ex || strings.HasPrefix(rel, ex+"/") {
			return true
		}
	}
	return false
}

func emit(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, f := range files {
		sink.OnEvent(Event{File: f, Stage: StageDirectives, Status: StatusQueued})
	}
}
