package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"etch/boilerplate"
	"etch/internal/diag"
	"etch/internal/fsops"
	"etch/internal/genpipeline"
	"etch/internal/ledger"
	"etch/internal/project"
)

// ErrUnknownGenerator is returned when neither the project nor the embedded
// defaults provide the requested generator.
var ErrUnknownGenerator = errors.New("unknown generator")

const defaultMaxGenDiagnostics = 64

// GenRequest describes one etch generate invocation.
type GenRequest struct {
	Manifest  *project.Manifest
	Generator string
	Name      string
	// Force overwrites files that exist or were edited after generation.
	Force bool
	// StripComments also removes ordinary comments from generated files.
	StripComments bool
	// KeepMarkup skips directive processing (template authoring).
	KeepMarkup bool
	// Defaults overrides the embedded generator templates.
	Defaults fs.FS
	// Ledger tells edited files from generated ones; nil disables the check.
	Ledger         *ledger.Ledger
	Progress       genpipeline.ProgressSink
	MaxDiagnostics int
}

// GenResult lists what a generator run produced.
type GenResult struct {
	Written []string // project-relative paths actually written
	Skipped []string // existing files left alone
	Bag     *diag.Bag
}

// RunGenerator renders one generator template directory into the project's
// output directory. Per-file failures turn into diagnostics; only a broken
// template or an unknown generator fails the run as a whole.
func RunGenerator(ctx context.Context, req GenRequest) (GenResult, error) {
	maxDiag := req.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxGenDiagnostics
	}
	res := GenResult{Bag: diag.NewBag(maxDiag)}

	m := req.Manifest
	if m == nil {
		return res, errors.New("generate: missing project manifest")
	}
	if err := project.ValidateName(req.Name); err != nil {
		res.Bag.Add(diag.Errorf(diag.GenBadName, "", 0, "name %q: %v", req.Name, err))
		return res, fmt.Errorf("name %q: %w", req.Name, err)
	}

	tplFS, err := locateGenerator(m, req.Generator, req.Defaults)
	if err != nil {
		res.Bag.Add(diag.Errorf(diag.GenUnknownGenerator, "", 0, "%v", err))
		return res, err
	}

	data := NewData(req.Name, "", "")
	files, err := RenderTree(tplFS, data)
	if err != nil {
		var terr *TemplateError
		if errors.As(err, &terr) {
			code := diag.GenTemplateParse
			if terr.Stage == "render" {
				code = diag.GenTemplateExec
			}
			res.Bag.Add(diag.Errorf(code, terr.Path, 0, "%v", terr.Err))
		}
		return res, err
	}

	key := ledger.KeyFor(m.Root)
	var recorded ledger.Payload
	if req.Ledger != nil {
		if _, err := req.Ledger.Get(key, &recorded); err != nil {
			res.Bag.Add(diag.Warningf(diag.IOLedger, "", 0, "read generation ledger: %v", err))
		}
	}

	outDir := filepath.ToSlash(m.Config.Generators.Output)
	for _, f := range files {
		emit(req.Progress, genpipeline.Event{File: path.Join(outDir, f.Rel), Status: genpipeline.StatusQueued})
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		outRel := path.Join(outDir, f.Rel)
		emit(req.Progress, genpipeline.Event{
			File: outRel, Stage: genpipeline.StageRender, Status: genpipeline.StatusWorking,
		})

		text := PatchContent(string(f.Content), data)
		out, _, err := stripFile(outRel, text, m.Config.Strip.Syntaxes, req.KeepMarkup, req.StripComments)
		if err != nil {
			res.Bag.Add(genpipeline.DirectiveDiagnostic(outRel, err))
			emit(req.Progress, genpipeline.Event{
				File: outRel, Stage: genpipeline.StageDirectives, Status: genpipeline.StatusError, Err: err,
			})
			continue
		}

		full := filepath.Join(m.Root, filepath.FromSlash(outRel))
		if skip := refuseOverwrite(&res, &recorded, full, outRel, req.Force); skip {
			emit(req.Progress, genpipeline.Event{
				File: outRel, Stage: genpipeline.StageWrite, Status: genpipeline.StatusSkipped,
			})
			continue
		}

		if err := fsops.AtomicWrite(full, []byte(out), f.Mode); err != nil {
			res.Bag.Add(diag.Errorf(diag.IOWriteFailed, outRel, 0, "%v", err))
			emit(req.Progress, genpipeline.Event{
				File: outRel, Stage: genpipeline.StageWrite, Status: genpipeline.StatusError, Err: err,
			})
			continue
		}

		recorded.Upsert(ledger.Entry{
			Path:   outRel,
			Hash:   ledger.HashContent([]byte(out)),
			Source: "generator:" + req.Generator,
		})
		res.Written = append(res.Written, outRel)
		emit(req.Progress, genpipeline.Event{
			File: outRel, Stage: genpipeline.StageWrite, Status: genpipeline.StatusDone,
		})
	}

	if req.Ledger != nil && len(res.Written) > 0 {
		recorded.Project = m.Root
		if err := req.Ledger.Put(key, &recorded); err != nil {
			res.Bag.Add(diag.Warningf(diag.IOLedger, "", 0, "write generation ledger: %v", err))
		}
	}
	res.Bag.Sort()
	return res, nil
}

// refuseOverwrite decides whether an existing target blocks the write. A file
// the ledger tracks with an unchanged digest is machine-owned and may be
// regenerated; anything else needs --force.
func refuseOverwrite(res *GenResult, recorded *ledger.Payload, full, outRel string, force bool) bool {
	existing, err := os.ReadFile(full)
	if err != nil {
		// Missing target is the normal case; read failures surface on write.
		return false
	}
	if force {
		return false
	}
	entry, tracked := recorded.Find(outRel)
	switch {
	case tracked && ledger.HashContent(existing) != entry.Hash:
		res.Bag.Add(diag.Warningf(diag.GenEditedFile, outRel, 0,
			"edited after generation; use --force to overwrite"))
	case !tracked:
		res.Bag.Add(diag.Errorf(diag.GenTargetExists, outRel, 0,
			"already exists and is not tracked; use --force to overwrite"))
	default:
		// Tracked and unmodified: regenerating is safe.
		return false
	}
	res.Skipped = append(res.Skipped, outRel)
	return true
}

func locateGenerator(m *project.Manifest, name string, defaults fs.FS) (fs.FS, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownGenerator)
	}
	local := filepath.Join(m.Root, m.Config.Generators.Dir, name)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return os.DirFS(local), nil
	}
	if defaults == nil {
		defaults = boilerplate.Generators()
	}
	if info, err := fs.Stat(defaults, name); err == nil && info.IsDir() {
		return fs.Sub(defaults, name)
	}
	return nil, fmt.Errorf("%w: %q (no %s directory and no built-in template)",
		ErrUnknownGenerator, name, filepath.Join(m.Config.Generators.Dir, name))
}

// ListGenerators returns the generator names available to a project: its own
// generators directory merged with the embedded defaults.
func ListGenerators(m *project.Manifest, defaults fs.FS) []string {
	seen := map[string]bool{}
	if defaults == nil {
		defaults = boilerplate.Generators()
	}
	if entries, err := fs.ReadDir(defaults, "."); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				seen[e.Name()] = true
			}
		}
	}
	if m != nil {
		if entries, err := os.ReadDir(filepath.Join(m.Root, m.Config.Generators.Dir)); err == nil {
			for _, e := range entries {
				if e.IsDir() {
					seen[e.Name()] = true
				}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

