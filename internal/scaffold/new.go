package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"etch/boilerplate"
	"etch/internal/comment"
	"etch/internal/fsops"
	"etch/internal/genpipeline"
	"etch/internal/ledger"
	"etch/internal/markup"
	"etch/internal/project"
)

// NewRequest describes one etch new invocation.
type NewRequest struct {
	// Dir is the parent directory; the project materializes into Dir/Name.
	Dir  string
	Name string
	// Bundle overrides the derived application identifier.
	Bundle string
	// Packager selects the package manager documented in the project README.
	Packager string
	// StripComments also removes ordinary comments from generated sources.
	StripComments bool
	// KeepMarkup skips directive processing entirely (template authoring).
	KeepMarkup bool
	// Source overrides the embedded boilerplate tree.
	Source fs.FS
	// Ledger records generated-file digests when non-nil.
	Ledger   *ledger.Ledger
	Progress genpipeline.ProgressSink
}

// NewResult summarizes a created project.
type NewResult struct {
	Root     string
	Data     Data
	Files    int // files written, the manifest included
	Stripped int // files the markup pass changed
}

// CreateProject materializes the boilerplate into a fresh directory, patches
// placeholders, strips scaffolding markup and writes the project manifest.
// It refuses to touch an existing non-empty target.
func CreateProject(ctx context.Context, req NewRequest) (NewResult, error) {
	var res NewResult
	if err := project.ValidateName(req.Name); err != nil {
		return res, fmt.Errorf("project name %q: %w", req.Name, err)
	}
	packager := req.Packager
	if packager == "" {
		packager = PackagerOrder[0]
	}
	if !KnownPackager(packager) {
		return res, fmt.Errorf("unknown packager %q (expected one of %s)",
			packager, strings.Join(PackagerOrder, ", "))
	}

	data := NewData(req.Name, req.Bundle, packager)
	if data.Bundle == "" {
		data.Bundle = defaultBundle(data)
	}
	res.Data = data

	dir := req.Dir
	if dir == "" {
		dir = "."
	}
	root := filepath.Join(dir, req.Name)
	if err := checkTarget(root); err != nil {
		return res, err
	}
	res.Root = root

	src := req.Source
	if src == nil {
		src = boilerplate.App()
	}
	files, err := RenderTree(src, data)
	if err != nil {
		return res, err
	}

	for _, f := range files {
		emit(req.Progress, genpipeline.Event{File: f.Rel, Status: genpipeline.StatusQueued})
	}

	entries := make([]ledger.Entry, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		emit(req.Progress, genpipeline.Event{
			File: f.Rel, Stage: genpipeline.StageRender, Status: genpipeline.StatusWorking,
		})

		text := PatchContent(string(f.Content), data)
		if path.Base(f.Rel) == "README.md" {
			text = RewritePackagerCommands(text, packager)
		}

		out, stripped, err := stripFile(f.Rel, text, nil, req.KeepMarkup, req.StripComments)
		if err != nil {
			emit(req.Progress, genpipeline.Event{
				File: f.Rel, Stage: genpipeline.StageDirectives, Status: genpipeline.StatusError, Err: err,
			})
			return res, fmt.Errorf("%s: %w", f.Rel, err)
		}

		full := filepath.Join(root, filepath.FromSlash(f.Rel))
		if err := fsops.AtomicWrite(full, []byte(out), f.Mode); err != nil {
			emit(req.Progress, genpipeline.Event{
				File: f.Rel, Stage: genpipeline.StageWrite, Status: genpipeline.StatusError, Err: err,
			})
			return res, fmt.Errorf("write %s: %w", f.Rel, err)
		}

		entries = append(entries, ledger.Entry{
			Path:   f.Rel,
			Hash:   ledger.HashContent([]byte(out)),
			Source: "boilerplate",
		})
		res.Files++
		if stripped {
			res.Stripped++
		}
		emit(req.Progress, genpipeline.Event{
			File: f.Rel, Stage: genpipeline.StageWrite, Status: genpipeline.StatusDone,
		})
	}

	manifest := defaultManifest(data, req.StripComments)
	if err := fsops.AtomicWrite(filepath.Join(root, project.ManifestName), []byte(manifest), 0o644); err != nil {
		return res, fmt.Errorf("write %s: %w", project.ManifestName, err)
	}
	res.Files++

	if req.Ledger != nil {
		payload := &ledger.Payload{Project: root, Entries: entries}
		if err := req.Ledger.Put(ledger.KeyFor(root), payload); err != nil {
			return res, fmt.Errorf("record generation ledger: %w", err)
		}
	}
	return res, nil
}

// stripFile runs the markup passes for one rendered file. Unmapped files pass
// through untouched; the bool result reports whether anything changed.
func stripFile(rel, text string, overrides map[string]string, keepMarkup, stripComments bool) (string, bool, error) {
	if keepMarkup {
		return text, false, nil
	}
	syn, ok := comment.ForPath(rel, overrides)
	if !ok {
		return text, false, nil
	}
	out, err := markup.ApplyDirectives(text, syn.ID)
	if err != nil {
		return text, false, err
	}
	if stripComments {
		out, err = markup.StripComments(out, syn.ID)
		if err != nil {
			return text, false, err
		}
	}
	return out, out != text, nil
}

func defaultBundle(data Data) string {
	return "com." + strings.ReplaceAll(data.Kebab, "-", "")
}

func checkTarget(root string) error {
	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%q already exists and is not a directory", root)
	}
	names, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return fmt.Errorf("directory %q already exists and is not empty", root)
	}
	return nil
}

func defaultManifest(data Data, stripComments bool) string {
	return fmt.Sprintf(`# etch project manifest
[project]
name = %q
bundle = %q

[generators]
dir = %q
output = %q

[strip]
comments = %t

# Map extra file extensions onto comment syntaxes, e.g.:
# [strip.syntaxes]
# mdx = "markup"
`, data.Name, data.Bundle, project.DefaultGeneratorsDir, project.DefaultGeneratorsOutput, stripComments)
}

func emit(sink genpipeline.ProgressSink, ev genpipeline.Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
