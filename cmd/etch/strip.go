package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"etch/internal/comment"
	"etch/internal/diag"
	"etch/internal/fsops"
	"etch/internal/genpipeline"
	"etch/internal/markup"
	"etch/internal/observ"
	"etch/internal/project"
	"etch/internal/source"
)

var stripCmd = &cobra.Command{
	Use:   "strip [flags] [path]",
	Short: "Strip scaffolding markup from sources",
	Long: `Strip scaffolding markup from source files.

Without arguments the whole project tree is processed in place, honoring the
manifest's strip settings. A file argument processes that one file; pass "-"
to filter stdin to stdout. Comment syntax is inferred from the file name and
can be forced with --syntax for files the catalog does not know.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStrip,
}

func init() {
	stripCmd.Flags().Bool("comments", false, "also remove regular comments (tree runs default to the manifest setting)")
	stripCmd.Flags().Int("jobs", 0, "parallel workers for tree runs (0 = all cores)")
	stripCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	stripCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	stripCmd.Flags().StringSlice("exclude", nil, "extra paths to skip in tree runs")
	stripCmd.Flags().Bool("stdout", false, "print the stripped file instead of rewriting it")
	stripCmd.Flags().Bool("clipboard", false, "copy the stripped file to the system clipboard")
	stripCmd.Flags().String("syntax", "", "force a comment syntax for single files and stdin (slash|hash|markup)")
}

type stripOptions struct {
	comments       bool
	commentsSet    bool
	jobs           int
	mode           uiMode
	format         string
	exclude        []string
	toStdout       bool
	toClipboard    bool
	syntax         string
	quiet          bool
	showTimings    bool
	useColor       bool
	maxDiagnostics int
}

func runStrip(cmd *cobra.Command, args []string) error {
	var opts stripOptions
	var err error

	opts.comments, err = cmd.Flags().GetBool("comments")
	if err != nil {
		return err
	}
	opts.commentsSet = cmd.Flags().Changed("comments")
	opts.jobs, err = cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	opts.mode, err = readUIMode(uiFlag)
	if err != nil {
		return err
	}
	opts.format, err = cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	opts.exclude, err = cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return err
	}
	opts.toStdout, err = cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	opts.toClipboard, err = cmd.Flags().GetBool("clipboard")
	if err != nil {
		return err
	}
	opts.syntax, err = cmd.Flags().GetString("syntax")
	if err != nil {
		return err
	}
	opts.quiet, err = readQuiet(cmd)
	if err != nil {
		return err
	}
	opts.showTimings, err = readTimings(cmd)
	if err != nil {
		return err
	}
	opts.useColor, err = resolveColor(cmd)
	if err != nil {
		return err
	}
	opts.maxDiagnostics, err = readMaxDiagnostics(cmd)
	if err != nil {
		return err
	}

	target := ""
	if len(args) == 1 {
		target = args[0]
	}

	if target == "-" {
		return runStripStdin(opts)
	}
	if target != "" {
		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("strip: %w", err)
		}
		if !info.IsDir() {
			return runStripFile(target, opts)
		}
	}
	return runStripTree(cmd, target, opts)
}

func runStripTree(cmd *cobra.Command, dir string, opts stripOptions) error {
	if opts.toStdout || opts.toClipboard {
		return fmt.Errorf("--stdout and --clipboard apply to single files only")
	}
	if opts.syntax != "" {
		return fmt.Errorf("--syntax applies to single files and stdin only")
	}

	// Без аргумента работаем строго внутри проекта; явная директория
	// обрабатывается и без манифеста.
	var m *project.Manifest
	var err error
	if dir == "" {
		m, err = project.Require(".")
	} else {
		m, err = findManifest(dir)
	}
	if err != nil {
		return err
	}

	root := dir
	if root == "" {
		root = m.Root
	}

	stripComments := opts.comments
	var syntaxes map[string]string
	exclude := []string{".git", "node_modules"}
	if m != nil {
		if !opts.commentsSet {
			stripComments = m.Config.Strip.Comments
		}
		syntaxes = m.Config.Strip.Syntaxes
		exclude = append(exclude, filepath.ToSlash(m.Config.Generators.Dir), project.ManifestName)
	}
	for _, e := range opts.exclude {
		exclude = append(exclude, filepath.ToSlash(e))
	}

	var timer *observ.Timer
	var step int
	if opts.showTimings {
		timer = observ.NewTimer()
		step = timer.Begin("strip")
	}

	req := genpipeline.StripRequest{
		Root:           root,
		Syntaxes:       syntaxes,
		StripComments:  stripComments,
		Jobs:           opts.jobs,
		MaxDiagnostics: opts.maxDiagnostics,
	}

	var sum *genpipeline.Summary
	if shouldUseTUI(opts.mode) && opts.format != "json" {
		files, planErr := genpipeline.PlanFiles(root, exclude)
		if planErr != nil {
			return planErr
		}
		req.Files = files
		title := "etch strip"
		if dir != "" {
			title += " " + dir
		}
		sum, err = runStripWithUI(cmd.Context(), title, files, &req)
	} else {
		req.Exclude = exclude
		if !opts.quiet && opts.format != "json" {
			req.Progress = &genpipeline.WriterSink{W: os.Stdout}
		}
		sum, err = genpipeline.StripTree(cmd.Context(), req)
	}
	if timer != nil && sum != nil {
		timer.End(step, fmt.Sprintf("%d files", sum.Files))
	}
	if err != nil {
		return err
	}

	if printErr := printDiagnostics(sum.Collect(), opts.format, opts.useColor, opts.maxDiagnostics); printErr != nil {
		return printErr
	}
	if !opts.quiet && opts.format != "json" {
		fmt.Fprintf(os.Stdout, "stripped %d of %d file(s), %d skipped\n", sum.Changed, sum.Files, sum.Skipped)
	}
	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if sum.Failed > 0 {
		return fmt.Errorf("strip failed for %d file(s)", sum.Failed)
	}
	return nil
}

func runStripFile(path string, opts stripOptions) error {
	f, err := source.Load(path)
	if err != nil {
		return fmt.Errorf("strip: %w", err)
	}

	syntaxID := opts.syntax
	if syntaxID != "" {
		if _, err := comment.Lookup(syntaxID); err != nil {
			return err
		}
	} else {
		overrides, err := manifestSyntaxes(filepath.Dir(path))
		if err != nil {
			return err
		}
		syn, ok := comment.ForPath(path, overrides)
		if !ok {
			return fmt.Errorf("no comment syntax known for %q, pass --syntax (%s)",
				filepath.Base(path), strings.Join(comment.IDs(), "|"))
		}
		syntaxID = syn.ID
	}

	rel := filepath.ToSlash(path)
	text := f.Text()
	out, err := stripText(text, syntaxID, rel, opts)
	if err != nil {
		return err
	}

	switch {
	case opts.toStdout:
		fmt.Fprint(os.Stdout, out)
	case opts.toClipboard:
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		if !opts.quiet {
			fmt.Fprintf(os.Stdout, "copied %s to clipboard\n", rel)
		}
	default:
		if out == text {
			if !opts.quiet {
				fmt.Fprintf(os.Stdout, "unchanged %s\n", rel)
			}
			return nil
		}
		perm := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			perm = info.Mode().Perm()
		}
		if err := fsops.AtomicWrite(path, []byte(out), perm); err != nil {
			return fmt.Errorf("strip: %w", err)
		}
		if !opts.quiet {
			fmt.Fprintf(os.Stdout, "stripped %s\n", rel)
		}
	}
	return nil
}

func runStripStdin(opts stripOptions) error {
	// Для stdin нет имени файла, синтаксис знает только вызывающий.
	if opts.syntax == "" {
		return fmt.Errorf("reading from stdin requires --syntax (%s)", strings.Join(comment.IDs(), "|"))
	}
	if _, err := comment.Lookup(opts.syntax); err != nil {
		return err
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	f := source.New("<stdin>", data)
	out, err := stripText(f.Text(), opts.syntax, "<stdin>", opts)
	if err != nil {
		return err
	}
	if opts.toClipboard {
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		return nil
	}
	fmt.Fprint(os.Stdout, out)
	return nil
}

// stripText runs the markup passes over one in-memory file and reports
// failures as diagnostics.
func stripText(text, syntaxID, rel string, opts stripOptions) (string, error) {
	out, err := markup.ApplyDirectives(text, syntaxID)
	if err == nil && opts.comments {
		out, err = markup.StripComments(out, syntaxID)
	}
	if err != nil {
		bag := diag.NewBag(opts.maxDiagnostics)
		bag.Add(genpipeline.DirectiveDiagnostic(rel, err))
		if printErr := printDiagnostics(bag, opts.format, opts.useColor, opts.maxDiagnostics); printErr != nil {
			return "", printErr
		}
		return "", fmt.Errorf("strip failed")
	}
	return out, nil
}

// findManifest loads the manifest governing dir, if any.
func findManifest(dir string) (*project.Manifest, error) {
	path, ok, err := project.Find(dir)
	if err != nil || !ok {
		return nil, err
	}
	return project.Load(path)
}

func manifestSyntaxes(dir string) (map[string]string, error) {
	m, err := findManifest(dir)
	if err != nil || m == nil {
		return nil, err
	}
	return m.Config.Strip.Syntaxes, nil
}
