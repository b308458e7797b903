package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"etch/internal/genpipeline"
	"etch/internal/ledger"
	"etch/internal/observ"
	"etch/internal/project"
	"etch/internal/scaffold"
)

var generateCmd = &cobra.Command{
	Use:     "generate [flags] <generator> <Name>",
	Aliases: []string{"gen", "g"},
	Short:   "Render a generator into the current project",
	Long: `Render a generator's templates into the project's output directory.

Generators live in the project's generators directory; names not found there
fall back to the built-in set. Files that already exist are left alone unless
the ledger shows etch wrote them and nobody edited them since; --force
overwrites regardless.`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("force", false, "overwrite existing and edited files")
	generateCmd.Flags().Bool("strip-comments", false, "also remove regular comments (defaults to the manifest setting)")
	generateCmd.Flags().Bool("keep-markup", false, "keep scaffolding markup in the output")
	generateCmd.Flags().Bool("no-ledger", false, "skip the edited-file check and do not record outputs")
	generateCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	generateCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	generator, name := args[0], args[1]

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	keepMarkup, err := cmd.Flags().GetBool("keep-markup")
	if err != nil {
		return err
	}
	noLedger, err := cmd.Flags().GetBool("no-ledger")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	quiet, err := readQuiet(cmd)
	if err != nil {
		return err
	}
	showTimings, err := readTimings(cmd)
	if err != nil {
		return err
	}
	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}
	maxDiagnostics, err := readMaxDiagnostics(cmd)
	if err != nil {
		return err
	}

	m, err := project.Require(".")
	if err != nil {
		return err
	}

	// Манифест задаёт режим комментариев, флаг его переопределяет.
	stripComments := m.Config.Strip.Comments
	if cmd.Flags().Changed("strip-comments") {
		stripComments, err = cmd.Flags().GetBool("strip-comments")
		if err != nil {
			return err
		}
	}

	var led *ledger.Ledger
	if !noLedger {
		led, err = ledger.Open("etch")
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: generation ledger unavailable: %v\n", err)
			led = nil
		}
	}

	var timer *observ.Timer
	var step int
	if showTimings {
		timer = observ.NewTimer()
		step = timer.Begin("generate")
	}

	req := scaffold.GenRequest{
		Manifest:       m,
		Generator:      generator,
		Name:           name,
		Force:          force,
		StripComments:  stripComments,
		KeepMarkup:     keepMarkup,
		Ledger:         led,
		MaxDiagnostics: maxDiagnostics,
	}

	var res scaffold.GenResult
	if shouldUseTUI(mode) && format != "json" {
		res, err = runGenerateWithUI(cmd.Context(), "etch generate "+generator+" "+name, &req)
	} else {
		if !quiet && format != "json" {
			req.Progress = &genpipeline.WriterSink{W: os.Stdout}
		}
		res, err = scaffold.RunGenerator(cmd.Context(), req)
	}
	if timer != nil {
		timer.End(step, fmt.Sprintf("%d written", len(res.Written)))
	}
	if err != nil {
		if errors.Is(err, scaffold.ErrUnknownGenerator) {
			names := scaffold.ListGenerators(m, nil)
			return fmt.Errorf("%w\navailable generators: %s", err, strings.Join(names, ", "))
		}
		return err
	}

	if printErr := printDiagnostics(res.Bag, format, useColor, maxDiagnostics); printErr != nil {
		return printErr
	}

	if !quiet && format != "json" {
		for _, rel := range res.Written {
			fmt.Fprintf(os.Stdout, "  + %s\n", rel)
		}
		for _, rel := range res.Skipped {
			fmt.Fprintf(os.Stdout, "  = %s (kept)\n", rel)
		}
		fmt.Fprintf(os.Stdout, "generated %d file(s), kept %d\n", len(res.Written), len(res.Skipped))
	}
	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if res.Bag != nil && res.Bag.HasErrors() {
		return fmt.Errorf("generate finished with errors")
	}
	return nil
}
