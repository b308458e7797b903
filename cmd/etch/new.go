package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"etch/internal/doctor"
	"etch/internal/genpipeline"
	"etch/internal/ledger"
	"etch/internal/observ"
	"etch/internal/scaffold"
	"etch/internal/source"
)

var newCmd = &cobra.Command{
	Use:   "new [flags] <name>",
	Short: "Create a new app from the embedded boilerplate",
	Long: `Create a new React Native project from the embedded boilerplate.

The name may be kebab-case, PascalCase or a quoted phrase; etch derives the
directory name, display name and bundle identifier from it. Scaffolding
markup is stripped from the generated sources unless --keep-markup is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().String("dir", ".", "parent directory for the new project")
	newCmd.Flags().String("bundle", "", "application identifier (default com.<name>)")
	newCmd.Flags().String("packager", "", "package manager for project instructions (npm|yarn|pnpm|bun)")
	newCmd.Flags().Bool("strip-comments", false, "also remove regular comments from generated sources")
	newCmd.Flags().Bool("keep-markup", false, "keep scaffolding markup in the output (template authoring)")
	newCmd.Flags().Bool("no-ledger", false, "do not record generated files in the ledger")
	newCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
}

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	bundle, err := cmd.Flags().GetString("bundle")
	if err != nil {
		return err
	}
	packager, err := cmd.Flags().GetString("packager")
	if err != nil {
		return err
	}
	stripComments, err := cmd.Flags().GetBool("strip-comments")
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
	quiet, err := readQuiet(cmd)
	if err != nil {
		return err
	}
	showTimings, err := readTimings(cmd)
	if err != nil {
		return err
	}

	// Без явного --packager берём первый установленный, npm как запасной.
	if packager == "" {
		packager = doctor.DetectPackager()
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
		step = timer.Begin("scaffold")
	}

	req := scaffold.NewRequest{
		Dir:           dir,
		Name:          name,
		Bundle:        bundle,
		Packager:      packager,
		StripComments: stripComments,
		KeepMarkup:    keepMarkup,
		Ledger:        led,
	}

	var res scaffold.NewResult
	if shouldUseTUI(mode) {
		res, err = runNewWithUI(cmd.Context(), "etch new "+name, &req)
	} else {
		if !quiet {
			req.Progress = &genpipeline.WriterSink{W: os.Stdout}
		}
		res, err = scaffold.CreateProject(cmd.Context(), req)
	}
	if timer != nil {
		timer.End(step, fmt.Sprintf("%d files", res.Files))
	}
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(os.Stdout, "Created %s in %s (%d files, %d stripped)\n",
			res.Data.Pascal, source.DisplayPath(res.Root, "."), res.Files, res.Stripped)
		fmt.Fprintf(os.Stdout, "\nNext steps:\n")
		fmt.Fprintf(os.Stdout, "  cd %s\n", res.Data.Kebab)
		fmt.Fprintf(os.Stdout, "  %s\n", scaffold.InstallCommand(res.Data.Packager))
		fmt.Fprintf(os.Stdout, "  %s\n", scaffold.RunCommand(res.Data.Packager, "start"))
	}
	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}
