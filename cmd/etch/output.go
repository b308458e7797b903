package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"etch/internal/diag"
	"etch/internal/diagfmt"
)

// resolveColor reads the persistent --color flag and applies terminal
// detection when the mode is auto.
func resolveColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch colorFlag {
	case "auto", "on", "off":
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)), nil
}

func readMaxDiagnostics(cmd *cobra.Command) (int, error) {
	return cmd.Root().PersistentFlags().GetInt("max-diagnostics")
}

func readQuiet(cmd *cobra.Command) (bool, error) {
	return cmd.Root().PersistentFlags().GetBool("quiet")
}

func readTimings(cmd *cobra.Command) (bool, error) {
	return cmd.Root().PersistentFlags().GetBool("timings")
}

// printDiagnostics renders a bag to stderr in the requested format.
// Диагностики идут в stderr, чтобы stdout оставался чистым для данных.
func printDiagnostics(bag *diag.Bag, format string, useColor bool, max int) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	switch format {
	case "", "pretty":
		diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{Color: useColor, Max: max})
		return nil
	case "json":
		return diagfmt.WriteJSON(os.Stderr, bag, diagfmt.JSONOpts{Max: max, Indent: true})
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}
