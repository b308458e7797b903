package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"etch/internal/doctor"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local toolchain",
	Long: `Check that the tools a scaffolded project needs are installed:
git, Node.js, a package manager and the Android SDK.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	report := doctor.Run()
	switch format {
	case "pretty":
		if err := doctor.Pretty(os.Stdout, report, useColor); err != nil {
			return err
		}
	case "json":
		if err := doctor.WriteJSON(os.Stdout, report); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	if report.Failed() {
		return fmt.Errorf("required tools are missing")
	}
	return nil
}
