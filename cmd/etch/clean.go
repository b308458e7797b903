package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"etch/internal/ledger"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clear the generation ledger",
	Long: `Remove every recorded generation digest. After cleaning, etch treats all
existing files as hand-written and refuses to overwrite them without --force.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	led, err := ledger.Open("etch")
	if err != nil {
		return fmt.Errorf("open generation ledger: %w", err)
	}
	if err := led.DropAll(); err != nil {
		return fmt.Errorf("clear generation ledger: %w", err)
	}
	quiet, err := readQuiet(cmd)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintln(os.Stdout, "generation ledger cleared")
	}
	return nil
}
