package doctor

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Pretty renders a report as aligned status lines with hints under failures.
func Pretty(w io.Writer, r Report, colorize bool) error {
	okLabel := color.New(color.FgGreen)
	missLabel := color.New(color.FgRed, color.Bold)
	if !colorize {
		okLabel.DisableColor()
		missLabel.DisableColor()
	}
	for _, c := range r.Checks {
		status := okLabel.Sprint("ok     ")
		if !c.OK {
			status = missLabel.Sprint("missing")
		}
		line := fmt.Sprintf("%s %-12s", status, c.Name)
		if c.Detail != "" {
			line += " " + c.Detail
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if !c.OK && c.Hint != "" {
			if _, err := fmt.Fprintf(w, "        hint: %s\n", c.Hint); err != nil {
				return err
			}
		}
	}
	if r.Packager != "" {
		_, err := fmt.Fprintf(w, "\ndefault packager: %s\n", r.Packager)
		return err
	}
	return nil
}

// WriteJSON emits the report for tooling.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
