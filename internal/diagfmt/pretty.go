package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"etch/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Формат строки: <path>:<line>: <SEVERITY> <CODE>: <message>
// Для file-scoped диагностик (line == 0) номер строки опускается.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil || bag.Len() == 0 {
		return
	}

	items := bag.Items()
	limit := len(items)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}

	for i := 0; i < limit; i++ {
		d := items[i]
		fmt.Fprintf(w, "%s %s %s: %s\n",
			location(d), severityLabel(d.Severity, opts.Color), d.Code.ID(), d.Message)
	}
	if hidden := len(items) - limit; hidden > 0 {
		fmt.Fprintf(w, "... and %d more\n", hidden)
	}
}

func location(d diag.Diagnostic) string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d:", d.Path, d.Line)
	}
	return d.Path + ":"
}

func severityLabel(sev diag.Severity, colored bool) string {
	if !colored {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(sev.String())
	case diag.SevWarning:
		return color.New(color.FgYellow).Sprint(sev.String())
	case diag.SevInfo:
		return color.New(color.FgCyan).Sprint(sev.String())
	default:
		return sev.String()
	}
}
