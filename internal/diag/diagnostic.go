package diag

import (
	"fmt"

	"fortio.org/safecast"
)

// Diagnostic is one finding produced by the pipeline. Path identifies the
// file the finding concerns; Line is 1-based and zero for file-scoped
// findings.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Path     string
	Line     uint32
	Message  string
}

// New builds a Diagnostic from an int line as produced by the text passes.
func New(sev Severity, code Code, path string, line int, msg string) Diagnostic {
	l, err := safecast.Conv[uint32](max(line, 0))
	if err != nil {
		panic(fmt.Errorf("diagnostic line overflow: %w", err))
	}
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Path:     path,
		Line:     l,
		Message:  msg,
	}
}

// Errorf builds a SevError diagnostic with a formatted message.
func Errorf(code Code, path string, line int, format string, args ...any) Diagnostic {
	return New(SevError, code, path, line, fmt.Sprintf(format, args...))
}

// Warningf builds a SevWarning diagnostic with a formatted message.
func Warningf(code Code, path string, line int, format string, args ...any) Diagnostic {
	return New(SevWarning, code, path, line, fmt.Sprintf(format, args...))
}

// Infof builds a SevInfo diagnostic with a formatted message.
func Infof(code Code, path string, line int, format string, args ...any) Diagnostic {
	return New(SevInfo, code, path, line, fmt.Sprintf(format, args...))
}

// Reporter — минимальный контракт получения диагностик от фаз пайплайна.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter folds reported diagnostics into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}
