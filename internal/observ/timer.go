// Package observ tracks wall-clock timings of generation steps for the
// --timings flag.
package observ

import (
	"fmt"
	"time"
)

// Step records the duration and metadata of one pipeline step.
type Step struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of sequential pipeline steps.
type Timer struct {
	steps []Step
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{steps: make([]Step, 0, 8)} }

// Begin starts a new step and returns its index.
func (t *Timer) Begin(name string) int {
	t.steps = append(t.steps, Step{Name: name, Start: time.Now()})
	return len(t.steps) - 1
}

// End finishes a step by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.steps) {
		return
	}
	s := &t.steps[idx]
	s.Dur = time.Since(s.Start)
	s.Note = note
}

// Summary returns a human-readable string summarizing all tracked steps.
func (t *Timer) Summary() string {
	report := t.Report()
	out := "timings:\n"
	for _, s := range report.Steps {
		out += fmt.Sprintf("  %-20s %7.2f ms", s.Name, s.DurationMS)
		if s.Note != "" {
			out += "  // " + s.Note
		}
		out += "\n"
	}
	out += fmt.Sprintf("  %-20s %7.2f ms\n", "total", report.TotalMS)
	return out
}

// StepReport представляет сжатую информацию о шаге для сериализации.
type StepReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64      `json:"total_ms"`
	Steps   []StepReport `json:"steps"`
}

// Report формирует срез шагов и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	if len(t.steps) == 0 {
		return Report{}
	}
	report := Report{
		Steps: make([]StepReport, len(t.steps)),
	}
	var total time.Duration
	for i, step := range t.steps {
		total += step.Dur
		report.Steps[i] = StepReport{
			Name:       step.Name,
			DurationMS: durationToMillis(step.Dur),
			Note:       step.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
