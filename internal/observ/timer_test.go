package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("render")
	time.Sleep(time.Millisecond)
	tm.End(idx, "3 files")

	report := tm.Report()
	if len(report.Steps) != 1 {
		t.Fatalf("steps = %d, want 1", len(report.Steps))
	}
	if report.Steps[0].Name != "render" || report.Steps[0].Note != "3 files" {
		t.Fatalf("unexpected step: %+v", report.Steps[0])
	}
	if report.Steps[0].DurationMS <= 0 {
		t.Fatalf("duration not recorded: %v", report.Steps[0].DurationMS)
	}
	if report.TotalMS < report.Steps[0].DurationMS {
		t.Fatalf("total %v below step duration %v", report.TotalMS, report.Steps[0].DurationMS)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(0, "")  // пустой таймер
	tm.End(-1, "") // отрицательный индекс
	if len(tm.Report().Steps) != 0 {
		t.Fatalf("phantom steps recorded")
	}
}

func TestTimerSummaryContainsSteps(t *testing.T) {
	tm := NewTimer()
	a := tm.Begin("strip")
	tm.End(a, "")
	b := tm.Begin("write")
	tm.End(b, "12 files")

	sum := tm.Summary()
	for _, want := range []string{"timings:", "strip", "write", "12 files", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}
