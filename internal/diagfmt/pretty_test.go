package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"etch/internal/diag"
	"etch/internal/diagfmt"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(8)
	bag.Add(diag.Errorf(diag.StripUnterminatedBlock, "src/App.tsx", 12, "unterminated removal block"))
	bag.Add(diag.Warningf(diag.StripUnmappedExtension, "assets/logo.png", 0, "no syntax for extension"))
	bag.Sort()
	return bag
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, sampleBag(), diagfmt.PrettyOpts{})
	out := buf.String()

	wantLines := []string{
		"assets/logo.png: WARNING STRIP1003: no syntax for extension",
		"src/App.tsx:12: ERROR STRIP1002: unterminated removal block",
	}
	got := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(got) != len(wantLines) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(wantLines), out)
	}
	for i, want := range wantLines {
		if got[i] != want {
			t.Errorf("line %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestPrettyMaxTruncates(t *testing.T) {
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, sampleBag(), diagfmt.PrettyOpts{Max: 1})
	out := buf.String()
	if !strings.Contains(out, "and 1 more") {
		t.Fatalf("truncation note missing:\n%s", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected one diagnostic plus note, got:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := diagfmt.WriteJSON(&buf, sampleBag(), diagfmt.JSONOpts{}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 2 || out.Errors != 1 {
		t.Fatalf("count=%d errors=%d, want 2/1", out.Count, out.Errors)
	}
	if out.Diagnostics[1].Code != "STRIP1002" || out.Diagnostics[1].Line != 12 {
		t.Fatalf("unexpected diagnostic payload: %+v", out.Diagnostics[1])
	}
	if out.Diagnostics[0].Line != 0 {
		t.Fatalf("file-scoped diagnostic has line %d", out.Diagnostics[0].Line)
	}
}
