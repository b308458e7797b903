package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadNormalizesContent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "app.tsx")
	raw := []byte("\xEF\xBB\xBFline one\r\nline two\r\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got, want := f.Text(), "line one\nline two\n"; got != want {
		t.Fatalf("normalized content = %q, want %q", got, want)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Errorf("FileHadBOM flag not set")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("FileNormalizedCRLF flag not set")
	}
	if f.Flags&FileVirtual != 0 {
		t.Errorf("disk file must not carry FileVirtual")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.ts")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewVirtual(t *testing.T) {
	f := New("stdin", []byte("a\r\nb"))
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("FileVirtual flag not set")
	}
	if f.Text() != "a\nb" {
		t.Fatalf("virtual content not normalized: %q", f.Text())
	}
}

func TestLineCount(t *testing.T) {
	cases := []struct {
		content string
		want    int
	}{
		{"", 1},
		{"one", 1},
		{"one\n", 2},
		{"one\ntwo\nthree", 3},
	}
	for _, tc := range cases {
		f := New("t", []byte(tc.content))
		if got := f.LineCount(); got != tc.want {
			t.Errorf("LineCount(%q) = %d, want %d", tc.content, got, tc.want)
		}
	}
}

func TestDisplayPathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "proj")
	target := filepath.Join(base, "src", "App.tsx")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	got := DisplayPath(target, base)
	if want := "src/App.tsx"; got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestDisplayPathOutsideBaseFallsBack(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "proj")
	other := filepath.Join(tmp, "elsewhere", "file.ts")

	got := DisplayPath(other, base)
	if want := normalizePath(other); got != want {
		t.Fatalf("expected fallback %q, got %q", want, got)
	}
}
