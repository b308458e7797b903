package genpipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"etch/internal/diag"
)

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordSink) byStatus(status Status) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func readBack(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func TestStripTreeEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/index.ts":   "// @test remove-next-line\nexport * from \"./Login\";\nexport * from \"./Home\";\n",
		"config/app.yml": "name: demo\n# @test remove-block-start\ndebug: true\n# @test remove-block-end\nversion: 1\n",
		"assets/logo.png": "\x89PNG not really",
		"scripts/fail.sh": "#!/bin/sh\n# @test remove-block-start\nnever closed\n",
	})

	sink := &recordSink{}
	sum, err := StripTree(context.Background(), StripRequest{
		Root:     root,
		Jobs:     2,
		Progress: sink,
	})
	if err != nil {
		t.Fatalf("StripTree: %v", err)
	}

	if sum.Files != 4 {
		t.Fatalf("Files = %d, want 4", sum.Files)
	}
	if sum.Changed != 2 || sum.Skipped != 1 || sum.Failed != 1 {
		t.Fatalf("changed/skipped/failed = %d/%d/%d, want 2/1/1",
			sum.Changed, sum.Skipped, sum.Failed)
	}

	if got := readBack(t, root, "src/index.ts"); got != "export * from \"./Home\";\n" {
		t.Errorf("index.ts = %q", got)
	}
	if got := readBack(t, root, "config/app.yml"); got != "name: demo\nversion: 1\n" {
		t.Errorf("app.yml = %q", got)
	}
	// Failed file keeps its original bytes: no partial output on error.
	if got := readBack(t, root, "scripts/fail.sh"); got != "#!/bin/sh\n# @test remove-block-start\nnever closed\n" {
		t.Errorf("fail.sh rewritten despite error: %q", got)
	}

	bag := sum.Collect()
	if !bag.HasErrors() {
		t.Fatalf("summary bag has no errors")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.StripUnterminatedBlock {
			found = true
			if d.Path != "scripts/fail.sh" || d.Line != 2 {
				t.Errorf("unterminated diagnostic at %s:%d", d.Path, d.Line)
			}
		}
	}
	if !found {
		t.Fatalf("no StripUnterminatedBlock diagnostic: %+v", bag.Items())
	}

	if got := len(sink.byStatus(StatusQueued)); got != 4 {
		t.Errorf("queued events = %d, want 4", got)
	}
	if got := sink.byStatus(StatusSkipped); len(got) != 1 || got[0].File != "assets/logo.png" {
		t.Errorf("skipped events = %+v", got)
	}
	if got := sink.byStatus(StatusError); len(got) != 1 || got[0].File != "scripts/fail.sh" {
		t.Errorf("error events = %+v", got)
	}
}

func TestStripTreeCommentsPass(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.ts": "const a = 1; // note\n/* banner */\n",
	})

	sum, err := StripTree(context.Background(), StripRequest{
		Root:          root,
		StripComments: true,
	})
	if err != nil {
		t.Fatalf("StripTree: %v", err)
	}
	if sum.Changed != 1 {
		t.Fatalf("Changed = %d, want 1", sum.Changed)
	}
	if got := readBack(t, root, "src/a.ts"); got != "const a = 1; \n\n" {
		t.Errorf("a.ts = %q", got)
	}
}

func TestStripTreeExcludes(t *testing.T) {
	root := t.TempDir()
	marked := "// @test remove-current-line\nkeep\n"
	writeTree(t, root, map[string]string{
		"node_modules/pkg/index.js": marked,
		"generators/screen/tpl.ts":  marked,
		"src/ok.ts":                 marked,
	})

	sum, err := StripTree(context.Background(), StripRequest{
		Root:    root,
		Exclude: []string{"node_modules", "generators"},
	})
	if err != nil {
		t.Fatalf("StripTree: %v", err)
	}
	if sum.Files != 1 || sum.Changed != 1 {
		t.Fatalf("files/changed = %d/%d, want 1/1", sum.Files, sum.Changed)
	}
	if got := readBack(t, root, "node_modules/pkg/index.js"); got != marked {
		t.Errorf("excluded file rewritten: %q", got)
	}
	if got := readBack(t, root, "src/ok.ts"); got != "keep\n" {
		t.Errorf("included file not processed: %q", got)
	}
}

func TestStripTreeExplicitFiles(t *testing.T) {
	root := t.TempDir()
	marked := "// @test remove-current-line\nkeep\n"
	writeTree(t, root, map[string]string{
		"a.ts": marked,
		"b.ts": marked,
	})

	sum, err := StripTree(context.Background(), StripRequest{
		Root:  root,
		Files: []string{"a.ts"},
	})
	if err != nil {
		t.Fatalf("StripTree: %v", err)
	}
	if sum.Files != 1 {
		t.Fatalf("Files = %d, want 1", sum.Files)
	}
	if got := readBack(t, root, "b.ts"); got != marked {
		t.Errorf("unlisted file rewritten: %q", got)
	}
}

func TestStripTreePreservesMode(t *testing.T) {
	root := t.TempDir()
	rel := "scripts/run.sh"
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte("#!/bin/sh\n# @test remove-current-line\necho ok\n"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := StripTree(context.Background(), StripRequest{Root: root}); err != nil {
		t.Fatalf("StripTree: %v", err)
	}
	info, err := os.Stat(full)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("mode = %v, want 0755", info.Mode().Perm())
	}
	if got := readBack(t, root, rel); got != "#!/bin/sh\necho ok\n" {
		t.Errorf("run.sh = %q", got)
	}
}

func TestStripTreeCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.ts": "// @test remove-current-line\nx\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := StripTree(ctx, StripRequest{Root: root})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestExcluded(t *testing.T) {
	cases := []struct {
		rel  string
		want bool
	}{
		{"node_modules/a.js", true},
		{"node_modules", true},
		{"src/node_modules.ts", false},
		{"etch.toml", true},
		{"src/app.ts", false},
	}
	exclude := []string{"node_modules", "etch.toml"}
	for _, tc := range cases {
		if got := excluded(tc.rel, exclude); got != tc.want {
			t.Errorf("excluded(%q) = %v, want %v", tc.rel, got, tc.want)
		}
	}
}
