package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

const validManifest = `
[project]
name = "demo"
bundle = "com.example.demo"

[generators]
dir = "generators"
output = "src"

[strip]
comments = true

[strip.syntaxes]
mdx = "markup"
`

func TestLoadValidManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), validManifest)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Config.Project.Name != "demo" {
		t.Errorf("name = %q", m.Config.Project.Name)
	}
	if m.Config.Project.Bundle != "com.example.demo" {
		t.Errorf("bundle = %q", m.Config.Project.Bundle)
	}
	if !m.Config.Strip.Comments {
		t.Errorf("strip.comments not parsed")
	}
	if m.Config.Strip.Syntaxes["mdx"] != "markup" {
		t.Errorf("strip.syntaxes = %v", m.Config.Strip.Syntaxes)
	}
	if m.Root != filepath.Dir(path) {
		t.Errorf("root = %q", m.Root)
	}
}

func TestLoadAppliesGeneratorDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[project]\nname = \"demo\"\n")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Config.Generators.Dir != DefaultGeneratorsDir {
		t.Errorf("generators.dir = %q", m.Config.Generators.Dir)
	}
	if m.Config.Generators.Output != DefaultGeneratorsOutput {
		t.Errorf("generators.output = %q", m.Config.Generators.Output)
	}
}

func TestLoadRejectsBrokenManifests(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantIn  string
	}{
		{"no project table", "[strip]\ncomments = true\n", "missing [project]"},
		{"no name", "[project]\nbundle = \"x\"\n", "missing [project].name"},
		{"blank name", "[project]\nname = \"  \"\n", "missing [project].name"},
		{"bad name", "[project]\nname = \"1demo\"\n", "[project].name"},
		{"bad syntax id", "[project]\nname = \"demo\"\n[strip.syntaxes]\nts = \"nope\"\n", "unknown comment syntax"},
		{"bad toml", "[project\n", "failed to parse TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.content)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load accepted broken manifest")
			}
			if !strings.Contains(err.Error(), tc.wantIn) {
				t.Fatalf("error %q does not mention %q", err, tc.wantIn)
			}
		})
	}
}

func TestFindWalksParents(t *testing.T) {
	tmp := t.TempDir()
	writeManifest(t, tmp, validManifest)
	nested := filepath.Join(tmp, "src", "screens")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatalf("manifest not found from nested dir")
	}
	if path != filepath.Join(tmp, ManifestName) {
		t.Fatalf("found %q", path)
	}
}

func TestRequireWithoutManifest(t *testing.T) {
	_, err := Require(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "etch new") {
		t.Fatalf("error %q misses the hint", err)
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"demo", "MyApp", "my-app", "app_2", "a"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v", name, err)
		}
	}
	invalid := []string{"", "1app", "-app", "my app", "app!", "приложение"}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) accepted", name)
		}
	}
}
