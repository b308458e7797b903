// Package project locates and loads the etch.toml manifest that marks the
// root of a scaffolded project.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"etch/internal/comment"
)

// ManifestName is the file that marks a project root.
const ManifestName = "etch.toml"

// ErrNotFound is returned when no manifest exists in the start directory or
// any of its parents.
var ErrNotFound = errors.New("no " + ManifestName + " found")

const notFoundHint = "run the command inside a project, or create one first:\n  etch new <name>"

// Manifest is a loaded project manifest with its location.
type Manifest struct {
	Path   string // manifest file location
	Root   string // project root, the manifest's directory
	Config Config
}

// Config mirrors the etch.toml schema.
type Config struct {
	Project    ProjectConfig    `toml:"project"`
	Generators GeneratorsConfig `toml:"generators"`
	Strip      StripConfig      `toml:"strip"`
}

// ProjectConfig identifies the scaffolded application.
type ProjectConfig struct {
	Name   string `toml:"name"`
	Bundle string `toml:"bundle"`
}

// GeneratorsConfig points at generator templates and their output.
type GeneratorsConfig struct {
	Dir    string `toml:"dir"`
	Output string `toml:"output"`
}

// StripConfig controls the markup pass over project files.
type StripConfig struct {
	// Comments requests full comment stripping after directives are applied.
	Comments bool `toml:"comments"`
	// Syntaxes remaps file extensions (no leading dot) to syntax ids.
	Syntaxes map[string]string `toml:"syntaxes"`
}

// Defaults applied when a section is absent from the manifest.
const (
	DefaultGeneratorsDir    = "generators"
	DefaultGeneratorsOutput = "src"
)

// Find walks from startDir upwards looking for etch.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return nil, fmt.Errorf("%s: missing [project].name", path)
	}
	if err := ValidateName(cfg.Project.Name); err != nil {
		return nil, fmt.Errorf("%s: [project].name: %w", path, err)
	}
	if !meta.IsDefined("generators", "dir") || strings.TrimSpace(cfg.Generators.Dir) == "" {
		cfg.Generators.Dir = DefaultGeneratorsDir
	}
	if !meta.IsDefined("generators", "output") || strings.TrimSpace(cfg.Generators.Output) == "" {
		cfg.Generators.Output = DefaultGeneratorsOutput
	}
	for ext, id := range cfg.Strip.Syntaxes {
		if _, err := comment.Lookup(id); err != nil {
			return nil, fmt.Errorf("%s: [strip.syntaxes].%s: %w", path, ext, err)
		}
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// Require resolves the project for commands that cannot run without one.
func Require(startDir string) (*Manifest, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w\n%s", ErrNotFound, notFoundHint)
	}
	return Load(path)
}

// ValidateName checks a project or generator name: a letter first, then
// letters, digits, hyphens or underscores. The name ends up in file paths,
// bundle ids and import statements, so the rules stay strict.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name is empty")
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_'):
		default:
			return fmt.Errorf("invalid character %q at position %d", r, i)
		}
	}
	return nil
}
