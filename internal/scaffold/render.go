package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"
)

const (
	tmplSuffix = ".tmpl"
	leftDelim  = "[["
	rightDelim = "]]"
)

// RenderedFile is one materialized output before it reaches disk.
type RenderedFile struct {
	Rel     string // slash-separated path relative to the target root
	Content []byte
	Mode    fs.FileMode
}

// TemplateError reports a template that failed to parse or render.
type TemplateError struct {
	Path  string
	Stage string // "parse" or "render"
	Err   error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("%s template %s: %v", e.Stage, e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// RenderTree walks a template tree and produces the output files for data.
// Files ending in .tmpl are rendered through text/template with [[ ]]
// delimiters; everything else is copied verbatim. Path placeholders __name__
// and __Name__ become the kebab-case and PascalCase name forms. Results come
// back sorted by path.
func RenderTree(fsys fs.FS, data Data) ([]RenderedFile, error) {
	var out []RenderedFile
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read template %s: %w", p, err)
		}
		content := raw
		if strings.HasSuffix(p, tmplSuffix) {
			content, err = renderTemplate(p, raw, data)
			if err != nil {
				return err
			}
		}
		rel := targetPath(p, data)
		out = append(out, RenderedFile{Rel: rel, Content: content, Mode: fileMode(rel)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rel < out[j].Rel })
	return out, nil
}

func renderTemplate(name string, raw []byte, data Data) ([]byte, error) {
	tpl, err := template.New(path.Base(name)).Delims(leftDelim, rightDelim).Parse(string(raw))
	if err != nil {
		return nil, &TemplateError{Path: name, Stage: "parse", Err: err}
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, &TemplateError{Path: name, Stage: "render", Err: err}
	}
	return buf.Bytes(), nil
}

// targetPath maps a template path onto its output path: placeholders
// substituted, the .tmpl suffix dropped, and "gitignore" dotted back. The
// dotted name cannot be stored as-is: git would apply it to the template tree
// itself.
func targetPath(p string, data Data) string {
	rel := strings.TrimSuffix(p, tmplSuffix)
	rel = strings.ReplaceAll(rel, "__name__", data.Kebab)
	rel = strings.ReplaceAll(rel, "__Name__", data.Pascal)
	segs := strings.Split(rel, "/")
	for i, s := range segs {
		if s == "gitignore" {
			segs[i] = ".gitignore"
		}
	}
	return strings.Join(segs, "/")
}

func fileMode(rel string) fs.FileMode {
	base := path.Base(rel)
	if strings.HasSuffix(base, ".sh") || base == "gradlew" {
		return 0o755
	}
	return 0o644
}
