package source

import (
	"path/filepath"
	"slices"
	"strings"
)

// normalizeCRLF folds every \r\n into \n. Lone \r bytes are left alone.
// Возвращает флаг: была ли хотя бы одна замена.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func normalizePath(p string) string {
	// единый вид путей в выводе на всех платформах
	return filepath.ToSlash(filepath.Clean(p))
}

// DisplayPath renders path relative to base when it lies under base,
// otherwise cleaned as given. Used for progress rows and diagnostics.
func DisplayPath(path, base string) string {
	if strings.TrimSpace(base) == "" {
		return normalizePath(path)
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return normalizePath(path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return normalizePath(path)
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(path)
	}
	return filepath.ToSlash(rel)
}
