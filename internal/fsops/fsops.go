// Package fsops carries the file-system plumbing for the generation
// pipeline: atomic writes, tree walks with deterministic order, and plain
// copies. The transform passes stay pure; every write goes through here.
package fsops

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// AtomicWrite writes data to path through a temp file in the same directory
// followed by a rename, so readers never observe a half-written file.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// Темп уже переименован в целевой путь - Remove тогда промахнётся,
		// это нормально.
		_ = os.Remove(tmp)
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// WalkFiles returns every regular file under root, relative to root, sorted
// for deterministic processing order.
func WalkFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CopyFile copies src to dst atomically, carrying over the source mode bits.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	// #nosec G304 -- paths come from the scaffold walk
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return AtomicWrite(dst, data, info.Mode().Perm())
}

// RemoveTree drops dir by renaming it aside first, so a crash mid-removal
// cannot leave a half-deleted tree under the original name.
func RemoveTree(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	old := dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
