// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FindFiles recursively collects all regular files under the given root
// path, skipping hidden files and directories. It returns their full paths.
func FindFiles(rootPath string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != rootPath {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// BaseExt returns the filename extension with any compression suffix
// stripped, so "model.pdb.gz" yields ".pdb".
func BaseExt(path string) string {
	for _, suffix := range []string{".gz", ".bz2"} {
		path = strings.TrimSuffix(path, suffix)
	}
	return filepath.Ext(path)
}
