package notebook

import (
	"path/filepath"
	"strings"
)

// BackupPath derives the backup name used when translating in place:
// index.ipynb -> index_bk.ipynb.
func BackupPath(path string) string {
	return stem(path) + "_bk" + extension(path)
}

// DerivedPath derives the output name embedding the destination language:
// any.name.ipynb -> any.name_pt.ipynb.
func DerivedPath(path, lang string) string {
	return stem(path) + "_" + lang + extension(path)
}

func stem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func extension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".ipynb"
	}
	return ext
}
