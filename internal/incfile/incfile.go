// Package incfile writes GAMS .inc set definitions for the geographic
// hierarchy of a Document.
package incfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extension is appended to file names that lack it
const Extension = ".inc"

// IncFile is a GAMS include file: prefix, body and suffix written in order
type IncFile struct {
	Name   string
	Prefix string
	Body   string
	Suffix string
}

// FileName returns Name with the .inc extension
func (f *IncFile) FileName() string {
	if strings.HasSuffix(f.Name, Extension) {
		return f.Name
	}
	return f.Name + Extension
}

// Content returns the full file text
func (f *IncFile) Content() string {
	return f.Prefix + f.Body + f.Suffix
}

// Save writes the file into dir, which must exist, and returns its path
func (f *IncFile) Save(dir string) (string, error) {
	path := filepath.Join(dir, f.FileName())
	if err := os.WriteFile(path, []byte(f.Content()), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", f.FileName(), err)
	}
	return path, nil
}
