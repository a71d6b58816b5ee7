// Package resolver implements a filesystem-backed eval.Resolver: plain
// relative-to-importer resolution plus a jsonnet-style library search
// path (JSONNET_PATH equivalent), used by pkg/hollow and cmd/hollow.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
)

// FS is a filesystem-backed import resolver. The zero value has no
// search path and resolves purely relative to the importing file.
type FS struct {
	SearchPath []string
}

// New builds an FS resolver with the given additional library search
// directories, consulted in order after the relative-to-importer path
// fails to exist.
func New(searchPath ...string) *FS {
	return &FS{SearchPath: searchPath}
}

// Resolve implements eval.Resolver.
func (f *FS) Resolve(path, fromSource string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err == nil {
			return filepath.Clean(path), nil
		}
	} else {
		base := "."
		if fromSource != "" && fromSource != "<stdin>" && fromSource != "<tla>" {
			base = filepath.Dir(fromSource)
		}
		candidate := filepath.Join(base, path)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Clean(candidate), nil
		}
		for _, dir := range f.SearchPath {
			candidate := filepath.Join(dir, path)
			if _, err := os.Stat(candidate); err == nil {
				return filepath.Clean(candidate), nil
			}
		}
	}
	return "", fmt.Errorf("could not resolve import %q from %q", path, fromSource)
}

// Load implements eval.Resolver.
func (f *FS) Load(canonical string) ([]byte, error) {
	return os.ReadFile(canonical)
}
