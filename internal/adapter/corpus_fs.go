// Package adapter contains infrastructure adapters for the gild harness.
package adapter

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/mouse-blink/gild/internal/model"
)

// CorpusFS abstracts filesystem access for test discovery so the domain
// layer can be tested without touching the disk.
type CorpusFS interface {
	// Discover walks root and returns every test source whose extension
	// is in extensions, sorted for deterministic dispatch order.
	Discover(root string, extensions []string) ([]m.Path, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// Exists reports whether path names an existing file.
	Exists(path m.Path) bool
}

// LocalCorpusFS is the disk-backed CorpusFS implementation.
type LocalCorpusFS struct{}

// NewLocalCorpusFS constructs a LocalCorpusFS.
func NewLocalCorpusFS() *LocalCorpusFS {
	return &LocalCorpusFS{}
}

// Discover walks the corpus tree, skipping hidden directories.
func (a *LocalCorpusFS) Discover(root string, extensions []string) ([]m.Path, error) {
	var found []m.Path

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}

			return nil
		}

		for _, ext := range extensions {
			if strings.HasSuffix(path, ext) {
				found = append(found, m.Path(path))
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })

	return found, nil
}

// ReadFile loads a file's contents.
func (a *LocalCorpusFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// Exists reports whether path names an existing file.
func (a *LocalCorpusFS) Exists(path m.Path) bool {
	info, err := os.Stat(string(path))

	return err == nil && !info.IsDir()
}
