package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/gild/internal/model"
)

func writeFile(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("fn main() {}\n"), 0o644))
}

func TestDiscover_FiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "z/late.sg")
	writeFile(t, root, "a/early.sg")
	writeFile(t, root, "a/early.golden")
	writeFile(t, root, "notes.txt")

	fs := NewLocalCorpusFS()
	found, err := fs.Discover(root, []string{".sg"})
	require.NoError(t, err)
	require.Equal(t, []m.Path{
		m.Path(filepath.Join(root, "a/early.sg")),
		m.Path(filepath.Join(root, "z/late.sg")),
	}, found)
}

func TestDiscover_SkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".git/ignored.sg")
	writeFile(t, root, "kept.sg")

	fs := NewLocalCorpusFS()
	found, err := fs.Discover(root, []string{".sg"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, m.Path(filepath.Join(root, "kept.sg")), found[0])
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "aux.sg")

	fs := NewLocalCorpusFS()
	require.True(t, fs.Exists(m.Path(filepath.Join(root, "aux.sg"))))
	require.False(t, fs.Exists(m.Path(filepath.Join(root, "missing.sg"))))
	require.False(t, fs.Exists(m.Path(root)))
}
