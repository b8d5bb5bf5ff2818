package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	m "github.com/mouse-blink/gild/internal/model"
)

// GoldenExt is the extension of expectation files.
const GoldenExt = ".golden"

// ExpectationStore persists golden files keyed by execution identity.
// Absence of a golden file is a distinct state from an empty one: absence
// means nothing was ever recorded, empty means "expects no output".
type ExpectationStore interface {
	// Load returns the golden text for the execution. found is false
	// when no file exists; err reports unreadable or corrupt files,
	// never absence.
	Load(exec m.Execution) (text string, found bool, err error)

	// Save replaces the golden file with text, atomically with respect
	// to readers and serialized per key. Saving empty text removes the
	// file, restoring the "nothing expected" state.
	Save(exec m.Execution, text string) error
}

// FileExpectationStore keeps golden files beside the test sources, or
// under a dedicated directory when goldenDir is set.
type FileExpectationStore struct {
	root      string
	goldenDir string

	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

// NewFileExpectationStore constructs a store for the corpus at root.
func NewFileExpectationStore(root, goldenDir string) *FileExpectationStore {
	return &FileExpectationStore{
		root:      root,
		goldenDir: goldenDir,
		keys:      make(map[string]*sync.Mutex),
	}
}

// Path returns the on-disk location of the execution's golden file:
// <name>.golden, or <name>@<revision>.golden for revision variants.
func (s *FileExpectationStore) Path(exec m.Execution) string {
	rel := filepath.FromSlash(exec.Key()) + GoldenExt

	if s.goldenDir != "" {
		return filepath.Join(s.root, s.goldenDir, rel)
	}

	return filepath.Join(s.root, rel)
}

func (s *FileExpectationStore) Load(exec m.Execution) (string, bool, error) {
	raw, err := os.ReadFile(s.Path(exec))
	if os.IsNotExist(err) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("golden file for %s: %w", exec.Key(), err)
	}

	if !utf8.Valid(raw) {
		return "", false, fmt.Errorf("golden file for %s: not valid UTF-8", exec.Key())
	}

	return string(raw), true, nil
}

func (s *FileExpectationStore) Save(exec m.Execution, text string) error {
	lock := s.keyLock(exec.Key())
	lock.Lock()
	defer lock.Unlock()

	path := s.Path(exec)

	if text == "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove golden file for %s: %w", exec.Key(), err)
		}

		return nil
	}

	if err := writeFileAtomic(path, []byte(text)); err != nil {
		return fmt.Errorf("write golden file for %s: %w", exec.Key(), err)
	}

	return nil
}

// keyLock returns the mutex serializing saves of one golden file. Saves
// of distinct keys never block each other.
func (s *FileExpectationStore) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.keys[key]
	if !ok {
		lock = &sync.Mutex{}
		s.keys[key] = lock
	}

	return lock
}

// writeFileAtomic writes via a temp file and rename so readers never see
// a partially written golden file.
func writeFileAtomic(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp-%d", path, time.Now().UnixNano())
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
		_ = os.Remove(tmp)
	}()

	if _, err := f.Write(b); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
