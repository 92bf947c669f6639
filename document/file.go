package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/tailored-agentic-units/layers/editor"
)

const (
	fileExt       = ".json"
	lockFileName  = ".lock"
	lockRetryWait = 20 * time.Millisecond
)

// fileStore keeps one <name>.json file per document under root. Writes go
// through a temp file and a rename, and every operation holds an advisory
// lock on root/.lock so that several processes can share the directory.
type fileStore struct {
	root string
}

// NewFileStore creates a Store backed by the directory root, which is
// created on first save.
func NewFileStore(root string) Store {
	return &fileStore{root: root}
}

func (s *fileStore) path(name string) string {
	return filepath.Join(s.root, name+fileExt)
}

// lock takes the directory lock, shared for readers and exclusive for
// writers, and returns the function that releases it.
func (s *fileStore) lock(ctx context.Context, exclusive bool) (func(), error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, err
	}

	fl := flock.New(filepath.Join(s.root, lockFileName))
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = fl.TryLockContext(ctx, lockRetryWait)
	} else {
		ok, err = fl.TryRLockContext(ctx, lockRetryWait)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("lock %s not acquired", fl.Path())
	}
	return func() { fl.Unlock() }, nil
}

func (s *fileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || strings.HasPrefix(n, ".") || !strings.HasSuffix(n, fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(n, fileExt))
	}
	slices.Sort(names)
	return names, nil
}

func (s *fileStore) Load(ctx context.Context, name string) (*editor.Snapshot, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	unlock, err := s.lock(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, name, err)
	}
	data, err := os.ReadFile(s.path(name))
	unlock()

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, name, err)
	}

	snap, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailed, name, err)
	}
	return snap, nil
}

func (s *fileStore) Save(ctx context.Context, name string, snap *editor.Snapshot) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSaveFailed, name, err)
	}

	unlock, err := s.lock(ctx, true)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, name, err)
	}
	defer unlock()

	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, name, err)
	}
	return nil
}

func (s *fileStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	unlock, err := s.lock(ctx, true)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, name, err)
	}
	defer unlock()

	if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, name, err)
	}
	return nil
}

func (s *fileStore) Close() error { return nil }
