// Package lock keeps two processes from triaging the same directory at once.
package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

var ErrLocked = errors.New("directory is already being triaged by another process")

type Lock struct {
	path  string
	flock *flock.Flock
}

// Path returns the lock file used for dir. The file lives in lockDir so the triaged
// directory itself is never written to.
func Path(lockDir, dir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(dir)))
	return filepath.Join(lockDir, "image_sorter-"+hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes an exclusive, non-blocking lock for dir. An empty lockDir means os.TempDir().
func Acquire(lockDir, dir string) (*Lock, error) {
	if lockDir == "" {
		lockDir = os.TempDir()
	}

	path := Path(lockDir, dir)
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %q: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %q)", ErrLocked, path)
	}

	return &Lock{path: path, flock: fl}, nil
}

func (l *Lock) Path() string {
	return l.path
}

func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock %q: %w", l.path, err)
	}

	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock file %q: %w", l.path, err)
	}

	return nil
}
