package sources

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock is an advisory per-source file lock. It guards against two commands
// mutating the same source's transcript concurrently.
type Lock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes the lock for a source, failing fast when another process
// holds it.
func (l *Layout) AcquireLock(sourceID string) (*Lock, error) {
	lockDir := filepath.Join(l.cfg.Paths.LogDir, "locks")
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := filepath.Join(lockDir, sourceID+".lock")
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire source lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("source %s is locked by another process", sourceID)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
