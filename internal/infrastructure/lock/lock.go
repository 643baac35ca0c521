package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileName is created inside the data directory. The leading dot keeps it
// out of backup listings.
const FileName = ".mongorotate.lock"

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("another backup run holds the lock")

type Lock struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// Acquire takes an exclusive, non-blocking lock on dir/FileName. The file
// stays empty; only the flock on it carries meaning.
func Acquire(dir string) (*Lock, error) {
	path := filepath.Join(dir, FileName)

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := tryLock(file); err != nil {
		file.Close()
		return nil, err
	}

	return &Lock{path: path, file: file}, nil
}

func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. Calling it more than once is safe.
func (l *Lock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	unlockErr := unlock(l.file)
	closeErr := l.file.Close()
	l.file = nil

	return errors.Join(unlockErr, closeErr)
}
