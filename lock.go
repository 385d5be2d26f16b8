// OS-level file locking for cross-process exclusivity.
//
// The store's contract assumes a single process owns the root/journal/temp
// file triple. fileLock enforces that with an exclusive, non-blocking lock
// on a .lock sidecar held for the store's whole lifetime — a second Open of
// the same document fails fast with ErrLocked instead of silently
// corrupting shared files.
//
// The mutex guards the file handle's lifetime: it is held for the duration
// of the lock syscall so that Fd() cannot race with release() on the same
// *os.File.
package scroll

import (
	"fmt"
	"os"
	"sync"
)

// fileLock holds an exclusive OS lock on a sidecar file.
type fileLock struct {
	mu sync.Mutex
	f  *os.File
}

// acquireLock opens (creating if needed) the lock file at path and takes an
// exclusive non-blocking lock on it. Returns ErrLocked when another process
// already holds it.
func acquireLock(path string) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("lock: %w", err)
	}

	l := &fileLock{f: f}
	l.mu.Lock()
	err = l.lock()
	l.mu.Unlock()
	if err != nil {
		f.Close()
		return nil, err
	}
	return l, nil
}

// release drops the lock and closes the handle. Safe to call more than
// once; subsequent calls are no-ops.
func (l *fileLock) release() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}

	err := l.unlock()
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	l.f = nil
	return err
}
