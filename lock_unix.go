//go:build unix || linux || darwin

package scroll

import (
	"syscall"
)

func (l *fileLock) lock() error {
	// Non-blocking: a busy lock means another process owns the document,
	// and waiting for it would just deadlock two single-owner stores.
	err := syscall.Flock(int(l.f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err == syscall.EWOULDBLOCK || err == syscall.EAGAIN {
		return ErrLocked
	}
	return err
}

func (l *fileLock) unlock() error {
	return syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
}
