//go:build windows

package scroll

import (
	"syscall"
	"unsafe"
)

var (
	modkernel32      = syscall.NewLazyDLL("kernel32.dll")
	procLockFileEx   = modkernel32.NewProc("LockFileEx")
	procUnlockFileEx = modkernel32.NewProc("UnlockFileEx")
)

const (
	// Windows lock flags
	LOCKFILE_EXCLUSIVE_LOCK   = 0x00000002
	LOCKFILE_FAIL_IMMEDIATELY = 0x00000001
)

func (l *fileLock) lock() error {
	h := syscall.Handle(l.f.Fd())
	var overlapped syscall.Overlapped

	// Fail immediately rather than queueing behind the current owner.
	// 0, 0, 0xFFFFFFFF, 0xFFFFFFFF = lock region 0 to max.
	r1, _, _ := procLockFileEx.Call(
		uintptr(h),
		uintptr(uint32(LOCKFILE_EXCLUSIVE_LOCK|LOCKFILE_FAIL_IMMEDIATELY)),
		0,          // Reserved
		0xFFFFFFFF, // Low bytes of length
		0xFFFFFFFF, // High bytes of length
		uintptr(unsafe.Pointer(&overlapped)),
	)

	if r1 == 0 {
		return ErrLocked
	}
	return nil
}

func (l *fileLock) unlock() error {
	h := syscall.Handle(l.f.Fd())
	var overlapped syscall.Overlapped

	r1, _, err := procUnlockFileEx.Call(
		uintptr(h),
		0, // Reserved
		0xFFFFFFFF,
		0xFFFFFFFF,
		uintptr(unsafe.Pointer(&overlapped)),
	)
	if r1 == 0 {
		return err
	}
	return nil
}
