//go:build !windows

package config

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
)

// fileLock takes a non-blocking flock on "<config file>.lock", retrying
// until lockTimeout so two writers never wait on each other forever.
type fileLock struct {
	path string
	f    *os.File
}

func newFileLock(targetPath string) *fileLock {
	return &fileLock{path: targetPath + ".lock"}
}

func (l *fileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	deadline := time.Now().Add(lockTimeout)
	for {
		err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			l.f = f
			return nil
		}
		if !errors.Is(err, syscall.EWOULDBLOCK) || time.Now().After(deadline) {
			_ = f.Close()
			return fmt.Errorf("lock %s: %w", l.path, err)
		}
		time.Sleep(lockRetryInterval)
	}
}

func (l *fileLock) Unlock() error {
	if l.f == nil {
		return nil
	}
	defer func() { l.f = nil }()

	if err := syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN); err != nil {
		_ = l.f.Close()
		return fmt.Errorf("unlock %s: %w", l.path, err)
	}
	return l.f.Close()
}
