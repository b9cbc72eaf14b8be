//go:build windows

package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// fileLock uses exclusive creation of "<config file>.lock" as the lock.
type fileLock struct {
	path string
	f    *os.File
}

func newFileLock(targetPath string) *fileLock {
	return &fileLock{path: targetPath + ".lock"}
}

func (l *fileLock) Lock() error {
	deadline := time.Now().Add(lockTimeout)
	for {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
		if err == nil {
			l.f = f
			return nil
		}
		if !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("open lock file: %w", err)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out waiting for %s", l.path)
		}
		time.Sleep(lockRetryInterval)
	}
}

func (l *fileLock) Unlock() error {
	if l.f == nil {
		return nil
	}
	errClose := l.f.Close()
	l.f = nil
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return errClose
}
