// Package filemanager reads and writes YAML documents under process-safe file locks.
package filemanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// ErrLockTimeout is returned when acquiring a file lock times out
var ErrLockTimeout = errors.New("timeout acquiring file lock")

// ErrExists is returned by Create when the document is already on disk
var ErrExists = errors.New("file already exists")

const lockRetryDelay = 50 * time.Millisecond

// Manager reads and writes documents of type T
type Manager[T any] struct {
	lockTimeout time.Duration
}

// NewManager creates a manager with a five second lock timeout
func NewManager[T any]() *Manager[T] {
	return NewManagerWithTimeout[T](5 * time.Second)
}

// NewManagerWithTimeout creates a manager with a custom lock timeout
func NewManagerWithTimeout[T any](timeout time.Duration) *Manager[T] {
	return &Manager[T]{lockTimeout: timeout}
}

// Read decodes the document at path under a shared lock.
// A missing file is reported with an error satisfying os.IsNotExist.
func (m *Manager[T]) Read(ctx context.Context, path string) (*T, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	var result T
	err := m.withLock(ctx, path, false, func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, &result); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Write encodes data to path under an exclusive lock, replacing any existing file
func (m *Manager[T]) Write(ctx context.Context, path string, data *T) error {
	return m.write(ctx, path, data, true)
}

// Create is Write that fails with ErrExists instead of replacing a file
func (m *Manager[T]) Create(ctx context.Context, path string, data *T) error {
	return m.write(ctx, path, data, false)
}

func (m *Manager[T]) write(ctx context.Context, path string, data *T, replace bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	encoded, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}

	return m.withLock(ctx, path, true, func() error {
		if !replace {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s: %w", path, ErrExists)
			}
		}
		return writeAtomic(path, encoded)
	})
}

// withLock runs fn while holding a shared or exclusive lock for path
func (m *Manager[T]) withLock(ctx context.Context, path string, exclusive bool, fn func() error) error {
	lock := flock.New(LockPath(path))

	lockCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = lock.TryLockContext(lockCtx, lockRetryDelay)
	} else {
		locked, err = lock.TryRLockContext(lockCtx, lockRetryDelay)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrLockTimeout
		}
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return ErrLockTimeout
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

// writeAtomic writes to a sibling temp file, syncs it and renames it over path
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := atomicRename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// LockPath returns the sidecar file locked while path is read or written.
// Locking a sidecar keeps the lock valid across the rename that replaces path.
func LockPath(path string) string {
	return path + ".lock"
}
