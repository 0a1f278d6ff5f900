package instances

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/SupiDupiToll/PandoraLauncher/internal/launcher/helpers"
)

// lockInfo is persisted inside the lock file.
type lockInfo struct {
	PID int `json:"pid"`
}

// acquireLock creates a lock file in the launcher directory so two
// launcher processes never write the instance database concurrently. A
// stale lock left by a dead process is reclaimed.
func acquireLock(launcherDir string) (func() error, error) {
	if launcherDir == "" {
		return nil, helpers.ErrLauncherDirEmpty
	}

	lockPath := filepath.Join(launcherDir, helpers.InstancesDBLock)
	payload, err := json.Marshal(&lockInfo{PID: os.Getpid()})
	if err != nil {
		return nil, err
	}

	for {
		release, ok, err := tryCreateLock(lockPath, payload)
		if ok || err != nil {
			return release, err
		}
		if err := handleExistingLock(lockPath); err != nil {
			return nil, err
		}
	}
}

func tryCreateLock(lockPath string, payload []byte) (func() error, bool, error) {
	//nolint:gosec // lockPath is derived from the launcher dir and is intended for lock file IO.
	f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, helpers.FileMod)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if _, err := f.Write(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(lockPath)
		return nil, false, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(lockPath)
		return nil, false, err
	}
	return func() error { return releaseLock(lockPath, payload) }, true, nil
}

func handleExistingLock(lockPath string) error {
	//nolint:gosec // lockPath is derived from the launcher dir and is intended for lock file IO.
	existing, err := os.ReadFile(lockPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var current lockInfo
	if err := json.Unmarshal(existing, &current); err != nil {
		return fmt.Errorf("lock file exists but is invalid: %w", err)
	}
	if isLockActive(current.PID) {
		return fmt.Errorf("%w (pid %d)", helpers.ErrAnotherInstanceIsRunning, current.PID)
	}
	if err := os.Remove(lockPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// releaseLock removes the lock file if it still carries our payload.
func releaseLock(lockPath string, payload []byte) error {
	//nolint:gosec // lockPath is created by acquireLock and is intended for lock file IO.
	existing, err := os.ReadFile(lockPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if !bytes.Equal(existing, payload) {
		return nil
	}
	return os.Remove(lockPath)
}

// isLockActive reports whether a process PID is still running.
func isLockActive(pid int) bool {
	if pid <= 0 {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}
