// Package migrate owns the per-file backup/rollback state machine for
// the mutable pipeline dialect. A pristine copy is captured exactly once
// before the first mutation; rollback restores it and removes every
// migration trace. The backup artifact's lifecycle belongs to this
// package alone.
package migrate

import (
	"fmt"
	"os"

	"github.com/secpipe-tools/bdmigrate/internal/support"
	"github.com/secpipe-tools/bdmigrate/internal/transform"
)

// BackupSuffix names the deterministic sibling backup next to each
// working file, so apply and rollback can locate each other's artifacts
// without external bookkeeping.
const BackupSuffix = ".polaris.bak"

// BackupPath returns the backup sibling for a working file.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// State of one working file / backup pair.
type State string

const (
	StateClean    State = "clean"
	StateBackedUp State = "backed-up"
	StateMigrated State = "migrated"
)

// Status of one Apply or Rollback operation.
type Status string

const (
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
	StatusRestored  Status = "restored"
	StatusNoBackup  Status = "no-backup"
)

// Result reports one operation's outcome and the paths it touched.
type Result struct {
	Status        Status
	Touched       []string
	Removed       []string
	BackupCreated bool
}

// Manager drives the state machine. Transform defaults to the package
// transform sequence; Logf, when set, receives operator-visible notes.
type Manager struct {
	Transform func(string) string
	Logf      func(format string, args ...interface{})
}

// New returns a Manager wired to the standard transform sequence.
func New() *Manager {
	return &Manager{Transform: transform.Apply}
}

func (m *Manager) transformText(text string) string {
	if m.Transform != nil {
		return m.Transform(text)
	}
	return transform.Apply(text)
}

func (m *Manager) logf(format string, args ...interface{}) {
	if m.Logf != nil {
		m.Logf(format, args...)
	}
}

// Apply transforms the working file in place. No-op when the transform
// output is byte-identical to the current content: no backup is created
// and no write occurs. Otherwise the pristine bytes are backed up once
// (an existing backup is never overwritten) and the file is atomically
// overwritten with the transformed text.
func (m *Manager) Apply(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	original := string(data)
	transformed := m.transformText(original)
	if transformed == original {
		m.logf("no changes needed for %s", path)
		return Result{Status: StatusUnchanged}, nil
	}

	res := Result{Status: StatusChanged}
	backup := BackupPath(path)
	if _, err := os.Stat(backup); os.IsNotExist(err) {
		// Backup must land before the overwrite so a crash in between
		// leaves a recoverable backed-up state.
		if err := support.WriteFileAtomic(backup, data); err != nil {
			return Result{}, fmt.Errorf("create backup %s: %w", backup, err)
		}
		res.BackupCreated = true
		res.Touched = append(res.Touched, backup)
		m.logf("created backup %s", backup)
	} else if err != nil {
		return Result{}, fmt.Errorf("stat backup %s: %w", backup, err)
	} else {
		m.logf("backup already exists, preserving %s", backup)
	}

	if err := support.WriteFileAtomic(path, []byte(transformed)); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	res.Touched = append(res.Touched, path)
	return res, nil
}

// Rollback restores the pristine bytes and deletes the backup. Without
// a backup it is an explicit no-op, not an error.
func (m *Manager) Rollback(path string) (Result, error) {
	backup := BackupPath(path)
	if _, err := os.Stat(backup); os.IsNotExist(err) {
		m.logf("nothing to roll back for %s", path)
		return Result{Status: StatusNoBackup}, nil
	} else if err != nil {
		return Result{}, fmt.Errorf("stat backup %s: %w", backup, err)
	}

	if err := support.CopyFileAtomic(backup, path); err != nil {
		return Result{}, fmt.Errorf("restore %s: %w", path, err)
	}
	if err := os.Remove(backup); err != nil {
		return Result{}, fmt.Errorf("remove backup %s: %w", backup, err)
	}
	m.logf("restored %s and removed %s", path, backup)
	return Result{
		Status:  StatusRestored,
		Touched: []string{path},
		Removed: []string{backup},
	}, nil
}

// StateOf inspects the pair on disk. With no backup the file is clean.
// With a backup, the file is migrated once its content equals the
// transform of the pristine bytes, otherwise still backed-up (the crash
// window between backup creation and overwrite).
func (m *Manager) StateOf(path string) (State, error) {
	backup := BackupPath(path)
	if _, err := os.Stat(backup); os.IsNotExist(err) {
		return StateClean, nil
	} else if err != nil {
		return StateClean, err
	}
	pristine, err := os.ReadFile(backup)
	if err != nil {
		return StateBackedUp, err
	}
	current, err := os.ReadFile(path)
	if err != nil {
		return StateBackedUp, err
	}
	if string(current) == m.transformText(string(pristine)) {
		return StateMigrated, nil
	}
	return StateBackedUp, nil
}
