package report

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/secpipe-tools/bdmigrate/internal/support"
)

// Failure is one per-file error collected during a run. Failures never
// abort the run; they land here and in the audit log.
type Failure struct {
	Repo    string `json:"repo"`
	File    string `json:"file"`
	Message string `json:"message"`
}

// Summary is the machine-readable result of one run.
type Summary struct {
	RunID          string    `json:"runId"`
	Mode           string    `json:"mode"`
	GeneratedAtUtc string    `json:"generatedAtUtc"`
	ReposScanned   int       `json:"reposScanned"`
	FilesScanned   int       `json:"filesScanned"`
	Direct         int       `json:"direct"`
	Indirect       int       `json:"indirect"`
	Migrated       int       `json:"migrated,omitempty"`
	Unchanged      int       `json:"unchanged,omitempty"`
	RolledBack     int       `json:"rolledBack,omitempty"`
	NoBackup       int       `json:"noBackup,omitempty"`
	Failures       []Failure `json:"failures,omitempty"`
}

// NewRunID returns the identifier stamped on summary and audit rows.
func NewRunID() string {
	return uuid.NewString()
}

// WriteSummary writes <outputDir>/summary.json atomically.
func WriteSummary(outputDir string, s Summary) error {
	s.GeneratedAtUtc = time.Now().UTC().Format(time.RFC3339)
	return support.WriteJSONAtomic(filepath.Join(outputDir, "summary.json"), s)
}
