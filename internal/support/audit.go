package support

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// AuditEntry is one line of the append-only migration audit trail.
type AuditEntry struct {
	TimestampUtc string `json:"timestampUtc"`
	RunID        string `json:"runId"`
	Mode         string `json:"mode"`
	FilesScanned int    `json:"filesScanned,omitempty"`
	Direct       int    `json:"direct,omitempty"`
	Indirect     int    `json:"indirect,omitempty"`
	Migrated     int    `json:"migrated,omitempty"`
	RolledBack   int    `json:"rolledBack,omitempty"`
	Unchanged    int    `json:"unchanged,omitempty"`
	Failures     int    `json:"failures,omitempty"`
	Result       string `json:"result,omitempty"`
}

// AppendAudit appends one entry to <outputDir>/audit.log as a JSON line.
func AppendAudit(outputDir string, entry AuditEntry) error {
	entry.TimestampUtc = time.Now().UTC().Format(time.RFC3339)
	path := filepath.Join(outputDir, "audit.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}
