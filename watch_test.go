package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	cfgpkg "github.com/secpipe-tools/bdmigrate/internal/config"
)

func waitForFile(t *testing.T, path string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(25 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", path)
}

func TestWatchReauditsAndSerializesReportWrites(t *testing.T) {
	root := setupWorkspace(t)
	reportPath, _ := configure(t, cfgpkg.ModeAudit, root)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		runWatch(stop)
		close(done)
	}()

	// The initial audit runs on watch start.
	waitForFile(t, reportPath)

	// Sustained churn: repeated edits inside the debounce window must
	// collapse into audits that never overlap on the report sink.
	pipeline := filepath.Join(root, "svc-azure", "azure-pipelines.yml")
	for i := 0; i < 5; i++ {
		writeTestFile(t, pipeline, legacyPipeline+"# revision\n")
		time.Sleep(50 * time.Millisecond)
	}
	time.Sleep(time.Second)

	// A cleanly parseable report with the expected verdict shows the
	// last audit wrote the file whole, with no interleaved writers.
	rows := readReport(t, reportPath)
	azure := rows["svc-azure"]
	if azure == nil {
		t.Fatal("missing svc-azure row after re-audit")
	}
	if azure[5] != "direct" || azure[7] != "ado_task" {
		t.Fatalf("svc-azure row = %v", azure)
	}

	close(stop)
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("watch loop did not stop")
	}
}
