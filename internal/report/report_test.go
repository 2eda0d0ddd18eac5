package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSVWriterHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	row := Row{
		Repo:       "svc-a",
		Branch:     "main",
		BuildType:  "maven",
		File:       "azure-pipelines.yml",
		Dialect:    "azure_devops",
		FoundType:  "direct",
		Confidence: "high",
		Approach:   "ado_task",
		Evidence:   "task: SynopsysSecurityScan@4 | scanType: 'polaris'",
	}
	if err := w.Write(row); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want header + 1 row", len(records))
	}
	if records[0][0] != "repository" || records[0][5] != "found_type" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][0] != "svc-a" || records[1][7] != "ado_task" {
		t.Fatalf("row = %v", records[1])
	}
	if records[1][8] != row.Evidence {
		t.Fatalf("evidence column = %q", records[1][8])
	}
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	s := Summary{
		RunID:        NewRunID(),
		Mode:         "apply",
		ReposScanned: 2,
		FilesScanned: 5,
		Direct:       1,
		Migrated:     1,
		Failures:     []Failure{{Repo: "svc-a", File: "azure-pipelines.yml", Message: "permission denied"}},
	}
	if err := WriteSummary(dir, s); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	if err != nil {
		t.Fatal(err)
	}
	var got Summary
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.RunID != s.RunID || got.Migrated != 1 || len(got.Failures) != 1 {
		t.Fatalf("summary round trip mismatch: %+v", got)
	}
	if got.GeneratedAtUtc == "" {
		t.Fatal("summary must carry a timestamp")
	}
}

func TestUnifiedDiff(t *testing.T) {
	before := "steps:\n  - task: SynopsysSecurityScan@4\n"
	after := "steps:\n  - task: BlackDuckSecurityScan@4\n"

	d := UnifiedDiff("svc-a/azure-pipelines.yml", before, after)
	if d == "" {
		t.Fatal("expected a non-empty diff")
	}
	for _, want := range []string{
		"--- a/svc-a/azure-pipelines.yml",
		"+++ b/svc-a/azure-pipelines.yml",
		"-  - task: SynopsysSecurityScan@4",
		"+  - task: BlackDuckSecurityScan@4",
	} {
		if !strings.Contains(d, want) {
			t.Errorf("diff missing %q:\n%s", want, d)
		}
	}

	if d := UnifiedDiff("x", "same\n", "same\n"); d != "" {
		t.Fatalf("identical input must produce empty diff, got %q", d)
	}
}

func TestNewRunIDUnique(t *testing.T) {
	if NewRunID() == NewRunID() {
		t.Fatal("run IDs must be unique")
	}
}
