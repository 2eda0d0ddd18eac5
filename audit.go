package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/secpipe-tools/bdmigrate/internal/detect"
	"github.com/secpipe-tools/bdmigrate/internal/repo"
	"github.com/secpipe-tools/bdmigrate/internal/report"
	"github.com/secpipe-tools/bdmigrate/internal/support"
	"github.com/secpipe-tools/bdmigrate/internal/transform"
)

// target is one candidate CI file inside one repository.
type target struct {
	repo    repo.Repo
	rel     string
	abs     string
	dialect string
}

// discoverTargets lists repositories and their candidate CI files.
// Per-repo listing errors are collected, never fatal.
func discoverTargets() ([]repo.Repo, []target, []report.Failure) {
	repos, err := repo.Discover(config.Run.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: discovery failed: %v\n", err)
		os.Exit(1)
	}
	targets := []target{}
	failures := []report.Failure{}
	for _, r := range repos {
		files, err := repo.CIFiles(r.Path, config.Scan.Globs)
		if err != nil {
			failures = append(failures, report.Failure{Repo: r.Name, Message: err.Error()})
			continue
		}
		for _, rel := range files {
			targets = append(targets, target{
				repo:    r,
				rel:     rel,
				abs:     filepath.Join(r.Path, filepath.FromSlash(rel)),
				dialect: detect.DialectForPath(rel),
			})
		}
	}
	return repos, targets, failures
}

// runAudit classifies every candidate file and writes the CSV report.
// With dryRun set it also renders the would-be transform diff for
// mutable-dialect files, without writing to any repository.
func runAudit(dryRun bool) {
	repos, targets, failures := discoverTargets()

	csvw, err := report.NewCSVWriter(config.Run.ReportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: cannot create report: %v\n", err)
		os.Exit(1)
	}
	defer csvw.Close()

	scanner := detect.Scanner{MaxSamples: config.Scan.EvidenceLines}
	summary := report.Summary{
		RunID: report.NewRunID(),
		Mode:  config.Run.Mode,
	}
	summary.ReposScanned = len(repos)

	var patch strings.Builder
	for _, t := range targets {
		summary.FilesScanned++
		data, err := os.ReadFile(t.abs)
		if err != nil {
			// Unreadable file: no evidence, recorded, run continues.
			failures = append(failures, report.Failure{Repo: t.repo.Name, File: t.rel, Message: err.Error()})
			continue
		}
		text := string(data)
		set := scanner.Scan(text)
		verdict := detect.Classify(set, text)
		if !verdict.Found() {
			continue
		}
		switch verdict.FoundType {
		case detect.FoundDirect:
			summary.Direct++
		case detect.FoundIndirect:
			summary.Indirect++
		}
		if err := csvw.Write(verdictRow(t, verdict, set, config.Scan.EvidenceLines)); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: report write failed: %v\n", err)
			os.Exit(1)
		}
		if dryRun && detect.Mutable(t.dialect) {
			after := transform.Apply(text)
			if d := report.UnifiedDiff(t.repo.Name+"/"+t.rel, text, after); d != "" {
				patch.WriteString(d)
			}
		}
	}

	if dryRun {
		patchPath := filepath.Join(config.Run.OutputDir, "dryrun.patch")
		if err := support.WriteFileAtomic(patchPath, []byte(patch.String())); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: cannot write patch: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Dry-run patch written to %s\n", patchPath)
	}

	summary.Failures = failures
	finishRun(summary)
	fmt.Printf("Scanned %d files in %d repos: %d direct, %d indirect, %d failures\n",
		summary.FilesScanned, summary.ReposScanned, summary.Direct, summary.Indirect, len(failures))
}

func verdictRow(t target, verdict detect.Verdict, set detect.EvidenceSet, evidenceCap int) report.Row {
	approach := verdict.Approach
	if verdict.FoundType == detect.FoundDirect {
		approach = verdict.InvocationStyle
	}
	return report.Row{
		Repo:       t.repo.Name,
		Branch:     t.repo.Branch,
		BuildType:  t.repo.BuildType,
		File:       t.rel,
		Dialect:    t.dialect,
		FoundType:  verdict.FoundType,
		Confidence: verdict.Confidence,
		Approach:   approach,
		Evidence:   detect.SampleText(set, evidenceCap),
	}
}

// finishRun persists the summary and the audit-trail line.
func finishRun(summary report.Summary) {
	if err := report.WriteSummary(config.Run.OutputDir, summary); err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: summary write failed: %v\n", err)
	}
	result := "PASS"
	if len(summary.Failures) > 0 {
		result = "PARTIAL"
	}
	_ = support.AppendAudit(config.Run.OutputDir, support.AuditEntry{
		RunID:        summary.RunID,
		Mode:         summary.Mode,
		FilesScanned: summary.FilesScanned,
		Direct:       summary.Direct,
		Indirect:     summary.Indirect,
		Migrated:     summary.Migrated,
		RolledBack:   summary.RolledBack,
		Unchanged:    summary.Unchanged,
		Failures:     len(summary.Failures),
		Result:       result,
	})
}
