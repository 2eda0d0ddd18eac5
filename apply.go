package main

import (
	"fmt"
	"os"

	"github.com/secpipe-tools/bdmigrate/internal/detect"
	"github.com/secpipe-tools/bdmigrate/internal/migrate"
	"github.com/secpipe-tools/bdmigrate/internal/repo"
	"github.com/secpipe-tools/bdmigrate/internal/report"
)

// runApply migrates mutable-dialect files that classified as carrying
// the legacy integration. Backup creation and the no-op guard live in
// the migrate manager; this pass only selects targets, collects
// failures, and handles optional git bookkeeping.
func runApply() {
	repos, targets, failures := discoverTargets()

	mgr := migrate.New()
	mgr.Logf = func(format string, args ...interface{}) {
		fmt.Printf(format+"\n", args...)
	}
	scanner := detect.Scanner{MaxSamples: config.Scan.ApplyEvidenceLines}

	summary := report.Summary{
		RunID: report.NewRunID(),
		Mode:  config.Run.Mode,
	}
	summary.ReposScanned = len(repos)

	var csvw *report.CSVWriter
	if config.Run.ReportPath != "" {
		var err error
		csvw, err = report.NewCSVWriter(config.Run.ReportPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: cannot create report: %v\n", err)
			os.Exit(1)
		}
		defer csvw.Close()
	}

	changedByRepo := map[string][]string{}
	for _, t := range targets {
		summary.FilesScanned++
		if !detect.Mutable(t.dialect) {
			continue
		}
		data, err := os.ReadFile(t.abs)
		if err != nil {
			failures = append(failures, report.Failure{Repo: t.repo.Name, File: t.rel, Message: err.Error()})
			continue
		}
		text := string(data)
		set := scanner.Scan(text)
		verdict := detect.Classify(set, text)
		if !verdict.Found() {
			continue
		}
		if verdict.FoundType == detect.FoundDirect {
			summary.Direct++
		} else {
			summary.Indirect++
		}
		if csvw != nil {
			if err := csvw.Write(verdictRow(t, verdict, set, config.Scan.AggregateEvidenceLines)); err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: report write failed: %v\n", err)
				os.Exit(1)
			}
		}

		res, err := mgr.Apply(t.abs)
		if err != nil {
			failures = append(failures, report.Failure{Repo: t.repo.Name, File: t.rel, Message: err.Error()})
			continue
		}
		switch res.Status {
		case migrate.StatusChanged:
			summary.Migrated++
			changedByRepo[t.repo.Path] = append(changedByRepo[t.repo.Path], t.rel)
		case migrate.StatusUnchanged:
			summary.Unchanged++
		}
	}

	if config.Git.Commit {
		for repoPath, files := range changedByRepo {
			if err := repo.Commit(repoPath, files, config.Git.CommitMessage); err != nil {
				failures = append(failures, report.Failure{Repo: repoPath, Message: err.Error()})
				continue
			}
			if config.Git.Push {
				if err := repo.Push(repoPath, config.Git.Remote); err != nil {
					failures = append(failures, report.Failure{Repo: repoPath, Message: err.Error()})
				}
			}
		}
	}

	summary.Failures = failures
	finishRun(summary)
	fmt.Printf("Apply complete: %d migrated, %d unchanged, %d failures\n",
		summary.Migrated, summary.Unchanged, len(failures))
}
