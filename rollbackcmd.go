package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/secpipe-tools/bdmigrate/internal/migrate"
	"github.com/secpipe-tools/bdmigrate/internal/repo"
	"github.com/secpipe-tools/bdmigrate/internal/report"
)

// runRollback restores every backed-up pipeline file under the root and
// removes the backups. Working files with no backup are explicit no-ops.
func runRollback() {
	repos, err := repo.Discover(config.Run.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: discovery failed: %v\n", err)
		os.Exit(1)
	}

	mgr := migrate.New()
	mgr.Logf = func(format string, args ...interface{}) {
		fmt.Printf(format+"\n", args...)
	}

	summary := report.Summary{
		RunID: report.NewRunID(),
		Mode:  config.Run.Mode,
	}
	summary.ReposScanned = len(repos)

	failures := []report.Failure{}
	for _, r := range repos {
		backups, err := repo.Backups(r.Path)
		if err != nil {
			failures = append(failures, report.Failure{Repo: r.Name, Message: err.Error()})
			continue
		}
		if len(backups) == 0 {
			fmt.Printf("%s: nothing to roll back\n", r.Name)
			summary.NoBackup++
			continue
		}
		for _, rel := range backups {
			working := strings.TrimSuffix(rel, migrate.BackupSuffix)
			abs := filepath.Join(r.Path, filepath.FromSlash(working))
			res, err := mgr.Rollback(abs)
			if err != nil {
				failures = append(failures, report.Failure{Repo: r.Name, File: working, Message: err.Error()})
				continue
			}
			switch res.Status {
			case migrate.StatusRestored:
				summary.RolledBack++
			case migrate.StatusNoBackup:
				summary.NoBackup++
			}
		}
	}

	summary.Failures = failures
	finishRun(summary)
	fmt.Printf("Rollback complete: %d restored, %d no-op, %d failures\n",
		summary.RolledBack, summary.NoBackup, len(failures))
}
