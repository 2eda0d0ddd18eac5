package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	cfgpkg "github.com/secpipe-tools/bdmigrate/internal/config"
	"github.com/secpipe-tools/bdmigrate/internal/migrate"
)

// runWatch re-runs the audit whenever a file under the root changes.
// Events are debounced so editor save bursts trigger one pass. The stop
// channel exists for tests; nil means run until the process exits.
func runWatch(stop <-chan struct{}) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: watch init failed: %v\n", err)
		os.Exit(1)
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, config.Run.Root); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: watch failed: %v\n", err)
		os.Exit(1)
	}

	trigger := func() {
		runAudit(config.Run.Mode == cfgpkg.ModeDryRun)
	}
	trigger()

	// The debounce timer is drained here so every audit runs on this
	// goroutine: the report sink is a single-writer file and two audit
	// passes must never interleave.
	var timer *time.Timer
	var pending <-chan time.Time
	debounce := 300 * time.Millisecond
	for {
		select {
		case <-stop:
			return
		case ev := <-watcher.Events:
			if skipWatchEvent(ev.Name) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			pending = timer.C
		case <-pending:
			pending = nil
			trigger()
		case err := <-watcher.Errors:
			fmt.Fprintf(os.Stderr, "ERROR: watch error: %v\n", err)
		}
	}
}

// skipWatchEvent drops events for our own artifacts: the output
// directory, report writes, and backup files.
func skipWatchEvent(name string) bool {
	sep := string(filepath.Separator)
	outBase := filepath.Base(config.Run.OutputDir)
	if strings.Contains(name, sep+outBase+sep) || strings.HasSuffix(name, sep+outBase) {
		return true
	}
	if strings.HasSuffix(name, migrate.BackupSuffix) {
		return true
	}
	if config.Run.ReportPath != "" && strings.HasSuffix(name, filepath.Base(config.Run.ReportPath)) {
		return true
	}
	return strings.Contains(name, ".tmp.")
}

func addWatchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			base := filepath.Base(path)
			if base == ".git" || base == filepath.Base(config.Run.OutputDir) {
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	})
}
