// bdmigrate - audits CI pipelines for the legacy Synopsys/Polaris
// integration and migrates Azure DevOps pipelines to Black Duck.
//
// Usage:
//   bdmigrate --mode audit --root <dir> --out report.csv
//   bdmigrate --mode dry-run --root <dir> --out report.csv
//   bdmigrate --mode apply --root <dir> [--commit] [--push]
//   bdmigrate --mode rollback --root <dir>
//   bdmigrate --mode audit --root <dir> --out report.csv --watch

package main

import (
	"fmt"
	"os"

	cfgpkg "github.com/secpipe-tools/bdmigrate/internal/config"
)

// Version information (set at build time)
var (
	Version   = "1.2.0"
	BuildDate = "unknown"
)

// Global run configuration, resolved once at startup.
var config *cfgpkg.Config
var configPath string

func main() {
	args := os.Args[1:]
	flags := cfgpkg.Flags{}
	watchRun := false
	showVersion := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			if i+1 < len(args) {
				flags.ConfigPath = args[i+1]
				i++
			}
		case "--mode":
			if i+1 < len(args) {
				flags.Mode = args[i+1]
				i++
			}
		case "--root":
			if i+1 < len(args) {
				flags.Root = args[i+1]
				i++
			}
		case "--out":
			if i+1 < len(args) {
				flags.ReportPath = args[i+1]
				i++
			}
		case "--commit":
			flags.Commit = true
		case "--push":
			flags.Push = true
		case "--watch":
			watchRun = true
		case "--version", "-v", "version":
			showVersion = true
		case "--help", "-h", "help":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "ERROR: Unknown argument: %s\n", args[i])
			printUsage()
			os.Exit(1)
		}
	}

	if showVersion {
		fmt.Printf("bdmigrate v%s (built %s)\n", Version, BuildDate)
		return
	}

	if flags.ConfigPath != "" {
		if _, err := os.Stat(flags.ConfigPath); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Config not found: %s\n", flags.ConfigPath)
			os.Exit(1)
		}
	}

	cfg, cfgPath, warnings, err := cfgpkg.Resolve(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
	}
	config = &cfg
	configPath = cfgPath

	if watchRun {
		if cfg.Run.Mode != cfgpkg.ModeAudit && cfg.Run.Mode != cfgpkg.ModeDryRun {
			fmt.Fprintln(os.Stderr, "ERROR: --watch only supports audit and dry-run modes")
			os.Exit(1)
		}
		runWatch(nil)
		return
	}

	switch cfg.Run.Mode {
	case cfgpkg.ModeAudit:
		runAudit(false)
	case cfgpkg.ModeDryRun:
		runAudit(true)
	case cfgpkg.ModeApply:
		runApply()
	case cfgpkg.ModeRollback:
		runRollback()
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `bdmigrate - Synopsys/Polaris to Black Duck CI pipeline migration

Flags:
  --mode <audit|dry-run|apply|rollback>   Run mode (required)
  --root <dir>      Root containing one repo or many repo checkouts
  --out <file>      CSV report path (required for audit and dry-run)
  --config <file>   Optional YAML config override
  --commit          Commit migrated files (apply mode)
  --push            Push after commit (requires BD_GIT_TOKEN)
  --watch           Re-run audits when CI files change
  --version         Show version information`)
}
