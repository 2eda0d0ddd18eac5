// Package config builds the immutable run configuration: compiled-in
// defaults, an optional YAML override file, then command-line flags.
// Components receive the resolved Config and never read ambient
// environment state themselves.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Run modes accepted by Validate.
const (
	ModeAudit    = "audit"
	ModeDryRun   = "dry-run"
	ModeApply    = "apply"
	ModeRollback = "rollback"
)

// Config is the resolved configuration for one run.
type Config struct {
	SchemaVersion string     `yaml:"schemaVersion"`
	App           AppConfig  `yaml:"app"`
	Run           RunConfig  `yaml:"run"`
	Scan          ScanConfig `yaml:"scan"`
	Git           GitConfig  `yaml:"git"`
}

type AppConfig struct {
	Name string `yaml:"name"`
}

type RunConfig struct {
	Mode       string `yaml:"mode"`
	Root       string `yaml:"root"`
	ReportPath string `yaml:"reportPath"`
	OutputDir  string `yaml:"outputDir"`
}

type ScanConfig struct {
	// Globs are doublestar patterns, relative to each repository root,
	// selecting candidate CI files.
	Globs []string `yaml:"globs"`
	// EvidenceLines caps sample lines per file in audit and dry-run runs.
	EvidenceLines int `yaml:"evidenceLines"`
	// ApplyEvidenceLines caps sample lines when classifying apply targets.
	ApplyEvidenceLines int `yaml:"applyEvidenceLines"`
	// AggregateEvidenceLines caps the combined evidence column per repository.
	AggregateEvidenceLines int `yaml:"aggregateEvidenceLines"`
}

type GitConfig struct {
	Commit        bool   `yaml:"commit"`
	Push          bool   `yaml:"push"`
	Remote        string `yaml:"remote"`
	CommitMessage string `yaml:"commitMessage"`
	TokenEnv      string `yaml:"tokenEnv"`
	// Token is read once from TokenEnv during Resolve.
	Token string `yaml:"-"`
}

// Flags carries the command-line overrides collected by main.
type Flags struct {
	ConfigPath string
	Mode       string
	Root       string
	ReportPath string
	Commit     bool
	Push       bool
}

// Default returns the compiled-in defaults.
func Default() Config {
	return Config{
		SchemaVersion: "1.0",
		App: AppConfig{
			Name: "bdmigrate",
		},
		Run: RunConfig{
			Root:      ".",
			OutputDir: ".bdmigrate",
		},
		Scan: ScanConfig{
			Globs: []string{
				".github/workflows/*.yml",
				".github/workflows/*.yaml",
				"azure-pipelines*.yml",
				"**/azure-pipelines*.yml",
				"**/*.azure-pipelines.yml",
				"Jenkinsfile*",
				"**/Jenkinsfile*",
				".travis.yml",
				"bamboo-specs/*.yml",
				"bamboo-specs/*.yaml",
				"**/build*.sh",
				"**/ci*.sh",
			},
			EvidenceLines:          8,
			ApplyEvidenceLines:     6,
			AggregateEvidenceLines: 30,
		},
		Git: GitConfig{
			Remote:        "origin",
			CommitMessage: "Migrate Synopsys Polaris pipeline integration to Black Duck",
			TokenEnv:      "BD_GIT_TOKEN",
		},
	}
}

// Resolve merges defaults, the optional YAML override file, and flags.
// Returns the config, the config file path actually used (empty when
// defaults only), non-fatal warnings, and a fatal resolution error.
func Resolve(flags Flags) (Config, string, []string, error) {
	cfg := Default()
	warnings := []string{}

	usedPath := ""
	if flags.ConfigPath != "" {
		data, err := os.ReadFile(flags.ConfigPath)
		if err != nil {
			return cfg, "", warnings, fmt.Errorf("config read failed: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, "", warnings, fmt.Errorf("config parse failed: %w", err)
		}
		usedPath = flags.ConfigPath
		if cfg.SchemaVersion != "" && cfg.SchemaVersion != "1.0" {
			warnings = append(warnings, fmt.Sprintf("config schemaVersion %q not recognized, continuing with best effort", cfg.SchemaVersion))
		}
	}

	if flags.Mode != "" {
		cfg.Run.Mode = flags.Mode
	}
	if flags.Root != "" {
		cfg.Run.Root = flags.Root
	}
	if flags.ReportPath != "" {
		cfg.Run.ReportPath = flags.ReportPath
	}
	if flags.Commit {
		cfg.Git.Commit = true
	}
	if flags.Push {
		cfg.Git.Push = true
	}

	cfg.Git.Token = os.Getenv(cfg.Git.TokenEnv)

	if err := Validate(cfg); err != nil {
		return cfg, usedPath, warnings, err
	}
	return cfg, usedPath, warnings, nil
}

// Validate checks the configuration contract before any file is touched.
func Validate(cfg Config) error {
	switch cfg.Run.Mode {
	case "":
		return fmt.Errorf("run mode is required (one of: %s)", strings.Join(validModes(), ", "))
	case ModeAudit, ModeDryRun, ModeApply, ModeRollback:
	default:
		return fmt.Errorf("invalid run mode %q (one of: %s)", cfg.Run.Mode, strings.Join(validModes(), ", "))
	}
	if cfg.Run.Root == "" {
		return fmt.Errorf("root path is required")
	}
	if _, err := os.Stat(cfg.Run.Root); err != nil {
		return fmt.Errorf("root path not accessible: %w", err)
	}
	if (cfg.Run.Mode == ModeAudit || cfg.Run.Mode == ModeDryRun) && cfg.Run.ReportPath == "" {
		return fmt.Errorf("report output path is required for %s runs", cfg.Run.Mode)
	}
	if cfg.Git.Push && !cfg.Git.Commit {
		return fmt.Errorf("push requires commit to be enabled")
	}
	if cfg.Git.Push && cfg.Git.Token == "" {
		return fmt.Errorf("push requested but %s is not set", cfg.Git.TokenEnv)
	}
	if cfg.Scan.EvidenceLines <= 0 || cfg.Scan.ApplyEvidenceLines <= 0 {
		return fmt.Errorf("evidence line caps must be positive")
	}
	return nil
}

func validModes() []string {
	return []string{ModeAudit, ModeDryRun, ModeApply, ModeRollback}
}
