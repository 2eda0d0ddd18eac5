package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, path, warnings, err := Resolve(Flags{Mode: ModeApply, Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Fatalf("config path = %q, want defaults only", path)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	if cfg.Run.Mode != ModeApply || cfg.Run.Root != root {
		t.Fatalf("flags not applied: %+v", cfg.Run)
	}
	if cfg.Scan.EvidenceLines != 8 || cfg.Scan.ApplyEvidenceLines != 6 {
		t.Fatalf("default evidence caps wrong: %+v", cfg.Scan)
	}
	if len(cfg.Scan.Globs) == 0 {
		t.Fatal("default globs missing")
	}
}

func TestResolveYAMLOverrideAndFlagPrecedence(t *testing.T) {
	root := t.TempDir()
	cfgFile := filepath.Join(t.TempDir(), "bdmigrate.yml")
	yaml := "run:\n  mode: audit\n  reportPath: from-config.csv\nscan:\n  evidenceLines: 4\n"
	if err := os.WriteFile(cfgFile, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, _, err := Resolve(Flags{ConfigPath: cfgFile, Root: root, ReportPath: "from-flag.csv"})
	if err != nil {
		t.Fatal(err)
	}
	if path != cfgFile {
		t.Fatalf("config path = %q, want %q", path, cfgFile)
	}
	if cfg.Run.Mode != ModeAudit {
		t.Fatalf("mode = %q, want audit from config file", cfg.Run.Mode)
	}
	if cfg.Run.ReportPath != "from-flag.csv" {
		t.Fatalf("flag must beat config file, got %q", cfg.Run.ReportPath)
	}
	if cfg.Scan.EvidenceLines != 4 {
		t.Fatalf("evidenceLines = %d, want 4", cfg.Scan.EvidenceLines)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	root := t.TempDir()
	base := func() Config {
		cfg := Default()
		cfg.Run.Mode = ModeApply
		cfg.Run.Root = root
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing_mode", func(c *Config) { c.Run.Mode = "" }},
		{"invalid_mode", func(c *Config) { c.Run.Mode = "migrate" }},
		{"missing_root", func(c *Config) { c.Run.Root = "" }},
		{"unreachable_root", func(c *Config) { c.Run.Root = filepath.Join(root, "absent") }},
		{"audit_without_report", func(c *Config) { c.Run.Mode = ModeAudit; c.Run.ReportPath = "" }},
		{"dry_run_without_report", func(c *Config) { c.Run.Mode = ModeDryRun; c.Run.ReportPath = "" }},
		{"push_without_commit", func(c *Config) { c.Git.Push = true; c.Git.Commit = false }},
		{"push_without_token", func(c *Config) { c.Git.Push = true; c.Git.Commit = true; c.Git.Token = "" }},
		{"zero_evidence_cap", func(c *Config) { c.Scan.EvidenceLines = 0 }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			if err := Validate(cfg); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}

	good := base()
	if err := Validate(good); err != nil {
		t.Fatalf("baseline config should validate: %v", err)
	}
	withPush := base()
	withPush.Git.Commit = true
	withPush.Git.Push = true
	withPush.Git.Token = "tok"
	if err := Validate(withPush); err != nil {
		t.Fatalf("push with token should validate: %v", err)
	}
}

func TestResolveMissingConfigFileFails(t *testing.T) {
	_, _, _, err := Resolve(Flags{ConfigPath: filepath.Join(t.TempDir(), "absent.yml"), Mode: ModeAudit, Root: "."})
	if err == nil {
		t.Fatal("expected error for unreadable config file")
	}
}
