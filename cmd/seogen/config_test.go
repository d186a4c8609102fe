package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gcctaxlaws/seogen/pkg/seo"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Site.SiteURL != "https://gcctaxlaws.com" {
		t.Errorf("unexpected default site_url: %q", config.Site.SiteURL)
	}
	if config.Generator.LogLevel != "info" {
		t.Errorf("unexpected default log_level: %q", config.Generator.LogLevel)
	}

	// The defaults should have been persisted for the next run.
	if _, err = os.Stat(path); err != nil {
		t.Errorf("default config file was not written: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Site.SiteName != config.Site.SiteName {
		t.Errorf("reloaded config differs: %q vs %q", reloaded.Site.SiteName, config.Site.SiteName)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "site_config": {
    "site_url": "https://staging.gcctaxlaws.com",
    "site_name": "GCC Tax Laws Staging",
    "output_dir": "./out",
    "data_dir": "./fixtures"
  },
  "generator_config": {
    "log_level": "debug"
  }
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Site.SiteURL != "https://staging.gcctaxlaws.com" {
		t.Errorf("site_url override not applied: %q", config.Site.SiteURL)
	}
	if config.Generator.LogLevel != "debug" {
		t.Errorf("log_level override not applied: %q", config.Generator.LogLevel)
	}
	// Unset sections keep their defaults.
	if len(config.Files.LawFiles) == 0 {
		t.Errorf("file lists lost their defaults")
	}
	if config.Generator.TemplateDir != "./data/templates" {
		t.Errorf("template_dir lost its default: %q", config.Generator.TemplateDir)
	}
}

func TestLoadConfigRejectsInvalidSite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"site_config": {"site_url": "not-a-url", "site_name": "X", "output_dir": "./out", "data_dir": "./data"}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var cfgErr *seo.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *seo.ConfigError, got %T: %v", err, err)
	}
	if cfgErr.Field != "site_url" {
		t.Errorf("error names field %q, want site_url", cfgErr.Field)
	}
}

func TestLoadConfigRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{oops"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
