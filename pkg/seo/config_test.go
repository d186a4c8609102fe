package seo

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if c.SiteURL != "https://gcctaxlaws.com" {
		t.Errorf("SiteURL = %q", c.SiteURL)
	}
	if c.SiteName != "GCC Tax Laws" {
		t.Errorf("SiteName = %q", c.SiteName)
	}
	if c.TwitterHandle != "@gcctaxlaws" {
		t.Errorf("TwitterHandle = %q", c.TwitterHandle)
	}
}

func TestNewAppliesOverrides(t *testing.T) {
	c, err := New(
		WithSiteURL("https://example.com"),
		WithSiteName("Test Site"),
		WithTwitterHandle("@testsite"),
		WithOutputDir("./out"),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.SiteURL != "https://example.com" {
		t.Errorf("SiteURL = %q, want the override to round-trip unchanged", c.SiteURL)
	}
	if c.SiteName != "Test Site" || c.TwitterHandle != "@testsite" {
		t.Errorf("overrides not applied: %+v", c)
	}
	if c.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want cleaned path %q", c.OutputDir, "out")
	}
	// Untouched fields keep their defaults.
	if c.DataDir != "data" {
		t.Errorf("DataDir = %q, want default", c.DataDir)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name  string
		opt   Option
		field string
	}{
		{"malformed url", WithSiteURL("not-a-url"), "site_url"},
		{"relative url", WithSiteURL("/just/a/path"), "site_url"},
		{"bad scheme", WithSiteURL("ftp://example.com"), "site_url"},
		{"empty name", WithSiteName(""), "site_name"},
		{"handle without at", WithTwitterHandle("gcctaxlaws"), "twitter_handle"},
		{"handle with spaces", WithTwitterHandle("@gcc tax"), "twitter_handle"},
		{"empty output dir", WithOutputDir(""), "output_dir"},
		{"empty data dir", WithDataDir(""), "data_dir"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.opt)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("error type = %T, want *ConfigError", err)
			}
			if cerr.Field != tc.field {
				t.Errorf("offending field = %q, want %q", cerr.Field, tc.field)
			}
		})
	}
}

func TestEmptyTwitterHandleIsOptional(t *testing.T) {
	if _, err := New(WithTwitterHandle("")); err != nil {
		t.Fatalf("empty handle should be allowed: %v", err)
	}
}

func TestDefaultFileListConfig(t *testing.T) {
	fl := DefaultFileListConfig()
	if len(fl.LawFiles) != 8 {
		t.Errorf("LawFiles = %d entries, want 8", len(fl.LawFiles))
	}
	if len(fl.GuidanceFiles) != 4 || len(fl.TreatyFiles) != 7 || len(fl.BlogFiles) != 1 {
		t.Errorf("unexpected file list sizes: %+v", fl)
	}
}
