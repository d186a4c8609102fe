package seo

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
)

// ConfigError reports a configuration field that failed validation,
// naming the field and the rule it violated.
type ConfigError struct {
	Field string
	Rule  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: field %q: %s", e.Field, e.Rule)
}

var twitterHandleRe = regexp.MustCompile(`^@[A-Za-z0-9_]{1,15}$`)

// Config holds the site-wide settings for page generation. It is
// constructed once per process, validated at construction, and must
// be treated as immutable afterwards so it can be shared by reference
// across all renders.
type Config struct {
	// SiteURL is the absolute base URL of the site, without a
	// trailing slash (e.g. "https://gcctaxlaws.com").
	SiteURL string `json:"site_url"`

	// SiteName is the human-readable site name used in titles,
	// Open Graph tags and the page footer.
	SiteName string `json:"site_name"`

	// TwitterHandle is the optional @-prefixed handle emitted in
	// Twitter Card tags. Empty means no handle.
	TwitterHandle string `json:"twitter_handle"`

	// DefaultOGImage is the site-relative path of the fallback
	// Open Graph image.
	DefaultOGImage string `json:"default_og_image"`

	// OutputDir is the directory generated pages are written to.
	OutputDir string `json:"output_dir"`

	// PublicPath is an optional prefix for internal links, empty for
	// sites served from the domain root.
	PublicPath string `json:"public_path"`

	// DataDir is the directory containing the input JSON files.
	DataDir string `json:"data_dir"`
}

// Option overrides a single Config field at construction time.
type Option func(*Config)

// WithSiteURL overrides the site base URL.
func WithSiteURL(u string) Option { return func(c *Config) { c.SiteURL = u } }

// WithSiteName overrides the site display name.
func WithSiteName(n string) Option { return func(c *Config) { c.SiteName = n } }

// WithTwitterHandle overrides the Twitter handle.
func WithTwitterHandle(h string) Option { return func(c *Config) { c.TwitterHandle = h } }

// WithDefaultOGImage overrides the fallback Open Graph image path.
func WithDefaultOGImage(p string) Option { return func(c *Config) { c.DefaultOGImage = p } }

// WithOutputDir overrides the output directory.
func WithOutputDir(d string) Option { return func(c *Config) { c.OutputDir = d } }

// WithPublicPath overrides the internal link prefix.
func WithPublicPath(p string) Option { return func(c *Config) { c.PublicPath = p } }

// WithDataDir overrides the input data directory.
func WithDataDir(d string) Option { return func(c *Config) { c.DataDir = d } }

// DefaultConfig returns the stock configuration. The result is
// always valid.
func DefaultConfig() *Config {
	return &Config{
		SiteURL:        "https://gcctaxlaws.com",
		SiteName:       "GCC Tax Laws",
		TwitterHandle:  "@gcctaxlaws",
		DefaultOGImage: "/web-app-manifest-512x512.png",
		OutputDir:      "./public/seo",
		PublicPath:     "",
		DataDir:        "./data",
	}
}

// New builds a Config from the defaults with the given overrides
// applied, then validates it. Invalid overrides fail with a
// *ConfigError; nothing is silently coerced.
func New(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every field against its rule and normalizes the
// path fields with filepath.Clean so consumers never re-parse them.
// It returns a *ConfigError naming the first offending field.
func (c *Config) Validate() error {
	u, err := url.Parse(c.SiteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Field: "site_url", Rule: "must be an absolute URL with scheme and host"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigError{Field: "site_url", Rule: "scheme must be http or https"}
	}
	if c.SiteName == "" {
		return &ConfigError{Field: "site_name", Rule: "must not be empty"}
	}
	if c.TwitterHandle != "" && !twitterHandleRe.MatchString(c.TwitterHandle) {
		return &ConfigError{Field: "twitter_handle", Rule: `must match "@" followed by 1-15 word characters`}
	}
	if c.OutputDir == "" {
		return &ConfigError{Field: "output_dir", Rule: "must not be empty"}
	}
	if c.DataDir == "" {
		return &ConfigError{Field: "data_dir", Rule: "must not be empty"}
	}
	c.OutputDir = filepath.Clean(c.OutputDir)
	c.DataDir = filepath.Clean(c.DataDir)
	return nil
}

// FileListConfig names the input JSON files for one generation run,
// grouped by document family. It is independent of Config and shares
// no fields with it.
type FileListConfig struct {
	LawFiles      []string `json:"law_files"`
	GuidanceFiles []string `json:"guidance_files"`
	TreatyFiles   []string `json:"treaty_files"`
	BlogFiles     []string `json:"blog_files"`
}

// DefaultFileListConfig returns the stock data file lists.
func DefaultFileListConfig() *FileListConfig {
	return &FileListConfig{
		LawFiles: []string{
			"1-gcc-vat-agreement.json",
			"2-gcc-excise-agreement.json",
			"3-uae-cit-47-country-law-articles-decisions.json",
			"6-uae-vat-country-law-articles-decisions.json",
			"8-uae-tp-country-law-articles.json",
			"13-ksa-incometax-country-law-articles-guides.json",
			"20-kwt-ktl-country-law-articles.json",
			"21-kwt-dl-157-country-law-articles.json",
		},
		GuidanceFiles: []string{
			"4-uae-cit-guidelines-guide.json",
			"4-uae-cit-guidelines-pc.json",
			"7-uae-vat-guidelines-guide-pc.json",
			"9-uae-tp-guidelines-guide-pc.json",
		},
		TreatyFiles: []string{
			"dtaa-uae-1.json",
			"dtaa-uae-2.json",
			"dtaa-ksa.json",
			"dtaa-kuwait.json",
			"dtaa-qatar.json",
			"dtaa-oman.json",
			"dtaa-bahrain.json",
		},
		BlogFiles: []string{
			"blogs.json",
		},
	}
}
