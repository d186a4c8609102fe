package main

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/gcctaxlaws/seogen/pkg/inventory"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// mainPages are the hand-maintained site routes that precede the
// generated pages in the sitemap.
var mainPages = []sitemapURL{
	{Loc: "/", ChangeFreq: "daily", Priority: "1.0"},
	{Loc: "/search-across-law", ChangeFreq: "weekly", Priority: "0.9"},
	{Loc: "/cookie-policy", ChangeFreq: "yearly", Priority: "0.3"},
	{Loc: "/privacy-policy", ChangeFreq: "yearly", Priority: "0.3"},
	{Loc: "/terms-and-conditions", ChangeFreq: "yearly", Priority: "0.3"},
}

// writeSitemap builds sitemap.xml from the static main pages plus
// every page currently in the inventory.
func (g *Generator) writeSitemap(pages []inventory.Page) error {
	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	now := time.Now().UTC().Format("2006-01-02")
	for _, p := range mainPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        g.config.Site.SiteURL + p.Loc,
			LastMod:    now,
			ChangeFreq: p.ChangeFreq,
			Priority:   p.Priority,
		})
	}
	for _, p := range pages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        p.Canonical,
			LastMod:    p.LastMod.Format("2006-01-02"),
			ChangeFreq: p.ChangeFreq,
			Priority:   p.Priority,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	buf.WriteString("\n")

	path := filepath.Join(g.config.Site.OutputDir, "sitemap.xml")
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	g.logger.Info("Wrote sitemap", "path", path, "urls", len(set.URLs))
	return nil
}

// writeRobotsTxt emits the crawler policy, pointing at the sitemap
// and fencing off the authenticated and raw-generation routes.
func (g *Generator) writeRobotsTxt() error {
	content := fmt.Sprintf(`User-agent: *
Allow: /

Disallow: /register
Disallow: /login
Disallow: /seo/
Disallow: /internal-seo/

User-agent: Googlebot
Allow: /

User-agent: Bingbot
Allow: /

User-agent: Slurp
Allow: /

Sitemap: %s/sitemap.xml
`, g.config.Site.SiteURL)

	path := filepath.Join(g.config.Site.OutputDir, "robots.txt")
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write robots.txt: %w", err)
	}
	g.logger.Info("Wrote robots.txt", "path", path)
	return nil
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []manifestIcon `json:"icons"`
}

// writeManifest emits site.webmanifest for installable-app metadata.
func (g *Generator) writeManifest() error {
	manifest := webManifest{
		Name:            g.config.Site.SiteName,
		ShortName:       "GTL",
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      "#1a365d",
		Icons: []manifestIcon{
			{Src: "/web-app-manifest-192x192.png", Sizes: "192x192", Type: "image/png"},
			{Src: "/web-app-manifest-512x512.png", Sizes: "512x512", Type: "image/png"},
		},
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal webmanifest: %w", err)
	}

	path := filepath.Join(g.config.Site.OutputDir, "site.webmanifest")
	if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write webmanifest: %w", err)
	}
	g.logger.Info("Wrote webmanifest", "path", path)
	return nil
}
