package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/gcctaxlaws/seogen/pkg/inventory"
	"github.com/gcctaxlaws/seogen/pkg/render"
	"github.com/gcctaxlaws/seogen/pkg/seo"
)

// countryData mirrors the top level of a law JSON file: one country
// with its laws, each carrying articles and decisions.
type countryData struct {
	CountryName string    `json:"countryName"`
	Alpha3Code  string    `json:"alpha3Code"`
	FlagCode    string    `json:"flagCode"`
	Laws        []lawData `json:"laws"`
}

type lawData struct {
	LawFullName  string         `json:"lawFullName"`
	LawShortName string         `json:"lawShortName"`
	Articles     []articleData  `json:"articles"`
	Decisions    []decisionData `json:"decisions"`
}

type articleData struct {
	Number          string     `json:"number"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	TextOnly        string     `json:"textOnly"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	MetaKeywords    string     `json:"metaKeywords"`
	Path            []pathItem `json:"path"`
}

type pathItem struct {
	Name string `json:"name"`
}

type decisionData struct {
	Number          string `json:"number"`
	Year            string `json:"year"`
	Type            string `json:"type"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`
}

type guidanceData struct {
	LawSlug         string `json:"lawSlug"`
	Type            string `json:"type"`
	UniqueCode      string `json:"uniqueCode"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`
}

type treatyData struct {
	Country1Slug    string `json:"country1Slug"`
	Country2Alpha3  string `json:"country2Alpha3"`
	Country2Name    string `json:"country2Name"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`
}

type blogData struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Content         string `json:"content"`
	Author          string `json:"author"`
	PublishedDate   string `json:"publishedDate"`
	ImageURL        string `json:"imageUrl"`
	MetaDescription string `json:"metaDescription"`
	MetaKeywords    string `json:"metaKeywords"`
}

// Generator runs one batch generation pass: JSON content in,
// rendered pages plus sitemap artifacts out. A failing page is
// logged and skipped; it never aborts the batch.
type Generator struct {
	config   *Config
	logger   *slog.Logger
	renderer *render.Renderer
	lookups  *seo.Lookups
	store    *inventory.Store

	pagesWritten int
	pagesFailed  int
}

// NewGenerator wires a Generator from already-constructed parts.
func NewGenerator(config *Config, logger *slog.Logger, renderer *render.Renderer, lookups *seo.Lookups, store *inventory.Store) *Generator {
	return &Generator{
		config:   config,
		logger:   logger,
		renderer: renderer,
		lookups:  lookups,
		store:    store,
	}
}

// Run executes a full generation pass: all document families, then
// stale-page pruning, then the sitemap, robots.txt and webmanifest.
func (g *Generator) Run(ctx context.Context) error {
	start := time.Now().UTC()

	for _, filename := range g.config.Files.LawFiles {
		g.processLawFile(ctx, filename, start)
	}
	for _, filename := range g.config.Files.GuidanceFiles {
		g.processGuidanceFile(ctx, filename, start)
	}
	for _, filename := range g.config.Files.TreatyFiles {
		g.processTreatyFile(ctx, filename, start)
	}
	for _, filename := range g.config.Files.BlogFiles {
		g.processBlogFile(ctx, filename, start)
	}

	if _, err := g.store.PruneBefore(ctx, start); err != nil {
		return fmt.Errorf("failed to prune stale pages: %w", err)
	}

	pages, err := g.store.Pages(ctx)
	if err != nil {
		return fmt.Errorf("failed to list inventory pages: %w", err)
	}
	if err = g.writeSitemap(pages); err != nil {
		return err
	}
	if err = g.writeRobotsTxt(); err != nil {
		return err
	}
	if err = g.writeManifest(); err != nil {
		return err
	}

	g.logger.Info("Generation run complete",
		"pages_written", g.pagesWritten,
		"pages_failed", g.pagesFailed,
		"duration", time.Since(start).Round(time.Millisecond).String())
	return nil
}

// loadJSON reads one data file into out, treating a missing file as
// a skip (logged) and malformed JSON as a per-file error (logged).
// It reports whether out was populated.
func (g *Generator) loadJSON(filename string, out any) bool {
	path := filepath.Join(g.config.Site.DataDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.logger.Warn("Skipping data file, not found", "file", filename)
		} else {
			g.logger.Error("Failed to read data file", "file", filename, "error", err)
		}
		return false
	}
	if err = json.Unmarshal(data, out); err != nil {
		g.logger.Error("Failed to parse data file", "file", filename, "error", err)
		return false
	}
	return true
}

// loadCountries handles law files that contain either a single
// country object or a list of them.
func (g *Generator) loadCountries(filename string) []countryData {
	path := filepath.Join(g.config.Site.DataDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.logger.Warn("Skipping data file, not found", "file", filename)
		} else {
			g.logger.Error("Failed to read data file", "file", filename, "error", err)
		}
		return nil
	}

	var countries []countryData
	if err = json.Unmarshal(data, &countries); err == nil {
		return countries
	}
	var single countryData
	if err = json.Unmarshal(data, &single); err == nil {
		return []countryData{single}
	}
	g.logger.Error("Failed to parse data file", "file", filename, "error", err)
	return nil
}

func (g *Generator) processLawFile(ctx context.Context, filename string, start time.Time) {
	countries := g.loadCountries(filename)
	if countries == nil {
		return
	}
	g.logger.Info("Processing law file", "file", filename, "countries", len(countries))

	for _, country := range countries {
		for _, law := range country.Laws {
			for _, article := range law.Articles {
				if article.Number == "" || article.Title == "" {
					continue
				}
				g.emitArticle(ctx, article, law, country, start)
			}
			for _, decision := range law.Decisions {
				if decision.Number == "" && decision.Title == "" {
					continue
				}
				g.emitDecision(ctx, decision, law, country, start)
			}
		}
	}
}

func (g *Generator) emitArticle(ctx context.Context, article articleData, law lawData, country countryData, start time.Time) {
	slug := seo.ArticleSlug(law.LawShortName, article.Number, country.CountryName)
	canonical := g.canonical("articles", slug)

	cleanTitle := seo.StripTags(article.Title)
	var title string
	if strings.HasPrefix(strings.ToLower(cleanTitle), "article") {
		title = fmt.Sprintf("%s | %s | %s", cleanTitle, law.LawFullName, g.config.Site.SiteName)
	} else {
		title = fmt.Sprintf("Article %s - %s | %s | %s", article.Number, cleanTitle, law.LawFullName, g.config.Site.SiteName)
	}
	metaTitle := article.MetaTitle
	if metaTitle == "" {
		metaTitle = title
	}

	description := article.MetaDescription
	if description == "" {
		description = fmt.Sprintf("Article %s: %s", article.Number, render.TruncateText(article.TextOnly, 140))
	}

	var location []string
	for _, p := range article.Path {
		if p.Name != "" {
			location = append(location, p.Name)
		}
	}

	breadcrumb := g.breadcrumbHTML(
		crumb{href: g.config.Site.PublicPath + "/articles", label: "Articles"},
		crumb{
			href:  fmt.Sprintf("%s/laws/%s/%s", g.config.Site.PublicPath, country.CountryName, law.LawShortName),
			label: law.LawShortName,
		},
		crumb{label: render.TruncateText(cleanTitle, 60), current: true},
	)

	docMeta := g.docMetaHTML([]metaRow{
		{"Document Type", "Tax Law Article"},
		{"Law", law.LawFullName},
		{"Article Number", article.Number},
		{"Country", g.lookups.CountryFlag(country.FlagCode) + " " + country.CountryName},
		{"Location", strings.Join(location, " › ")},
		{"Authority", g.lookups.AuthorityName(slug)},
	})

	pageCtx := render.Context{
		"meta_title":      metaTitle,
		"description":     description,
		"keywords":        seo.Keywords("articles", map[string]any{"number": article.Number, "metaKeywords": article.MetaKeywords}),
		"canonical":       canonical,
		"og_image":        g.config.Site.SiteURL + g.config.Site.DefaultOGImage,
		"og_image_alt":    title + " - " + g.config.Site.SiteName,
		"document_type":   "articles",
		"doc_type_css":    docTypeCSS("articles"),
		"breadcrumb_html": breadcrumb,
		"doc_meta":        docMeta,
		"content":         template.HTML(article.Content),
		"structured_data": g.structuredData("Legislation", title, canonical, country.CountryName),
	}

	g.emitPage(ctx, "articles", slug, title, canonical, pageCtx, start)
}

func (g *Generator) emitDecision(ctx context.Context, decision decisionData, law lawData, country countryData, start time.Time) {
	slug := seo.DecisionSlug(law.LawShortName, decision.Number, decision.Year, decision.Type, country.CountryName)
	canonical := g.canonical("decisions", slug)

	title := fmt.Sprintf("%s | %s | %s", seo.StripTags(decision.Title), law.LawFullName, g.config.Site.SiteName)
	description := decision.MetaDescription
	if description == "" {
		description = render.TruncateText(seo.StripTags(decision.Content), 160)
	}

	breadcrumb := g.breadcrumbHTML(
		crumb{href: g.config.Site.PublicPath + "/decisions", label: "Decisions"},
		crumb{label: render.TruncateText(seo.StripTags(decision.Title), 60), current: true},
	)

	docMeta := g.docMetaHTML([]metaRow{
		{"Document Type", "Regulatory Decision"},
		{"Law", law.LawFullName},
		{"Decision Number", decision.Number},
		{"Year", decision.Year},
		{"Country", g.lookups.CountryFlag(country.FlagCode) + " " + country.CountryName},
		{"Authority", g.lookups.AuthorityName(slug)},
	})

	pageCtx := render.Context{
		"meta_title":      title,
		"description":     description,
		"keywords":        seo.Keywords("decisions", map[string]any{"number": decision.Number, "year": decision.Year, "type": decision.Type, "metaKeywords": decision.MetaKeywords}),
		"canonical":       canonical,
		"og_image":        g.config.Site.SiteURL + g.config.Site.DefaultOGImage,
		"og_image_alt":    title + " - " + g.config.Site.SiteName,
		"document_type":   "decisions",
		"doc_type_css":    docTypeCSS("decisions"),
		"breadcrumb_html": breadcrumb,
		"doc_meta":        docMeta,
		"content":         template.HTML(decision.Content),
		"structured_data": g.structuredData("Legislation", title, canonical, country.CountryName),
	}

	g.emitPage(ctx, "decisions", slug, title, canonical, pageCtx, start)
}

func (g *Generator) processGuidanceFile(ctx context.Context, filename string, start time.Time) {
	var guidances []guidanceData
	if !g.loadJSON(filename, &guidances) {
		return
	}
	g.logger.Info("Processing guidance file", "file", filename, "count", len(guidances))

	for _, guidance := range guidances {
		if guidance.UniqueCode == "" || guidance.Title == "" {
			continue
		}
		slug := seo.GuidanceSlug(guidance.LawSlug, guidance.Type, guidance.UniqueCode)
		canonical := g.canonical("guidances", slug)

		title := fmt.Sprintf("%s | %s", seo.StripTags(guidance.Title), g.config.Site.SiteName)
		description := guidance.MetaDescription
		if description == "" {
			description = render.TruncateText(seo.StripTags(guidance.Content), 160)
		}

		pageCtx := render.Context{
			"meta_title":  title,
			"description": description,
			"keywords": seo.Keywords("guidances", map[string]any{
				"uniqueCode": guidance.UniqueCode, "type": guidance.Type, "metaKeywords": guidance.MetaKeywords,
			}),
			"canonical":     canonical,
			"og_image":      g.config.Site.SiteURL + g.config.Site.DefaultOGImage,
			"og_image_alt":  title + " - " + g.config.Site.SiteName,
			"document_type": "guidances",
			"doc_type_css":  docTypeCSS("guidances"),
			"breadcrumb_html": g.breadcrumbHTML(
				crumb{href: g.config.Site.PublicPath + "/guidances", label: "Guidance"},
				crumb{label: render.TruncateText(seo.StripTags(guidance.Title), 60), current: true},
			),
			"doc_meta": g.docMetaHTML([]metaRow{
				{"Document Type", "Tax Guidance"},
				{"Reference", guidance.UniqueCode},
				{"Authority", g.lookups.AuthorityName(guidance.LawSlug)},
			}),
			"content":         template.HTML(guidance.Content),
			"structured_data": g.structuredData("WebPage", title, canonical, ""),
		}

		g.emitPage(ctx, "guidances", slug, title, canonical, pageCtx, start)
	}
}

func (g *Generator) processTreatyFile(ctx context.Context, filename string, start time.Time) {
	var treaties []treatyData
	if !g.loadJSON(filename, &treaties) {
		return
	}
	g.logger.Info("Processing treaty file", "file", filename, "count", len(treaties))

	for _, treaty := range treaties {
		if treaty.Country2Alpha3 == "" {
			continue
		}
		slug := seo.TreatySlug(treaty.Country1Slug, treaty.Country2Alpha3)
		canonical := g.canonical("tax-treaties", slug)

		title := treaty.Title
		if title == "" {
			title = fmt.Sprintf("Double Taxation Agreement with %s", treaty.Country2Name)
		}
		title = fmt.Sprintf("%s | %s", seo.StripTags(title), g.config.Site.SiteName)

		description := treaty.MetaDescription
		if description == "" {
			description = render.TruncateText(seo.StripTags(treaty.Content), 160)
		}

		pageCtx := render.Context{
			"meta_title":  title,
			"description": description,
			"keywords": seo.Keywords("tax-treaties", map[string]any{
				"country2Name": treaty.Country2Name, "metaKeywords": treaty.MetaKeywords,
			}),
			"canonical":     canonical,
			"og_image":      g.config.Site.SiteURL + g.config.Site.DefaultOGImage,
			"og_image_alt":  title + " - " + g.config.Site.SiteName,
			"document_type": "tax-treaties",
			"doc_type_css":  docTypeCSS("tax-treaties"),
			"breadcrumb_html": g.breadcrumbHTML(
				crumb{href: g.config.Site.PublicPath + "/tax-treaties", label: "Treaties"},
				crumb{label: render.TruncateText(seo.StripTags(title), 60), current: true},
			),
			"doc_meta": g.docMetaHTML([]metaRow{
				{"Document Type", "Tax Treaty (DTAA)"},
				{"Counterparty", treaty.Country2Name},
			}),
			"content":         template.HTML(treaty.Content),
			"structured_data": g.structuredData("Legislation", title, canonical, treaty.Country2Name),
		}

		g.emitPage(ctx, "tax-treaties", slug, title, canonical, pageCtx, start)
	}
}

func (g *Generator) processBlogFile(ctx context.Context, filename string, start time.Time) {
	var blogs []blogData
	if !g.loadJSON(filename, &blogs) {
		return
	}
	g.logger.Info("Processing blog file", "file", filename, "count", len(blogs))

	for _, blog := range blogs {
		if blog.Title == "" {
			continue
		}
		slug := seo.BlogSlug(blog.Title)
		canonical := g.canonical("blogs", slug)

		title := fmt.Sprintf("%s | %s", seo.StripTags(blog.Title), g.config.Site.SiteName)
		description := blog.MetaDescription
		if description == "" {
			description = blog.Description
		}

		ogImage := blog.ImageURL
		if ogImage == "" {
			ogImage = g.config.Site.SiteURL + g.config.Site.DefaultOGImage
		}

		author := blog.Author
		if author == "" {
			author = "Team GTL"
		}

		pageCtx := render.Context{
			"meta_title":    title,
			"description":   description,
			"keywords":      seo.Keywords("blogs", map[string]any{"metaKeywords": blog.MetaKeywords}),
			"canonical":     canonical,
			"og_image":      ogImage,
			"og_image_alt":  title + " - " + g.config.Site.SiteName,
			"document_type": "blogs",
			"doc_type_css":  docTypeCSS("blogs"),
			"breadcrumb_html": g.breadcrumbHTML(
				crumb{href: g.config.Site.PublicPath + "/blogs", label: "Blogs"},
				crumb{label: render.TruncateText(seo.StripTags(blog.Title), 60), current: true},
			),
			"doc_meta": g.docMetaHTML([]metaRow{
				{"Document Type", "Blog Post"},
				{"Author", author},
				{"Published", formatBlogDate(blog.PublishedDate)},
				{"Reading Time", fmt.Sprintf("%d min", seo.ReadingTime(blog.Content))},
			}),
			"content":         template.HTML(blog.Content),
			"structured_data": g.blogStructuredData(blog, title, canonical),
		}

		g.emitPage(ctx, "blogs", slug, title, canonical, pageCtx, start)
	}
}

// emitPage renders one page, writes it atomically under
// <output>/<docType>/<slug>.html and records it in the inventory.
func (g *Generator) emitPage(ctx context.Context, docType, slug, title, canonical string, pageCtx render.Context, start time.Time) {
	html, err := g.renderer.RenderBase(pageCtx)
	if err != nil {
		g.pagesFailed++
		g.logger.Error("Failed to render page", "doc_type", docType, "slug", slug, "error", err)
		return
	}

	dir := filepath.Join(g.config.Site.OutputDir, docType)
	if err = os.MkdirAll(dir, 0755); err != nil {
		g.pagesFailed++
		g.logger.Error("Failed to create output directory", "dir", dir, "error", err)
		return
	}

	path := filepath.Join(dir, slug+".html")
	if err = atomic.WriteFile(path, strings.NewReader(html)); err != nil {
		g.pagesFailed++
		g.logger.Error("Failed to write page", "path", path, "error", err)
		return
	}

	err = g.store.Record(ctx, inventory.Page{
		Slug:      slug,
		DocType:   docType,
		Path:      filepath.Join(docType, slug+".html"),
		Canonical: canonical,
		Title:     title,
		LastMod:   start,
	})
	if err != nil {
		g.pagesFailed++
		g.logger.Error("Failed to record page in inventory", "slug", slug, "error", err)
		return
	}

	g.pagesWritten++
	g.logger.Debug("Wrote page", "doc_type", docType, "slug", slug)
}

func (g *Generator) canonical(docType, slug string) string {
	return fmt.Sprintf("%s/%s/%s", g.config.Site.SiteURL, docType, slug)
}

type crumb struct {
	href    string
	label   string
	current bool
}

// breadcrumbHTML assembles the breadcrumb nav fragment. Labels are
// escaped here because the fragment enters the template as safe HTML.
func (g *Generator) breadcrumbHTML(crumbs ...crumb) template.HTML {
	parts := []string{`<a href="/">Home</a>`}
	for _, c := range crumbs {
		label := template.HTMLEscapeString(c.label)
		if c.current {
			parts = append(parts, "<strong>"+label+"</strong>")
		} else {
			parts = append(parts, fmt.Sprintf(`<a href="%s">%s</a>`, c.href, label))
		}
	}
	return template.HTML(fmt.Sprintf(`
    <nav class="breadcrumb-nav" aria-label="Breadcrumb">
        <div class="container">
            %s
        </div>
    </nav>`, strings.Join(parts, " &rsaquo; ")))
}

type metaRow struct {
	label string
	value string
}

// docMetaHTML renders the document-metadata block, skipping rows
// with empty values.
func (g *Generator) docMetaHTML(rows []metaRow) template.HTML {
	var b strings.Builder
	b.WriteString("\n    <div class=\"document-meta\">\n")
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(&b, "        <strong>%s:</strong> %s<br>\n",
			template.HTMLEscapeString(row.label), template.HTMLEscapeString(row.value))
	}
	fmt.Fprintf(&b, "        <strong>Last updated at:</strong> %s<br>\n",
		time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	b.WriteString("    </div>")
	return template.HTML(b.String())
}

// structuredData builds the schema.org payload shared by the legal
// document types.
func (g *Generator) structuredData(schemaType, name, canonical, countryName string) map[string]any {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    schemaType,
		"name":     name,
		"url":      canonical,
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  g.config.Site.SiteName,
			"url":   g.config.Site.SiteURL,
		},
		"inLanguage": "en",
	}
	if countryName != "" {
		data["spatialCoverage"] = map[string]any{
			"@type": "Country",
			"name":  countryName,
		}
	}
	return data
}

func (g *Generator) blogStructuredData(blog blogData, title, canonical string) map[string]any {
	author := blog.Author
	if author == "" {
		author = "Team GTL"
	}
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "BlogPosting",
		"headline": seo.StripTags(blog.Title),
		"url":      canonical,
		"author": map[string]any{
			"@type": "Person",
			"name":  author,
		},
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  g.config.Site.SiteName,
			"url":   g.config.Site.SiteURL,
		},
	}
	if blog.PublishedDate != "" {
		data["datePublished"] = blog.PublishedDate
	}
	if blog.ImageURL != "" {
		data["image"] = blog.ImageURL
	}
	return data
}

// formatBlogDate renders an ISO publish date as "January 2, 2006",
// falling back to "Recently" for absent or malformed input.
func formatBlogDate(iso string) string {
	if iso == "" {
		return "Recently"
	}
	t, err := time.Parse(time.RFC3339, strings.Replace(iso, "Z", "+00:00", 1))
	if err != nil {
		t, err = time.Parse(time.RFC3339, iso)
		if err != nil {
			return "Recently"
		}
	}
	return t.Format("January 2, 2006")
}

// docTypeCSS returns the stylesheet link for a document family.
func docTypeCSS(docType string) template.HTML {
	sheets := map[string]string{
		"articles":     "/css/article.css",
		"decisions":    "/css/decision.css",
		"guidances":    "/css/guidance.css",
		"tax-treaties": "/css/treaty.css",
		"blogs":        "/css/blog.css",
	}
	href, ok := sheets[docType]
	if !ok {
		return ""
	}
	return template.HTML(fmt.Sprintf(`<link rel="stylesheet" href="%s" />`, href))
}
