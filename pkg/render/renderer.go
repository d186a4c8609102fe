package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gcctaxlaws/seogen/pkg/seo"
)

const (
	// BaseTemplate is the full page shell template.
	BaseTemplate = "base.tmpl.html"
	// MetaTagsTemplate is the Open Graph / Twitter fragment composed
	// into the base template's head.
	MetaTagsTemplate = "meta_tags.part.html"
)

var (
	// ErrTemplateLoad wraps any failure to parse the template set at
	// construction time.
	ErrTemplateLoad = errors.New("render: template load failed")
	// ErrTemplateRender wraps a template execution failure. Context
	// value types never trigger it; scalars are coerced to strings
	// and structured data is JSON-marshaled.
	ErrTemplateRender = errors.New("render: template execution failed")
)

// Context is the transient mapping of named values for one render
// call. String values are auto-escaped; pass template.HTML,
// template.CSS or template.JS to mark a value pre-rendered-safe.
type Context map[string]any

// defaultContext returns the documented context-key vocabulary with
// typed empty values, so templates referencing keys the caller left
// out render empty sections instead of failing.
func defaultContext() Context {
	return Context{
		"meta_title":        "",
		"description":       "",
		"keywords":          "",
		"canonical":         "",
		"og_image":          "",
		"og_image_alt":      "",
		"document_type":     "",
		"doc_type_css":      template.HTML(""),
		"additional_meta":   template.HTML(""),
		"breadcrumb_html":   template.HTML(""),
		"doc_meta":          template.HTML(""),
		"content":           template.HTML(""),
		"internal_nav":      template.HTML(""),
		"related_content":   template.HTML(""),
		"base_styles":       template.CSS(""),
		"doc_styles":        template.CSS(""),
		"nav_styles":        template.CSS(""),
		"additional_styles": template.CSS(""),
		"structured_data":   template.JS("{}"),
	}
}

// Renderer holds the compiled template set and the site
// configuration. Construction is the only stateful transition; after
// that every render is a pure function of the context and the
// Renderer may be shared across goroutines.
type Renderer struct {
	logger      *slog.Logger
	config      *seo.Config
	templates   *template.Template
	templateDir string
}

// NewRenderer parses all *.tmpl.html and *.part.html files under
// templateDir and verifies the base page and meta-tags fragment are
// present. Malformed template source fails with an error wrapping
// ErrTemplateLoad.
func NewRenderer(logger *slog.Logger, config *seo.Config, templateDir string) (*Renderer, error) {
	r := &Renderer{
		logger:      logger,
		config:      config,
		templateDir: templateDir,
	}

	set, err := template.New("").Funcs(r.funcMap()).ParseGlob(filepath.Join(templateDir, "*.tmpl.html"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}
	set, err = set.ParseGlob(filepath.Join(templateDir, "*.part.html"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}

	for _, name := range []string{BaseTemplate, MetaTagsTemplate} {
		if set.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: required template %q not found in %s", ErrTemplateLoad, name, templateDir)
		}
	}

	r.templates = set
	logger.Info("Loaded templates", "dir", templateDir, "count", len(set.Templates())-1)
	return r, nil
}

func (r *Renderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"truncateText": TruncateText,
		"renderTitle":  renderTitle,
	}
}

// RenderBase fills the base page template, which composes the
// meta-tags fragment, and returns the finished HTML document.
func (r *Renderer) RenderBase(ctx Context) (string, error) {
	return r.render(BaseTemplate, ctx)
}

// RenderMetaTags fills only the meta-tags fragment.
func (r *Renderer) RenderMetaTags(ctx Context) (string, error) {
	return r.render(MetaTagsTemplate, ctx)
}

func (r *Renderer) render(name string, ctx Context) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, r.fullContext(ctx)); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, name, err)
	}
	return buf.String(), nil
}

// fullContext layers the caller's values over the documented
// defaults and injects the config-derived keys. The caller's map is
// not modified.
func (r *Renderer) fullContext(ctx Context) Context {
	merged := defaultContext()
	for k, v := range ctx {
		if k == "structured_data" {
			merged[k] = structuredData(v)
			continue
		}
		merged[k] = v
	}

	merged["site_url"] = r.config.SiteURL
	merged["site_name"] = r.config.SiteName
	merged["public_path"] = r.config.PublicPath
	merged["twitter_handle"] = r.config.TwitterHandle
	merged["current_year"] = time.Now().UTC().Year()
	return merged
}

// structuredData normalizes the ld+json payload. Pre-marshaled
// template.JS passes through; anything else is JSON-marshaled, which
// escapes <, > and & and therefore cannot break out of the script
// element. A value that fails to marshal degrades to an empty object.
func structuredData(v any) template.JS {
	if js, ok := v.(template.JS); ok {
		return js
	}
	data, err := json.Marshal(v)
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(data)
}
