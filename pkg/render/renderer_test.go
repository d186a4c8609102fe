package render

import (
	"errors"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gcctaxlaws/seogen/pkg/seo"
)

const testBaseTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<title>{{.meta_title}}</title>
<meta name="description" content="{{.description}}" />
<link rel="canonical" href="{{.canonical}}" />
<link rel="sitemap" type="application/xml" href="{{.site_url}}/sitemap.xml" />
{{template "meta_tags.part.html" .}}
<script type="application/ld+json">{{.structured_data}}</script>
</head>
<body>
<p><strong>{{.site_name}}</strong></p>
{{.breadcrumb_html}}
<div class="{{if eq .document_type "blogs"}}blog-content{{else}}static-content{{end}}">{{.content}}</div>
<p>&copy; {{.current_year}} {{.site_name}}</p>
</body>
</html>
`

const testMetaTemplate = `<meta property="og:title" content="{{.meta_title}}" />
<meta name="twitter:site" content="{{.twitter_handle}}" />
`

// setupTestRenderer writes a template set into a temp dir and
// returns a Renderer over it with the default config.
func setupTestRenderer(tb testing.TB) *Renderer {
	tb.Helper()

	dir := tb.TempDir()
	writeTemplate(tb, dir, BaseTemplate, testBaseTemplate)
	writeTemplate(tb, dir, MetaTagsTemplate, testMetaTemplate)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	config := seo.DefaultConfig()
	r, err := NewRenderer(logger, config, dir)
	if err != nil {
		tb.Fatalf("NewRenderer failed: %v", err)
	}
	return r
}

func writeTemplate(tb testing.TB, dir, name, content string) {
	tb.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		tb.Fatalf("failed to write template %s: %v", name, err)
	}
}

func TestNewRendererMissingBaseTemplate(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, MetaTagsTemplate, testMetaTemplate)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := NewRenderer(logger, seo.DefaultConfig(), dir)
	if !errors.Is(err, ErrTemplateLoad) {
		t.Fatalf("error = %v, want ErrTemplateLoad", err)
	}
}

func TestNewRendererMalformedTemplate(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, BaseTemplate, `{{define "broken"}`)
	writeTemplate(t, dir, MetaTagsTemplate, testMetaTemplate)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := NewRenderer(logger, seo.DefaultConfig(), dir)
	if !errors.Is(err, ErrTemplateLoad) {
		t.Fatalf("error = %v, want ErrTemplateLoad", err)
	}
}

func TestRenderBaseEscapesByDefault(t *testing.T) {
	r := setupTestRenderer(t)

	html, err := r.RenderBase(Context{
		"meta_title":  "<script>x</script>",
		"description": "d",
	})
	if err != nil {
		t.Fatalf("RenderBase failed: %v", err)
	}
	if strings.Contains(html, "<script>x</script>") {
		t.Error("raw script tag leaked into the document")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("expected the title to appear HTML-escaped")
	}
}

func TestRenderBaseEmptyContext(t *testing.T) {
	r := setupTestRenderer(t)

	html, err := r.RenderBase(Context{})
	if err != nil {
		t.Fatalf("RenderBase with empty context failed: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "</html>", "GCC Tax Laws", `<title></title>`} {
		if !strings.Contains(html, want) {
			t.Errorf("document shell missing %q", want)
		}
	}
}

func TestRenderBaseSafeHTMLPassthrough(t *testing.T) {
	r := setupTestRenderer(t)

	t.Run("explicit template.HTML is raw", func(t *testing.T) {
		html, err := r.RenderBase(Context{"content": template.HTML("<h1>Article 1</h1>")})
		if err != nil {
			t.Fatalf("RenderBase failed: %v", err)
		}
		if !strings.Contains(html, "<h1>Article 1</h1>") {
			t.Error("explicitly safe fragment was escaped")
		}
	})

	t.Run("plain string stays escaped", func(t *testing.T) {
		html, err := r.RenderBase(Context{"content": "<h1>Article 1</h1>"})
		if err != nil {
			t.Fatalf("RenderBase failed: %v", err)
		}
		if strings.Contains(html, "<h1>Article 1</h1>") {
			t.Error("unsafe string fragment passed through unescaped")
		}
	})
}

func TestRenderBaseInjectsConfig(t *testing.T) {
	r := setupTestRenderer(t)

	html, err := r.RenderBase(Context{})
	if err != nil {
		t.Fatalf("RenderBase failed: %v", err)
	}
	if !strings.Contains(html, "https://gcctaxlaws.com/sitemap.xml") {
		t.Error("site_url was not injected")
	}
	if !strings.Contains(html, "@gcctaxlaws") {
		t.Error("twitter_handle was not injected into the meta fragment")
	}
}

func TestRenderBaseStructuredData(t *testing.T) {
	r := setupTestRenderer(t)

	html, err := r.RenderBase(Context{
		"structured_data": map[string]any{"@type": "Legislation"},
	})
	if err != nil {
		t.Fatalf("RenderBase failed: %v", err)
	}
	if !strings.Contains(html, `{"@type":"Legislation"}`) {
		t.Error("structured data was not marshaled into the ld+json block")
	}
}

func TestRenderBaseDocumentTypeSwitch(t *testing.T) {
	r := setupTestRenderer(t)

	html, err := r.RenderBase(Context{"document_type": "blogs"})
	if err != nil {
		t.Fatalf("RenderBase failed: %v", err)
	}
	if !strings.Contains(html, `class="blog-content"`) {
		t.Error("blog document type did not select the blog content class")
	}
}

func TestRenderMetaTagsAlone(t *testing.T) {
	r := setupTestRenderer(t)

	html, err := r.RenderMetaTags(Context{"meta_title": "Article 1"})
	if err != nil {
		t.Fatalf("RenderMetaTags failed: %v", err)
	}
	if !strings.Contains(html, `content="Article 1"`) {
		t.Errorf("fragment missing title: %s", html)
	}
	if strings.Contains(html, "<!DOCTYPE html>") {
		t.Error("fragment rendered the full page shell")
	}
}

func TestRenderBaseDoesNotMutateCallerContext(t *testing.T) {
	r := setupTestRenderer(t)

	ctx := Context{"meta_title": "t"}
	if _, err := r.RenderBase(ctx); err != nil {
		t.Fatalf("RenderBase failed: %v", err)
	}
	if len(ctx) != 1 {
		t.Errorf("caller context grew to %d keys", len(ctx))
	}
}
