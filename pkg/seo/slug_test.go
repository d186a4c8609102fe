package seo

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":      "hello-world",
		"UAE VAT Law 2023": "uae-vat-law-2023",
		"Test@#$%String":   "teststring",
		"Multiple   Spaces": "multiple-spaces",
		"":                 "unknown",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestArticleSlug(t *testing.T) {
	got := ArticleSlug("cit-fdl-47-of-2022", "1", "UAE")
	want := "uae-cit-fdl-47-of-2022-article-1"
	if got != want {
		t.Errorf("ArticleSlug = %q, want %q", got, want)
	}
}

func TestDecisionSlug(t *testing.T) {
	got := DecisionSlug("cit-fdl-47-of-2022", "35", "2025", "CD - Cabinet Decision", "UAE")
	want := "uae-cit-fdl-47-of-2022-cd-35-of-2025"
	if got != want {
		t.Errorf("DecisionSlug = %q, want %q", got, want)
	}

	// No year, messy number, default type.
	got = DecisionSlug("vat", "12/ 3", "", "", "UAE")
	want = "uae-vat-cd-12-3"
	if got != want {
		t.Errorf("DecisionSlug without year = %q, want %q", got, want)
	}
}

func TestGuidanceSlug(t *testing.T) {
	got := GuidanceSlug("uae-cit-fdl-47-of-2022", "GUIDE - Federal Tax Authority Guide", "CTGFF1")
	want := "uae-cit-fdl-47-of-2022-guide-CTGFF1"
	if got != want {
		t.Errorf("GuidanceSlug = %q, want %q", got, want)
	}
}

func TestTreatySlug(t *testing.T) {
	if got := TreatySlug("uae", "ALB"); got != "uae-alb-dtaa" {
		t.Errorf("TreatySlug = %q", got)
	}
	if got := TreatySlug("", ""); got != "uae-unknown-dtaa" {
		t.Errorf("TreatySlug with empty inputs = %q", got)
	}
}

func TestBlogSlug(t *testing.T) {
	got := BlogSlug("VAT &amp; Excise: What&#39;s New <b>in 2025</b>?")
	want := "vat-excise-whats-new-in-2025"
	if got != want {
		t.Errorf("BlogSlug = %q, want %q", got, want)
	}

	if got := BlogSlug(""); !strings.HasPrefix(got, "blog-") {
		t.Errorf("BlogSlug(\"\") = %q, want a blog- fallback", got)
	}
}
