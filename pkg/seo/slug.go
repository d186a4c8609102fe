package seo

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	nonSlugRe     = regexp.MustCompile(`[^\w\s-]`)
	separatorRe   = regexp.MustCompile(`[\s_-]+`)
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	multiHyphenRe = regexp.MustCompile(`-+`)
	nonWordRe     = regexp.MustCompile(`[^\w-]`)
)

// Slugify converts arbitrary text into a URL-friendly slug. Empty
// input yields "unknown".
func Slugify(text string) string {
	if text == "" {
		return "unknown"
	}
	slug := nonSlugRe.ReplaceAllString(strings.ToLower(text), "")
	slug = separatorRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// ArticleSlug builds the canonical slug for a tax-law article, e.g.
// "uae-cit-fdl-47-of-2022-article-1".
func ArticleSlug(lawShortName, articleNumber, countryName string) string {
	prefix := ""
	if countryName != "" {
		prefix = Slugify(countryName)
	}
	return fmt.Sprintf("%s-%s-article-%s", prefix, lawShortName, articleNumber)
}

// DecisionSlug builds the canonical slug for a regulatory decision,
// e.g. "uae-cit-fdl-47-of-2022-cd-35-of-2025". The decision type is
// abbreviated to its first hyphen-separated token (CD, MD, FTA, ...),
// defaulting to "cd".
func DecisionSlug(lawShortName, number, year, decisionType, countryName string) string {
	prefix := ""
	if countryName != "" {
		prefix = Slugify(countryName)
	}

	abbrev := "cd"
	if decisionType != "" {
		abbrev = strings.ToLower(strings.TrimSpace(strings.SplitN(decisionType, "-", 2)[0]))
	}

	clean := nonWordRe.ReplaceAllString(number, "-")
	clean = strings.Trim(multiHyphenRe.ReplaceAllString(clean, "-"), "-")

	if year != "" {
		return fmt.Sprintf("%s-%s-%s-%s-of-%s", prefix, lawShortName, abbrev, clean, year)
	}
	return fmt.Sprintf("%s-%s-%s-%s", prefix, lawShortName, abbrev, clean)
}

// GuidanceSlug builds the slug for a guidance document, e.g.
// "uae-cit-fdl-47-of-2022-guide-CTGFF1". The guidance type is
// abbreviated like DecisionSlug, defaulting to "guide".
func GuidanceSlug(lawSlug, guidanceType, uniqueCode string) string {
	abbrev := "guide"
	if guidanceType != "" {
		abbrev = strings.ToLower(strings.TrimSpace(strings.SplitN(guidanceType, "-", 2)[0]))
	}
	return fmt.Sprintf("%s-%s-%s", lawSlug, abbrev, uniqueCode)
}

// TreatySlug builds the slug for a double-taxation treaty between
// the primary country and a counterparty alpha-3 code, e.g.
// "uae-alb-dtaa".
func TreatySlug(country1Slug, country2Alpha3 string) string {
	c1 := "uae"
	if country1Slug != "" {
		c1 = strings.ToLower(country1Slug)
	}
	c2 := "unknown"
	if country2Alpha3 != "" {
		c2 = strings.ToLower(country2Alpha3)
	}
	return fmt.Sprintf("%s-%s-dtaa", c1, c2)
}

var blogEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// BlogSlug builds a slug from a blog title, stripping HTML tags and
// decoding the common entities first. An empty title falls back to a
// timestamped slug so the page still gets a stable-enough name.
func BlogSlug(title string) string {
	if title == "" {
		return fmt.Sprintf("blog-%d", time.Now().Unix())
	}
	clean := htmlTagRe.ReplaceAllString(title, "")
	clean = blogEntities.Replace(clean)
	clean = strings.ToLower(clean)
	clean = nonAlnumRe.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(whitespaceRe.ReplaceAllString(clean, "-"))
	clean = multiHyphenRe.ReplaceAllString(clean, "-")
	return strings.Trim(clean, "-")
}
