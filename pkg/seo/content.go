package seo

import (
	"fmt"
	"math"
	"strings"
)

// stringField fetches a string value from a decoded JSON object,
// returning "" for absent keys and non-string values.
func stringField(item map[string]any, key string) string {
	if v, ok := item[key].(string); ok {
		return v
	}
	// Numbers arrive as float64 from encoding/json.
	if v, ok := item[key].(float64); ok {
		if v == math.Trunc(v) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// Keywords assembles the SEO keyword list for a document from its
// type and decoded JSON object. An explicit metaKeywords value on the
// item always wins.
func Keywords(documentType string, item map[string]any) string {
	if meta := strings.TrimSpace(stringField(item, "metaKeywords")); meta != "" {
		return meta
	}

	keywords := []string{"UAE tax laws", "tax compliance", "legal document"}

	switch documentType {
	case "articles":
		keywords = append(keywords, "tax legislation", "UAE tax law", "tax article")
		if n := stringField(item, "number"); n != "" {
			keywords = append(keywords, "article "+n)
		}
	case "decisions":
		keywords = append(keywords, "FTA decision", "tax decision", "regulatory decision", "cabinet decision")
		if n := stringField(item, "number"); n != "" {
			keywords = append(keywords, "decision "+n)
		}
		if y := stringField(item, "year"); y != "" {
			keywords = append(keywords, y+" decision")
		}
		if t := stringField(item, "type"); t != "" {
			keywords = append(keywords, strings.ToLower(t))
		}
	case "guidances":
		keywords = append(keywords, "tax guidance", "FTA guide", "compliance guide")
		if c := stringField(item, "uniqueCode"); c != "" {
			keywords = append(keywords, c)
		}
		if t := stringField(item, "type"); t != "" {
			keywords = append(keywords, strings.ToLower(t))
		}
	case "tax-treaties":
		keywords = append(keywords, "tax treaty", "DTAA", "double taxation")
		if c := stringField(item, "country2Name"); c != "" {
			keywords = append(keywords, strings.ToLower(c)+" treaty")
		}
	case "blogs":
		// Blogs carry no generated fallback beyond the metaKeywords
		// handled above.
		return ""
	}

	return strings.Join(keywords, ", ")
}

// StripTags removes HTML tags from content, leaving the text.
func StripTags(content string) string {
	return htmlTagRe.ReplaceAllString(content, "")
}

// ReadingTime estimates reading time in minutes for HTML content at
// an average pace of 225 words per minute, never below one minute.
func ReadingTime(content string) int {
	if content == "" {
		return 1
	}
	words := len(strings.Fields(StripTags(content)))
	minutes := int(math.Round(float64(words) / 225.0))
	if minutes < 1 {
		return 1
	}
	return minutes
}
