package render

import (
	"html/template"
	"strings"
	"unicode"
)

// TruncateText shortens text to at most maxLen runes, backing up to
// the last whitespace boundary so words are never split, and appends
// "..." when anything was cut. Operating on runes keeps multi-byte
// glyphs intact, and a cut is never left inside an unterminated HTML
// entity.
func TruncateText(text string, maxLen int) string {
	if maxLen <= 0 || text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := string(runes[:maxLen])
	if i := strings.LastIndexFunc(cut, unicode.IsSpace); i > 0 {
		cut = cut[:i]
	}
	if amp := strings.LastIndexByte(cut, '&'); amp >= 0 && !strings.ContainsRune(cut[amp:], ';') {
		cut = cut[:amp]
	}
	cut = strings.TrimRightFunc(cut, unicode.IsSpace)
	return cut + "..."
}

// renderTitle returns a title for embedding in page bodies. Titles
// carrying intentional <span> styling markup pass through unescaped;
// everything else is escaped.
func renderTitle(text string) template.HTML {
	if text == "" {
		return ""
	}
	if strings.Contains(text, "<span") || strings.Contains(text, "</span>") {
		return template.HTML(text)
	}
	return template.HTML(template.HTMLEscapeString(text))
}
