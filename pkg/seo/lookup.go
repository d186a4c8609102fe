package seo

import (
	"strings"

	"github.com/gcctaxlaws/seogen/pkg/memo"
)

// FallbackFlag is returned for country codes absent from the flag
// table, including the empty string.
const FallbackFlag = "\U0001F3F3\uFE0F" // white flag emoji

// FallbackAuthority is returned for law slugs that match no known
// country prefix.
const FallbackAuthority = "GCC Secretariat General"

// GenericAuthority is returned for an empty law slug.
const GenericAuthority = "Tax Authority"

const (
	flagCacheSize      = 128
	authorityCacheSize = 256
)

var countryFlags = map[string]string{
	"AE": "🇦🇪", "DZ": "🇩🇿", "AL": "🇦🇱", "US": "🇺🇸", "GB": "🇬🇧",
	"FR": "🇫🇷", "DE": "🇩🇪", "IN": "🇮🇳", "CN": "🇨🇳", "JP": "🇯🇵",
	"CA": "🇨🇦", "AU": "🇦🇺", "BR": "🇧🇷", "IT": "🇮🇹", "ES": "🇪🇸",
	"RU": "🇷🇺", "SA": "🇸🇦", "QA": "🇶🇦", "KW": "🇰🇼", "BH": "🇧🇭",
	"OM": "🇴🇲", "EG": "🇪🇬", "JO": "🇯🇴", "LB": "🇱🇧", "MA": "🇲🇦",
	"TN": "🇹🇳", "LY": "🇱🇾", "SY": "🇸🇾", "IQ": "🇮🇶", "YE": "🇾🇪",
	"SD": "🇸🇩", "SO": "🇸🇴", "DJ": "🇩🇯", "KM": "🇰🇲", "MR": "🇲🇷",
}

// authorityPrefixes maps a law-slug country prefix to the display
// name of the responsible tax authority. Order matters only for
// documentation; prefixes are disjoint.
var authorityPrefixes = []struct {
	prefix string
	name   string
}{
	{"uae-", "Federal Tax Authority"},
	{"ksa-", "Zakat, Tax and Customs Authority"},
	{"oman-", "Oman Tax Authority"},
	{"kwt-", "Ministry of Finance - Kuwait"},
	{"kuwait-", "Ministry of Finance - Kuwait"},
	{"qatar-", "General Tax Authority - Qatar"},
	{"bahrain-", "National Bureau for Revenue - Bahrain"},
}

// flagForCountry is the pure lookup behind Lookups.CountryFlag. The
// code must already be uppercased.
func flagForCountry(code string) string {
	if flag, ok := countryFlags[code]; ok {
		return flag
	}
	return FallbackFlag
}

// authorityForSlug is the pure lookup behind Lookups.AuthorityName.
// The slug must already be lowercased.
func authorityForSlug(slug string) string {
	if slug == "" {
		return GenericAuthority
	}
	for _, a := range authorityPrefixes {
		if strings.HasPrefix(slug, a.prefix) {
			return a.name
		}
	}
	return FallbackAuthority
}

// Lookups bundles the memoized display-string lookups. Construct one
// per process (or per test) and share it by reference; all methods
// are concurrent-safe and never fail, unknown keys yield the
// documented fallbacks.
type Lookups struct {
	flags       *memo.Cache
	authorities *memo.Cache
}

// NewLookups returns a Lookups with fresh caches.
func NewLookups() *Lookups {
	return &Lookups{
		flags:       memo.New(flagCacheSize, flagForCountry),
		authorities: memo.New(authorityCacheSize, authorityForSlug),
	}
}

// CountryFlag returns the flag emoji for a two-letter country code,
// case-insensitively, or FallbackFlag when the code is unknown.
func (l *Lookups) CountryFlag(code string) string {
	return l.flags.Get(strings.ToUpper(code))
}

// AuthorityName returns the tax authority display name for a law
// slug, case-insensitively. An empty slug yields GenericAuthority; a
// slug with no recognized country prefix yields FallbackAuthority.
func (l *Lookups) AuthorityName(lawSlug string) string {
	return l.authorities.Get(strings.ToLower(lawSlug))
}
