package xrdevice

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/xrcaps/pkg/useragent"
)

// signaturePattern is a compiled catalog pattern.
type signaturePattern struct {
	key   string
	lower string
}

// matchesIn reports whether the pattern occurs in lowerSig on token
// boundaries, so "quest 3" does not match inside "quest 3s".
func (p signaturePattern) matchesIn(lowerSig string) bool {
	for offset := 0; offset <= len(lowerSig)-len(p.lower); {
		idx := strings.Index(lowerSig[offset:], p.lower)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(p.lower)
		if boundaryBefore(lowerSig, start) && boundaryAfter(lowerSig, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Match resolves a known-device key from a signature string.
// Among all patterns that match, the longest one wins; ties go to the entry
// listed first in the catalog. No match yields KeyUnknown.
func (c *Catalog) Match(signature string) string {
	if signature == "" {
		return KeyUnknown
	}

	lowerSig := strings.ToLower(signature)
	var best *signaturePattern
	for i := range c.patterns {
		p := &c.patterns[i]
		if best != nil && len(p.lower) <= len(best.lower) {
			continue
		}
		if p.matchesIn(lowerSig) {
			best = p
		}
	}

	if best == nil {
		return KeyUnknown
	}
	return best.key
}

// Category resolves the device category. A matched profile is authoritative;
// otherwise the platform decides between tablet, mobile and desktop.
func (c *Catalog) Category(key string, platform useragent.Platform) Category {
	if key != KeyUnknown {
		if p, ok := c.profiles[key]; ok {
			return p.Category
		}
	}

	switch {
	case platform.IsTablet:
		return CategoryTablet
	case platform.IsMobile:
		return CategoryMobile
	default:
		return CategoryDesktop
	}
}

// Resolve is Match followed by Category.
func (c *Catalog) Resolve(signature string, platform useragent.Platform) (string, Category) {
	key := c.Match(signature)
	return key, c.Category(key, platform)
}
