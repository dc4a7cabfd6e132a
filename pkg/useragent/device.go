package useragent

import (
	"strings"
)

// keywordSet optimizes keyword lookups using map structure for O(1) access
type keywordSet map[string]struct{}

func newKeywordSet(keywords ...string) keywordSet {
	result := make(keywordSet, len(keywords))
	for _, word := range keywords {
		result[word] = struct{}{}
	}
	return result
}

func (k keywordSet) contains(s string) bool {
	for keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// Form factor keyword sets.
// Standalone headsets run Android builds, so they are excluded from both the
// phone and the Android tablet heuristics.
var (
	mobileKeywords  = newKeywordSet("android", "webos", "iphone", "ipod", "blackberry", "iemobile", "opera mini")
	tabletKeywords  = newKeywordSet("ipad", "tablet", "kindle", "silk")
	headsetKeywords = newKeywordSet("quest", "oculusbrowser", "pico", "vr safari", "wolvic")
)

// IsMobile reports whether the user agent matches a handheld phone pattern.
// Android tablets match as well; callers check IsTablet first.
// Headsets never match.
func IsMobile(ua string) bool {
	lowerUA := strings.ToLower(ua)
	return mobileKeywords.contains(lowerUA) && !headsetKeywords.contains(lowerUA)
}

// IsTablet reports whether the user agent matches a tablet pattern.
func IsTablet(ua string) bool {
	lowerUA := strings.ToLower(ua)

	if tabletKeywords.contains(lowerUA) {
		return true
	}

	// Android tablets omit 'Mobile' keyword, unlike phones
	return strings.Contains(lowerUA, "android") &&
		!strings.Contains(lowerUA, "mobile") &&
		!headsetKeywords.contains(lowerUA)
}

// isDesktopClassIPad detects iPadOS Safari, which sends a macOS user agent.
// The only distinguishing signal is touch support.
func isDesktopClassIPad(ua string, touch bool) bool {
	return touch && strings.Contains(strings.ToLower(ua), "macintosh")
}
