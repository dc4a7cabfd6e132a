package useragent

import (
	"regexp"
	"strings"
)

// Browser represents browser information
type Browser struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// BrowserPattern defines a pattern for detecting a browser
type BrowserPattern struct {
	Name      string
	Keywords  []string
	Regex     *regexp.Regexp
	OrderHint int
}

// Extract version from a user agent string using a regex
func extractVersion(ua string, regex *regexp.Regexp) string {
	if regex == nil {
		return ""
	}
	matches := regex.FindStringSubmatch(ua)
	if len(matches) > 1 {
		version := matches[1]
		// Limit version length to avoid excessively long versions
		if len(version) > 20 {
			version = version[:20]
		}
		return version
	}
	return ""
}

// matchPattern reports whether any of the pattern keywords is present.
func matchPattern(lowerUA string, pattern BrowserPattern) bool {
	for _, keyword := range pattern.Keywords {
		if strings.Contains(lowerUA, keyword) {
			return true
		}
	}
	return false
}

// Browser detection patterns in order of checking priority.
// Edge, Samsung, Opera and the Quest browser all embed "Chrome", and Chrome
// embeds "Safari", so the more specific entries must come first.
var browserPatterns = []BrowserPattern{
	{
		Name:      BrowserEdge,
		Keywords:  []string{"edg/", "edge/", "edga/", "edgios/"},
		Regex:     regexp.MustCompile(`(?i)(?:edge|edga|edgios|edg)/([\d.]+)`),
		OrderHint: 10,
	},
	{
		// Quest browser also carries a SamsungBrowser token
		Name:      BrowserOculus,
		Keywords:  []string{"oculusbrowser"},
		Regex:     regexp.MustCompile(`(?i)oculusbrowser/([\d.]+)`),
		OrderHint: 15,
	},
	{
		Name:      BrowserSamsung,
		Keywords:  []string{"samsungbrowser"},
		Regex:     regexp.MustCompile(`(?i)samsungbrowser/([\d.]+)`),
		OrderHint: 20,
	},
	{
		Name:      BrowserOpera,
		Keywords:  []string{"opr/", "opera"},
		Regex:     regexp.MustCompile(`(?i)(?:opr|opera)[/ ]([\d.]+)`),
		OrderHint: 30,
	},
	{
		Name:      BrowserChrome,
		Keywords:  []string{"chrome", "crios"},
		Regex:     regexp.MustCompile(`(?i)(?:chrome|crios)/([\d.]+)`),
		OrderHint: 50,
	},
	{
		Name:      BrowserFirefox,
		Keywords:  []string{"firefox", "fxios"},
		Regex:     regexp.MustCompile(`(?i)(?:firefox|fxios)/([\d.]+)`),
		OrderHint: 60,
	},
	{
		Name:      BrowserSafari,
		Keywords:  []string{"safari"},
		Regex:     regexp.MustCompile(`(?i)version/([\d.]+)`),
		OrderHint: 70,
	},
}

// DetectBrowser parses the browser information from a user agent string.
// It never fails: unrecognised input yields BrowserUnknown.
func DetectBrowser(ua string) Browser {
	lowerUA := strings.ToLower(ua)

	for _, pattern := range browserPatterns {
		if matchPattern(lowerUA, pattern) {
			return Browser{
				Name:    pattern.Name,
				Version: extractVersion(ua, pattern.Regex),
			}
		}
	}

	return Browser{Name: BrowserUnknown}
}
