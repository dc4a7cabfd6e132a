package useragent

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Platform is the platform part of a capability report.
type Platform struct {
	OS             string `json:"os"`
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browserVersion,omitempty"`
	IsMobile       bool   `json:"isMobile"`
	IsTablet       bool   `json:"isTablet"`
	IsTouchDevice  bool   `json:"isTouchDevice"`
}

// Handheld reports whether the platform is a phone or a tablet.
func (p Platform) Handheld() bool { return p.IsMobile || p.IsTablet }

// DetectPlatform derives platform information from a user agent string and the
// host's touch flag. It is a pure function and never fails; an empty user
// agent yields unknown OS and browser with all flags false except touch.
func DetectPlatform(ua string, touch bool) Platform {
	browser := DetectBrowser(ua)
	p := Platform{
		OS:             DetectOS(ua),
		Browser:        browser.Name,
		BrowserVersion: browser.Version,
		IsMobile:       IsMobile(ua),
		IsTablet:       IsTablet(ua),
		IsTouchDevice:  touch,
	}

	if isDesktopClassIPad(ua, touch) {
		p.OS = OSiOS
		p.IsTablet = true
	}

	return p
}

// DisplayOS formats an OS identifier for humans.
func DisplayOS(os string) string {
	switch os {
	case "", OSUnknown:
		return "Unknown OS"
	case OSiOS:
		return "iOS"
	case OSMacOS:
		return "macOS"
	case OSChromeOS:
		return "ChromeOS"
	}
	return title(os)
}

// DisplayBrowser formats a browser identifier for humans.
func DisplayBrowser(name string) string {
	switch name {
	case "", BrowserUnknown:
		return "Unknown"
	case BrowserSamsung:
		return "Samsung Internet"
	case BrowserOculus:
		return "Meta Quest Browser"
	}
	return title(name)
}

// title capitalizes an identifier. Casers are stateful, so one is built per call.
func title(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}
