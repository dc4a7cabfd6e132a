package useragent

import "strings"

// osRule pairs an OS identifier with the keywords that select it.
type osRule struct {
	Name      string
	Keywords  keywordSet
	OrderHint int
}

// OS detection rules. iOS must win over macOS and Android over Linux,
// because iPad and Android user agents also carry the later keywords.
// ChromeOS matches the "CrOS" platform token only, never inside words such as
// "Microsoft".
var osRules = []osRule{
	{Name: OSiOS, Keywords: newKeywordSet("iphone", "ipad", "ipod"), OrderHint: 10},
	{Name: OSAndroid, Keywords: newKeywordSet("android"), OrderHint: 20},
	{Name: OSWindows, Keywords: newKeywordSet("windows"), OrderHint: 30},
	{Name: OSMacOS, Keywords: newKeywordSet("macintosh", "mac os"), OrderHint: 40},
	{Name: OSChromeOS, Keywords: newKeywordSet("(cros ", "; cros "), OrderHint: 50},
	{Name: OSLinux, Keywords: newKeywordSet("linux", "x11"), OrderHint: 60},
}

// DetectOS identifies the operating system of a user agent string.
// The first matching rule wins; anything else is OSUnknown.
func DetectOS(ua string) string {
	if ua == "" {
		return OSUnknown
	}

	lowerUA := strings.ToLower(ua)
	for _, rule := range osRules {
		if rule.Keywords.contains(lowerUA) {
			return rule.Name
		}
	}

	return OSUnknown
}
