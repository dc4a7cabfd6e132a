package useragent

// Operating system identifiers
const (
	// OSiOS identifies Apple iOS and iPadOS
	OSiOS = "ios"

	// OSAndroid identifies Google Android, including Android-based headsets
	OSAndroid = "android"

	// OSWindows identifies Microsoft Windows
	OSWindows = "windows"

	// OSMacOS identifies Apple macOS
	OSMacOS = "macos"

	// OSChromeOS identifies Google ChromeOS
	OSChromeOS = "chromeos"

	// OSLinux identifies Linux-based desktop and headset systems
	OSLinux = "linux"

	// OSUnknown is used when the operating system cannot be determined
	OSUnknown = "unknown"
)

// Browser name identifiers
const (
	// BrowserEdge identifies Microsoft Edge
	BrowserEdge = "edge"

	// BrowserSamsung identifies Samsung Internet
	BrowserSamsung = "samsung"

	// BrowserOpera identifies Opera
	BrowserOpera = "opera"

	// BrowserOculus identifies the Meta Quest browser
	BrowserOculus = "oculus"

	// BrowserChrome identifies Google Chrome
	BrowserChrome = "chrome"

	// BrowserFirefox identifies Mozilla Firefox
	BrowserFirefox = "firefox"

	// BrowserSafari identifies Apple Safari
	BrowserSafari = "safari"

	// BrowserUnknown is used when the browser cannot be determined
	BrowserUnknown = "unknown"
)
