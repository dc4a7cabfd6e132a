// Package useragent derives platform information for capability detection
// from a User-Agent string.
//
// It identifies:
//   - Operating system – iOS/iPadOS, Android, Windows, macOS, ChromeOS, Linux
//   - Browser name and version – Edge, Samsung Internet, Opera, Meta Quest
//     Browser, Chrome, Firefox, Safari
//   - Form factor – mobile and tablet flags, plus the host-supplied touch flag
//
// Every detector is total: any input, including the empty string, yields a
// defined value, falling back to OSUnknown and BrowserUnknown.
//
// # Ordering
//
// Rules are evaluated in a fixed priority order and the first match wins.
// iPad user agents contain "Mac OS", so iOS is tested before macOS; Edge,
// Samsung Internet, Opera and the Quest browser all embed "Chrome", which in
// turn embeds "Safari", so they are tested first. iPadOS Safari in
// desktop-class mode sends a plain Macintosh user agent; DetectPlatform
// reclassifies it as an iOS tablet when the host reports touch support.
//
// # Usage
//
//	p := useragent.DetectPlatform(r.UserAgent(), false)
//	if p.Handheld() {
//	    // offer handheld AR preview
//	}
//
//	log.Printf("client=%s on %s", useragent.DisplayBrowser(p.Browser), useragent.DisplayOS(p.OS))
package useragent
