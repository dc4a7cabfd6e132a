// Package xrdevice holds the catalog of known XR devices and resolves a
// client signature to one of them.
//
// A catalog is versioned YAML data: each device has a key, a display name, a
// category, fixed capability flags, a recommended preview mode and a list of
// signature patterns. The default catalog is embedded; a replacement file can
// be loaded with Load. Adding a device never requires code changes.
//
// # Matching
//
// Patterns are compared case-insensitively and only on token boundaries:
// the characters around a match must not be letters or digits. When several
// patterns match, the longest wins, so "Quest 3S" beats "Quest 3" regardless
// of catalog order, and a plain "Quest 3" signature never resolves to the 3S
// profile. Signatures without a match resolve to KeyUnknown.
//
// Catalogs are validated when loaded. A pattern listed twice (under the same
// key or different keys) is rejected with ErrAmbiguousPattern, and every
// catalog must contain the unknown profile.
//
// # Usage
//
//	catalog := xrdevice.Default()
//	key, category := catalog.Resolve(ua, useragent.DetectPlatform(ua, touch))
//	profile := catalog.Lookup(key)
package xrdevice
