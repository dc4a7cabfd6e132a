package useragent

import "sort"

func init() {
	// Sort rules by OrderHint to ensure correct detection order
	sort.SliceStable(osRules, func(i, j int) bool {
		return osRules[i].OrderHint < osRules[j].OrderHint
	})
	sort.SliceStable(browserPatterns, func(i, j int) bool {
		return browserPatterns[i].OrderHint < browserPatterns[j].OrderHint
	})
}
