package xrdevice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xrcaps/pkg/useragent"
	"github.com/dmitrymomot/xrcaps/pkg/xrdevice"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	c := xrdevice.Default()

	tests := []struct {
		name      string
		signature string
		expected  string
	}{
		{"Rokid Station 2", "Mozilla/5.0 (Linux; Android 12; Rokid Station 2 Build/SQ3A) Chrome/110.0 Safari/537.36", "rokid-station-2"},
		{"Quest 2", "Mozilla/5.0 (Linux; Android 12; Quest 2) OculusBrowser/28.0 Chrome/114.0 VR Safari/537.36", "meta-quest-2"},
		{"Quest 3", "Mozilla/5.0 (X11; Linux x86_64; Quest 3) OculusBrowser/31.0 Chrome/118.0 VR Safari/537.36", "meta-quest-3"},
		{"Quest 3S is not Quest 3", "Mozilla/5.0 (X11; Linux x86_64; Quest 3S) OculusBrowser/35.0 Chrome/126.0 VR Safari/537.36", "meta-quest-3s"},
		{"Quest Pro", "Mozilla/5.0 (X11; Linux x86_64; Quest Pro) OculusBrowser/31.0 Chrome/118.0 VR Safari/537.36", "meta-quest-pro"},
		{"longest pattern wins", "Mozilla/5.0 (Linux; Android 12; PICO 4 Ultra) Chrome/120.0 VR Safari/537.36", "pico-4-ultra"},
		{"shorter sibling", "Mozilla/5.0 (Linux; Android 10; Pico 4) Chrome/105.0 VR Safari/537.36", "pico-4"},
		{"case insensitive", "mozilla/5.0 (x11; linux x86_64; quest 3)", "meta-quest-3"},
		{"pattern at end of string", "Some Browser on Quest 2", "meta-quest-2"},
		{"no token boundary", "Mozilla/5.0 (Quest 20)", xrdevice.KeyUnknown},
		{"iPhone is not a catalog device", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Safari/604.1", xrdevice.KeyUnknown},
		{"empty", "", xrdevice.KeyUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, c.Match(tc.signature))
		})
	}
}

func TestMatch_OrderIndependent(t *testing.T) {
	t.Parallel()

	unknown := xrdevice.Profile{Key: xrdevice.KeyUnknown, Category: xrdevice.CategoryUnknown}
	short := xrdevice.Profile{Key: "short", Category: xrdevice.CategoryVRHeadset, Patterns: []string{"Visor X"}}
	long := xrdevice.Profile{Key: "long", Category: xrdevice.CategoryVRHeadset, Patterns: []string{"Visor X Max"}}

	shortFirst, err := xrdevice.New("1", short, long, unknown)
	require.NoError(t, err)
	longFirst, err := xrdevice.New("1", long, short, unknown)
	require.NoError(t, err)

	for _, c := range []*xrdevice.Catalog{shortFirst, longFirst} {
		assert.Equal(t, "long", c.Match("browser (Visor X Max)"))
		assert.Equal(t, "short", c.Match("browser (Visor X)"))
	}
}

func TestMatch_TotalOverCatalogKeys(t *testing.T) {
	t.Parallel()

	c := xrdevice.Default()
	inputs := []string{"", " ", "Quest", "Quest 3", "☃ Rokid Max ☃", "\x00", "HoloLens", "visionOS 2.0"}
	for _, in := range inputs {
		key := c.Match(in)
		_, ok := c.Profile(key)
		assert.True(t, ok, "key %q for input %q must exist in catalog", key, in)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	c := xrdevice.Default()

	ua := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Version/17.0 Mobile/15E148 Safari/604.1"
	key, category := c.Resolve(ua, useragent.DetectPlatform(ua, true))
	assert.Equal(t, xrdevice.KeyUnknown, key)
	assert.Equal(t, xrdevice.CategoryMobile, category)

	ua = "Mozilla/5.0 (Linux; Android 12; Quest 2) OculusBrowser/28.0 Chrome/114.0 VR Safari/537.36"
	key, category = c.Resolve(ua, useragent.DetectPlatform(ua, false))
	assert.Equal(t, "meta-quest-2", key)
	assert.Equal(t, xrdevice.CategoryVRHeadset, category)

	key, category = c.Resolve("", useragent.DetectPlatform("", false))
	assert.Equal(t, xrdevice.KeyUnknown, key)
	assert.Equal(t, xrdevice.CategoryDesktop, category)
}
