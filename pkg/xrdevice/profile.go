package xrdevice

import (
	"encoding/json"
	"slices"
)

// KeyUnknown is the profile key every unmatched signature resolves to.
const KeyUnknown = "unknown"

// Category is the device class of a profile.
type Category string

const (
	CategoryARGlasses Category = "ar-glasses"
	CategoryVRHeadset Category = "vr-headset"
	CategoryMobile    Category = "mobile"
	CategoryTablet    Category = "tablet"
	CategoryDesktop   Category = "desktop"
	CategoryUnknown   Category = "unknown"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryARGlasses, CategoryVRHeadset, CategoryMobile, CategoryTablet, CategoryDesktop, CategoryUnknown:
		return true
	}
	return false
}

// Handheld reports whether the category is a phone or tablet.
func (c Category) Handheld() bool {
	return c == CategoryMobile || c == CategoryTablet
}

// Mode is a preview mode recommendation. The zero value means no recommendation.
type Mode string

const (
	ModeNone Mode = ""
	ModeAR   Mode = "ar"
	ModeVR   Mode = "vr"
)

// Valid reports whether m is ModeNone, ModeAR or ModeVR.
func (m Mode) Valid() bool {
	return m == ModeNone || m == ModeAR || m == ModeVR
}

// MarshalJSON encodes ModeNone as null.
func (m Mode) MarshalJSON() ([]byte, error) {
	if m == ModeNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

// UnmarshalJSON accepts null, "ar" and "vr".
func (m *Mode) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = ModeNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mode := Mode(s)
	if !mode.Valid() {
		return ErrInvalidMode
	}
	*m = mode
	return nil
}

// Profile is a catalog entry describing the fixed capability set of a known device.
type Profile struct {
	Key              string   `yaml:"key" json:"key"`
	Name             string   `yaml:"name" json:"name"`
	Category         Category `yaml:"category" json:"category"`
	HasPassthrough   bool     `yaml:"passthrough" json:"hasPassthrough"`
	HasHandTracking  bool     `yaml:"hand_tracking" json:"hasHandTracking"`
	HasCamera        bool     `yaml:"camera" json:"hasCamera"`
	SupportsRoomScan bool     `yaml:"room_scan" json:"supportsRoomScan"`
	RecommendedMode  Mode     `yaml:"mode" json:"recommendedMode"`
	Patterns         []string `yaml:"patterns" json:"patterns,omitempty"`
}

// IsUnknown reports whether p is the fallback profile.
func (p Profile) IsUnknown() bool { return p.Key == KeyUnknown }

func (p Profile) clone() Profile {
	p.Patterns = slices.Clone(p.Patterns)
	return p
}
