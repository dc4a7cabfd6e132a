package xrdevice

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogData []byte

// Catalog is an immutable set of device profiles and their signature patterns.
// It is safe for concurrent use; there is no way to modify it after loading.
type Catalog struct {
	version  string
	order    []string
	profiles map[string]Profile
	patterns []signaturePattern
}

type catalogFile struct {
	Version string    `yaml:"version"`
	Devices []Profile `yaml:"devices"`
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(defaultCatalogData)
	if err != nil {
		panic(fmt.Sprintf("xrdevice: embedded catalog is invalid: %v", err))
	}
	return c
})

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	return defaultCatalog()
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadCatalog, err)
	}
	return Parse(data)
}

// LoadOrDefault loads the catalog at path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes YAML catalog data and validates it.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(ErrParseCatalog, err)
	}
	return New(file.Version, file.Devices...)
}

// New builds a catalog from profiles, in the given order.
//
// Validation rejects empty or duplicate keys, unknown categories and modes,
// empty patterns, and any pattern (compared case-insensitively) listed more
// than once, since such a pattern could resolve to more than one profile.
// The catalog must contain a profile keyed KeyUnknown.
func New(version string, profiles ...Profile) (*Catalog, error) {
	c := &Catalog{
		version:  version,
		order:    make([]string, 0, len(profiles)),
		profiles: make(map[string]Profile, len(profiles)),
	}

	owners := make(map[string]string)
	for _, p := range profiles {
		if p.Key == "" {
			return nil, ErrEmptyKey
		}
		if _, exists := c.profiles[p.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, p.Key)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("%w: %q for %s", ErrInvalidCategory, p.Category, p.Key)
		}
		if !p.RecommendedMode.Valid() {
			return nil, fmt.Errorf("%w: %q for %s", ErrInvalidMode, p.RecommendedMode, p.Key)
		}

		for _, raw := range p.Patterns {
			lower := strings.ToLower(strings.TrimSpace(raw))
			if lower == "" {
				return nil, fmt.Errorf("%w: %s", ErrEmptyPattern, p.Key)
			}
			if owner, taken := owners[lower]; taken {
				return nil, fmt.Errorf("%w: %q (%s, %s)", ErrAmbiguousPattern, raw, owner, p.Key)
			}
			owners[lower] = p.Key
			c.patterns = append(c.patterns, signaturePattern{key: p.Key, lower: lower})
		}

		c.order = append(c.order, p.Key)
		c.profiles[p.Key] = p.clone()
	}

	if _, ok := c.profiles[KeyUnknown]; !ok {
		return nil, ErrMissingUnknown
	}

	return c, nil
}

// Version returns the catalog data version.
func (c *Catalog) Version() string { return c.version }

// Len returns the number of profiles, including the unknown profile.
func (c *Catalog) Len() int { return len(c.order) }

// Keys returns profile keys in catalog order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.order...)
}

// Profiles returns copies of all profiles in catalog order.
func (c *Catalog) Profiles() []Profile {
	out := make([]Profile, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.profiles[key].clone())
	}
	return out
}

// Profile returns a copy of the profile for key.
func (c *Catalog) Profile(key string) (Profile, bool) {
	p, ok := c.profiles[key]
	if !ok {
		return Profile{}, false
	}
	return p.clone(), true
}

// Lookup returns the profile for key, or the unknown profile.
func (c *Catalog) Lookup(key string) Profile {
	if p, ok := c.Profile(key); ok {
		return p
	}
	return c.profiles[KeyUnknown].clone()
}
