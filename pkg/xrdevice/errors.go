package xrdevice

import "errors"

var (
	ErrReadCatalog      = errors.New("xrdevice: failed to read catalog file")
	ErrParseCatalog     = errors.New("xrdevice: failed to parse catalog")
	ErrMissingUnknown   = errors.New("xrdevice: catalog has no unknown profile")
	ErrEmptyKey         = errors.New("xrdevice: profile key cannot be empty")
	ErrDuplicateKey     = errors.New("xrdevice: duplicate profile key")
	ErrInvalidCategory  = errors.New("xrdevice: invalid device category")
	ErrInvalidMode      = errors.New("xrdevice: invalid recommended mode")
	ErrEmptyPattern     = errors.New("xrdevice: signature pattern cannot be empty")
	ErrAmbiguousPattern = errors.New("xrdevice: signature pattern maps to more than one profile")
)
