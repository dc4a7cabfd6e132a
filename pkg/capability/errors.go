package capability

import "errors"

// Host adapters return these to signal a missing or refused primitive.
// The detector never propagates them to its callers.
var (
	ErrUnsupported      = errors.New("capability: runtime primitive not supported")
	ErrPermissionDenied = errors.New("capability: camera permission denied")
)
