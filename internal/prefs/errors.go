package prefs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFilter is returned when a filter label is not in the registry
var ErrUnknownFilter = errors.New("unknown deck filter")

// StorageShapeError reports a stored value whose type does not match the
// expected layout, e.g. a path segment that exists but is not a mapping.
// It signals corrupted data and is never recovered from.
type StorageShapeError struct {
	Path     []string
	Expected string
	Found    string
}

func (e *StorageShapeError) Error() string {
	return fmt.Sprintf("preference %q: expected %s, found %s",
		strings.Join(e.Path, "."), e.Expected, e.Found)
}
