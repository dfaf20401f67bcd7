package stor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a lookup resolves to nothing the viewer may
// see. Callers translate it into their own not-found response; it is never
// softened into an empty result.
var ErrNotFound = errors.New("not found")

// ValidationError rejects a write at the store boundary. Field maps a
// field name to its message; form-level messages use the empty key. A save
// that fails validation performs no partial writes.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) != 0
}

func (e *ValidationError) Error() string {
	var msgs []string
	for field, msg := range e.Fields {
		if field == "" {
			msgs = append(msgs, msg)
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	sort.Strings(msgs)
	return "validation failed: " + strings.Join(msgs, "; ")
}

// IsValidationError returns the *ValidationError in err's chain, if any.
func IsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
