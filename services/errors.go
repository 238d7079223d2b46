package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound marks a missing user, item, order or cart line. Wrap it
	// with NotFoundf so the message names the missing record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when an order's status disallows
	// the requested move.
	ErrInvalidTransition = errors.New("order status does not allow this transition")
)

// NotFoundf wraps ErrNotFound with a subject, e.g. "Item with id 3".
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%s %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// ValidationError carries a field -> message map describing every malformed
// input field. Operations failing validation mutate no state.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}
