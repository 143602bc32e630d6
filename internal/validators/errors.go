package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// FieldErrors maps a payload field name to a human-readable problem.
type FieldErrors map[string]string

// Error joins the messages in field order so the output is stable.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, field+": "+e[field])
	}

	return strings.Join(msgs, "; ")
}
