package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnsupportedType is returned for values the validator has no rules for.
	ErrUnsupportedType = errors.New("unsupported type for validation")
	// ErrValidation is wrapped by every [ValidationError].
	ErrValidation = errors.New("validation failed")
)

// ValidationError lists the violated rules per field. Field names are the
// JSON names of the payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	for i, k := range keys {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(" ")
		b.WriteString(e.Fields[k])
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
