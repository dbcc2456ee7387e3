package content

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("item not found")

// ValidationError reports a form field that could not be accepted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

// Form values are applied only for keys present in the submission, so an
// edit form that omits a field leaves the stored value alone.

func applyString(v url.Values, key string, dst *string) {
	if vals, ok := v[key]; ok && len(vals) > 0 {
		*dst = vals[0]
	}
}

// applyBool treats "true" and the browser checkbox default "on" as set.
func applyBool(v url.Values, key string, dst *bool) {
	if vals, ok := v[key]; ok && len(vals) > 0 {
		*dst = vals[0] == "true" || vals[0] == "on"
	}
}

func applyInt(v url.Values, key string, dst *int) error {
	vals, ok := v[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	s := strings.TrimSpace(vals[0])
	if s == "" {
		*dst = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return &ValidationError{Field: key, Reason: "must be a whole number"}
	}
	*dst = n
	return nil
}

func formBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func formID(v url.Values, id int64) {
	if id != 0 {
		v.Set("id", strconv.FormatInt(id, 10))
	}
}
