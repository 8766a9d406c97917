package usecase

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Arguments is a parsed tool-argument payload. The model produced it,
// so every accessor treats the map as untrusted: fields may be missing,
// mistyped, or extra.
type Arguments map[string]interface{}

// ArgumentError reports a malformed or missing tool argument.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %q: %s", e.Field, e.Reason)
}

// OptionalString returns the trimmed string value for key, or "" when
// the field is absent, empty, or not a string. Blank values collapse to
// "no filter" here so an empty string never leaks into a query.
func (a Arguments) OptionalString(key string) string {
	v, ok := a[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// RequiredString returns the trimmed string value for key, failing with
// an ArgumentError when the field is absent or blank.
func (a Arguments) RequiredString(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", &ArgumentError{Field: key, Reason: "required field is missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ArgumentError{Field: key, Reason: "expected a string"}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ArgumentError{Field: key, Reason: "required field is empty"}
	}
	return s, nil
}

// RequiredInt returns the integer value for key. JSON numbers arrive as
// float64; whole floats, json.Number and numeric strings are accepted.
func (a Arguments) RequiredInt(key string) (int, error) {
	v, ok := a[key]
	if !ok {
		return 0, &ArgumentError{Field: key, Reason: "required field is missing"}
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, &ArgumentError{Field: key, Reason: "expected an integer"}
		}
		return int(n), nil
	case int:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, &ArgumentError{Field: key, Reason: "expected an integer"}
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, &ArgumentError{Field: key, Reason: "expected an integer"}
		}
		return i, nil
	default:
		return 0, &ArgumentError{Field: key, Reason: "expected an integer"}
	}
}
