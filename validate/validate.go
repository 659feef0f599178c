// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"unicode/utf16"

	"github.com/danielhkuo/safety-points/models"
)

// Error is a validation failure carrying the reason shown to the client
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

var (
	ErrInvalidBody        = &Error{Reason: "Invalid request body"}
	ErrInvalidDepartment  = &Error{Reason: "Invalid department"}
	ErrInvalidPoints      = &Error{Reason: "Invalid points"}
	ErrInvalidDescription = &Error{Reason: "Invalid description"}
	ErrInvalidDepartments = &Error{Reason: "Invalid departments payload"}
	ErrInvalidIndex       = &Error{Reason: "Invalid index"}
)

// maxSafeInteger bounds the integers (indexes, dates) a float64 holds exactly
const maxSafeInteger = 1 << 53

// InfractionPayload is a validated creation request; the server assigns the date
type InfractionPayload struct {
	Department  string
	Points      float64
	Description string
}

// IsValidInfraction reports whether a decoded JSON value is a well-formed stored infraction
func IsValidInfraction(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := nonEmptyString(m["department"]); !ok {
		return false
	}
	if _, ok := finiteNumber(m["points"]); !ok {
		return false
	}
	if _, ok := description(m["description"]); !ok {
		return false
	}
	_, ok = epochMillis(m["date"])
	return ok
}

// ParseInfractionPayload validates the fields of an infraction creation request
func ParseInfractionPayload(fields map[string]any) (InfractionPayload, error) {
	if fields == nil {
		return InfractionPayload{}, ErrInvalidBody
	}

	department, ok := nonEmptyString(fields["department"])
	if !ok {
		return InfractionPayload{}, ErrInvalidDepartment
	}
	points, ok := finiteNumber(fields["points"])
	if !ok {
		return InfractionPayload{}, ErrInvalidPoints
	}
	desc, ok := description(fields["description"])
	if !ok {
		return InfractionPayload{}, ErrInvalidDescription
	}

	return InfractionPayload{
		Department:  department,
		Points:      points,
		Description: desc,
	}, nil
}

// IsDepartment reports whether a decoded JSON value is a well-formed department
func IsDepartment(v any) bool {
	_, ok := toDepartment(v)
	return ok
}

// SanitizeDepartments keeps the well-formed entries of a departments array,
// trimming names. An array with no valid entry is rejected.
func SanitizeDepartments(raw json.RawMessage) ([]models.Department, error) {
	var items []any
	if err := decode(raw, &items); err != nil || items == nil {
		return nil, ErrInvalidDepartments
	}

	departments := make([]models.Department, 0, len(items))
	for _, item := range items {
		if d, ok := toDepartment(item); ok {
			departments = append(departments, d)
		}
	}
	if len(departments) == 0 {
		return nil, ErrInvalidDepartments
	}
	return departments, nil
}

// ParseIndex accepts a JSON number holding a non-negative integer
func ParseIndex(raw json.RawMessage) (int, error) {
	var v any
	if err := decode(raw, &v); err != nil {
		return 0, ErrInvalidIndex
	}
	n, ok := finiteNumber(v)
	if !ok || n != math.Trunc(n) || n < 0 || n > maxSafeInteger {
		return 0, ErrInvalidIndex
	}
	return int(n), nil
}

func toDepartment(v any) (models.Department, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return models.Department{}, false
	}
	name, ok := nonEmptyString(m["name"])
	if !ok {
		return models.Department{}, false
	}
	points, ok := finiteNumber(m["points"])
	if !ok {
		return models.Department{}, false
	}
	return models.Department{Name: name, Points: points}, true
}

func toInfraction(v any) models.Infraction {
	m := v.(map[string]any)
	department, _ := nonEmptyString(m["department"])
	points, _ := finiteNumber(m["points"])
	desc, _ := description(m["description"])
	date, _ := epochMillis(m["date"])
	return models.Infraction{
		Department:  department,
		Points:      points,
		Description: desc,
		Date:        date,
	}
}

// nonEmptyString returns the trimmed string if v is a string with visible content
func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func description(v any) (string, bool) {
	s, ok := nonEmptyString(v)
	if !ok || utf16Len(s) > models.MaxDescriptionLength {
		return "", false
	}
	return s, true
}

// utf16Len counts UTF-16 code units, matching a browser's String.length
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// epochMillis accepts whole numbers within the exactly representable range
func epochMillis(v any) (int64, bool) {
	n, ok := finiteNumber(v)
	if !ok || n != math.Trunc(n) || math.Abs(n) > maxSafeInteger {
		return 0, false
	}
	return int64(n), true
}

func finiteNumber(v any) (float64, bool) {
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func decode(raw []byte, v any) error {
	return json.NewDecoder(bytes.NewReader(raw)).Decode(v)
}
