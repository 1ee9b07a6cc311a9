// Package planner is the breakfast provisioning calculation core. Every
// function here is pure: it reads its arguments, returns a fresh value and
// never fails. Malformed input degrades to a numerically valid result.
package planner

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// NormalizeCount converts a raw attendance value to a non-negative integer.
// Negative, non-numeric and non-finite values become 0; positive fractions
// are truncated.
func NormalizeCount(raw interface{}) int {
	var f float64

	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// NormalizeAttendance builds an Attendance from raw day values
func NormalizeAttendance(monday, tuesday interface{}) models.Attendance {
	return models.Attendance{
		Monday:  NormalizeCount(monday),
		Tuesday: NormalizeCount(tuesday),
	}
}

// clampAttendance guards callers that construct Attendance directly
func clampAttendance(att models.Attendance) models.Attendance {
	if att.Monday < 0 {
		att.Monday = 0
	}
	if att.Tuesday < 0 {
		att.Tuesday = 0
	}
	return att
}
