// Package coerce converts loosely typed spreadsheet cells into Go values.
// None of these functions fail: unusable input degrades to false, "none"
// (ok == false) or an empty tag list.
package coerce

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var truthy = map[string]bool{
	"true": true,
	"yes":  true,
	"y":    true,
	"1":    true,
}

var spaPattern = regexp.MustCompile(`(?i)spa\s*(\d+)`)

// ToText renders a cell as display text
// nil and NaN become "", whole floats are printed without a fraction
func ToText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float32:
		return formatFloat(float64(t))
	case float64:
		return formatFloat(t)
	case time.Time:
		return t.Format("2006-01-02")
	case interface{ String() string }:
		return t.String()
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToBool converts TRUE/FALSE/Yes/No style cells into a bool
func ToBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	if v == nil {
		return false
	}
	return truthy[strings.ToLower(strings.TrimSpace(ToText(v)))]
}

// ToIntOrNone converts numeric-ish cells to an int, truncating floats such as 5.0 or "5.0".
// ok is false for missing, NaN, infinite or unparseable input.
func ToIntOrNone(v any) (n int, ok bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float32:
		return truncate(float64(t))
	case float64:
		return truncate(t)
	}

	s := strings.TrimSpace(ToText(v))
	if s == "" {
		return 0, false
	}

	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return truncate(f)
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

// ToIntPtr is ToIntOrNone returning nil for "none"
func ToIntPtr(v any) *int {
	n, ok := ToIntOrNone(v)
	if !ok {
		return nil
	}
	return &n
}

// SplitTags splits a comma-separated cell into lower-cased, trimmed tags.
// Empty pieces and the tokens "nan" and "none" are dropped; order and duplicates are kept.
func SplitTags(v any) []string {
	s := strings.ToLower(strings.TrimSpace(ToText(v)))
	if s == "" {
		return []string{}
	}

	tags := make([]string, 0, strings.Count(s, ",")+1)
	for _, piece := range strings.Split(s, ",") {
		tag := strings.TrimSpace(piece)
		if tag == "" || tag == "nan" || tag == "none" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// ExtractSpaFromLocation pulls the SPA number out of text like "SPA 4 - Skid Row Only"
func ExtractSpaFromLocation(v any) (int, bool) {
	m := spaPattern.FindStringSubmatch(ToText(v))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
