package form

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const preparationLayout = "15:04:05"

var preparationPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

// ExtractPreparationTime renders the clock component of a picker value as
// HH:MM:SS. It returns "" for a nil picker or when the rendered string does
// not have that exact shape.
func ExtractPreparationTime(picker *time.Time) string {
	if picker == nil {
		return ""
	}
	s := picker.Format(preparationLayout)
	if !preparationPattern.MatchString(s) {
		return ""
	}
	return s
}

// ParsePreparationTime turns typed HH:MM:SS text into a picker value.
func ParsePreparationTime(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if !preparationPattern.MatchString(text) {
		return time.Time{}, fmt.Errorf("preparation time %q is not HH:MM:SS", text)
	}
	t, err := time.Parse(preparationLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("preparation time %q is out of range: %w", text, err)
	}
	return t, nil
}

// FormatDiameter re-formats a decimal with exactly two fraction digits.
// Blank input yields "".
func FormatDiameter(raw string) (string, error) {
	v, err := parseDecimal(raw)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return strconv.FormatFloat(*v, 'f', 2, 64), nil
}

func parseDecimal(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%q is not a number", raw)
	}
	return &v, nil
}

func parseInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("value is empty")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	return n, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
