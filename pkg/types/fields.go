package types

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Placeholder values the source spreadsheets use for missing cells.
var placeholders = []string{"n/a", "na", "-", "--"}

func IsPlaceholder(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v == "" || slices.Contains(placeholders, v)
}

// SplitList splits a delimited field, trims every entry and drops empty ones.
func SplitList(value string, separators ...rune) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if len(separators) == 0 {
		separators = []rune{','}
	}
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return slices.Contains(separators, r)
	})
	ret := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ret = append(ret, trimmed)
		}
	}
	return ret
}

// Fold returns the Unicode case folded form of s, used for case-insensitive keys.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
