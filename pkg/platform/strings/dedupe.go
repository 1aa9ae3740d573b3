// Package strings provides string list helpers for configuration values.
package strings

import (
	"strings"
)

// DedupeAndTrim trims every element and drops empty ones and repeats.
// The first occurrence wins, so order is preserved.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// SplitList splits a comma separated value and cleans it with DedupeAndTrim.
// An empty or blank value yields nil.
//
// Example:
//
//	SplitList(" a.yaml, b.yaml ,a.yaml,")
//	// Returns: []string{"a.yaml", "b.yaml"}
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(value, ","))
}
