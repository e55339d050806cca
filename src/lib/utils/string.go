package utils

import (
	"strconv"
	"strings"
)

// StringToInt converts a string to an integer.
// If the conversion fails, it returns 0.
func StringToInt(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

// Int64ToString converts a 64-bit integer to its string representation.
func Int64ToString(n int64) string {
	return strconv.FormatInt(n, 10)
}

// GetString returns the first non-empty string from the provided values.
// If all values are empty strings, it returns an empty string.
func GetString(values ...string) string {
	for _, val := range values {
		if val != "" {
			return val
		}
	}

	return ""
}

// IsBlank returns true when the string is empty or contains only whitespaces.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
