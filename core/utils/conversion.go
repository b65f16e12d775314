package utils

import (
	"strconv"
	"strings"
)

// ToInt parses a decimal query or header value, falling back to def.
func ToInt(val string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return def
	}
	return i
}

// ToBool reports whether a query or header value spells true ("1", "true", "yes").
func ToBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
