package common

import (
	"fmt"
	"strings"
	"time"
)

// RequiredString extracts a non-empty string argument.
func RequiredString(args map[string]interface{}, key string) (string, error) {
	val, ok := args[key].(string)
	if !ok || val == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return val, nil
}

// OptionalString extracts a string argument, returning fallback when absent.
func OptionalString(args map[string]interface{}, key, fallback string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return fallback
}

// RequiredTime extracts and parses a required RFC3339 timestamp argument.
func RequiredTime(args map[string]interface{}, key string) (time.Time, error) {
	raw, err := RequiredString(args, key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format: %v", key, err)
	}
	return t, nil
}

// OptionalTime parses an RFC3339 timestamp argument, returning fallback when
// absent. A present but malformed value is an error, not a silent fallback.
func OptionalTime(args map[string]interface{}, key string, fallback time.Time) (time.Time, error) {
	raw, ok := args[key].(string)
	if !ok || raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format: %v", key, err)
	}
	return t, nil
}

// StringList splits a comma-separated argument into trimmed, non-empty
// entries. Absent arguments yield a nil slice.
func StringList(args map[string]interface{}, key string) []string {
	raw, ok := args[key].(string)
	if !ok || raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// OptionalInt extracts a numeric argument as an int, returning fallback when
// absent. JSON numbers arrive as float64.
func OptionalInt(args map[string]interface{}, key string, fallback int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	return fallback
}

// RequiredInt extracts a required numeric argument as an int.
func RequiredInt(args map[string]interface{}, key string) (int, error) {
	val, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return int(val), nil
}
