package common

import (
	"fmt"
)

// Argument extraction helpers for tool handlers. JSON numbers arrive as
// float64, so integer arguments go through a float64 assertion first.
// Every helper reports a missing or mistyped argument before any network
// call is made.

// RequiredString returns a required string argument, or an error naming
// the argument when it is missing or empty.
func RequiredString(args map[string]interface{}, key string) (string, error) {
	value, ok := args[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

// OptionalString returns a string argument or the fallback when absent.
func OptionalString(args map[string]interface{}, key, fallback string) string {
	if value, ok := args[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

// RequiredInt returns a required integer argument.
func RequiredInt(args map[string]interface{}, key string) (int64, error) {
	value, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required and must be a number", key)
	}
	return int64(value), nil
}

// OptionalInt returns an integer argument or the fallback when absent.
func OptionalInt(args map[string]interface{}, key string, fallback int64) int64 {
	if value, ok := args[key].(float64); ok {
		return int64(value)
	}
	return fallback
}

// OptionalFloat returns a float argument or the fallback when absent.
func OptionalFloat(args map[string]interface{}, key string, fallback float64) float64 {
	if value, ok := args[key].(float64); ok {
		return value
	}
	return fallback
}

// OptionalBool returns a boolean argument or the fallback when absent.
func OptionalBool(args map[string]interface{}, key string, fallback bool) bool {
	if value, ok := args[key].(bool); ok {
		return value
	}
	return fallback
}

// RequiredRange returns the startIndex and endIndex arguments and
// validates their ordering. Docs index ranges are half-open and start
// at 1, index 0 being the unreachable start of the body segment.
func RequiredRange(args map[string]interface{}) (int64, int64, error) {
	start, err := RequiredInt(args, "startIndex")
	if err != nil {
		return 0, 0, err
	}
	end, err := RequiredInt(args, "endIndex")
	if err != nil {
		return 0, 0, err
	}
	if start < 1 {
		return 0, 0, fmt.Errorf("startIndex must be at least 1, got %d", start)
	}
	if end <= start {
		return 0, 0, fmt.Errorf("endIndex (%d) must be greater than startIndex (%d)", end, start)
	}
	return start, end, nil
}

// GetDocumentIDFromArgs extracts the documentId argument for audit
// logging. Returns an empty string when the tool has no document target.
func GetDocumentIDFromArgs(args map[string]interface{}) string {
	if documentID, ok := args["documentId"].(string); ok {
		return documentID
	}
	return ""
}
