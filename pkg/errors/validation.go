package errors

import (
	"strings"
	"unicode"
)

// Pin count bounds accepted from user input. Design ids for large pin counts
// are resolved from closed-form counts; the upper bound keeps those counts
// well inside int64.
const (
	MinPinCount = 1
	MaxPinCount = 16
)

// ValidatePinCount checks that n is a supported chip pin count.
func ValidatePinCount(n int) error {
	if n < MinPinCount || n > MaxPinCount {
		return New(ErrCodeInvalidPinCount, "pin count must be between %d and %d, got %d", MinPinCount, MaxPinCount, n)
	}
	return nil
}

// ValidateDesignID checks that id is a non-negative design id.
// The upper bound depends on the pin count and is checked by the planner.
func ValidateDesignID(id int) error {
	if id < 0 {
		return New(ErrCodeInvalidInput, "design id must be non-negative, got %d", id)
	}
	return nil
}

// ValidateIDRange checks a half-open [start, end) design id range.
// An end of 0 means "to the last design" and is always accepted.
func ValidateIDRange(start, end int) error {
	if start < 0 {
		return New(ErrCodeInvalidInput, "range start must be non-negative, got %d", start)
	}
	if end != 0 && end <= start {
		return New(ErrCodeInvalidInput, "range end %d must be greater than start %d", end, start)
	}
	return nil
}

// ValidatePath validates a relative file path for design output.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateWeights checks that slide distance weights are usable divisors.
func ValidateWeights(w0, w1, w2 float64) error {
	if w0 <= 0 || w1 <= 0 || w2 <= 0 {
		return New(ErrCodeInvalidConfig, "slide weights must be positive, got (%g, %g, %g)", w0, w1, w2)
	}
	return nil
}
