package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Cannot end in a path separator (must name a file)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path %q names a directory, not a file", path)
	}

	return nil
}

// MaxRadius bounds the outer radius. The disc kernel holds (2r+1)² weights,
// so this caps a single kernel at roughly 32 MiB.
const MaxRadius = 1024

// ValidateRadius checks the outer lattice radius.
func ValidateRadius(r int) error {
	if r <= 0 {
		return New(ErrCodeInvalidConfig, "radius must be a positive integer, got %d", r)
	}
	if r > MaxRadius {
		return New(ErrCodeInvalidConfig, "radius must be at most %d, got %d", MaxRadius, r)
	}
	return nil
}
