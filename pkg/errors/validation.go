package errors

import (
	"strings"
	"unicode"
)

// ValidateIdentifier validates a record identifier for safety and correctness.
// Identifiers end up in file contents, graph node ids, and URL paths, so the
// rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "identifier too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "identifier cannot contain path separators")
	}

	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "identifier cannot contain traversal sequences (..)")
	}

	return nil
}

// ValidateDataDir validates a data directory path.
// It rejects empty paths and paths containing null bytes.
func ValidateDataDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidInput, "data directory cannot be empty")
	}
	if strings.ContainsRune(dir, '\x00') {
		return New(ErrCodeInvalidInput, "data directory contains invalid characters")
	}
	return nil
}
