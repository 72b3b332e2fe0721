package errors

import (
	"strings"
	"unicode"
)

// ValidateSnapshotID validates a snapshot id before it is used to address
// backend storage. File-backed stores turn ids into file names, so the rules
// reject anything that could escape the snapshot directory:
//   - No empty ids
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
//
// Ids generated by the snapshot package (UUIDs) always pass.
func ValidateSnapshotID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "snapshot id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "snapshot id too long (max 128 characters)")
	}

	for _, r := range id {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "snapshot id contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "snapshot id contains invalid characters")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
