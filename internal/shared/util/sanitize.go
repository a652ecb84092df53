package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidKey is returned for storage keys that cannot become a file name.
var ErrInvalidKey = errors.New("invalid storage key")

const maxKeyFileNameLen = 200

var keySeparators = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// KeyFileName maps a storage key such as "resume-builder-data" to a file name
// inside the local store directory. Separators become underscores; traversal,
// control characters and overlong keys are rejected.
func KeyFileName(key string) (string, error) {
	name := strings.TrimSpace(key)
	if name == "" || strings.Contains(name, "..") || len(name) > maxKeyFileNameLen {
		return "", ErrInvalidKey
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return "", ErrInvalidKey
	}
	return keySeparators.Replace(name), nil
}
