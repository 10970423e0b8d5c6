// Package utils provides shared utility functions
package utils

import (
	"errors"
	"net/url"
	"strings"
)

// ErrEmptyKey is returned when a path carries no object key
var ErrEmptyKey = errors.New("object key is required")

// ObjectKeyFromPath extracts the object key that follows prefix in an
// escaped request path and percent-decodes it, so "a%2Fb.txt" and "a/b.txt"
// name the same object.
func ObjectKeyFromPath(escapedPath, prefix string) (string, error) {
	rest, ok := strings.CutPrefix(escapedPath, prefix)
	if !ok {
		return "", ErrEmptyKey
	}
	key, err := url.PathUnescape(rest)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", ErrEmptyKey
	}
	return key, nil
}
