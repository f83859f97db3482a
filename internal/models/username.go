package models

import (
	"regexp"
	"strings"
)

// GitHub usernames are 1-39 characters of letters, digits and hyphens.
// We lowercase before matching so the same handle always maps to the
// same canonical key.
var usernamePattern = regexp.MustCompile(`^[a-z0-9-]{1,39}$`)

// NormalizeUsername trims, lowercases and validates a raw handle.
// The returned value is the canonical key for all upstream lookups.
func NormalizeUsername(raw string) (string, error) {
	username := strings.ToLower(strings.TrimSpace(raw))
	if !usernamePattern.MatchString(username) {
		return "", ErrInvalidUsername
	}
	return username, nil
}
