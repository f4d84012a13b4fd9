// Package phone normalizes Ghanaian phone numbers and free-text account
// identifiers into their canonical lookup forms.
package phone

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrRequired is returned for blank input.
var ErrRequired = errors.New("Phone number is required.")

const countryCode = "233"

// Normalize converts a raw phone number into the canonical 233XXXXXXXXX
// form. Two shapes are accepted: international (+233 followed by exactly
// 9 digits) and local (0 followed by 9 more digits). Spaces and dashes
// are stripped before checking. Anything else, including an already
// canonical 233-prefixed value, is rejected.
func Normalize(raw string) (string, error) {
	original := strings.TrimSpace(raw)
	if original == "" {
		return "", ErrRequired
	}

	if strings.HasPrefix(original, "+"+countryCode) {
		digits := stripSeparators(original[len("+"+countryCode):])
		if len(digits) != 9 || !allDigits(digits) {
			return "", errors.New("Invalid international format. Please use +233 followed by exactly 9 digits (e.g., +233501234567).")
		}
		return countryCode + digits, nil
	}

	cleaned := stripSeparators(original)
	if utf8.RuneCountInString(cleaned) != 10 {
		return "", errors.New("Phone number must be exactly 10 digits. Please use format like 0501234567.")
	}
	if !allDigits(cleaned) {
		return "", fmt.Errorf("Phone number contains invalid characters: %s. Only numbers, spaces, and dashes are allowed.", invalidChars(cleaned))
	}
	if cleaned[0] != '0' {
		return "", errors.New("Local phone number must start with 0. Please use format like 0501234567.")
	}
	return countryCode + cleaned[1:], nil
}

// IsEmail classifies an identifier as an email address.
func IsEmail(identifier string) bool {
	return strings.Contains(identifier, "@")
}

// NormalizeIdentifier maps a free-text identifier to its canonical lookup
// key: lower-cased trimmed email, or normalized phone.
func NormalizeIdentifier(identifier string) (string, error) {
	trimmed := strings.TrimSpace(identifier)
	if IsEmail(trimmed) {
		return strings.ToLower(trimmed), nil
	}
	return Normalize(trimmed)
}

func stripSeparators(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// invalidChars lists the distinct non-digit characters found, sorted so
// error messages are stable.
func invalidChars(s string) string {
	seen := map[rune]bool{}
	var bad []string
	for _, r := range s {
		if (r < '0' || r > '9') && !seen[r] {
			seen[r] = true
			bad = append(bad, string(r))
		}
	}
	sort.Strings(bad)
	return strings.Join(bad, ", ")
}
