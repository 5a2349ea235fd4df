package alchemy

import "strings"

// NormalizeName canonicalizes a substance name: surrounding whitespace is
// trimmed and the result is case-folded, so "  Stardust " and "STARDUST"
// address the same stock entry.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// normalizeNonEmpty normalizes a name and rejects the empty result
func normalizeNonEmpty(field, name string) (string, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return "", &ErrInvalidInput{Field: field, Reason: "name must be a non-empty string"}
	}
	return normalized, nil
}
