package models

import (
	"strconv"
	"strings"
)

// CoerceInt parses a zero-padded numeric column from the JV-Data mirror.
// Blank or non-numeric values yield nil, the explicit missing marker; the
// caller decides how a missing value propagates. Values are never silently
// coerced to zero.
func CoerceInt(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// IntValue unwraps a possibly-missing int, substituting fallback when absent.
func IntValue(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
