// Package ident turns human-readable asset names into C++ identifiers.
//
// Two forms are produced. Namespace gives a lower-case, underscore separated
// name prefixed with "_" (used for collection namespaces and entry scopes).
// Token gives an upper-camel name prefixed with "k" (used for enumerators).
// Both are deterministic and pure; neither guarantees uniqueness.
package ident

import (
	"strings"
	"unicode"
)

// Namespace converts name into namespace form.
//
//	"Super Mario_Bros" -> "_super_mario_bros"
func Namespace(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 1)
	sb.WriteByte('_')
	lastUnderscore := true
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			sb.WriteRune(unicode.ToLower(r))
			lastUnderscore = false
		case unicode.IsDigit(r):
			sb.WriteRune(r)
			lastUnderscore = false
		case isSeparator(r):
			if !lastUnderscore {
				sb.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return sb.String()
}

// Token converts name into token form.
//
//	"game over_2" -> "kGameOver2"
func Token(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 1)
	sb.WriteByte('k')
	upper := true
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			if upper {
				sb.WriteRune(unicode.ToUpper(r))
			} else {
				sb.WriteRune(unicode.ToLower(r))
			}
			upper = false
		case unicode.IsDigit(r):
			sb.WriteRune(r)
		case isSeparator(r):
			upper = true
		}
	}
	return sb.String()
}

func isSeparator(r rune) bool {
	return r == '_' || unicode.IsSpace(r)
}
