// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-classical.
//
// go-classical is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package alphabet maps text onto the fixed 26-letter Latin alphabet used by
// every cipher in this module.
package alphabet

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Size is the number of symbols in the alphabet.
const Size = 26

// IsLetter reports whether r is an ASCII letter.
func IsLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// Index returns the 0-based position of r in the alphabet, ignoring case.
func Index(r rune) (int, bool) {
	switch {
	case 'a' <= r && r <= 'z':
		return int(r - 'a'), true
	case 'A' <= r && r <= 'Z':
		return int(r - 'A'), true
	}
	return 0, false
}

// Letter returns the upper-case letter at index i mod Size.
func Letter(i int) rune {
	return 'A' + rune(Mod(i))
}

// Mod reduces a into [0, Size).
func Mod(a int) int {
	a %= Size
	if a < 0 {
		a += Size
	}
	return a
}

// Shift moves a letter n places forward in the alphabet, wrapping around and
// keeping its case. Runes that are not letters are returned unchanged.
func Shift(r rune, n int) rune {
	switch {
	case 'a' <= r && r <= 'z':
		return 'a' + rune(Mod(int(r-'a')+n))
	case 'A' <= r && r <= 'Z':
		return 'A' + rune(Mod(int(r-'A')+n))
	}
	return r
}

// Upper drops every rune that is not a letter and upper-cases the rest.
// It is applied before any statistical measurement so that spacing and
// punctuation cannot bias letter counts.
func Upper(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// Lower drops every rune that is not a letter and lower-cases the rest.
func Lower(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Fold strips diacritics from Latin letters, so "déjà" becomes "deja".
// Runes without a decomposition, including non-letters, are kept as is.
func Fold(s string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return "", err
	}
	return folded, nil
}
