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

// Package validation checks input at the boundary of the command line tool
// and the HTTP API before it reaches the ciphers. Every error wraps
// classical.ErrInvalidParameter.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jeremyhahn/go-classical/pkg/classical"
)

const (
	// DefaultMaxTextLength bounds message and ciphertext size in bytes.
	DefaultMaxTextLength = 1 << 20

	// MaxKeyLength bounds literal keys and key length searches.
	MaxKeyLength = 256

	// MaxRails bounds the rail count of the rail fence cipher.
	MaxRails = 1024

	// MaxOffset bounds the rail fence decode offset.
	MaxOffset = 1 << 20

	// MaxKasiskiTextLength bounds the ciphertext of a Kasiski examination in
	// bytes. The sequence search costs one pass over the text per length.
	MaxKasiskiTextLength = 16 << 10

	// DefaultMaxSequenceLength caps the Kasiski search when no maximum is
	// configured.
	DefaultMaxSequenceLength = 64

	// MaxSequenceLength bounds any configured Kasiski maximum.
	MaxSequenceLength = 256
)

var keyLetterPattern = regexp.MustCompile(`[A-Za-z]`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", classical.ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// ValidateText checks a message or ciphertext. Empty text is allowed; the
// ciphers define their own result for it. maxLength <= 0 selects
// DefaultMaxTextLength.
func ValidateText(text string, maxLength int) error {
	if maxLength <= 0 {
		maxLength = DefaultMaxTextLength
	}
	if len(text) > maxLength {
		return invalid("text too long (%d bytes, max %d)", len(text), maxLength)
	}
	if !utf8.ValidString(text) {
		return invalid("text is not valid UTF-8")
	}
	if strings.Contains(text, "\x00") {
		return invalid("text contains null byte")
	}
	return nil
}

// ValidateKey checks a literal Vigenère key. It must contain at least one
// letter; whether other runes are accepted is up to the cipher.
func ValidateKey(key string) error {
	if key == "" {
		return invalid("key cannot be empty")
	}
	if len(key) > MaxKeyLength {
		return invalid("key too long (max %d characters)", MaxKeyLength)
	}
	for _, r := range key {
		if r < 32 || r == 127 {
			return invalid("key contains control characters")
		}
	}
	if !keyLetterPattern.MatchString(key) {
		return invalid("key must contain at least one letter")
	}
	return nil
}

// ValidateKeyLength checks a key length bound such as the Friedman search
// limit.
func ValidateKeyLength(n int) error {
	if n < 1 || n > MaxKeyLength {
		return invalid("key length must be between 1 and %d, got %d", MaxKeyLength, n)
	}
	return nil
}

// ValidateThreshold checks an index of coincidence threshold.
func ValidateThreshold(threshold float64) error {
	if !(threshold > 0 && threshold <= 1) {
		return invalid("threshold must be in (0, 1], got %v", threshold)
	}
	return nil
}

// ValidateSequenceLengths checks the Kasiski search bounds. max == 0 leaves
// the choice to the caller's default.
func ValidateSequenceLengths(minLength, maxLength int) error {
	if minLength < 1 {
		return invalid("minimum sequence length must be at least 1, got %d", minLength)
	}
	if minLength > MaxSequenceLength {
		return invalid("minimum sequence length cannot exceed %d, got %d", MaxSequenceLength, minLength)
	}
	if maxLength < 0 {
		return invalid("maximum sequence length cannot be negative, got %d", maxLength)
	}
	if maxLength > MaxSequenceLength {
		return invalid("maximum sequence length cannot exceed %d, got %d", MaxSequenceLength, maxLength)
	}
	if maxLength > 0 && maxLength < minLength {
		return invalid("maximum sequence length %d is below minimum %d", maxLength, minLength)
	}
	return nil
}

// ValidateRails checks the rail count.
func ValidateRails(rails int) error {
	if rails < 2 || rails > MaxRails {
		return invalid("rails must be between 2 and %d, got %d", MaxRails, rails)
	}
	return nil
}

// ValidateOffset checks the rail fence decode offset.
func ValidateOffset(offset int) error {
	if offset < 0 || offset > MaxOffset {
		return invalid("offset must be between 0 and %d, got %d", MaxOffset, offset)
	}
	return nil
}

// SanitizeForLog sanitizes a string for safe logging (prevents log injection).
func SanitizeForLog(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)

	if len(s) > 1000 {
		s = s[:1000] + "...[truncated]"
	}

	return s
}

// ValidateKasiskiText checks ciphertext submitted to the Kasiski
// examination, which accepts less text than the other operations.
func ValidateKasiskiText(text string) error {
	if len(text) > MaxKasiskiTextLength {
		return invalid("text too long for kasiski examination (%d bytes, max %d)", len(text), MaxKasiskiTextLength)
	}
	return nil
}
