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

// Package vigenere implements the Vigenère polyalphabetic substitution
// cipher over the 26-letter Latin alphabet.
package vigenere

import (
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-classical/pkg/classical"
	"github.com/jeremyhahn/go-classical/pkg/classical/alphabet"
)

// Key is a sequence of shifts in [0, 25]. A valid key has at least one shift.
type Key []int

// ParseKey converts a literal key such as "LEMON" into shifts. The key must
// be non-empty and consist of letters only; case is ignored.
func ParseKey(s string) (Key, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: key cannot be empty", classical.ErrInvalidParameter)
	}
	key := make(Key, 0, len(s))
	for _, r := range s {
		i, ok := alphabet.Index(r)
		if !ok {
			return nil, fmt.Errorf("%w: key contains non-letter %q", classical.ErrInvalidParameter, r)
		}
		key = append(key, i)
	}
	return key, nil
}

// Len returns the number of shifts in the key.
func (k Key) Len() int {
	return len(k)
}

// String renders the key as upper-case letters.
func (k Key) String() string {
	var b strings.Builder
	for _, shift := range k {
		b.WriteRune(alphabet.Letter(shift))
	}
	return b.String()
}

// Encrypt lower-cases message and shifts each letter forward by the key
// letter at the current key index. The key index advances on letters only.
//
// Commas, periods and the right single quotation mark (’) become spaces;
// every other non-letter, spaces included, is copied unchanged.
func Encrypt(message, key string) (string, error) {
	k, err := ParseKey(key)
	if err != nil {
		return "", err
	}

	var (
		b        strings.Builder
		keyIndex int
	)
	b.Grow(len(message))
	for _, r := range strings.ToLower(message) {
		switch {
		case alphabet.IsLetter(r):
			b.WriteRune(alphabet.Shift(r, k[keyIndex%len(k)]))
			keyIndex++
		case r == ',' || r == '.' || r == '’':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// Decrypt reduces message and key to upper-case letters and shifts each
// message letter backward by the key letter at the current key index. The key
// index advances on letters only. The result contains letters only.
func Decrypt(message, key string) (string, error) {
	k, err := ParseKey(alphabet.Upper(key))
	if err != nil {
		return "", err
	}

	var (
		b        strings.Builder
		keyIndex int
	)
	text := alphabet.Upper(message)
	b.Grow(len(text))
	for _, r := range text {
		if alphabet.IsLetter(r) {
			b.WriteRune(alphabet.Shift(r, -k[keyIndex%len(k)]))
			keyIndex++
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
