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

package kasiski

import (
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-classical/pkg/classical"
	"github.com/jeremyhahn/go-classical/pkg/classical/alphabet"
	"github.com/jeremyhahn/go-classical/pkg/classical/frequency"
)

// Placeholder stands in for a key letter whose column is empty.
const Placeholder = '?'

// FrequencyKey derives a key of keyLength letters from ciphertext. Column c
// holds the runes at positions i ≡ c (mod keyLength), unfiltered; its key
// letter aligns the column's most frequent rune with 'E'. Ties go to the rune
// seen first. An empty column yields Placeholder instead of an error.
func FrequencyKey(ciphertext string, keyLength int) (string, error) {
	if keyLength < 1 {
		return "", fmt.Errorf("%w: key length must be at least 1, got %d",
			classical.ErrInvalidParameter, keyLength)
	}

	text := []rune(ciphertext)
	key := make([]rune, keyLength)
	for c := 0; c < keyLength; c++ {
		counter := frequency.NewCounter[rune]()
		for i := c; i < len(text); i += keyLength {
			counter.Add(text[i])
		}
		top, _, ok := counter.MostCommon()
		if !ok {
			key[c] = Placeholder
			continue
		}
		key[c] = alphabet.Letter(int(top - 'E'))
	}
	return string(key), nil
}

// DecryptWithNumericKey shifts each letter of ciphertext backward by the key
// value at its position. Key rune k has the value k-'A'. The key index is the
// rune position in ciphertext, so non-letters consume key values too. Letters
// come out upper-case; other runes are copied.
func DecryptWithNumericKey(ciphertext, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: key cannot be empty", classical.ErrInvalidParameter)
	}

	shifts := make([]int, 0, len(key))
	for _, k := range key {
		shifts = append(shifts, int(k-'A'))
	}

	var b strings.Builder
	b.Grow(len(ciphertext))
	i := 0
	for _, r := range ciphertext {
		if idx, ok := alphabet.Index(r); ok {
			b.WriteRune(alphabet.Letter(idx - shifts[i%len(shifts)]))
		} else {
			b.WriteRune(r)
		}
		i++
	}
	return b.String(), nil
}
