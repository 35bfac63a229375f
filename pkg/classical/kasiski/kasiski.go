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

// Package kasiski breaks Vigenère ciphertext with the Kasiski (Babbage)
// examination.
//
// Repeated fragments of ciphertext are usually the same plaintext fragment
// enciphered at the same key position, so the distance between repeats tends
// to be a multiple of the key length. The pipeline finds repeated sequences,
// takes the distances between their occurrences, votes over the prime
// factors of those distances, and recovers the key column by column by
// frequency analysis.
//
// The decryption used here, DecryptWithNumericKey, advances the key on every
// character position. vigenere.Decrypt advances on letters only. The two are
// kept separate because results of this pipeline depend on the former.
package kasiski

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-classical/pkg/classical"
)

// DefaultMinLength is the shortest repeated sequence considered.
const DefaultMinLength = 3

// Options configures the repeated-sequence search.
type Options struct {
	// MinLength is the shortest substring length searched.
	MinLength int

	// MaxLength caps the substring length searched. Zero leaves the search
	// bounded only by half the ciphertext length.
	MaxLength int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{MinLength: DefaultMinLength}
}

// Result is the outcome of a Kasiski attack.
type Result struct {
	KeyLength int        `json:"key_length"`
	Key       string     `json:"key"`
	Plaintext string     `json:"plaintext"`
	Sequences []Sequence `json:"sequences,omitempty"`
	Periods   []Period   `json:"periods,omitempty"`
}

// Prepare normalizes raw input the way the attack expects it: spaces are
// removed and letters upper-cased. Other punctuation is kept and takes part
// in both the sequence search and the key positions.
func Prepare(ciphertext string) string {
	return strings.ToUpper(strings.ReplaceAll(ciphertext, " ", ""))
}

// Break runs the full Kasiski pipeline over ciphertext.
func Break(ciphertext string, opts Options) (*Result, error) {
	return BreakContext(context.Background(), ciphertext, opts)
}

// BreakContext is Break that returns ctx.Err() if ctx is done during the
// sequence search.
func BreakContext(ctx context.Context, ciphertext string, opts Options) (*Result, error) {
	text := Prepare(ciphertext)

	sequences, err := FindRepeatedSequencesContext(ctx, text, opts)
	if err != nil {
		return nil, err
	}

	periods := FindPeriods(sequences)
	keyLength, err := MostCommonFactor(periods)
	if err != nil {
		return nil, err
	}

	key, err := FrequencyKey(text, keyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to compute key of length %d: %w", keyLength, err)
	}

	plaintext, err := DecryptWithNumericKey(text, key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt with key %q: %w", key, err)
	}

	return &Result{
		KeyLength: keyLength,
		Key:       key,
		Plaintext: plaintext,
		Sequences: sequences.Entries(),
		Periods:   periods.Entries(),
	}, nil
}

// validate checks the search options.
func (o Options) validate() error {
	if o.MinLength < 1 {
		return fmt.Errorf("%w: minimum sequence length must be at least 1, got %d",
			classical.ErrInvalidParameter, o.MinLength)
	}
	if o.MaxLength < 0 {
		return fmt.Errorf("%w: maximum sequence length cannot be negative, got %d",
			classical.ErrInvalidParameter, o.MaxLength)
	}
	return nil
}
