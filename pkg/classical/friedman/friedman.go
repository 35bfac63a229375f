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

// Package friedman breaks Vigenère ciphertext with the Friedman test.
//
// The key length is estimated by splitting the ciphertext into columns for
// each trial length and measuring each column's index of coincidence: at the
// right length every column is a single Caesar shift of the plaintext and
// keeps the high coincidence of natural language. Each key letter is then
// recovered by assuming the most frequent letter of its column enciphers 'E'.
package friedman

import (
	"fmt"

	"github.com/jeremyhahn/go-classical/pkg/classical"
	"github.com/jeremyhahn/go-classical/pkg/classical/alphabet"
	"github.com/jeremyhahn/go-classical/pkg/classical/frequency"
	"github.com/jeremyhahn/go-classical/pkg/classical/vigenere"
)

const (
	// DefaultThreshold is the column index of coincidence that marks a
	// candidate key length as monoalphabetic.
	DefaultThreshold = 0.07

	// DefaultMaxKeyLength is the longest key length tried.
	DefaultMaxKeyLength = 10
)

// Options configures Break.
type Options struct {
	Threshold    float64
	MaxKeyLength int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Threshold:    DefaultThreshold,
		MaxKeyLength: DefaultMaxKeyLength,
	}
}

// Result is the outcome of a Friedman attack.
type Result struct {
	KeyLength int       `json:"key_length"`
	Key       string    `json:"key"`
	Plaintext string    `json:"plaintext"`
	ColumnIC  []float64 `json:"column_ic"`
}

// EstimateKeyLength returns the smallest length in [1, maxLength] for which
// any column of the ciphertext has an index of coincidence of at least
// threshold. When no length qualifies it returns ErrIndeterminateKeyLength.
func EstimateKeyLength(ciphertext string, threshold float64, maxLength int) (int, error) {
	if maxLength < 1 {
		return 0, fmt.Errorf("%w: max key length must be at least 1, got %d",
			classical.ErrInvalidParameter, maxLength)
	}
	if threshold <= 0 || threshold > 1 {
		return 0, fmt.Errorf("%w: threshold must be in (0, 1], got %v",
			classical.ErrInvalidParameter, threshold)
	}

	for keyLength := 1; keyLength <= maxLength; keyLength++ {
		ics, err := columnIC(ciphertext, keyLength)
		if err != nil {
			return 0, err
		}
		for _, ic := range ics {
			if ic >= threshold {
				return keyLength, nil
			}
		}
	}
	return 0, classical.ErrIndeterminateKeyLength
}

// ExtractKey recovers a key of keyLength letters. Each key letter is the
// shift that maps 'E' onto the most frequent letter of its column; ties go to
// the letter seen first. A column without letters has no most frequent
// letter and yields ErrEmptyColumn.
func ExtractKey(ciphertext string, keyLength int) (string, error) {
	columns, err := frequency.Columns(ciphertext, keyLength)
	if err != nil {
		return "", err
	}

	key := make([]rune, len(columns))
	for i, column := range columns {
		counter := frequency.NewCounter[rune]()
		for _, r := range column {
			counter.Add(r)
		}
		top, _, ok := counter.MostCommon()
		if !ok {
			return "", fmt.Errorf("%w: column %d of %d", classical.ErrEmptyColumn, i, keyLength)
		}
		key[i] = alphabet.Letter(int(top - 'E'))
	}
	return string(key), nil
}

// Break estimates the key length, extracts the key and decrypts ciphertext.
func Break(ciphertext string, opts Options) (*Result, error) {
	keyLength, err := EstimateKeyLength(ciphertext, opts.Threshold, opts.MaxKeyLength)
	if err != nil {
		return nil, err
	}

	key, err := ExtractKey(ciphertext, keyLength)
	if err != nil {
		return nil, fmt.Errorf("failed to extract key of length %d: %w", keyLength, err)
	}

	plaintext, err := vigenere.Decrypt(ciphertext, key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt with key %q: %w", key, err)
	}

	ics, err := columnIC(ciphertext, keyLength)
	if err != nil {
		return nil, err
	}

	return &Result{
		KeyLength: keyLength,
		Key:       key,
		Plaintext: plaintext,
		ColumnIC:  ics,
	}, nil
}

// columnIC returns the index of coincidence of every column for keyLength.
func columnIC(ciphertext string, keyLength int) ([]float64, error) {
	columns, err := frequency.Columns(ciphertext, keyLength)
	if err != nil {
		return nil, err
	}
	ics := make([]float64, len(columns))
	for i, column := range columns {
		ics[i] = frequency.IndexOfCoincidence(column)
	}
	return ics, nil
}
