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

package friedman

import (
	"errors"
	"testing"

	"github.com/jeremyhahn/go-classical/pkg/classical"
	"github.com/jeremyhahn/go-classical/pkg/classical/alphabet"
	"github.com/jeremyhahn/go-classical/pkg/classical/vigenere"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoCities = `It was the best of times, it was the worst of times, it was the age of wisdom, it was the age of foolishness, it was the epoch of belief, it was the epoch of incredulity, it was the season of Light, it was the season of Darkness, it was the spring of hope, it was the winter of despair, we had everything before us, we had nothing before us, we were all going direct to Heaven, we were all going direct the other way. In short, the period was so far like the present period, that some of its noisiest authorities insisted on its being received, for good or for evil, in the superlative degree of comparison only. There were a king with a large jaw and a queen with a plain face, on the throne of England; there were a king with a large jaw and a queen with a fair face, on the throne of France. In both countries it was clearer than crystal to the lords of the State preserves of loaves and fishes, that things in general were settled for ever.`

func encrypt(t *testing.T, key string) string {
	t.Helper()
	ciphertext, err := vigenere.Encrypt(twoCities, key)
	require.NoError(t, err)
	return ciphertext
}

func TestEstimateKeyLength(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"dog", 3},
		{"sky", 3},
		{"king", 4},
		{"bird", 4},
		{"lemon", 5},
		{"crypt", 5},
		{"cipher", 6},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := EstimateKeyLength(encrypt(t, tt.key), DefaultThreshold, DefaultMaxKeyLength)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimateKeyLength_RepeatedKeyLetters(t *testing.T) {
	// "secret" repeats "e" three letters apart, so three columns already
	// look monoalphabetic.
	got, err := EstimateKeyLength(encrypt(t, "secret"), DefaultThreshold, DefaultMaxKeyLength)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestEstimateKeyLength_Indeterminate(t *testing.T) {
	for _, text := range []string{"", "AB", "abc", "!!!"} {
		_, err := EstimateKeyLength(text, DefaultThreshold, DefaultMaxKeyLength)
		assert.True(t, errors.Is(err, classical.ErrIndeterminateKeyLength), "text %q", text)
	}
}

func TestEstimateKeyLength_InvalidParameters(t *testing.T) {
	_, err := EstimateKeyLength("HELLO", DefaultThreshold, 0)
	assert.True(t, errors.Is(err, classical.ErrInvalidParameter))

	_, err = EstimateKeyLength("HELLO", 0, DefaultMaxKeyLength)
	assert.True(t, errors.Is(err, classical.ErrInvalidParameter))

	_, err = EstimateKeyLength("HELLO", 1.5, DefaultMaxKeyLength)
	assert.True(t, errors.Is(err, classical.ErrInvalidParameter))
}

func TestExtractKey(t *testing.T) {
	tests := []struct {
		name       string
		ciphertext string
		keyLength  int
		want       string
	}{
		{"uniform columns", "XYXY", 2, "TU"},
		{"ties go to first seen", "ZZA QQB", 2, "VV"},
		{"dog", encrypt(t, "dog"), 3, "DOG"},
		{"king", encrypt(t, "king"), 4, "XINV"},
		{"lemon", encrypt(t, "lemon"), 5, "PEMON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractKey(tt.ciphertext, tt.keyLength)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractKey_EmptyColumn(t *testing.T) {
	_, err := ExtractKey("AB", 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, classical.ErrEmptyColumn))
}

func TestExtractKey_InvalidLength(t *testing.T) {
	_, err := ExtractKey("ABC", 0)
	assert.True(t, errors.Is(err, classical.ErrInvalidParameter))
}

func TestBreak(t *testing.T) {
	result, err := Break(encrypt(t, "dog"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, result.KeyLength)
	assert.Equal(t, "DOG", result.Key)
	assert.Equal(t, alphabet.Upper(twoCities), result.Plaintext)
	require.Len(t, result.ColumnIC, 3)

	var crossed bool
	for _, ic := range result.ColumnIC {
		if ic >= DefaultThreshold {
			crossed = true
		}
	}
	assert.True(t, crossed, "at least one column must reach the threshold")
}

func TestBreak_Indeterminate(t *testing.T) {
	_, err := Break("AB", DefaultOptions())
	assert.True(t, errors.Is(err, classical.ErrIndeterminateKeyLength))
}
