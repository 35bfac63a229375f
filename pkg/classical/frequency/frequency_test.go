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

package frequency

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/jeremyhahn/go-classical/pkg/classical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_MostCommon(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		c := NewCounter[rune]()
		_, n, ok := c.MostCommon()
		assert.False(t, ok)
		assert.Zero(t, n)
	})

	t.Run("clear winner", func(t *testing.T) {
		c := NewCounter[rune]()
		c.AddAll([]rune("HELLO")...)
		got, n, ok := c.MostCommon()
		require.True(t, ok)
		assert.Equal(t, 'L', got)
		assert.Equal(t, 2, n)
	})

	t.Run("tie goes to first seen", func(t *testing.T) {
		c := NewCounter[rune]()
		c.AddAll([]rune("ZYXZYX")...)
		got, _, ok := c.MostCommon()
		require.True(t, ok)
		assert.Equal(t, 'Z', got)
	})

	t.Run("tie between late leader and early value", func(t *testing.T) {
		c := NewCounter[int]()
		c.AddAll(3, 2, 2, 3)
		got, n, _ := c.MostCommon()
		assert.Equal(t, 3, got)
		assert.Equal(t, 2, n)
	})
}

func TestCounter_KeysAndCount(t *testing.T) {
	c := NewCounter[string]()
	c.AddAll("b", "a", "b", "c")

	assert.Equal(t, []string{"b", "a", "c"}, c.Keys())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Count("b"))
	assert.Equal(t, 0, c.Count("z"))

	keys := c.Keys()
	keys[0] = "mutated"
	assert.Equal(t, "b", c.Keys()[0], "Keys must return a copy")
}

func TestIndexOfCoincidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"all identical", "AAAA", 1.0},
		{"single letter", "A", 0.0},
		{"empty", "", 0.0},
		{"only punctuation", "!!  ,,", 0.0},
		{"all distinct", "ABCD", 0.0},
		{"two pairs", "AABB", 4.0 / 12.0},
		{"case and punctuation ignored", "a a, B-b", 4.0 / 12.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, IndexOfCoincidence(tt.text), 1e-12)
		})
	}
}

func TestIndexOfCoincidence_Range(t *testing.T) {
	texts := []string{
		"The quick brown fox jumps over the lazy dog",
		"ZZZZZZZZZZZZY",
		"lxfopvefrnhr",
	}
	for _, text := range texts {
		ic := IndexOfCoincidence(text)
		assert.GreaterOrEqual(t, ic, 0.0)
		assert.LessOrEqual(t, ic, 1.0)
	}
}

func TestColumns(t *testing.T) {
	cols, err := Columns("attack at dawn!", 3)
	require.NoError(t, err)
	// ATTACKATDAWN, every third letter from offsets 0, 1 and 2
	assert.Equal(t, []string{"AAAA", "TCTW", "TKDN"}, cols)
}

func TestColumns_Reconstruct(t *testing.T) {
	text := "Vigenere ciphers hide letter frequencies, mostly."
	normalized := "VIGENERECIPHERSHIDELETTERFREQUENCIESMOSTLY"

	for n := 1; n <= 12; n++ {
		cols, err := Columns(text, n)
		require.NoError(t, err)
		require.Len(t, cols, n)

		total := 0
		for _, c := range cols {
			total += utf8.RuneCountInString(c)
		}
		assert.Equal(t, len(normalized), total, "column lengths must sum to text length (n=%d)", n)
		assert.Equal(t, normalized, Interleave(cols), "interleave must reconstruct text (n=%d)", n)
	}
}

func TestColumns_LongerThanText(t *testing.T) {
	cols, err := Columns("abc", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "", ""}, cols)
}

func TestColumns_InvalidLength(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Columns("abc", n)
		require.Error(t, err)
		assert.True(t, errors.Is(err, classical.ErrInvalidParameter))
	}
}
