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
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-classical/pkg/classical"
	"github.com/jeremyhahn/go-classical/pkg/classical/alphabet"
)

// IndexOfCoincidence returns the probability that two letters drawn without
// replacement from text are identical:
//
//	Σ f·(f−1) / (n·(n−1))
//
// Only letters count, case-insensitively. Texts with fewer than two letters
// have an index of 0.
func IndexOfCoincidence(text string) float64 {
	var (
		counts [alphabet.Size]int
		n      int
	)
	for _, r := range text {
		if i, ok := alphabet.Index(r); ok {
			counts[i]++
			n++
		}
	}
	if n < 2 {
		return 0.0
	}

	var sum int
	for _, f := range counts {
		sum += f * (f - 1)
	}
	return float64(sum) / float64(n*(n-1))
}

// Columns splits the normalized letters of text into keyLength columns.
// Column c holds every keyLength-th letter starting at offset c, so a text
// encrypted with a periodic key of that length yields one single-shift
// alphabet per column.
func Columns(text string, keyLength int) ([]string, error) {
	if keyLength < 1 {
		return nil, fmt.Errorf("%w: key length must be at least 1, got %d",
			classical.ErrInvalidParameter, keyLength)
	}

	letters := []rune(alphabet.Upper(text))
	builders := make([]strings.Builder, keyLength)
	for i, r := range letters {
		builders[i%keyLength].WriteRune(r)
	}

	columns := make([]string, keyLength)
	for i := range builders {
		columns[i] = builders[i].String()
	}
	return columns, nil
}

// Interleave reassembles columns produced by Columns into the normalized text.
func Interleave(columns []string) string {
	cols := make([][]rune, len(columns))
	total := 0
	for i, c := range columns {
		cols[i] = []rune(c)
		total += len(cols[i])
	}

	out := make([]rune, 0, total)
	for row := 0; len(out) < total; row++ {
		for _, c := range cols {
			if row < len(c) {
				out = append(out, c[row])
			}
		}
	}
	return string(out)
}
