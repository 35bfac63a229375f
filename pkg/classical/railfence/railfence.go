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

// Package railfence implements the rail fence transposition cipher.
//
// The message is written in a zigzag across a number of rails and read off
// rail by rail. Decryption accepts an offset: the number of columns of the
// zigzag that were consumed before the message began, which is how a
// fragment cut from the middle of a longer fence is recovered.
package railfence

import (
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-classical/pkg/classical"
)

// GroupSize is the number of runes per group in formatted ciphertext.
const GroupSize = 5

// MinRails is the smallest usable number of rails.
const MinRails = 2

// Rows returns the rail visited by each of width consecutive columns of a
// zigzag over rails rails, starting on the top rail.
func Rows(rails, width int) []int {
	rows := make([]int, width)
	if rails < MinRails {
		return rows
	}
	row, step := 0, 1
	for x := range rows {
		rows[x] = row
		if row == 0 {
			step = 1
		} else if row == rails-1 {
			step = -1
		}
		row += step
	}
	return rows
}

// Encrypt removes spaces from message, enciphers it over rails rails and
// formats the result in groups of GroupSize runes.
func Encrypt(message string, rails int) (string, error) {
	raw, err := EncryptRaw(message, rails)
	if err != nil {
		return "", err
	}
	return Group(raw, GroupSize), nil
}

// EncryptRaw is Encrypt without the grouping.
func EncryptRaw(message string, rails int) (string, error) {
	if err := checkRails(rails); err != nil {
		return "", err
	}

	text := []rune(strings.ReplaceAll(message, " ", ""))
	lines := make([][]rune, rails)
	for x, row := range Rows(rails, len(text)) {
		lines[row] = append(lines[row], text[x])
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, line := range lines {
		b.WriteString(string(line))
	}
	return b.String(), nil
}

// Group inserts a space after every size runes of s.
func Group(s string, size int) string {
	text := []rune(s)
	if size < 1 || len(text) <= size {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(text)/size)
	for i, r := range text {
		if i > 0 && i%size == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Decrypt reverses Encrypt. Spaces in ciphertext are ignored, so grouped
// output can be passed back directly. A positive offset treats the
// ciphertext as the tail of a fence whose first offset columns are missing.
func Decrypt(ciphertext string, rails, offset int) (string, error) {
	if err := checkRails(rails); err != nil {
		return "", err
	}
	if offset < 0 {
		return "", fmt.Errorf("%w: offset cannot be negative, got %d",
			classical.ErrInvalidParameter, offset)
	}

	text := []rune(strings.ReplaceAll(ciphertext, " ", ""))
	if len(text) == 0 {
		return "", nil
	}

	slots := layout(text, rails, offset%period(rails))
	g := newGrid(rails, len(slots))
	g.fill(slots)
	return g.read(), nil
}

func checkRails(rails int) error {
	if rails < MinRails {
		return fmt.Errorf("%w: rails must be at least %d, got %d",
			classical.ErrInvalidParameter, MinRails, rails)
	}
	return nil
}
