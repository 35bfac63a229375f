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
	"context"
	"sort"
)

// Sequence is a repeated substring and the offsets recorded for it.
type Sequence struct {
	Text    string `json:"text"`
	Offsets []int  `json:"offsets"`
}

// RepeatedSequences maps repeated substrings to their recorded offsets and
// keeps substrings in the order they were first recorded. It is read-only
// once returned.
type RepeatedSequences struct {
	entries []Sequence
	index   map[string]int
}

func newRepeatedSequences() *RepeatedSequences {
	return &RepeatedSequences{index: make(map[string]int)}
}

func (r *RepeatedSequences) record(text string, offset, times int) {
	i, ok := r.index[text]
	if !ok {
		i = len(r.entries)
		r.index[text] = i
		r.entries = append(r.entries, Sequence{Text: text})
	}
	for ; times > 0; times-- {
		r.entries[i].Offsets = append(r.entries[i].Offsets, offset)
	}
}

// Len returns the number of distinct repeated substrings.
func (r *RepeatedSequences) Len() int {
	return len(r.entries)
}

// Sequences returns the repeated substrings in first-recorded order.
func (r *RepeatedSequences) Sequences() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Text
	}
	return out
}

// Offsets returns the offsets recorded for text, or nil.
func (r *RepeatedSequences) Offsets(text string) []int {
	i, ok := r.index[text]
	if !ok {
		return nil
	}
	out := make([]int, len(r.entries[i].Offsets))
	copy(out, r.entries[i].Offsets)
	return out
}

// Entries returns a copy of every substring with its offsets.
func (r *RepeatedSequences) Entries() []Sequence {
	out := make([]Sequence, len(r.entries))
	for i, e := range r.entries {
		out[i] = Sequence{Text: e.Text, Offsets: append([]int(nil), e.Offsets...)}
	}
	return out
}

// FindRepeatedSequences searches ciphertext for substrings of at least
// minLength runes that occur again later without overlapping.
func FindRepeatedSequences(ciphertext string, minLength int) (*RepeatedSequences, error) {
	return FindRepeatedSequencesWithOptions(ciphertext, Options{MinLength: minLength})
}

// FindRepeatedSequencesWithOptions is FindRepeatedSequences with an optional
// cap on substring length.
//
// Substring lengths run from MinLength up to, but excluding, half the
// ciphertext length. For every start offset i and every later occurrence of
// the same substring starting at or after i+length, i is recorded once. An
// offset is therefore listed once per later match, and the final occurrence
// of a substring is recorded only if something repeats it afterwards.
func FindRepeatedSequencesWithOptions(ciphertext string, opts Options) (*RepeatedSequences, error) {
	return FindRepeatedSequencesContext(context.Background(), ciphertext, opts)
}

// FindRepeatedSequencesContext is FindRepeatedSequencesWithOptions that
// stops with ctx.Err() when ctx is done before the next length is scanned.
//
// The search ends early at the first length with no repeat: the prefix of a
// longer repeat is itself a repeat, so no longer length can add anything.
func FindRepeatedSequencesContext(ctx context.Context, ciphertext string, opts Options) (*RepeatedSequences, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	text := []rune(ciphertext)
	found := newRepeatedSequences()
	for length := opts.MinLength; length < len(text)/2; length++ {
		if opts.MaxLength > 0 && length > opts.MaxLength {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !scanLength(text, length, found) {
			break
		}
	}
	return found, nil
}

// scanLength records repeats of every substring of the given length and
// reports whether any were found. Start positions are indexed per substring
// so that later occurrences are counted with a binary search instead of
// pairwise comparison.
func scanLength(text []rune, length int, found *RepeatedSequences) bool {
	starts := make(map[string][]int)
	for s := 0; s+length <= len(text); s++ {
		sub := string(text[s : s+length])
		starts[sub] = append(starts[sub], s)
	}

	recorded := false
	for i := 0; i < len(text)-length; i++ {
		sub := string(text[i : i+length])
		positions := starts[sub]
		later := len(positions) - sort.SearchInts(positions, i+length)
		if later > 0 {
			found.record(sub, i, later)
			recorded = true
		}
	}
	return recorded
}
