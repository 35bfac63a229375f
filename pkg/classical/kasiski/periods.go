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
	"github.com/jeremyhahn/go-classical/pkg/classical"
	"github.com/jeremyhahn/go-classical/pkg/classical/frequency"
)

// Period holds the distances between consecutive recorded offsets of a
// repeated substring.
type Period struct {
	Sequence  string `json:"sequence"`
	Distances []int  `json:"distances"`
}

// PeriodSet is the ordered collection of periods derived from a
// RepeatedSequences.
type PeriodSet struct {
	entries []Period
}

// Len returns the number of substrings with periods.
func (p *PeriodSet) Len() int {
	return len(p.entries)
}

// Distances returns the distances recorded for sequence, or nil.
func (p *PeriodSet) Distances(sequence string) []int {
	for _, e := range p.entries {
		if e.Sequence == sequence {
			return append([]int(nil), e.Distances...)
		}
	}
	return nil
}

// Entries returns a copy of every period in order.
func (p *PeriodSet) Entries() []Period {
	out := make([]Period, len(p.entries))
	for i, e := range p.entries {
		out[i] = Period{Sequence: e.Sequence, Distances: append([]int(nil), e.Distances...)}
	}
	return out
}

// FindPeriods computes, for every substring with at least two recorded
// offsets, the differences between consecutive offsets.
func FindPeriods(sequences *RepeatedSequences) *PeriodSet {
	set := &PeriodSet{}
	if sequences == nil {
		return set
	}
	for _, e := range sequences.entries {
		if len(e.Offsets) < 2 {
			continue
		}
		distances := make([]int, len(e.Offsets)-1)
		for i := range distances {
			distances[i] = e.Offsets[i+1] - e.Offsets[i]
		}
		set.entries = append(set.entries, Period{Sequence: e.Text, Distances: distances})
	}
	return set
}

// Factorize returns the prime factors of n in ascending order, with
// multiplicity. Numbers below 2 have no factors.
func Factorize(n int) []int {
	var factors []int
	for d := 2; d*d <= n; d++ {
		for n%d == 0 {
			factors = append(factors, d)
			n /= d
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// MostCommonFactor factorizes every distance in periods and returns the
// prime that occurs most often. Ties go to the prime tallied first, in
// period order. When no distance has a prime factor the key length cannot
// be determined and ErrIndeterminateKeyLength is returned.
func MostCommonFactor(periods *PeriodSet) (int, error) {
	votes := frequency.NewCounter[int]()
	if periods != nil {
		for _, e := range periods.entries {
			for _, d := range e.Distances {
				votes.AddAll(Factorize(d)...)
			}
		}
	}

	factor, _, ok := votes.MostCommon()
	if !ok {
		return 0, classical.ErrIndeterminateKeyLength
	}
	return factor, nil
}
