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

// Package frequency implements the letter statistics shared by the
// cryptanalysis packages: an insertion-ordered tally, the index of
// coincidence, and the column decomposition of a text for a trial key length.
package frequency

// Counter tallies occurrences of comparable values and remembers the order in
// which each value was first added.
//
// MostCommon breaks ties in favour of the value added first. Both attacks
// depend on this rule: the letter chosen for a key column and the factor
// chosen as key length are defined by it.
type Counter[K comparable] struct {
	counts map[K]int
	order  []K
}

// NewCounter returns an empty Counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Add records one occurrence of k.
func (c *Counter[K]) Add(k K) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

// AddAll records one occurrence of every element of ks, in order.
func (c *Counter[K]) AddAll(ks ...K) {
	for _, k := range ks {
		c.Add(k)
	}
}

// Count returns the number of occurrences of k.
func (c *Counter[K]) Count(k K) int {
	return c.counts[k]
}

// Len returns the number of distinct values.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// Keys returns the distinct values in first-seen order.
func (c *Counter[K]) Keys() []K {
	keys := make([]K, len(c.order))
	copy(keys, c.order)
	return keys
}

// MostCommon returns the value with the highest count and that count.
// The boolean is false when the counter is empty.
func (c *Counter[K]) MostCommon() (K, int, bool) {
	var (
		best  K
		count int
	)
	for _, k := range c.order {
		if n := c.counts[k]; n > count {
			best, count = k, n
		}
	}
	return best, count, count > 0
}
