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

package classical

import "errors"

var (
	// ErrIndeterminateKeyLength is returned when a key-length search finishes
	// without a candidate: the Friedman search exhausted its maximum length
	// without any column reaching the threshold, or the Kasiski period set
	// was empty.
	ErrIndeterminateKeyLength = errors.New("classical: unable to determine key length")

	// ErrEmptyColumn is returned when a column of a subsequence decomposition
	// contains no letters, which leaves its most frequent letter undefined.
	ErrEmptyColumn = errors.New("classical: empty column in subsequence decomposition")

	// ErrInvalidParameter is returned for parameters outside the domain of an
	// operation, such as fewer than two rails or a key length below one.
	ErrInvalidParameter = errors.New("classical: invalid parameter")
)
