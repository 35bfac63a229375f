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

// Package classical provides pre-modern substitution and transposition
// ciphers together with the cryptanalysis used to break them.
//
// The algorithms live in subpackages:
//
//   - alphabet:  letter filtering, case normalization and shifts over A-Z
//   - frequency: ordered tallies, index of coincidence, column decomposition
//   - vigenere:  Vigenère encryption and decryption with a known key
//   - friedman:  key-length estimation by index of coincidence
//   - kasiski:   key-length estimation by repeated-sequence periods
//   - railfence: Rail Fence transposition with a decoding offset
//
// # Determinism
//
// Every "most frequent" selection in this module breaks ties in favour of
// the candidate that was seen first. Analysis results therefore depend only
// on the input text, never on map iteration order.
//
// # Security
//
// These are teaching and demonstration algorithms. None of them provide
// confidentiality against a motivated adversary.
package classical
