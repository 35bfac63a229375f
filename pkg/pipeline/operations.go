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

package pipeline

import (
	"context"

	"github.com/jeremyhahn/go-classical/pkg/classical/alphabet"
	"github.com/jeremyhahn/go-classical/pkg/classical/frequency"
	"github.com/jeremyhahn/go-classical/pkg/classical/friedman"
	"github.com/jeremyhahn/go-classical/pkg/classical/kasiski"
	"github.com/jeremyhahn/go-classical/pkg/classical/railfence"
	"github.com/jeremyhahn/go-classical/pkg/classical/vigenere"
	"github.com/jeremyhahn/go-classical/pkg/metrics"
	"github.com/jeremyhahn/go-classical/pkg/validation"
)

// TextResult is the output of an encryption or decryption.
type TextResult struct {
	Text string `json:"text"`
}

// CoincidenceResult is the output of an index of coincidence measurement.
type CoincidenceResult struct {
	IndexOfCoincidence float64 `json:"index_of_coincidence"`
	Letters            int     `json:"letters"`
}

// FriedmanParams overrides the service defaults for one attack. Zero
// values keep the defaults.
type FriedmanParams struct {
	Threshold    float64 `json:"threshold,omitempty"`
	MaxKeyLength int     `json:"max_key_length,omitempty"`
}

// KasiskiParams overrides the service defaults for one attack. Zero values
// keep the defaults.
type KasiskiParams struct {
	MinLength int `json:"min_length,omitempty"`
	MaxLength int `json:"max_length,omitempty"`
}

// EncryptVigenere enciphers text with key.
func (s *Service) EncryptVigenere(ctx context.Context, text, key string) (*TextResult, error) {
	var result *TextResult
	err := s.run(ctx, metrics.OpEncrypt, metrics.CipherVigenere, func() error {
		text, key, err := s.prepareWithKey(text, key)
		if err != nil {
			return err
		}
		ciphertext, err := vigenere.Encrypt(text, key)
		if err != nil {
			return err
		}
		result = &TextResult{Text: ciphertext}
		return nil
	})
	return result, err
}

// DecryptVigenere deciphers text with key.
func (s *Service) DecryptVigenere(ctx context.Context, text, key string) (*TextResult, error) {
	var result *TextResult
	err := s.run(ctx, metrics.OpDecrypt, metrics.CipherVigenere, func() error {
		text, key, err := s.prepareWithKey(text, key)
		if err != nil {
			return err
		}
		plaintext, err := vigenere.Decrypt(text, key)
		if err != nil {
			return err
		}
		result = &TextResult{Text: plaintext}
		return nil
	})
	return result, err
}

// BreakFriedman recovers the key and plaintext of Vigenère ciphertext with
// the Friedman test.
func (s *Service) BreakFriedman(ctx context.Context, text string, params FriedmanParams) (*friedman.Result, error) {
	opts := s.friedman
	if params.Threshold != 0 {
		opts.Threshold = params.Threshold
	}
	if params.MaxKeyLength != 0 {
		opts.MaxKeyLength = params.MaxKeyLength
	}

	var result *friedman.Result
	err := s.run(ctx, metrics.OpBreakFriedman, metrics.CipherVigenere, func() error {
		if err := validation.ValidateThreshold(opts.Threshold); err != nil {
			return err
		}
		if err := validation.ValidateKeyLength(opts.MaxKeyLength); err != nil {
			return err
		}
		text, err := s.prepare(text)
		if err != nil {
			return err
		}
		result, err = friedman.Break(text, opts)
		if err != nil {
			return err
		}
		metrics.RecordKeyLength(metrics.OpBreakFriedman, result.KeyLength)
		return nil
	})
	return result, err
}

// BreakKasiski recovers the key and plaintext of Vigenère ciphertext with
// the Kasiski examination.
func (s *Service) BreakKasiski(ctx context.Context, text string, params KasiskiParams) (*kasiski.Result, error) {
	opts := s.kasiski
	if params.MinLength != 0 {
		opts.MinLength = params.MinLength
	}
	if params.MaxLength != 0 {
		opts.MaxLength = params.MaxLength
	}

	var result *kasiski.Result
	err := s.run(ctx, metrics.OpBreakKasiski, metrics.CipherVigenere, func() error {
		if err := validation.ValidateSequenceLengths(opts.MinLength, opts.MaxLength); err != nil {
			return err
		}
		if err := validation.ValidateKasiskiText(text); err != nil {
			return err
		}
		text, err := s.prepare(text)
		if err != nil {
			return err
		}
		result, err = kasiski.BreakContext(ctx, text, opts)
		if err != nil {
			return err
		}
		metrics.RecordKeyLength(metrics.OpBreakKasiski, result.KeyLength)
		return nil
	})
	return result, err
}

// EncryptRailFence enciphers text over rails rails.
func (s *Service) EncryptRailFence(ctx context.Context, text string, rails int) (*TextResult, error) {
	var result *TextResult
	err := s.run(ctx, metrics.OpEncrypt, metrics.CipherRailFence, func() error {
		if err := validation.ValidateRails(rails); err != nil {
			return err
		}
		text, err := s.prepare(text)
		if err != nil {
			return err
		}
		ciphertext, err := railfence.Encrypt(text, rails)
		if err != nil {
			return err
		}
		result = &TextResult{Text: ciphertext}
		return nil
	})
	return result, err
}

// DecryptRailFence deciphers text over rails rails, treating the first
// offset columns of the fence as missing.
func (s *Service) DecryptRailFence(ctx context.Context, text string, rails, offset int) (*TextResult, error) {
	var result *TextResult
	err := s.run(ctx, metrics.OpDecrypt, metrics.CipherRailFence, func() error {
		if err := validation.ValidateRails(rails); err != nil {
			return err
		}
		if err := validation.ValidateOffset(offset); err != nil {
			return err
		}
		text, err := s.prepare(text)
		if err != nil {
			return err
		}
		plaintext, err := railfence.Decrypt(text, rails, offset)
		if err != nil {
			return err
		}
		result = &TextResult{Text: plaintext}
		return nil
	})
	return result, err
}

// IndexOfCoincidence measures the letter coincidence of text.
func (s *Service) IndexOfCoincidence(ctx context.Context, text string) (*CoincidenceResult, error) {
	var result *CoincidenceResult
	err := s.run(ctx, metrics.OpCoincidence, metrics.CipherNone, func() error {
		text, err := s.prepare(text)
		if err != nil {
			return err
		}
		result = &CoincidenceResult{
			IndexOfCoincidence: frequency.IndexOfCoincidence(text),
			Letters:            len(alphabet.Upper(text)),
		}
		return nil
	})
	return result, err
}

func (s *Service) prepareWithKey(text, key string) (string, string, error) {
	if err := validation.ValidateKey(key); err != nil {
		return "", "", err
	}
	text, err := s.prepare(text)
	if err != nil {
		return "", "", err
	}
	if s.foldDiacritics {
		if key, err = alphabet.Fold(key); err != nil {
			return "", "", err
		}
	}
	return text, key, nil
}
