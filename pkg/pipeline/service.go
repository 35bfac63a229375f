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
	"errors"
	"fmt"
	"time"

	"github.com/jeremyhahn/go-classical/pkg/classical"
	"github.com/jeremyhahn/go-classical/pkg/classical/alphabet"
	"github.com/jeremyhahn/go-classical/pkg/classical/friedman"
	"github.com/jeremyhahn/go-classical/pkg/classical/kasiski"
	"github.com/jeremyhahn/go-classical/pkg/correlation"
	"github.com/jeremyhahn/go-classical/pkg/logging"
	"github.com/jeremyhahn/go-classical/pkg/metrics"
	"github.com/jeremyhahn/go-classical/pkg/validation"
)

// ErrNilConfig is returned by NewService when no configuration is given.
var ErrNilConfig = errors.New("pipeline: config cannot be nil")

// ServiceConfig configures the service. Zero values select the package
// defaults of the underlying ciphers.
type ServiceConfig struct {
	// Logger receives one debug record when an operation starts and one
	// info or error record when it ends.
	Logger *logging.Logger

	// FoldDiacritics strips accents from text and keys before use.
	FoldDiacritics bool

	// MaxTextLength bounds input size in bytes.
	MaxTextLength int

	// Friedman holds the default threshold and key length bound.
	Friedman friedman.Options

	// Kasiski holds the default sequence length bounds. A zero MaxLength
	// selects validation.DefaultMaxSequenceLength.
	Kasiski kasiski.Options
}

// Service runs ciphers and attacks. It holds no mutable state and is safe
// for concurrent use.
type Service struct {
	logger         *logging.Logger
	foldDiacritics bool
	maxTextLength  int
	friedman       friedman.Options
	kasiski        kasiski.Options
}

// NewService validates config and returns a service.
func NewService(config *ServiceConfig) (*Service, error) {
	if config == nil {
		return nil, ErrNilConfig
	}

	s := &Service{
		logger:         config.Logger,
		foldDiacritics: config.FoldDiacritics,
		maxTextLength:  config.MaxTextLength,
		friedman:       config.Friedman,
		kasiski:        config.Kasiski,
	}
	if s.logger == nil {
		s.logger = logging.DefaultLogger()
	}
	if s.maxTextLength <= 0 {
		s.maxTextLength = validation.DefaultMaxTextLength
	}

	defaults := friedman.DefaultOptions()
	if s.friedman.Threshold == 0 {
		s.friedman.Threshold = defaults.Threshold
	}
	if s.friedman.MaxKeyLength == 0 {
		s.friedman.MaxKeyLength = defaults.MaxKeyLength
	}
	if s.kasiski.MinLength == 0 {
		s.kasiski.MinLength = kasiski.DefaultMinLength
	}
	if s.kasiski.MaxLength == 0 {
		s.kasiski.MaxLength = validation.DefaultMaxSequenceLength
	}

	if err := validation.ValidateThreshold(s.friedman.Threshold); err != nil {
		return nil, fmt.Errorf("pipeline: friedman: %w", err)
	}
	if err := validation.ValidateKeyLength(s.friedman.MaxKeyLength); err != nil {
		return nil, fmt.Errorf("pipeline: friedman: %w", err)
	}
	if err := validation.ValidateSequenceLengths(s.kasiski.MinLength, s.kasiski.MaxLength); err != nil {
		return nil, fmt.Errorf("pipeline: kasiski: %w", err)
	}

	return s, nil
}

// prepare validates text and folds diacritics when enabled.
func (s *Service) prepare(text string) (string, error) {
	if err := validation.ValidateText(text, s.maxTextLength); err != nil {
		return "", err
	}
	if !s.foldDiacritics {
		return text, nil
	}
	folded, err := alphabet.Fold(text)
	if err != nil {
		return "", fmt.Errorf("failed to fold diacritics: %w", err)
	}
	return folded, nil
}

// run times fn and reports its outcome to the log and metrics. Records of
// one call share a correlation ID, generated when ctx has none.
func (s *Service) run(ctx context.Context, operation, cipher string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx = correlation.Ensure(ctx)

	s.logger.DebugContext(ctx, "operation started",
		"operation", operation, "cipher", cipher)

	start := time.Now()
	err := fn()
	duration := time.Since(start)

	if err != nil {
		errorType := ErrorType(err)
		metrics.RecordOperation(operation, cipher, metrics.StatusError, duration.Seconds())
		metrics.RecordError(operation, cipher, errorType)
		s.logger.ErrorContext(ctx, "operation failed",
			"operation", operation,
			"cipher", cipher,
			"error_type", errorType,
			"duration", duration,
			"error", err)
		return err
	}

	metrics.RecordOperation(operation, cipher, metrics.StatusSuccess, duration.Seconds())
	s.logger.InfoContext(ctx, "operation completed",
		"operation", operation,
		"cipher", cipher,
		"duration", duration)
	return nil
}

// ErrorType classifies err for metrics and logs.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, classical.ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, classical.ErrIndeterminateKeyLength):
		return "indeterminate_key_length"
	case errors.Is(err, classical.ErrEmptyColumn):
		return "empty_column"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "internal"
}
