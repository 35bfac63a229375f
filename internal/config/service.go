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

package config

import (
	"io"

	"github.com/jeremyhahn/go-classical/pkg/classical/friedman"
	"github.com/jeremyhahn/go-classical/pkg/classical/kasiski"
	"github.com/jeremyhahn/go-classical/pkg/logging"
	"github.com/jeremyhahn/go-classical/pkg/pipeline"
)

// NewLogger builds a logger from the logging section, writing to out.
func (c *Config) NewLogger(out io.Writer) (*logging.Logger, error) {
	return logging.New(logging.Options{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: out,
	})
}

// ServiceConfig maps the analysis section onto a pipeline configuration.
func (c *Config) ServiceConfig(logger *logging.Logger) *pipeline.ServiceConfig {
	return &pipeline.ServiceConfig{
		Logger:         logger,
		FoldDiacritics: c.Analysis.FoldDiacritics,
		MaxTextLength:  c.Analysis.MaxTextLength,
		Friedman: friedman.Options{
			Threshold:    c.Analysis.Friedman.ICThreshold,
			MaxKeyLength: c.Analysis.Friedman.MaxKeyLength,
		},
		Kasiski: kasiski.Options{
			MinLength: c.Analysis.Kasiski.MinSequenceLength,
			MaxLength: c.Analysis.Kasiski.MaxSequenceLength,
		},
	}
}
