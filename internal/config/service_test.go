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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-classical/pkg/pipeline"
)

func TestConfig_NewLogger(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "json"

	var buf bytes.Buffer
	logger, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("hello", "key", "value")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	cfg.Logging.Level = "loud"
	_, err = cfg.NewLogger(&buf)
	assert.Error(t, err)
}

func TestConfig_ServiceConfig(t *testing.T) {
	cfg := Default()
	cfg.Analysis.FoldDiacritics = true
	cfg.Analysis.Friedman.MaxKeyLength = 12
	cfg.Analysis.Kasiski.MaxSequenceLength = 8

	sc := cfg.ServiceConfig(nil)
	assert.True(t, sc.FoldDiacritics)
	assert.Equal(t, cfg.Analysis.MaxTextLength, sc.MaxTextLength)
	assert.Equal(t, 0.07, sc.Friedman.Threshold)
	assert.Equal(t, 12, sc.Friedman.MaxKeyLength)
	assert.Equal(t, 3, sc.Kasiski.MinLength)
	assert.Equal(t, 8, sc.Kasiski.MaxLength)

	_, err := pipeline.NewService(sc)
	assert.NoError(t, err)
}
