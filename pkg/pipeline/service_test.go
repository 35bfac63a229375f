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
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-classical/pkg/classical"
	"github.com/jeremyhahn/go-classical/pkg/classical/friedman"
	"github.com/jeremyhahn/go-classical/pkg/classical/kasiski"
	"github.com/jeremyhahn/go-classical/pkg/correlation"
	"github.com/jeremyhahn/go-classical/pkg/logging"
	"github.com/jeremyhahn/go-classical/pkg/metrics"
	"github.com/jeremyhahn/go-classical/pkg/validation"
)

const twoCities = `It was the best of times, it was the worst of times, it was the age of wisdom, it was the age of foolishness, it was the epoch of belief, it was the epoch of incredulity, it was the season of Light, it was the season of Darkness, it was the spring of hope, it was the winter of despair, we had everything before us, we had nothing before us, we were all going direct to Heaven, we were all going direct the other way. In short, the period was so far like the present period, that some of its noisiest authorities insisted on its being received, for good or for evil, in the superlative degree of comparison only. There were a king with a large jaw and a queen with a plain face, on the throne of England; there were a king with a large jaw and a queen with a fair face, on the throne of France. In both countries it was clearer than crystal to the lords of the State preserves of loaves and fishes, that things in general were settled for ever.`

func newTestService(t *testing.T, config *ServiceConfig) (*Service, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	if config == nil {
		config = &ServiceConfig{}
	}
	config.Logger = logger

	svc, err := NewService(config)
	require.NoError(t, err)
	return svc, &buf
}

func TestNewService(t *testing.T) {
	_, err := NewService(nil)
	assert.ErrorIs(t, err, ErrNilConfig)

	svc, err := NewService(&ServiceConfig{})
	require.NoError(t, err)
	assert.Equal(t, friedman.DefaultOptions(), svc.friedman)
	assert.Equal(t, kasiski.Options{
		MinLength: kasiski.DefaultMinLength,
		MaxLength: validation.DefaultMaxSequenceLength,
	}, svc.kasiski)

	_, err = NewService(&ServiceConfig{Friedman: friedman.Options{Threshold: 2}})
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)

	_, err = NewService(&ServiceConfig{Kasiski: kasiski.Options{MinLength: 5, MaxLength: 4}})
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)
}

func TestService_Vigenere(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	encrypted, err := svc.EncryptVigenere(ctx, "attack at dawn", "lemon")
	require.NoError(t, err)
	assert.Equal(t, "lxfopv ef rnhr", encrypted.Text)

	decrypted, err := svc.DecryptVigenere(ctx, encrypted.Text, "lemon")
	require.NoError(t, err)
	assert.Equal(t, "ATTACKATDAWN", decrypted.Text)

	_, err = svc.EncryptVigenere(ctx, "attack", "")
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)

	_, err = svc.EncryptVigenere(ctx, "attack", "key1")
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)
}

func TestService_FoldDiacritics(t *testing.T) {
	plain, _ := newTestService(t, nil)
	folding, _ := newTestService(t, &ServiceConfig{FoldDiacritics: true})
	ctx := context.Background()

	result, err := plain.EncryptVigenere(ctx, "café", "b")
	require.NoError(t, err)
	assert.Equal(t, "dbgé", result.Text)

	result, err = folding.EncryptVigenere(ctx, "café", "b")
	require.NoError(t, err)
	assert.Equal(t, "dbgf", result.Text)

	result, err = folding.EncryptVigenere(ctx, "cafe", "clé")
	require.NoError(t, err)
	assert.Equal(t, "eljg", result.Text)
}

func TestService_BreakFriedman(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	ciphertext, err := svc.EncryptVigenere(ctx, twoCities, "lemon")
	require.NoError(t, err)

	result, err := svc.BreakFriedman(ctx, ciphertext.Text, FriedmanParams{})
	require.NoError(t, err)
	assert.Equal(t, 5, result.KeyLength)
	assert.Len(t, result.ColumnIC, 5)

	_, err = svc.BreakFriedman(ctx, "abc", FriedmanParams{})
	assert.ErrorIs(t, err, classical.ErrIndeterminateKeyLength)

	_, err = svc.BreakFriedman(ctx, ciphertext.Text, FriedmanParams{Threshold: 1.5})
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)
}

func TestService_BreakKasiski(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	ciphertext, err := svc.EncryptVigenere(ctx, twoCities, "abc")
	require.NoError(t, err)

	result, err := svc.BreakKasiski(ctx, ciphertext.Text, KasiskiParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.KeyLength)
	assert.Equal(t, "ABC", result.Key)
	assert.True(t, strings.HasPrefix(result.Plaintext, "ITWASTHEBESTOFTIMES"))

	_, err = svc.BreakKasiski(ctx, "ABCDEFGHIJ", KasiskiParams{})
	assert.ErrorIs(t, err, classical.ErrIndeterminateKeyLength)

	_, err = svc.BreakKasiski(ctx, "ABCABC", KasiskiParams{MinLength: 4, MaxLength: 3})
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)
}

func TestService_BreakKasiski_Bounds(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	long := strings.Repeat("ABCDEFGHIJKLMNOPQRSTUVWXYZ", validation.MaxKasiskiTextLength/26+1)
	_, err := svc.BreakKasiski(ctx, long, KasiskiParams{})
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)

	_, err = svc.BreakKasiski(ctx, "ABCABC", KasiskiParams{MaxLength: validation.MaxSequenceLength + 1})
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)

	// No repeat in this text reaches the default cap.
	ciphertext, err := svc.EncryptVigenere(ctx, twoCities, "dog")
	require.NoError(t, err)
	capped, err := svc.BreakKasiski(ctx, ciphertext.Text, KasiskiParams{})
	require.NoError(t, err)
	uncapped, err := kasiski.Break(ciphertext.Text, kasiski.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, uncapped.Sequences, capped.Sequences)
	assert.Equal(t, "DOG", capped.Key)
}

func TestService_RailFence(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	encrypted, err := svc.EncryptRailFence(ctx, "WE ARE DISCOVERED FLEE AT ONCE", 3)
	require.NoError(t, err)
	assert.Equal(t, "WECRL TEERD SOEEF EAOCA IVDEN", encrypted.Text)

	decrypted, err := svc.DecryptRailFence(ctx, encrypted.Text, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, "WEAREDISCOVEREDFLEEATONCE", decrypted.Text)

	decrypted, err = svc.DecryptRailFence(ctx, "LOELWRDHOL", 3, 2)
	require.NoError(t, err)
	assert.Equal(t, "HELLOWORLD", decrypted.Text)

	_, err = svc.EncryptRailFence(ctx, "HELLO", 1)
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)

	_, err = svc.DecryptRailFence(ctx, "HELLO", 3, -2)
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)
}

func TestService_IndexOfCoincidence(t *testing.T) {
	svc, _ := newTestService(t, nil)

	result, err := svc.IndexOfCoincidence(context.Background(), "AABB, cc!")
	require.NoError(t, err)
	assert.Equal(t, 6, result.Letters)
	assert.InDelta(t, 0.2, result.IndexOfCoincidence, 1e-9)
}

func TestService_TextLimit(t *testing.T) {
	svc, _ := newTestService(t, &ServiceConfig{MaxTextLength: 8})

	_, err := svc.IndexOfCoincidence(context.Background(), "abcdefghi")
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)

	_, err = svc.EncryptRailFence(context.Background(), "abc\x00", 3)
	assert.ErrorIs(t, err, classical.ErrInvalidParameter)
}

func TestService_CanceledContext(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.EncryptVigenere(ctx, "attack", "lemon")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_LogsCorrelationID(t *testing.T) {
	svc, buf := newTestService(t, nil)
	ctx := correlation.WithCorrelationID(context.Background(), "cli-42")

	_, err := svc.EncryptRailFence(ctx, "HELLO", 2)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"operation started"`)
	assert.Contains(t, out, `"msg":"operation completed"`)
	assert.Contains(t, out, `"correlation_id":"cli-42"`)
	assert.Contains(t, out, `"cipher":"railfence"`)

	buf.Reset()
	_, err = svc.EncryptRailFence(context.Background(), "HELLO", 2)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"correlation_id":"`)
}

func TestService_RecordsMetrics(t *testing.T) {
	metrics.Enable()
	metrics.OperationsTotal.Reset()
	metrics.ErrorsTotal.Reset()
	metrics.KeyLength.Reset()

	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.EncryptVigenere(ctx, "attack at dawn", "lemon")
	require.NoError(t, err)
	_, err = svc.DecryptRailFence(ctx, "HELLO", 1, 0)
	require.Error(t, err)

	ciphertext, err := svc.EncryptVigenere(ctx, twoCities, "dog")
	require.NoError(t, err)
	_, err = svc.BreakKasiski(ctx, ciphertext.Text, KasiskiParams{})
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(
		metrics.OperationsTotal.WithLabelValues(metrics.OpEncrypt, metrics.CipherVigenere, metrics.StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.OperationsTotal.WithLabelValues(metrics.OpDecrypt, metrics.CipherRailFence, metrics.StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.ErrorsTotal.WithLabelValues(metrics.OpDecrypt, metrics.CipherRailFence, "invalid_parameter")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.KeyLength))
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("wrapped: %w", classical.ErrInvalidParameter), "invalid_parameter"},
		{classical.ErrIndeterminateKeyLength, "indeterminate_key_length"},
		{classical.ErrEmptyColumn, "empty_column"},
		{context.DeadlineExceeded, "canceled"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorType(tt.err))
	}
}

func TestService_Concurrent(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	errs := make(chan error, 16)
	for i := 0; i < cap(errs); i++ {
		go func() {
			result, err := svc.EncryptRailFence(ctx, "WEAREDISCOVERED", 3)
			if err == nil && result.Text != "WECRE RDSOE EAIVD" {
				err = fmt.Errorf("unexpected ciphertext %q", result.Text)
			}
			errs <- err
		}()
	}
	for i := 0; i < cap(errs); i++ {
		assert.NoError(t, <-errs)
	}
}
