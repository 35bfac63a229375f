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

package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-classical/internal/config"
	"github.com/jeremyhahn/go-classical/pkg/correlation"
	"github.com/jeremyhahn/go-classical/pkg/health"
	"github.com/jeremyhahn/go-classical/pkg/logging"
	"github.com/jeremyhahn/go-classical/pkg/pipeline"
)

func newTestServer(t *testing.T, mutate func(*Config)) (*Server, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: logging.FormatJSON, Output: &buf})
	require.NoError(t, err)

	svc, err := pipeline.NewService(&pipeline.ServiceConfig{Logger: logger})
	require.NoError(t, err)

	cfg := &Config{
		Service:        svc,
		Logger:         logger,
		Version:        "test",
		MetricsEnabled: true,
	}
	if mutate != nil {
		mutate(cfg)
	}

	server, err := NewServer(cfg)
	require.NoError(t, err)
	return server, &buf
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewServer(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewServer(nil)
		assert.Error(t, err)
	})

	t.Run("missing service", func(t *testing.T) {
		_, err := NewServer(&Config{})
		assert.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		server, _ := newTestServer(t, nil)
		assert.Equal(t, ":8080", server.Addr())
		assert.Equal(t, 15*time.Second, server.server.ReadTimeout)
		assert.Equal(t, "/metrics", server.config.MetricsPath)
		assert.Equal(t, int64(2<<20), server.config.MaxBodyBytes)
	})

	t.Run("host and port", func(t *testing.T) {
		server, _ := newTestServer(t, func(c *Config) {
			c.Host = "127.0.0.1"
			c.Port = 9191
		})
		assert.Equal(t, "127.0.0.1:9191", server.Addr())
	})
}

func TestVigenereEndpoints(t *testing.T) {
	server, _ := newTestServer(t, nil)
	h := server.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/vigenere/encrypt",
		`{"text":"attack at dawn","key":"lemon"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var encrypted pipeline.TextResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &encrypted))
	assert.Equal(t, "lxfopv ef rnhr", encrypted.Text)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/vigenere/decrypt",
		`{"text":"lxfopv ef rnhr","key":"lemon"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var decrypted pipeline.TextResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decrypted))
	assert.Equal(t, "ATTACKATDAWN", decrypted.Text)
}

func TestFriedmanEndpoint(t *testing.T) {
	server, _ := newTestServer(t, nil)
	h := server.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/vigenere/friedman", `{"text":"aaaa bbbb"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		KeyLength int    `json:"key_length"`
		Key       string `json:"key"`
		Plaintext string `json:"plaintext"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.KeyLength)
	assert.Equal(t, "W", result.Key)
	assert.Equal(t, "EEEEFFFF", result.Plaintext)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/vigenere/friedman",
		`{"text":"abcdefghijklmnopqrstuvwxyz"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "indeterminate_key_length", errResp.Error)
	assert.Equal(t, http.StatusUnprocessableEntity, errResp.Code)
	assert.Contains(t, errResp.Message, "unable to determine key length")

	rec = doJSON(t, h, http.MethodPost, "/api/v1/vigenere/friedman",
		`{"text":"aaaa","threshold":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKasiskiEndpoint(t *testing.T) {
	server, _ := newTestServer(t, nil)
	h := server.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/vigenere/kasiski", `{"text":"abcabc"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/vigenere/kasiski",
		`{"text":"abcabc","min_length":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRailFenceEndpoints(t *testing.T) {
	server, _ := newTestServer(t, nil)
	h := server.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/railfence/encrypt",
		`{"text":"WEAREDISCOVEREDFLEEATONCE","rails":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var encrypted pipeline.TextResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &encrypted))
	assert.Equal(t, "WECRL TEERD SOEEF EAOCA IVDEN", encrypted.Text)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/railfence/decrypt",
		`{"text":"LOELWRDHOL","rails":3,"offset":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var decrypted pipeline.TextResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decrypted))
	assert.Equal(t, "HELLOWORLD", decrypted.Text)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/railfence/encrypt", `{"text":"HELLO","rails":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCoincidenceEndpoint(t *testing.T) {
	server, _ := newTestServer(t, nil)

	rec := doJSON(t, server.Handler(), http.MethodPost, "/api/v1/analysis/ic", `{"text":"AABB, cc!"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result pipeline.CoincidenceResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.InDelta(t, 0.2, result.IndexOfCoincidence, 1e-9)
	assert.Equal(t, 6, result.Letters)
}

func TestRequestDecoding(t *testing.T) {
	server, _ := newTestServer(t, func(c *Config) { c.MaxBodyBytes = 64 })
	h := server.Handler()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"text":`},
		{"unknown field", `{"text":"abc","key":"k","extra":true}`},
		{"wrong type", `{"text":42,"key":"k"}`},
		{"body too large", `{"text":"` + strings.Repeat("a", 128) + `","key":"k"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/v1/vigenere/encrypt", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, "invalid_request", errResp.Error)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server, _ := newTestServer(t, nil)

	rec := doJSON(t, server.Handler(), http.MethodGet, "/api/v1/vigenere/encrypt", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	server, _ := newTestServer(t, nil)
	h := server.Handler()

	rec := doJSON(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var healthResp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &healthResp))
	assert.Equal(t, health.StatusHealthy, healthResp.Status)
	assert.Equal(t, "test", healthResp.Version)
	assert.NotEmpty(t, healthResp.Uptime)

	rec = doJSON(t, h, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ready HealthCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ready))
	assert.Equal(t, health.StatusHealthy, ready.Status)
	require.Len(t, ready.Checks, 2)
	assert.Equal(t, "vigenere", ready.Checks[0].Name)
	assert.Equal(t, "railfence", ready.Checks[1].Name)

	rec = doJSON(t, h, http.MethodGet, "/health/startup", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	server.handlers.health.MarkStarted()
	rec = doJSON(t, h, http.MethodGet, "/health/startup", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		server, _ := newTestServer(t, nil)
		doJSON(t, server.Handler(), http.MethodPost, "/api/v1/analysis/ic", `{"text":"abc"}`)

		rec := doJSON(t, server.Handler(), http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "classical_http_requests_total")
	})

	t.Run("disabled", func(t *testing.T) {
		server, _ := newTestServer(t, func(c *Config) { c.MetricsEnabled = false })
		rec := doJSON(t, server.Handler(), http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCorrelationID(t *testing.T) {
	server, buf := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/ic", strings.NewReader(`{"text":"abc"}`))
	req.Header.Set(correlation.CorrelationIDHeader, "req-123")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(correlation.CorrelationIDHeader))
	assert.Contains(t, buf.String(), `"correlation_id":"req-123"`)

	rec = doJSON(t, server.Handler(), http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get(correlation.CorrelationIDHeader))
}

func TestServerStartStop(t *testing.T) {
	server, _ := newTestServer(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(ln) }()

	url := "http://" + ln.Addr().String() + "/health/startup"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, server.Stop(ctx))
	assert.NoError(t, <-errCh)
}

func TestNewConfigFromSettings(t *testing.T) {
	settings := config.Default()
	settings.Server.Host = "localhost"
	settings.Server.Port = 9000
	settings.Metrics.Enabled = false

	cfg := NewConfig(settings, nil, nil, "1.0.0")
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Greater(t, cfg.MaxBodyBytes, int64(settings.Analysis.MaxTextLength))
}

func TestServerRun(t *testing.T) {
	server, _ := newTestServer(t, func(c *Config) {
		c.Host = "127.0.0.1"
		c.Port = freePort(t)
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- server.Run(ctx, time.Second) }()

	url := "http://" + server.Addr() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}
