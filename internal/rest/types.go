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
	"github.com/jeremyhahn/go-classical/pkg/health"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  health.Status `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime"`
}

// HealthCheckResponse represents the response for probe endpoints.
type HealthCheckResponse struct {
	Status  health.Status        `json:"status"`
	Message string               `json:"message,omitempty"`
	Checks  []health.CheckResult `json:"checks,omitempty"`
}

// VigenereRequest is the body of the Vigenère encrypt and decrypt endpoints.
type VigenereRequest struct {
	Text string `json:"text"`
	Key  string `json:"key"`
}

// FriedmanRequest is the body of the Friedman attack endpoint.
type FriedmanRequest struct {
	Text         string  `json:"text"`
	Threshold    float64 `json:"threshold,omitempty"`
	MaxKeyLength int     `json:"max_key_length,omitempty"`
}

// KasiskiRequest is the body of the Kasiski attack endpoint.
type KasiskiRequest struct {
	Text      string `json:"text"`
	MinLength int    `json:"min_length,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
}

// RailFenceRequest is the body of the rail fence endpoints. Offset is only
// read by decrypt.
type RailFenceRequest struct {
	Text   string `json:"text"`
	Rails  int    `json:"rails"`
	Offset int    `json:"offset,omitempty"`
}

// TextRequest is the body of the analysis endpoints.
type TextRequest struct {
	Text string `json:"text"`
}
