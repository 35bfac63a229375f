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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jeremyhahn/go-classical/pkg/health"
	"github.com/jeremyhahn/go-classical/pkg/pipeline"
)

// HandlerContext holds dependencies for HTTP handlers.
type HandlerContext struct {
	service *pipeline.Service
	health  *health.Checker
	version string
}

// NewHandlerContext creates a new handler context.
func NewHandlerContext(service *pipeline.Service, checker *health.Checker, version string) *HandlerContext {
	if checker == nil {
		checker = health.NewChecker()
	}
	return &HandlerContext{
		service: service,
		health:  checker,
		version: version,
	}
}

// decodeRequest reads a JSON body into v. Unknown fields are rejected.
func decodeRequest(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: request body exceeds %d bytes", ErrInvalidRequest, maxErr.Limit)
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// VigenereEncryptHandler handles POST /api/v1/vigenere/encrypt.
func (h *HandlerContext) VigenereEncryptHandler(w http.ResponseWriter, r *http.Request) {
	var req VigenereRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, err)
		return
	}

	result, err := h.service.EncryptVigenere(r.Context(), req.Text, req.Key)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// VigenereDecryptHandler handles POST /api/v1/vigenere/decrypt.
func (h *HandlerContext) VigenereDecryptHandler(w http.ResponseWriter, r *http.Request) {
	var req VigenereRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, err)
		return
	}

	result, err := h.service.DecryptVigenere(r.Context(), req.Text, req.Key)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// FriedmanHandler handles POST /api/v1/vigenere/friedman.
func (h *HandlerContext) FriedmanHandler(w http.ResponseWriter, r *http.Request) {
	var req FriedmanRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, err)
		return
	}

	result, err := h.service.BreakFriedman(r.Context(), req.Text, pipeline.FriedmanParams{
		Threshold:    req.Threshold,
		MaxKeyLength: req.MaxKeyLength,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// KasiskiHandler handles POST /api/v1/vigenere/kasiski.
func (h *HandlerContext) KasiskiHandler(w http.ResponseWriter, r *http.Request) {
	var req KasiskiRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, err)
		return
	}

	result, err := h.service.BreakKasiski(r.Context(), req.Text, pipeline.KasiskiParams{
		MinLength: req.MinLength,
		MaxLength: req.MaxLength,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// RailFenceEncryptHandler handles POST /api/v1/railfence/encrypt.
func (h *HandlerContext) RailFenceEncryptHandler(w http.ResponseWriter, r *http.Request) {
	var req RailFenceRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, err)
		return
	}

	result, err := h.service.EncryptRailFence(r.Context(), req.Text, req.Rails)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// RailFenceDecryptHandler handles POST /api/v1/railfence/decrypt.
func (h *HandlerContext) RailFenceDecryptHandler(w http.ResponseWriter, r *http.Request) {
	var req RailFenceRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, err)
		return
	}

	result, err := h.service.DecryptRailFence(r.Context(), req.Text, req.Rails, req.Offset)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}

// CoincidenceHandler handles POST /api/v1/analysis/ic.
func (h *HandlerContext) CoincidenceHandler(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, err)
		return
	}

	result, err := h.service.IndexOfCoincidence(r.Context(), req.Text)
	if err != nil {
		handleError(w, err)
		return
	}
	writeJSON(w, result, http.StatusOK)
}
