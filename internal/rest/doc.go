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

// Package rest provides the HTTP JSON API over the cipher pipeline.
//
// Endpoints:
//
//	GET  /health                       overall status and version
//	GET  /health/live                  liveness probe
//	GET  /health/ready                 readiness probe (cipher self-tests)
//	GET  /health/startup               startup probe
//	GET  /metrics                      Prometheus scrape endpoint, when enabled
//	POST /api/v1/vigenere/encrypt      {"text", "key"}
//	POST /api/v1/vigenere/decrypt      {"text", "key"}
//	POST /api/v1/vigenere/friedman     {"text", "threshold", "max_key_length"}
//	POST /api/v1/vigenere/kasiski      {"text", "min_length", "max_length"}
//	POST /api/v1/railfence/encrypt     {"text", "rails"}
//	POST /api/v1/railfence/decrypt     {"text", "rails", "offset"}
//	POST /api/v1/analysis/ic           {"text"}
//
// Errors are returned as {"error", "message", "code"}. Invalid parameters
// map to 400, an undeterminable key length or an empty column to 422, and
// anything else to 500.
//
// Every request carries a correlation ID taken from X-Correlation-ID or
// X-Request-ID, or generated, which is echoed in the X-Correlation-ID
// response header and attached to every log record of the request.
package rest
