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

// Package pipeline exposes every cipher and attack as a context-aware
// service method. It is the single entry point used by the command line
// tool and the HTTP API, so input validation, optional diacritic folding,
// logging and metrics happen in one place for all of them.
//
// Basic usage:
//
//	svc, err := pipeline.NewService(&pipeline.ServiceConfig{
//	    Logger: logging.DefaultLogger(),
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := svc.BreakKasiski(ctx, ciphertext, pipeline.KasiskiParams{})
//	if errors.Is(err, classical.ErrIndeterminateKeyLength) {
//	    // not enough repetition in the ciphertext
//	}
package pipeline
