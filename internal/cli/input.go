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

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// errNoInput is returned when no text was supplied.
var errNoInput = errors.New("no input text: pass it as an argument, with --file, or on stdin")

// readInput returns the text to process: the --file contents, else the
// arguments joined by spaces, else stdin. One trailing line break is
// dropped.
func (a *app) readInput(cmd *cobra.Command, args []string) (string, error) {
	var text string
	switch {
	case a.config.InputFile != "":
		// #nosec G304 - Input file path is provided by the user
		data, err := os.ReadFile(a.config.InputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		text = string(data)
		a.verbosef(cmd, "Read %d bytes from %s", len(data), a.config.InputFile)
	case len(args) > 0:
		text = strings.Join(args, " ")
	default:
		limit := int64(a.settings.Analysis.MaxTextLength) + 2
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), limit))
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
		a.verbosef(cmd, "Read %d bytes from stdin", len(data))
	}

	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	if text == "" {
		return "", errNoInput
	}
	return text, nil
}
