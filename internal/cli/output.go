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
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/jeremyhahn/go-classical/pkg/classical/friedman"
	"github.com/jeremyhahn/go-classical/pkg/classical/kasiski"
	"github.com/jeremyhahn/go-classical/pkg/pipeline"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

type unknownFormatError struct {
	format string
}

func (e *unknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format: %s (must be text or json)", e.format)
}

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintText prints the output of a cipher
func (p *Printer) PrintText(result *pipeline.TextResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(result)
	case OutputFormatText:
		fmt.Fprintln(p.writer, result.Text)
		return nil
	default:
		return &unknownFormatError{format: string(p.format)}
	}
}

// PrintFriedman prints the outcome of the Friedman attack
func (p *Printer) PrintFriedman(result *friedman.Result) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(result)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Key length: %d\n", result.KeyLength)
		fmt.Fprintf(p.writer, "Key:        %s\n", result.Key)
		fmt.Fprintf(p.writer, "Plaintext:  %s\n", result.Plaintext)
		return nil
	default:
		return &unknownFormatError{format: string(p.format)}
	}
}

// PrintKasiski prints the outcome of the Kasiski examination
func (p *Printer) PrintKasiski(result *kasiski.Result) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(result)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Repeated sequences: %d\n", len(result.Sequences))
		fmt.Fprintf(p.writer, "Key length: %d\n", result.KeyLength)
		fmt.Fprintf(p.writer, "Key:        %s\n", result.Key)
		fmt.Fprintf(p.writer, "Plaintext:  %s\n", result.Plaintext)
		return nil
	default:
		return &unknownFormatError{format: string(p.format)}
	}
}

// PrintCoincidence prints an index of coincidence measurement
func (p *Printer) PrintCoincidence(result *pipeline.CoincidenceResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(result)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Index of coincidence: %.4f\n", result.IndexOfCoincidence)
		fmt.Fprintf(p.writer, "Letters:              %d\n", result.Letters)
		return nil
	default:
		return &unknownFormatError{format: string(p.format)}
	}
}

// PrintVersion prints build information
func (p *Printer) PrintVersion() error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"version":    Version,
			"commit":     GitCommit,
			"build_date": BuildDate,
			"go_version": runtime.Version(),
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "classical version %s\n", Version)
		fmt.Fprintf(p.writer, "Git commit: %s\n", GitCommit)
		fmt.Fprintf(p.writer, "Build date: %s\n", BuildDate)
		fmt.Fprintf(p.writer, "Go version: %s\n", runtime.Version())
		fmt.Fprintf(p.writer, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return nil
	default:
		return &unknownFormatError{format: string(p.format)}
	}
}

// PrintError prints an error message. Unknown formats fall back to text so
// the error is never lost.
func (p *Printer) PrintError(err error) error {
	if p.format == OutputFormatJSON {
		return p.printJSON(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	}
	fmt.Fprintf(p.writer, "Error: %v\n", err)
	return nil
}

func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
