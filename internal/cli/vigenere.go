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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-classical/pkg/pipeline"
)

func (a *app) newVigenereCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vigenere",
		Short: "Vigenère cipher operations",
		Long: `Encrypt or decrypt with the Vigenère cipher.

Encryption lower-cases the message and keeps spaces and punctuation, except
commas, periods and ’ which become spaces. Decryption keeps only the letters
of the ciphertext and prints them in upper case.`,
	}

	cmd.PersistentFlags().StringP(flagKey, "k", "", "cipher key, letters only (env: CLASSICAL_KEY)")

	cmd.AddCommand(a.newVigenereOperation("encrypt", "Encrypt text with a key",
		(*pipeline.Service).EncryptVigenere))
	cmd.AddCommand(a.newVigenereOperation("decrypt", "Decrypt text with a key",
		(*pipeline.Service).DecryptVigenere))

	return cmd
}

// vigenereFunc is a Vigenère method of pipeline.Service.
type vigenereFunc func(s *pipeline.Service, ctx context.Context, text, key string) (*pipeline.TextResult, error)

func (a *app) newVigenereOperation(use, short string, op vigenereFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [text]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := a.viper.GetString(flagKey)
			if key == "" {
				return fmt.Errorf("--%s is required", flagKey)
			}
			text, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			result, err := op(a.service, cmd.Context(), text, key)
			if err != nil {
				return fmt.Errorf("vigenere %s failed: %w", use, err)
			}
			return a.printer(cmd).PrintText(result)
		},
	}
}
