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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-classical/pkg/classical/railfence"
)

func (a *app) newRailFenceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "railfence",
		Short: "Rail fence cipher operations",
		Long: fmt.Sprintf(`Encrypt or decrypt with the rail fence transposition cipher.

Encryption writes the text in a zig-zag over the rails, reads the rails in
order and groups the result in blocks of %d characters. Decryption ignores
spaces. --offset decrypts a fragment whose fence started that many columns
into the zig-zag.`, railfence.GroupSize),
	}

	cmd.PersistentFlags().Int(flagRails, 3, "number of rails (env: CLASSICAL_RAILS)")

	encryptCmd := &cobra.Command{
		Use:   "encrypt [text]",
		Short: "Encrypt text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			result, err := a.service.EncryptRailFence(cmd.Context(), text, a.viper.GetInt(flagRails))
			if err != nil {
				return fmt.Errorf("railfence encrypt failed: %w", err)
			}
			return a.printer(cmd).PrintText(result)
		},
	}

	decryptCmd := &cobra.Command{
		Use:   "decrypt [ciphertext]",
		Short: "Decrypt ciphertext",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			rails := a.viper.GetInt(flagRails)
			offset := a.viper.GetInt(flagOffset)
			a.verbosef(cmd, "Rail fence: rails=%d offset=%d", rails, offset)

			result, err := a.service.DecryptRailFence(cmd.Context(), text, rails, offset)
			if err != nil {
				return fmt.Errorf("railfence decrypt failed: %w", err)
			}
			return a.printer(cmd).PrintText(result)
		},
	}
	decryptCmd.Flags().Int(flagOffset, 0, "columns of the zig-zag missing before the first character")

	cmd.AddCommand(encryptCmd, decryptCmd)
	return cmd
}
