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

	"github.com/jeremyhahn/go-classical/pkg/classical/friedman"
	"github.com/jeremyhahn/go-classical/pkg/classical/kasiski"
	"github.com/jeremyhahn/go-classical/pkg/pipeline"
)

func (a *app) newFriedmanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friedman [ciphertext]",
		Short: "Break Vigenère ciphertext with the Friedman test",
		Long: `Estimate the key length as the smallest length for which some column
of the ciphertext reaches the index of coincidence threshold, then recover
each key letter by aligning the most frequent letter of its column with E.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}

			params := pipeline.FriedmanParams{
				Threshold:    a.viper.GetFloat64(flagThreshold),
				MaxKeyLength: a.viper.GetInt(flagMaxKeyLength),
			}
			a.verbosef(cmd, "Friedman: threshold=%v max-key-length=%d", params.Threshold, params.MaxKeyLength)

			result, err := a.service.BreakFriedman(cmd.Context(), text, params)
			if err != nil {
				return fmt.Errorf("friedman attack failed: %w", err)
			}
			return a.printer(cmd).PrintFriedman(result)
		},
	}

	cmd.Flags().Float64(flagThreshold, friedman.DefaultThreshold,
		"index of coincidence a column must reach")
	cmd.Flags().Int(flagMaxKeyLength, friedman.DefaultMaxKeyLength,
		"largest key length to try")

	return cmd
}

func (a *app) newKasiskiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "kasiski [ciphertext]",
		Aliases: []string{"babbage"},
		Short:   "Break Vigenère ciphertext with the Kasiski examination",
		Long: `Find sequences that repeat in the ciphertext, take the most common prime
factor of the distances between them as the key length, and recover each
key letter by aligning the most frequent character of its column with E.

Spaces are removed before the search; other punctuation is kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}

			params := pipeline.KasiskiParams{
				MinLength: a.viper.GetInt(flagMinLength),
				MaxLength: a.viper.GetInt(flagMaxLength),
			}
			a.verbosef(cmd, "Kasiski: min-length=%d max-length=%d", params.MinLength, params.MaxLength)

			result, err := a.service.BreakKasiski(cmd.Context(), text, params)
			if err != nil {
				return fmt.Errorf("kasiski examination failed: %w", err)
			}
			return a.printer(cmd).PrintKasiski(result)
		},
	}

	cmd.Flags().Int(flagMinLength, kasiski.DefaultMinLength,
		"shortest repeated sequence to search for")
	cmd.Flags().Int(flagMaxLength, 0,
		"longest repeated sequence to search for (0 = configured default)")

	return cmd
}

func (a *app) newCoincidenceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ic [text]",
		Short: "Compute the index of coincidence of text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			result, err := a.service.IndexOfCoincidence(cmd.Context(), text)
			if err != nil {
				return err
			}
			return a.printer(cmd).PrintCoincidence(result)
		},
	}
}
