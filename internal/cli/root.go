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
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-classical/internal/config"
	"github.com/jeremyhahn/go-classical/pkg/classical"
	"github.com/jeremyhahn/go-classical/pkg/logging"
	"github.com/jeremyhahn/go-classical/pkg/pipeline"
)

// Flag names double as viper keys. The environment variable of a key is
// CLASSICAL_ followed by the upper-cased key with dashes replaced by
// underscores, e.g. CLASSICAL_MAX_KEY_LENGTH.
const (
	flagKey          = "key"
	flagThreshold    = "threshold"
	flagMaxKeyLength = "max-key-length"
	flagMinLength    = "min-length"
	flagMaxLength    = "max-length"
	flagRails        = "rails"
	flagOffset       = "offset"
	flagHost         = "host"
	flagPort         = "port"
)

// app carries the state shared by every command of one invocation.
type app struct {
	config   *Config
	settings *config.Config
	viper    *viper.Viper
	logger   *logging.Logger
	service  *pipeline.Service
}

// NewRootCommand builds the classical command tree.
func NewRootCommand() *cobra.Command {
	a := &app{config: NewConfig()}

	rootCmd := &cobra.Command{
		Use:   "classical",
		Short: "Classical cipher toolkit",
		Long: `classical encrypts and decrypts with the Vigenère and rail fence
ciphers and breaks Vigenère ciphertext without the key.

Attacks:
  - friedman: key length from the index of coincidence
  - kasiski:  key length from distances between repeated sequences

Input text is taken from the arguments, --file, or stdin.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "",
		"YAML config file")
	rootCmd.PersistentFlags().StringVarP(&a.config.InputFile, "file", "f", "",
		"read input text from file")
	rootCmd.PersistentFlags().StringVarP(&a.config.OutputFormat, "output", "o", "text",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false,
		"verbose output")

	rootCmd.AddCommand(a.newVigenereCommand())
	rootCmd.AddCommand(a.newFriedmanCommand())
	rootCmd.AddCommand(a.newKasiskiCommand())
	rootCmd.AddCommand(a.newRailFenceCommand())
	rootCmd.AddCommand(a.newCoincidenceCommand())
	rootCmd.AddCommand(a.newServeCommand())
	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	return Run(NewRootCommand())
}

// Run executes cmd and prints a failure through the printer on the
// command's error stream.
func Run(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err == nil {
		return nil
	}

	format, _ := cmd.PersistentFlags().GetString("output")
	printer := NewPrinter(format, cmd.ErrOrStderr())
	_ = printer.PrintError(userError(err)) // best-effort
	return err
}

// userError shortens errors whose cause is more useful than the chain.
func userError(err error) error {
	if errors.Is(err, classical.ErrIndeterminateKeyLength) {
		return errors.New("unable to determine key length")
	}
	return err
}

// setup loads the configuration and builds the pipeline service before
// any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.config.Validate(); err != nil {
		return err
	}

	settings, err := config.Load(a.config.ConfigFile)
	if err != nil {
		return err
	}
	a.settings = settings

	a.viper = newViper(settings)
	if err := a.viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	var out io.Writer = io.Discard
	if a.config.Verbose {
		settings.Logging.Level = "debug"
		out = cmd.ErrOrStderr()
	}
	a.logger, err = settings.NewLogger(out)
	if err != nil {
		return err
	}

	a.service, err = pipeline.NewService(settings.ServiceConfig(a.logger))
	if err != nil {
		return err
	}

	a.verbosef(cmd, "Configuration loaded (file: %q)", a.config.ConfigFile)
	return nil
}

// newViper layers flags and CLASSICAL_* variables over settings.
func newViper(settings *config.Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(strings.TrimSuffix(config.EnvPrefix, "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(flagThreshold, settings.Analysis.Friedman.ICThreshold)
	v.SetDefault(flagMaxKeyLength, settings.Analysis.Friedman.MaxKeyLength)
	v.SetDefault(flagMinLength, settings.Analysis.Kasiski.MinSequenceLength)
	v.SetDefault(flagMaxLength, settings.Analysis.Kasiski.MaxSequenceLength)
	v.SetDefault(flagRails, settings.RailFence.Rails)
	v.SetDefault(flagOffset, settings.RailFence.Offset)
	v.SetDefault(flagHost, settings.Server.Host)
	v.SetDefault(flagPort, settings.Server.Port)
	return v
}

// printer returns a printer on the command's output stream.
func (a *app) printer(cmd *cobra.Command) *Printer {
	return NewPrinter(a.config.OutputFormat, cmd.OutOrStdout())
}

// verbosef prints a message if verbose mode is enabled
func (a *app) verbosef(cmd *cobra.Command, format string, args ...interface{}) {
	if a.config.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] "+format+"\n", args...)
	}
}
