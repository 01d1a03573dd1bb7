// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfg *Config

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var closeLog func()

	rootCmd := &cobra.Command{
		Use:   "turing",
		Short: "Turing machine compiler and simulator",
		Long: `turing compiles and runs single-tape Turing machine programs.

Programs declare a binary tape, an initial state, final states and a
transition table, and may compose machines from the built-in library.
Tape contents encode numbers in unary: a run of n+1 ones is the value n.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = loadConfig(cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			closeLog, err = setupLogging(cfg)
			return err
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if closeLog != nil {
				closeLog()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().Int("threshold", DefaultThreshold, "State-visit count treated as a possible infinite loop (0 disables)")
	rootCmd.PersistentFlags().Int("batch", DefaultBatch, "Steps to run between loop checks")
	rootCmd.PersistentFlags().String("history", DefaultHistory, "Path to the run-history database")
	rootCmd.PersistentFlags().Bool("no-history", false, "Disable run recording")
	rootCmd.PersistentFlags().String("log-level", DefaultLogLevel, "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewDebugCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewLibsCommand())
	rootCmd.AddCommand(NewHistoryCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
