// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"nickandperla.net/turing/pkg/turing"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <program.tm>",
		Short: "Compile a program without running it",
		Long: `Compile a Turing machine program and report diagnostics without
stepping it. Exits non-zero on a compile error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, warnings, err := turing.BuildFile(args[0])
			if err != nil {
				printBuildError(cmd.ErrOrStderr(), err)
				return err
			}
			printWarnings(cmd.ErrOrStderr(), warnings)

			fmt.Fprintf(cmd.OutOrStdout(), "ok: initial state %s, final states %v, tape %d cells\n",
				m.State(), m.FinalStates(), len(m.Tape()))
			if desc := m.Description(); desc != "" {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(desc))
			}
			for _, lib := range m.Composed() {
				fmt.Fprintf(cmd.OutOrStdout(), "composed: %s\n", libNameStyle.Render(lib.Name))
			}
			return nil
		},
	}
}
