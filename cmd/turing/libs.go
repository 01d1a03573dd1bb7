// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"nickandperla.net/turing/pkg/turing"
)

// NewLibsCommand creates the libs command.
func NewLibsCommand() *cobra.Command {
	var showCode bool

	cmd := &cobra.Command{
		Use:   "libs [name]",
		Short: "List the built-in composable libraries",
		Long: `List the machines available to compose declarations, or show one
library in detail when a name is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showLibrary(cmd, args[0], showCode)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Description", "Initial", "Final", "States"})
			for _, lib := range turing.Libraries() {
				t.AppendRow(table.Row{
					lib.Name,
					lib.Description,
					lib.InitialState,
					lib.FinalState,
					strings.Join(lib.UsedStates, " "),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&showCode, "code", false, "Print the library's source")
	return cmd
}

func showLibrary(cmd *cobra.Command, name string, showCode bool) error {
	lib, ok := turing.LookupLibrary(name)
	if !ok {
		return fmt.Errorf("no library named %q", name)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", libNameStyle.Render(lib.Name), lib.Description)
	fmt.Fprintf(out, "initial %s, final %s, states %s\n",
		lib.InitialState, lib.FinalState, strings.Join(lib.UsedStates, " "))

	instrs, err := lib.Instructions()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d instructions\n", len(instrs))

	if showCode {
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.TrimSpace(lib.Code))
	}
	return nil
}
