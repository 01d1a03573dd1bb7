// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"nickandperla.net/turing/pkg/turing"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded run outcomes",
		Long:  `Show the most recent runs from the history database, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := turing.OpenHistory(cfg.History)
			if err != nil {
				return fmt.Errorf("opening run history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Program", "Steps", "Ones", "Result", "When"})
			for _, e := range entries {
				t.AppendRow(table.Row{
					e.ID, e.Name, e.Steps, e.Ones, resultLabel(e),
					e.CreatedAt.Local().Format(time.DateTime),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	return cmd
}

func resultLabel(e turing.HistoryEntry) string {
	switch {
	case e.Aborted:
		return "aborted"
	case e.Undefined:
		return "undefined"
	default:
		return "defined"
	}
}
