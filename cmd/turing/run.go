// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"nickandperla.net/turing/pkg/turing"
)

// errLoopDetected is returned when a run trips the loop heuristic.
var errLoopDetected = errors.New("possible infinite loop detected")

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <program.tm>",
		Short: "Compile a program and run it to completion",
		Long: `Compile a Turing machine program and step it until it reaches a final
state or an undefined configuration.

Runs are stepped in batches; after each batch the state-visit counts are
checked against --threshold and the run aborts when any state exceeds it.
Outcomes are recorded in the run history unless --no-history is set.`,
		Example: `  # Run a program
  turing run examples/sum.tm

  # Allow longer runs before the loop heuristic trips
  turing run --threshold 10000 slow.tm

  # Run without recording history
  turing run --no-history scratch.tm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(cmd, args[0])
		},
	}
}

func runProgram(cmd *cobra.Command, path string) error {
	m, warnings, err := turing.BuildFile(path)
	if err != nil {
		printBuildError(cmd.ErrOrStderr(), err)
		return err
	}
	printWarnings(cmd.ErrOrStderr(), warnings)

	out, runErr := stepToCompletion(m)

	if !cfg.NoHistory {
		recordRun(filepath.Base(path), out, runErr)
	}

	if runErr != nil {
		fmt.Fprintln(cmd.OutOrStdout(), m.String())
		return fmt.Errorf("%w after %d steps (threshold %d)", runErr, out.Steps, cfg.Threshold)
	}

	printOutput(cmd.OutOrStdout(), m, out)
	if !out.Defined {
		return errors.New("machine halted on an undefined configuration")
	}
	return nil
}

// stepToCompletion drives the machine in batches, checking the loop
// heuristic between batches. On errLoopDetected the returned output carries
// the steps taken so far.
func stepToCompletion(m *turing.Machine) (turing.Output, error) {
	steps := 0
	for !m.Finished() {
		for i := 0; i < cfg.Batch && !m.Finished(); i++ {
			if m.Step() == turing.UndefinedHalt {
				return turing.Output{Steps: steps}, nil
			}
			steps++
		}
		if cfg.Threshold > 0 && m.IsInfiniteLoop(cfg.Threshold) {
			return turing.Output{Steps: steps}, errLoopDetected
		}
	}

	out := m.TapeValue()
	out.Steps = steps
	return out, nil
}

// recordRun appends the outcome to the history database. Recording is best
// effort; a failed write logs and does not fail the run.
func recordRun(name string, out turing.Output, runErr error) {
	store, err := turing.OpenHistory(cfg.History)
	if err != nil {
		slog.Warn("cannot open run history", "path", cfg.History, "error", err)
		return
	}
	defer store.Close()

	_, err = store.Record(turing.HistoryEntry{
		Name:      name,
		Steps:     out.Steps,
		Ones:      out.Ones,
		Undefined: !out.Defined && runErr == nil,
		Aborted:   runErr != nil,
	})
	if err != nil {
		slog.Warn("cannot record run", "path", cfg.History, "error", err)
	}
}
