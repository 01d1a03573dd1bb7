// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package machine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"nickandperla.net/turing/internal/diag"
	"nickandperla.net/turing/internal/instruction"
	"nickandperla.net/turing/internal/library"
	"nickandperla.net/turing/internal/parser"
)

// Build compiles program source into a runnable Machine. Records are
// folded in source order, so a later tape, initial-state or final-states
// record replaces an earlier one and a later instruction replaces an
// earlier one with the same (state, value) key. Library compositions merge
// their tables silently; a warning is emitted only when a user-written
// instruction overwrites another user-written instruction.
//
// The returned machine has its head on the first cell of the declared tape
// with the standard margin restored around it.
func Build(source string) (*Machine, []diag.Warning, error) {
	records, err := parser.Parse(source)
	if err != nil {
		return nil, nil, err
	}

	lines := strings.Split(source, "\n")

	m := &Machine{
		instructions: make(map[instruction.Key]instruction.Instruction),
		frequencies:  make(map[string]int),
		code:         source,
	}
	userKeys := make(map[instruction.Key]bool)
	var warnings []diag.Warning

	for _, rec := range records {
		switch r := rec.(type) {
		case *parser.Description:
			m.description = r.Text

		case *parser.Tape:
			if !hasOne(r.Bits) {
				slog.Error("rejecting tape without any 1", "tape", r.Literal)
				return nil, nil, &diag.SyntaxError{
					Position: r.Position,
					Msg:      "Expected at least a 1 in the tape",
					Code:     lineAt(lines, r.Position),
					Expected: diag.ConstructTape,
				}
			}
			m.tape = r.Bits

		case *parser.InitialState:
			m.currentState = r.State

		case *parser.FinalStates:
			m.finalStates = r.States

		case *parser.Compose:
			for _, name := range r.Names {
				lib, ok := library.Lookup(name.Text)
				if !ok {
					return nil, nil, &diag.SyntaxError{
						Position: name.Position,
						Msg:      fmt.Sprintf("Could not find the library %q", name.Text),
						Code:     lineAt(lines, name.Position),
						Expected: diag.ConstructComposition,
					}
				}
				table, err := lib.Instructions()
				if err != nil {
					return nil, nil, err
				}
				for key, ins := range table {
					m.instructions[key] = ins
				}
				m.composed = append(m.composed, lib)
				slog.Debug("composed library", "library", lib.Name, "instructions", len(table))
			}

		case *parser.InstructionDecl:
			ins, err := instruction.FromFields(r.FromState, r.FromValue, r.ToValue, r.Movement, r.ToState)
			if err != nil {
				var syntaxErr *diag.SyntaxError
				if errors.As(err, &syntaxErr) && syntaxErr.Code == "" {
					syntaxErr.Code = lineAt(lines, syntaxErr.Position)
				}
				return nil, nil, err
			}
			key := ins.Key()
			if userKeys[key] {
				slog.Warn("overwriting instruction", "instruction", ins.String())
				warnings = append(warnings, diag.StateOverwrite{
					Position: r.Pos(),
					State:    ins.FromState,
					Value:    ins.FromValue,
				})
			}
			m.instructions[key] = ins
			userKeys[key] = true
		}
	}

	m.restoreMargins()
	return m, warnings, nil
}

// Empty returns a trivial machine that is already finished: one final
// state whose only transition halts in place, over an all-zero tape.
func Empty() *Machine {
	const state = "f"
	key := instruction.Key{State: state, Value: false}
	return &Machine{
		instructions: map[instruction.Key]instruction.Instruction{
			key: instruction.Halt(key),
		},
		finalStates:  []string{state},
		currentState: state,
		tape:         make([]bool, 2*margin+1),
		tapePosition: margin,
		frequencies:  make(map[string]int),
	}
}

func hasOne(bits []bool) bool {
	for _, b := range bits {
		if b {
			return true
		}
	}
	return false
}

// lineAt returns the full source line a position points into, for error
// snippets.
func lineAt(lines []string, pos diag.Position) string {
	idx := pos.Start.Line - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	return strings.TrimRight(lines[idx], "\r")
}
