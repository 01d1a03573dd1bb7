// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package machine builds and runs single-tape Turing machines. Build
// compiles program source into a Machine; the Machine then advances one
// transition at a time, growing its tape as the head moves.
package machine

import (
	"log/slog"
	"slices"
	"strings"

	"nickandperla.net/turing/internal/instruction"
	"nickandperla.net/turing/internal/library"
)

// margin is the number of free cells kept beyond the head on both sides of
// the tape. Restoring it after every mutation means head motion can never
// index out of bounds and tape growth is deterministic.
const margin = 3

// Machine is a compiled, runnable Turing machine. A Machine is exclusively
// owned by its caller; nothing is shared between instances.
type Machine struct {
	instructions map[instruction.Key]instruction.Instruction
	finalStates  []string
	currentState string
	tapePosition int
	tape         []bool
	frequencies  map[string]int
	description  string
	composed     []library.Library
	code         string
}

// Outcome classifies the result of a single step.
type Outcome int

const (
	// Continue means the machine transitioned into a non-final state.
	Continue Outcome = iota
	// Final means the machine is in a final state.
	Final
	// UndefinedHalt means no transition exists for the current (state, bit)
	// and the state is not final. The machine did not advance.
	UndefinedHalt
)

// Done reports whether the outcome terminates a run.
func (o Outcome) Done() bool { return o != Continue }

// lookup returns the transition for the current configuration. A cell with
// no explicit rule in a final state yields a synthesized halt instruction;
// a cell with no rule in a non-final state yields no instruction at all.
func (m *Machine) lookup() (instruction.Instruction, bool) {
	key := instruction.Key{State: m.currentState, Value: m.tape[m.tapePosition]}
	if ins, ok := m.instructions[key]; ok {
		return ins, true
	}
	if m.Finished() {
		return instruction.Halt(key), true
	}
	return instruction.Instruction{}, false
}

// CurrentInstruction returns the explicit table entry for the current
// configuration, without synthesizing halts.
func (m *Machine) CurrentInstruction() (instruction.Instruction, bool) {
	key := instruction.Key{State: m.currentState, Value: m.tape[m.tapePosition]}
	ins, ok := m.instructions[key]
	return ins, ok
}

// IsUndefined reports whether the current configuration has no transition,
// explicit or synthesized.
func (m *Machine) IsUndefined() bool {
	_, ok := m.lookup()
	return !ok
}

// Step advances the machine one transition: write the target bit, move the
// head (growing the tape at either edge), restore the margin, enter the
// target state and count the visit. An undefined non-final configuration
// leaves the machine untouched and reports UndefinedHalt.
func (m *Machine) Step() Outcome {
	ins, ok := m.lookup()
	if !ok {
		slog.Error("no instruction for the current configuration",
			"state", m.currentState,
			"value", m.tape[m.tapePosition])
		return UndefinedHalt
	}

	m.tape[m.tapePosition] = ins.ToValue

	switch ins.Movement {
	case instruction.MoveLeft:
		if m.tapePosition == 0 {
			m.tape = append([]bool{false}, m.tape...)
		} else {
			m.tapePosition--
		}
	case instruction.MoveRight:
		if m.tapePosition == len(m.tape)-1 {
			m.tape = append(m.tape, false)
		}
		m.tapePosition++
	case instruction.MoveHalt:
	}

	m.restoreMargins()

	m.currentState = ins.ToState
	m.frequencies[ins.ToState]++

	if m.Finished() {
		return Final
	}
	return Continue
}

// FinalResult runs the machine until it reaches a final state, returning
// the step count and the number of 1s left on the tape. A run that dies on
// an undefined transition returns an undefined output carrying the steps
// taken up to that point. There is no built-in iteration bound; callers
// needing loop protection drive Step and IsInfiniteLoop themselves.
func (m *Machine) FinalResult() Output {
	steps := 0
	for !m.Finished() {
		if m.Step() == UndefinedHalt {
			return Output{Steps: steps}
		}
		steps++
	}
	return Output{Defined: true, Steps: steps, Ones: m.countOnes()}
}

// TapeValue returns the current tape's output without stepping: undefined
// if the machine is in an undefined configuration, otherwise the count of
// 1s with zero steps.
func (m *Machine) TapeValue() Output {
	if m.IsUndefined() {
		return Output{}
	}
	return Output{Defined: true, Ones: m.countOnes()}
}

// Finished reports whether the current state is a final state.
func (m *Machine) Finished() bool {
	return slices.Contains(m.finalStates, m.currentState)
}

// IsInfiniteLoop reports whether any state has been visited more than
// threshold times since the last reset. This is a heuristic abort signal,
// not a proof: terminating machines can legitimately exceed it.
func (m *Machine) IsInfiniteLoop(threshold int) bool {
	for _, count := range m.frequencies {
		if count > threshold {
			return true
		}
	}
	return false
}

// ResetFrequencies clears the visit counts, restarting the loop-detection
// window.
func (m *Machine) ResetFrequencies() {
	m.frequencies = make(map[string]int)
}

// Values decodes the tape under the unary convention: each maximal run of
// 1s encodes its length minus one.
func (m *Machine) Values() []int {
	var values []int
	run := 0
	for _, v := range m.tape {
		if v {
			run++
			continue
		}
		if run > 0 {
			values = append(values, run-1)
			run = 0
		}
	}
	if run > 0 {
		values = append(values, run-1)
	}
	return values
}

// String renders the tape as space-separated bits with a second line
// marking the head position.
func (m *Machine) String() string {
	var cells, head strings.Builder
	for i, v := range m.tape {
		if v {
			cells.WriteString("1 ")
		} else {
			cells.WriteString("0 ")
		}
		if i == m.tapePosition {
			head.WriteString("^ ")
		} else {
			head.WriteString("  ")
		}
	}
	return cells.String() + "\n" + head.String()
}

// restoreMargins grows the tape so the head keeps at least margin free
// cells strictly on each side.
func (m *Machine) restoreMargins() {
	if m.tapePosition < margin {
		pad := margin - m.tapePosition
		grown := make([]bool, pad, pad+len(m.tape))
		m.tape = append(grown, m.tape...)
		m.tapePosition += pad
	}
	for m.tapePosition >= len(m.tape)-margin {
		m.tape = append(m.tape, false)
	}
}

func (m *Machine) countOnes() int {
	ones := 0
	for _, v := range m.tape {
		if v {
			ones++
		}
	}
	return ones
}

// Tape returns a copy of the tape cells.
func (m *Machine) Tape() []bool {
	return slices.Clone(m.tape)
}

// Position returns the head's index into the tape.
func (m *Machine) Position() int { return m.tapePosition }

// State returns the current state.
func (m *Machine) State() string { return m.currentState }

// FinalStates returns a copy of the declared final states.
func (m *Machine) FinalStates() []string {
	return slices.Clone(m.finalStates)
}

// Description returns the program's /// description, if any.
func (m *Machine) Description() string { return m.description }

// Composed returns the libraries merged into this machine, for
// introspection; their instructions are already part of the table.
func (m *Machine) Composed() []library.Library {
	return slices.Clone(m.composed)
}

// Code returns the original program source.
func (m *Machine) Code() string { return m.code }
