// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package instruction defines the transition-table unit of a Turing
// machine: a (state, bit) -> (bit, movement, state) rule.
package instruction

import (
	"fmt"

	"nickandperla.net/turing/internal/diag"
)

// Movement is the head action taken after a transition.
type Movement uint8

const (
	MoveRight Movement = iota
	MoveLeft
	MoveHalt
)

// ParseMovement parses a movement symbol. Two synonym sets are accepted per
// value so programs can be written with localized symbols: R|D move right,
// L|I move left, H|N halt.
func ParseMovement(s string) (Movement, bool) {
	switch s {
	case "R", "D":
		return MoveRight, true
	case "L", "I":
		return MoveLeft, true
	case "H", "N":
		return MoveHalt, true
	}
	return MoveHalt, false
}

// String renders the canonical single-letter symbol.
func (m Movement) String() string {
	switch m {
	case MoveRight:
		return "R"
	case MoveLeft:
		return "L"
	default:
		return "H"
	}
}

// Key is the transition-table lookup key.
type Key struct {
	State string
	Value bool
}

// Instruction is a single transition rule.
type Instruction struct {
	FromState string
	FromValue bool
	ToValue   bool
	Movement  Movement
	ToState   string
}

// Key returns the table key this instruction is stored under.
func (i Instruction) Key() Key {
	return Key{State: i.FromState, Value: i.FromValue}
}

// String renders the instruction in source syntax.
func (i Instruction) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s, %s)",
		i.FromState, bit(i.FromValue), bit(i.ToValue), i.Movement, i.ToState)
}

// Field is one raw instruction field as scanned from source, with the
// position needed to point diagnostics at it.
type Field struct {
	Text string
	Pos  diag.Position
}

// FromFields builds an instruction from the five ordered declaration
// fields. An unknown movement symbol fails with a syntax error positioned
// at the movement token.
func FromFields(fromState, fromValue, toValue, movement, toState Field) (Instruction, error) {
	m, ok := ParseMovement(movement.Text)
	if !ok {
		return Instruction{}, &diag.SyntaxError{
			Position: movement.Pos,
			Msg:      fmt.Sprintf("%q is an unknown movement", movement.Text),
			Expected: diag.ConstructMovement,
		}
	}

	return Instruction{
		FromState: fromState.Text,
		FromValue: fromValue.Text == "1",
		ToValue:   toValue.Text == "1",
		Movement:  m,
		ToState:   toState.Text,
	}, nil
}

// Halt returns the implicit halt instruction for a (state, bit) cell that
// has no explicit rule but belongs to a final state: same bit, no movement,
// self-loop.
func Halt(k Key) Instruction {
	return Instruction{
		FromState: k.State,
		FromValue: k.Value,
		ToValue:   k.Value,
		Movement:  MoveHalt,
		ToState:   k.State,
	}
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
