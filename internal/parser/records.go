// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package parser

import (
	"nickandperla.net/turing/internal/diag"
	"nickandperla.net/turing/internal/instruction"
)

// Record is the interface all parsed program records implement. Records are
// emitted in source order; the builder folds them in that order.
type Record interface {
	// Pos is the source span of the whole record.
	Pos() diag.Position
	record()
}

// Description is a `/// text` record.
type Description struct {
	Position diag.Position
	Text     string
}

// Tape is a `{bits};` record. Bits holds the literal's cells with a single
// leading 0 already dropped; Literal preserves the raw bit text for
// diagnostics.
type Tape struct {
	Position diag.Position
	Bits     []bool
	Literal  string
}

// InitialState is an `I = {state};` record.
type InitialState struct {
	Position diag.Position
	State    string
}

// FinalStates is an `F = {state, ...};` record.
type FinalStates struct {
	Position diag.Position
	States   []string
}

// Name is a composition reference with its own position, so an unresolved
// library can be reported at the name token.
type Name struct {
	Text     string
	Position diag.Position
}

// Compose is a `compose = {name, ...};` record.
type Compose struct {
	Position diag.Position
	Names    []Name
}

// InstructionDecl is a `(state, bit, bit, movement, state);` record. Fields
// are kept raw; instruction.FromFields validates the movement symbol.
type InstructionDecl struct {
	Position  diag.Position
	FromState instruction.Field
	FromValue instruction.Field
	ToValue   instruction.Field
	Movement  instruction.Field
	ToState   instruction.Field
}

func (r *Description) Pos() diag.Position     { return r.Position }
func (r *Tape) Pos() diag.Position            { return r.Position }
func (r *InitialState) Pos() diag.Position    { return r.Position }
func (r *FinalStates) Pos() diag.Position     { return r.Position }
func (r *Compose) Pos() diag.Position         { return r.Position }
func (r *InstructionDecl) Pos() diag.Position { return r.Position }

func (r *Description) record()     {}
func (r *Tape) record()            {}
func (r *InitialState) record()    {}
func (r *FinalStates) record()     {}
func (r *Compose) record()         {}
func (r *InstructionDecl) record() {}
