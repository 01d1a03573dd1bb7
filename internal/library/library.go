// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package library provides the built-in registry of composable machines.
// Each entry is a complete arithmetic Turing machine whose transition table
// is derived on demand from its embedded source; programs import one with a
// `compose = {name};` declaration.
package library

import (
	"fmt"

	"nickandperla.net/turing/internal/instruction"
	"nickandperla.net/turing/internal/parser"
)

// Library is one registry entry. The registry is immutable and built in;
// it is not user-extensible at runtime.
type Library struct {
	// Name resolves `compose` references by exact match.
	Name string
	// Description is a human-readable summary of the computed function.
	Description string
	// InitialState is the state the machine expects to start in.
	InitialState string
	// FinalState is the state the machine halts in.
	FinalState string
	// UsedStates lists the states the machine's table occupies. Informational
	// only; composition does not rename or namespace them.
	UsedStates []string
	// Code is the machine's source in the program grammar.
	Code string
}

// Instructions derives the library's transition table by parsing its
// embedded source. Registry sources are fixed, so failure here means a
// corrupted entry; the error is surfaced rather than panicking so a bad
// entry is reported like any other build problem.
func (l Library) Instructions() (map[instruction.Key]instruction.Instruction, error) {
	records, err := parser.Parse(l.Code)
	if err != nil {
		return nil, fmt.Errorf("library %q: %w", l.Name, err)
	}

	table := make(map[instruction.Key]instruction.Instruction)
	for _, rec := range records {
		decl, ok := rec.(*parser.InstructionDecl)
		if !ok {
			continue
		}
		ins, err := instruction.FromFields(decl.FromState, decl.FromValue, decl.ToValue, decl.Movement, decl.ToState)
		if err != nil {
			return nil, fmt.Errorf("library %q: %w", l.Name, err)
		}
		table[ins.Key()] = ins
	}

	return table, nil
}

// Lookup resolves a composition reference by exact name.
func Lookup(name string) (Library, bool) {
	for _, l := range registry {
		if l.Name == name {
			return l, true
		}
	}
	return Library{}, false
}

// All returns the registry entries in their fixed order.
func All() []Library {
	out := make([]Library, len(registry))
	copy(out, registry)
	return out
}
