// Package turing provides the public API for the Turing machine compiler
// and simulator. It re-exports the compiled machine, its build entry
// points, the bundled libraries and the diagnostic types so callers only
// need this one import.
package turing

import (
	"fmt"
	"os"

	"nickandperla.net/turing/internal/diag"
	"nickandperla.net/turing/internal/history"
	"nickandperla.net/turing/internal/library"
	"nickandperla.net/turing/internal/machine"
)

// Machine is a compiled, runnable Turing machine.
type Machine = machine.Machine

// Output is the observable result of a run.
type Output = machine.Output

// Outcome classifies a single step.
type Outcome = machine.Outcome

// Step outcomes.
const (
	Continue      = machine.Continue
	Final         = machine.Final
	UndefinedHalt = machine.UndefinedHalt
)

// Library is a named, composable machine shipped with the compiler.
type Library = library.Library

// CompilerError is a positioned build error.
type CompilerError = diag.CompilerError

// SyntaxError is a build error with a known expected construct.
type SyntaxError = diag.SyntaxError

// ParseError is a malformed-record error.
type ParseError = diag.ParseError

// Warning is a non-fatal build diagnostic.
type Warning = diag.Warning

// StateOverwrite warns that an instruction replaced an earlier one.
type StateOverwrite = diag.StateOverwrite

// Position locates a diagnostic in source.
type Position = diag.Position

// LineCol is a 1-based line and column pair.
type LineCol = diag.LineCol

// Build compiles program source into a Machine.
func Build(source string) (*Machine, []Warning, error) {
	return machine.Build(source)
}

// BuildFile compiles a program file into a Machine.
func BuildFile(path string) (*Machine, []Warning, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading program: %w", err)
	}
	return machine.Build(string(source))
}

// Empty returns a trivial machine that is already finished.
func Empty() *Machine {
	return machine.Empty()
}

// Libraries returns the bundled libraries available for composition.
func Libraries() []Library {
	return library.All()
}

// LookupLibrary returns the bundled library with the given name.
func LookupLibrary(name string) (Library, bool) {
	return library.Lookup(name)
}

// HistoryEntry is one recorded run outcome.
type HistoryEntry = history.Entry

// HistoryStore persists run outcomes.
type HistoryStore = history.Store

// OpenHistory opens (creating if needed) a SQLite-backed run history at
// the given path.
func OpenHistory(path string) (HistoryStore, error) {
	return history.NewSQLite(path)
}

// MemoryHistory returns an in-memory run history (for testing).
func MemoryHistory() HistoryStore {
	return history.NewMemory()
}
