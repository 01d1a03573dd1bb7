// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package diag defines source positions and compiler diagnostics for
// Turing machine programs.
package diag

import (
	"fmt"
	"strings"
)

// LineCol is a 1-based line/column pair in program source.
type LineCol struct {
	Line int
	Col  int
}

// Position is a source location with an optional end, so diagnostics can
// point at a single token or at a whole span.
type Position struct {
	Start LineCol
	End   *LineCol
}

// At returns a Position covering a single point.
func At(line, col int) Position {
	return Position{Start: LineCol{Line: line, Col: col}}
}

// Span returns a Position covering [start, end).
func Span(line, col, endLine, endCol int) Position {
	return Position{
		Start: LineCol{Line: line, Col: col},
		End:   &LineCol{Line: endLine, Col: endCol},
	}
}

// String renders "line:col" or "line:col to line:col".
func (p Position) String() string {
	if p.End != nil {
		return fmt.Sprintf("%d:%d to %d:%d", p.Start.Line, p.Start.Col, p.End.Line, p.End.Col)
	}
	return fmt.Sprintf("%d:%d", p.Start.Line, p.Start.Col)
}

// Construct identifies a grammar construct in expected/found diagnostics.
type Construct string

const (
	ConstructFile        Construct = "file"
	ConstructDescription Construct = "description"
	ConstructTape        Construct = "tape"
	ConstructInitial     Construct = "initial state"
	ConstructFinal       Construct = "final states"
	ConstructComposition Construct = "composition"
	ConstructInstruction Construct = "instruction"
	ConstructMovement    Construct = "movement"
	ConstructNone        Construct = ""
)

// CompilerError is implemented by all fatal build diagnostics.
type CompilerError interface {
	error
	// Message is the human-readable description without position prefix.
	Message() string
	// Pos is the source location of the offending construct.
	Pos() Position
	// Snippet is the source line the error points into.
	Snippet() string
}

// SyntaxError reports a construct the grammar recognized but validation
// rejected: an all-zero tape, an unknown movement symbol, an unresolved
// composition name.
type SyntaxError struct {
	Position Position
	Msg      string
	Code     string
	Expected Construct
	Found    Construct
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Position, e.Msg)
}

func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Snippet() string { return e.Code }

// ParseError reports source the grammar could not derive a record from.
type ParseError struct {
	Position Position
	Msg      string
	Code     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Position, e.Msg)
}

func (e *ParseError) Message() string { return e.Msg }
func (e *ParseError) Pos() Position   { return e.Position }
func (e *ParseError) Snippet() string { return e.Code }

// Warning is implemented by all non-fatal build diagnostics.
type Warning interface {
	// Warning is the human-readable description.
	Warning() string
	// Pos is the source location of the construct that triggered it.
	Pos() Position
}

// StateOverwrite warns that an instruction declaration replaced an earlier
// user-declared transition for the same (state, bit) key.
type StateOverwrite struct {
	Position Position
	State    string
	Value    bool
}

func (w StateOverwrite) Warning() string {
	return fmt.Sprintf("instruction for (%s, %s) already exists, overwriting it", w.State, bit(w.Value))
}

func (w StateOverwrite) Pos() Position { return w.Position }

// Underline renders a marker line for pos within snippet: `~` under
// untouched bytes, `^` under the offending span. snippet is expected to be
// the full source line the position refers to.
func Underline(snippet string, pos Position) string {
	start := pos.Start.Col - 1
	if start < 0 {
		start = 0
	}
	if start > len(snippet) {
		start = len(snippet)
	}

	width := 1
	if pos.End != nil && pos.End.Line == pos.Start.Line && pos.End.Col > pos.Start.Col {
		width = pos.End.Col - pos.Start.Col
	}
	if start+width > len(snippet) {
		width = len(snippet) - start
	}
	if width < 1 {
		width = 1
	}

	rest := len(snippet) - start - width
	if rest < 0 {
		rest = 0
	}

	return strings.Repeat("~", start) + strings.Repeat("^", width) + strings.Repeat("~", rest)
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
