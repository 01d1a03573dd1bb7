// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser converts Turing machine program text into a sequence of
// typed records. The surface grammar is line-oriented: descriptions
// (`/// text`), a tape literal (`{1101};`), initial and final state
// declarations (`I = {q0};`, `F = {q2, q3};`), compositions
// (`compose = {sum};`) and instructions (`(q0, 1, 0, R, q1);`). Comments
// and unrecognized constructs are skipped, not treated as records.
package parser

import (
	"log/slog"
	"regexp"
	"strings"

	"nickandperla.net/turing/internal/diag"
	"nickandperla.net/turing/internal/instruction"
)

var (
	tapePattern    = regexp.MustCompile(`^\{([01]+)\}\s*;`)
	initialPattern = regexp.MustCompile(`^I\s*=\s*\{\s*([A-Za-z0-9_]+)\s*\}\s*;`)
	finalPattern   = regexp.MustCompile(`^F\s*=\s*\{([^}]*)\}\s*;`)
	composePattern = regexp.MustCompile(`^compose\s*=\s*\{([^}]*)\}\s*;`)
	instrPattern   = regexp.MustCompile(`^\(\s*([A-Za-z0-9_]+)\s*,\s*([01])\s*,\s*([01])\s*,\s*([^,\s]+)\s*,\s*([A-Za-z0-9_]+)\s*\)\s*;`)

	// Commit patterns: once a line opens one of these shapes, a failed full
	// match is a parse error rather than skippable text.
	initialStart = regexp.MustCompile(`^I\s*=`)
	finalStart   = regexp.MustCompile(`^F\s*=`)
	composeStart = regexp.MustCompile(`^compose\s*=`)

	namePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Parse scans source and returns its records in source order. Failure to
// derive a committed construct yields a *diag.ParseError carrying the
// offending line and position.
func Parse(source string) ([]Record, error) {
	var records []Record

	for i, raw := range strings.Split(source, "\n") {
		lineNo := i + 1
		line := strings.TrimSuffix(raw, "\r")

		col := 1
		rest := line
		for {
			trimmed := strings.TrimLeft(rest, " \t")
			col += len(rest) - len(trimmed)
			rest = trimmed
			if rest == "" {
				break
			}

			if strings.HasPrefix(rest, "///") {
				text := strings.TrimSpace(strings.TrimPrefix(rest, "///"))
				records = append(records, &Description{
					Position: diag.Span(lineNo, col, lineNo, col+len(rest)),
					Text:     text,
				})
				slog.Debug("found description", "text", text)
				break
			}
			if strings.HasPrefix(rest, "//") {
				slog.Debug("found comment", "line", lineNo)
				break
			}

			var (
				rec      Record
				consumed int
				err      error
			)
			switch {
			case rest[0] == '{':
				rec, consumed, err = parseTape(rest, lineNo, col, line)
			case rest[0] == '(':
				rec, consumed, err = parseInstruction(rest, lineNo, col, line)
			case initialStart.MatchString(rest):
				rec, consumed, err = parseInitial(rest, lineNo, col, line)
			case finalStart.MatchString(rest):
				rec, consumed, err = parseFinal(rest, lineNo, col, line)
			case composeStart.MatchString(rest):
				rec, consumed, err = parseCompose(rest, lineNo, col, line)
			default:
				slog.Debug("skipping unrecognized text", "line", lineNo, "text", rest)
				rest = ""
				continue
			}
			if err != nil {
				return nil, err
			}

			records = append(records, rec)
			col += consumed
			rest = rest[consumed:]
		}
	}

	return records, nil
}

func parseTape(rest string, lineNo, col int, line string) (Record, int, error) {
	m := tapePattern.FindStringSubmatchIndex(rest)
	if m == nil {
		return nil, 0, parseErr(lineNo, col, line, "malformed tape literal")
	}

	literal := rest[m[2]:m[3]]

	// A single leading 0 carries no value in the unary encoding and is
	// dropped, so `{0110};` and `{110};` build the same tape.
	bitText := literal
	if strings.HasPrefix(bitText, "0") {
		slog.Debug("the tape starts with a 0, skipping it")
		bitText = bitText[1:]
	}

	bits := make([]bool, 0, len(bitText))
	for _, c := range bitText {
		bits = append(bits, c == '1')
	}

	return &Tape{
		Position: diag.Span(lineNo, col, lineNo, col+m[1]),
		Bits:     bits,
		Literal:  literal,
	}, m[1], nil
}

func parseInitial(rest string, lineNo, col int, line string) (Record, int, error) {
	m := initialPattern.FindStringSubmatchIndex(rest)
	if m == nil {
		return nil, 0, parseErr(lineNo, col, line, "malformed initial state declaration")
	}

	return &InitialState{
		Position: diag.Span(lineNo, col, lineNo, col+m[1]),
		State:    rest[m[2]:m[3]],
	}, m[1], nil
}

func parseFinal(rest string, lineNo, col int, line string) (Record, int, error) {
	m := finalPattern.FindStringSubmatchIndex(rest)
	if m == nil {
		return nil, 0, parseErr(lineNo, col, line, "malformed final states declaration")
	}

	names, err := splitNames(rest, m[2], m[3], lineNo, col, line, "malformed final states declaration")
	if err != nil {
		return nil, 0, err
	}

	states := make([]string, len(names))
	for i, n := range names {
		states[i] = n.Text
	}

	return &FinalStates{
		Position: diag.Span(lineNo, col, lineNo, col+m[1]),
		States:   states,
	}, m[1], nil
}

func parseCompose(rest string, lineNo, col int, line string) (Record, int, error) {
	m := composePattern.FindStringSubmatchIndex(rest)
	if m == nil {
		return nil, 0, parseErr(lineNo, col, line, "malformed composition declaration")
	}

	names, err := splitNames(rest, m[2], m[3], lineNo, col, line, "malformed composition declaration")
	if err != nil {
		return nil, 0, err
	}

	return &Compose{
		Position: diag.Span(lineNo, col, lineNo, col+m[1]),
		Names:    names,
	}, m[1], nil
}

func parseInstruction(rest string, lineNo, col int, line string) (Record, int, error) {
	m := instrPattern.FindStringSubmatchIndex(rest)
	if m == nil {
		return nil, 0, parseErr(lineNo, col, line, "malformed instruction declaration")
	}

	field := func(g int) instruction.Field {
		s, e := m[2*g], m[2*g+1]
		return instruction.Field{
			Text: rest[s:e],
			Pos:  diag.Span(lineNo, col+s, lineNo, col+e),
		}
	}

	return &InstructionDecl{
		Position:  diag.Span(lineNo, col, lineNo, col+m[1]),
		FromState: field(1),
		FromValue: field(2),
		ToValue:   field(3),
		Movement:  field(4),
		ToState:   field(5),
	}, m[1], nil
}

// splitNames splits the comma-separated identifier list at rest[start:end]
// into names carrying per-name positions.
func splitNames(rest string, start, end, lineNo, col int, line, msg string) ([]Name, error) {
	inner := rest[start:end]

	var names []Name
	cursor := start
	for _, part := range strings.Split(inner, ",") {
		lead := len(part) - len(strings.TrimLeft(part, " \t"))
		text := strings.TrimSpace(part)
		if !namePattern.MatchString(text) {
			return nil, parseErr(lineNo, col, line, msg)
		}
		names = append(names, Name{
			Text:     text,
			Position: diag.Span(lineNo, col+cursor+lead, lineNo, col+cursor+lead+len(text)),
		})
		cursor += len(part) + 1
	}

	return names, nil
}

func parseErr(lineNo, col int, line, msg string) error {
	return &diag.ParseError{
		Position: diag.At(lineNo, col),
		Msg:      msg,
		Code:     line,
	}
}
