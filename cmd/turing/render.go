// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"nickandperla.net/turing/internal/diag"
	"nickandperla.net/turing/pkg/turing"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	posStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	markerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	libNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// printBuildError renders a compiler diagnostic with its source line and a
// marker underneath. Non-compiler errors fall back to a plain line.
func printBuildError(w io.Writer, err error) {
	var ce turing.CompilerError
	if !errors.As(err, &ce) {
		fmt.Fprintf(w, "%s %v\n", errorStyle.Render("error:"), err)
		return
	}

	fmt.Fprintf(w, "%s %s %s\n",
		errorStyle.Render("error:"),
		ce.Message(),
		posStyle.Render("["+ce.Pos().String()+"]"))

	if snippet := ce.Snippet(); snippet != "" {
		fmt.Fprintf(w, "  %s\n", snippet)
		fmt.Fprintf(w, "  %s\n", markerStyle.Render(diag.Underline(snippet, ce.Pos())))
	}
}

// printWarnings renders build warnings, one per line.
func printWarnings(w io.Writer, warnings []turing.Warning) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "%s %s %s\n",
			warnStyle.Render("warning:"),
			warning.Warning(),
			posStyle.Render("["+warning.Pos().String()+"]"))
	}
}

// printOutput renders a run result and the machine's decoded tape values.
func printOutput(w io.Writer, m *turing.Machine, out turing.Output) {
	fmt.Fprintln(w, m.String())
	if !out.Defined {
		fmt.Fprintf(w, "%s after %d steps\n", errorStyle.Render("Undefined"), out.Steps)
		return
	}
	fmt.Fprintf(w, "%s %s %s\n",
		resultStyle.Render(out.String()),
		mutedStyle.Render("steps/ones, values:"),
		fmt.Sprint(m.Values()))
}
