// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"nickandperla.net/turing/pkg/turing"
)

// NewDebugCommand creates the debug command.
func NewDebugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug <program.tm>",
		Short: "Step a program interactively",
		Long: `Compile a Turing machine program and step it one transition at a time
in an interactive session. Type help inside the session for commands.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, warnings, err := turing.BuildFile(args[0])
			if err != nil {
				printBuildError(cmd.ErrOrStderr(), err)
				return err
			}
			printWarnings(cmd.ErrOrStderr(), warnings)
			return runDebugger(cmd, m, args[0])
		},
	}
}

type debugSession struct {
	m      *turing.Machine
	source string
	steps  int
	out    io.Writer
}

func runDebugger(cmd *cobra.Command, m *turing.Machine, path string) error {
	s := &debugSession{m: m, source: path, out: cmd.OutOrStdout()}

	fmt.Fprintf(s.out, "debugging %s (help for commands, Ctrl+D to exit)\n\n", path)
	s.showTape()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Not a TTY, fall back to a plain line reader.
		return s.basicLoop(cmd.InOrStdin())
	}
	return s.readlineLoop()
}

func (s *debugSession) readlineLoop() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "turing> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("step"),
			readline.PcItem("run"),
			readline.PcItem("tape"),
			readline.PcItem("values"),
			readline.PcItem("state"),
			readline.PcItem("instr"),
			readline.PcItem("reset"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize debugger: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if s.dispatch(strings.TrimSpace(line)) {
			return nil
		}
	}
}

func (s *debugSession) basicLoop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "turing> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if s.dispatch(strings.TrimSpace(scanner.Text())) {
			return nil
		}
	}
}

// dispatch executes one debugger command, reporting whether the session
// should end.
func (s *debugSession) dispatch(line string) bool {
	if line == "" {
		return false
	}
	fields := strings.Fields(line)

	switch fields[0] {
	case "quit", "exit", "q":
		return true

	case "step", "s":
		n := 1
		if len(fields) > 1 {
			parsed, err := strconv.Atoi(fields[1])
			if err != nil || parsed < 1 {
				fmt.Fprintf(s.out, "step wants a positive count, got %q\n", fields[1])
				return false
			}
			n = parsed
		}
		s.stepN(n)
		s.showTape()

	case "run", "r":
		s.runToEnd()
		s.showTape()

	case "tape", "t":
		s.showTape()

	case "values", "v":
		fmt.Fprintln(s.out, s.m.Values())

	case "state":
		s.showState()

	case "instr", "i":
		if ins, ok := s.m.CurrentInstruction(); ok {
			fmt.Fprintln(s.out, ins.String())
		} else {
			fmt.Fprintln(s.out, "no explicit instruction for the current configuration")
		}

	case "reset":
		s.m.ResetFrequencies()
		fmt.Fprintln(s.out, "visit counts cleared")

	case "help", "h", "?":
		s.showHelp()

	default:
		fmt.Fprintf(s.out, "unknown command %q (help for commands)\n", fields[0])
	}
	return false
}

func (s *debugSession) stepN(n int) {
	for i := 0; i < n; i++ {
		switch s.m.Step() {
		case turing.UndefinedHalt:
			fmt.Fprintf(s.out, "%s in state %s\n", errorStyle.Render("undefined"), s.m.State())
			return
		case turing.Final:
			s.steps++
			fmt.Fprintf(s.out, "%s in state %s after %d steps\n",
				resultStyle.Render("finished"), s.m.State(), s.steps)
			return
		}
		s.steps++
	}
}

func (s *debugSession) runToEnd() {
	for !s.m.Finished() {
		if s.m.Step() == turing.UndefinedHalt {
			fmt.Fprintf(s.out, "%s in state %s after %d steps\n",
				errorStyle.Render("undefined"), s.m.State(), s.steps)
			return
		}
		s.steps++
		if cfg.Threshold > 0 && s.steps%cfg.Batch == 0 && s.m.IsInfiniteLoop(cfg.Threshold) {
			fmt.Fprintf(s.out, "possible infinite loop after %d steps (reset to keep going)\n", s.steps)
			return
		}
	}
	out := s.m.TapeValue()
	out.Steps = s.steps
	fmt.Fprintf(s.out, "%s %s\n", resultStyle.Render("finished"), out.String())
}

func (s *debugSession) showTape() {
	fmt.Fprintln(s.out, s.m.String())
}

func (s *debugSession) showState() {
	fmt.Fprintf(s.out, "state %s, head %d, %d steps taken", s.m.State(), s.m.Position(), s.steps)
	if s.m.Finished() {
		fmt.Fprint(s.out, " (final)")
	} else if s.m.IsUndefined() {
		fmt.Fprint(s.out, " (undefined)")
	}
	fmt.Fprintln(s.out)
}

func (s *debugSession) showHelp() {
	fmt.Fprint(s.out, `  step [n]  advance one transition, or n transitions
  run       run until a final or undefined state
  tape      print the tape and head
  values    print the tape decoded as unary values
  state     print the current state and step count
  instr     print the instruction about to execute
  reset     clear the loop-detection visit counts
  quit      leave the debugger
`)
}
