package machine

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"nickandperla.net/turing/internal/diag"
)

const exampleProgram = `/// Example 1

{11111011};
I = {q0};
F = {q2};

(q0, 1, 0, R, q1);
(q1, 1, 1, R, q1);
(q1, 0, 1, R, q2);
(q2, 1, 0, H, q2);
(q2, 0, 0, H, q2);
`

const sumProgram = `{111011};
I = {q0};
F = {q2};
compose = {sum};
`

const loopProgram = `{11};
I = {a};
F = {z};

(a, 1, 1, R, b);
(b, 1, 1, L, a);
(a, 0, 0, L, b);
(b, 0, 0, R, a);
`

func TestBuildExample1(t *testing.T) {
	m, warnings, err := Build(exampleProgram)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %d", len(warnings))
	}
	if m.Description() != "Example 1" {
		t.Errorf("unexpected description: %q", m.Description())
	}
	if m.State() != "q0" {
		t.Errorf("expected initial state q0, got %s", m.State())
	}

	want := "0 0 0 1 1 1 1 1 0 1 1 \n      ^               "
	if m.String() != want {
		t.Errorf("unexpected initial tape:\n%s\nwant:\n%s", m.String(), want)
	}
}

func TestBuildAllZeroTape(t *testing.T) {
	_, _, err := Build("{000};\nI = {q0};\nF = {q1};\n")
	if err == nil {
		t.Fatal("expected an error for an all-zero tape")
	}

	var se *diag.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *diag.SyntaxError, got %T", err)
	}
	if se.Msg != "Expected at least a 1 in the tape" {
		t.Errorf("unexpected message: %s", se.Msg)
	}
	if se.Code != "{000};" {
		t.Errorf("snippet should be the tape line, got %q", se.Code)
	}
}

func TestBuildUnknownLibrary(t *testing.T) {
	_, _, err := Build("{1};\nI = {q0};\nF = {q2};\ncompose = {nope};\n")
	if err == nil {
		t.Fatal("expected an error for an unknown library")
	}

	var se *diag.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *diag.SyntaxError, got %T", err)
	}
	if se.Msg != `Could not find the library "nope"` {
		t.Errorf("unexpected message: %s", se.Msg)
	}
	// The error points at the name token, not the record.
	if se.Position.Start.Col != 12 {
		t.Errorf("expected error at col 12, got %d", se.Position.Start.Col)
	}
}

func TestBuildUnknownMovementSnippet(t *testing.T) {
	_, _, err := Build("{1};\nI = {q0};\nF = {q1};\n(q0, 1, 0, X, q1);\n")
	if err == nil {
		t.Fatal("expected an error for an unknown movement")
	}
	var se *diag.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *diag.SyntaxError, got %T", err)
	}
	if se.Code != "(q0, 1, 0, X, q1);" {
		t.Errorf("snippet should be the instruction line, got %q", se.Code)
	}
}

func TestBuildOverwriteWarning(t *testing.T) {
	src := "{1};\nI = {q0};\nF = {q1};\n(q0, 1, 0, R, q1);\n(q0, 1, 1, H, q1);\n"
	m, warnings, err := Build(src)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	want := "instruction for (q0, 1) already exists, overwriting it"
	if warnings[0].Warning() != want {
		t.Errorf("unexpected warning: %s", warnings[0].Warning())
	}

	// The later declaration wins.
	ins, ok := m.CurrentInstruction()
	if !ok {
		t.Fatal("expected an instruction for the initial configuration")
	}
	if ins.String() != "(q0, 1, 1, H, q1)" {
		t.Errorf("expected the later instruction, got %s", ins.String())
	}
}

func TestComposeMergesSilently(t *testing.T) {
	// A user declaration replacing a composed instruction is intentional
	// wiring, not a mistake; only user-on-user collisions warn.
	src := "{11};\nI = {q0};\nF = {q2};\ncompose = {sum};\n(q0, 1, 1, H, q2);\n"
	m, warnings, err := Build(src)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %d", len(warnings))
	}
	ins, ok := m.CurrentInstruction()
	if !ok || ins.ToState != "q2" {
		t.Errorf("user declaration should override the composed one: %#v", ins)
	}
	if len(m.Composed()) != 1 || m.Composed()[0].Name != "sum" {
		t.Errorf("unexpected composed libraries: %#v", m.Composed())
	}
}

func TestLaterRecordsWin(t *testing.T) {
	m, _, err := Build("{1};\n{11};\nI = {a};\nI = {b};\nF = {x};\nF = {y, z};\n")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if m.State() != "b" {
		t.Errorf("expected later initial state b, got %s", m.State())
	}
	finals := m.FinalStates()
	if len(finals) != 2 || finals[0] != "y" {
		t.Errorf("expected later final states, got %v", finals)
	}
	// Tape {11} has two 1s; {1} has one.
	ones := 0
	for _, c := range m.Tape() {
		if c {
			ones++
		}
	}
	if ones != 2 {
		t.Errorf("expected the later tape, got %d ones", ones)
	}
}

func TestRunSumComposition(t *testing.T) {
	m, _, err := Build(sumProgram)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	out := m.FinalResult()
	want := Output{Defined: true, Steps: 5, Ones: 3}
	if out != want {
		t.Fatalf("expected %v, got %v", want, out)
	}

	render := "0 0 0 0 1 1 0 0 1 0 0 \n              ^       "
	if m.String() != render {
		t.Errorf("unexpected final tape:\n%s\nwant:\n%s", m.String(), render)
	}
}

func TestRunExample1(t *testing.T) {
	m, _, err := Build(exampleProgram)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	out := m.FinalResult()
	if !out.Defined || out.Steps != 6 || out.Ones != 7 {
		t.Errorf("unexpected output: %v", out)
	}
	if out.String() != "(6, 7)" {
		t.Errorf("unexpected output string: %s", out.String())
	}
}

func TestMarginMaintained(t *testing.T) {
	m, _, err := Build(sumProgram)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	check := func(when string) {
		pos, tape := m.Position(), m.Tape()
		if pos < 3 || pos > len(tape)-4 {
			t.Fatalf("%s: head at %d on a %d-cell tape breaks the margin", when, pos, len(tape))
		}
	}

	// The freshly built tape ends in data cells; the invariant is head
	// slack, not zeroed edges.
	if got := m.String(); got != "0 0 0 1 1 1 0 1 1 \n      ^           " {
		t.Fatalf("unexpected built tape:\n%s", got)
	}

	check("after build")
	for i := 0; !m.Finished(); i++ {
		if m.Step() == UndefinedHalt {
			t.Fatal("sum run should not hit an undefined configuration")
		}
		check(fmt.Sprintf("after step %d", i+1))
	}
}

func TestUndefinedHaltLeavesMachineUntouched(t *testing.T) {
	m, _, err := Build("{11};\nI = {a};\nF = {z};\n(a, 1, 0, R, b);\n")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if m.Step() != Continue {
		t.Fatal("first step should continue into b")
	}

	// b has no rules and is not final.
	if !m.IsUndefined() {
		t.Fatal("configuration should be undefined")
	}
	stateBefore, posBefore := m.State(), m.Position()
	if m.Step() != UndefinedHalt {
		t.Fatal("expected UndefinedHalt")
	}
	if m.State() != stateBefore || m.Position() != posBefore {
		t.Error("an undefined step must not mutate the machine")
	}

	// Repeating the step keeps reporting the same outcome.
	if m.Step() != UndefinedHalt {
		t.Error("UndefinedHalt should be stable")
	}
}

func TestFinalResultUndefinedCountsCompletedSteps(t *testing.T) {
	m, _, err := Build("{11};\nI = {a};\nF = {z};\n(a, 1, 0, R, b);\n")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	out := m.FinalResult()
	if out.Defined {
		t.Fatal("expected an undefined output")
	}
	if out.Steps != 1 {
		t.Errorf("expected 1 completed step, got %d", out.Steps)
	}
	if out.String() != "Undefined" {
		t.Errorf("unexpected output string: %s", out.String())
	}
}

func TestFinalStateImplicitHalt(t *testing.T) {
	// No explicit rules at all: the initial state is final, so every cell
	// gets a synthesized halt.
	m, _, err := Build("{1};\nI = {f};\nF = {f};\n")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !m.Finished() {
		t.Fatal("machine should start finished")
	}
	if m.IsUndefined() {
		t.Error("a final state is never undefined")
	}
	out := m.FinalResult()
	if !out.Defined || out.Steps != 0 || out.Ones != 1 {
		t.Errorf("unexpected output: %v", out)
	}
	if m.Step() != Final {
		t.Error("stepping a finished machine reports Final")
	}
}

func TestEmptyMachine(t *testing.T) {
	m := Empty()
	if !m.Finished() {
		t.Fatal("empty machine should be finished")
	}
	if len(m.Tape()) != 7 || m.Position() != 3 {
		t.Errorf("unexpected tape shape: %d cells, head %d", len(m.Tape()), m.Position())
	}
	out := m.FinalResult()
	if !out.Defined || out.Steps != 0 || out.Ones != 0 {
		t.Errorf("unexpected output: %v", out)
	}
}

func TestInfiniteLoopDetection(t *testing.T) {
	m, _, err := Build(loopProgram)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i := 0; i < 50; i++ {
		if m.Step() != Continue {
			t.Fatal("loop program should never stop on its own")
		}
	}
	if !m.IsInfiniteLoop(10) {
		t.Error("visit counts should exceed 10 after 50 steps")
	}
	if m.IsInfiniteLoop(100) {
		t.Error("threshold 100 should not trip after 50 steps")
	}

	m.ResetFrequencies()
	if m.IsInfiniteLoop(10) {
		t.Error("reset should clear the visit counts")
	}
}

func TestValues(t *testing.T) {
	m, _, err := Build("{1011101111};\nI = {f};\nF = {f};\n")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got := m.Values()
	want := []int{0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTapeValue(t *testing.T) {
	m, _, err := Build("{111};\nI = {f};\nF = {f};\n")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	out := m.TapeValue()
	if !out.Defined || out.Steps != 0 || out.Ones != 3 {
		t.Errorf("unexpected output: %v", out)
	}
}

func TestShortTapeGetsRightMargin(t *testing.T) {
	m, _, err := Build("{1};\nI = {f};\nF = {f};\n")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(m.Tape()) != 7 {
		t.Errorf("expected a 7-cell tape, got %d", len(m.Tape()))
	}
	if m.Position() != 3 {
		t.Errorf("expected head at 3, got %d", m.Position())
	}
	if !strings.HasPrefix(m.String(), "0 0 0 1 0 0 0 ") {
		t.Errorf("unexpected render: %q", m.String())
	}
}

// The built-in machines, driven through composition over a range of unary
// inputs. Each entry encodes its inputs as n+1 runs of 1s separated by
// single 0s.
func TestLibraryBehavior(t *testing.T) {
	encode := func(vals ...int) string {
		var b strings.Builder
		for i, v := range vals {
			if i > 0 {
				b.WriteString("0")
			}
			b.WriteString(strings.Repeat("1", v+1))
		}
		return b.String()
	}

	run := func(t *testing.T, lib, initial, final, tape string) *Machine {
		t.Helper()
		src := fmt.Sprintf("{%s};\nI = {%s};\nF = {%s};\ncompose = {%s};\n", tape, initial, final, lib)
		m, _, err := Build(src)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		out := m.FinalResult()
		if !out.Defined {
			t.Fatalf("%s on {%s} died undefined after %d steps", lib, tape, out.Steps)
		}
		return m
	}

	t.Run("sum", func(t *testing.T) {
		// sum leaves a+b ones on the tape, one erased from each block.
		for a := 0; a < 5; a++ {
			for b := 0; b < 5; b++ {
				m := run(t, "sum", "q0", "q2", encode(a, b))
				if got := m.TapeValue().Ones; got != a+b {
					t.Errorf("sum(%d, %d): expected %d ones, got %d", a, b, a+b, got)
				}
			}
		}
	})

	t.Run("double", func(t *testing.T) {
		for a := 0; a < 5; a++ {
			m := run(t, "double", "d0", "d9", encode(a))
			got := m.Values()
			if len(got) != 1 || got[0] != 2*a {
				t.Errorf("double(%d): expected [%d], got %v", a, 2*a, got)
			}
		}
	})

	t.Run("half", func(t *testing.T) {
		for a := 0; a < 6; a++ {
			m := run(t, "half", "h0", "h9", encode(a))
			got := m.Values()
			if len(got) != 1 || got[0] != a/2 {
				t.Errorf("half(%d): expected [%d], got %v", a, a/2, got)
			}
		}
	})

	t.Run("mod", func(t *testing.T) {
		for a := 0; a < 6; a++ {
			m := run(t, "mod", "m0", "m4", encode(a))
			got := m.Values()
			if len(got) != 1 || got[0] != a%2 {
				t.Errorf("mod(%d): expected [%d], got %v", a, a%2, got)
			}
		}
	})

	t.Run("diff", func(t *testing.T) {
		for a := 0; a < 5; a++ {
			for b := 0; b < 5; b++ {
				want := a - b
				if want < 0 {
					want = 0
				}
				m := run(t, "diff", "s0", "sf", encode(a, b))
				got := m.Values()
				if len(got) != 1 || got[0] != want {
					t.Errorf("diff(%d, %d): expected [%d], got %v", a, b, want, got)
				}
			}
		}
	})
}
