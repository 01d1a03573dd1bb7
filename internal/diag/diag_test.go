package diag

import "testing"

func TestPositionString(t *testing.T) {
	p := At(3, 7)
	if p.String() != "3:7" {
		t.Errorf("expected '3:7', got '%s'", p.String())
	}

	p = Span(3, 7, 3, 12)
	if p.String() != "3:7 to 3:12" {
		t.Errorf("expected '3:7 to 3:12', got '%s'", p.String())
	}
}

func TestUnderlinePoint(t *testing.T) {
	snippet := "I = {q0};"
	got := Underline(snippet, At(1, 5))
	want := "~~~~^~~~~"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestUnderlineSpan(t *testing.T) {
	snippet := "compose = {nope};"
	got := Underline(snippet, Span(1, 12, 1, 16))
	want := "~~~~~~~~~~~^^^^~~"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestUnderlineClamped(t *testing.T) {
	// A position past the snippet still renders a single marker.
	got := Underline("ab", At(1, 10))
	if len(got) != 3 {
		t.Errorf("expected 3 marker chars, got %q", got)
	}
}

func TestStateOverwriteMessage(t *testing.T) {
	w := StateOverwrite{Position: At(4, 1), State: "q1", Value: true}
	want := "instruction for (q1, 1) already exists, overwriting it"
	if w.Warning() != want {
		t.Errorf("expected %q, got %q", want, w.Warning())
	}
	if w.Pos().Start.Line != 4 {
		t.Errorf("expected line 4, got %d", w.Pos().Start.Line)
	}
}

func TestSyntaxErrorInterface(t *testing.T) {
	var ce CompilerError = &SyntaxError{
		Position: At(2, 1),
		Msg:      "Expected at least a 1 in the tape",
		Code:     "{000};",
		Expected: ConstructTape,
	}
	if ce.Message() != "Expected at least a 1 in the tape" {
		t.Errorf("unexpected message: %s", ce.Message())
	}
	if ce.Snippet() != "{000};" {
		t.Errorf("unexpected snippet: %s", ce.Snippet())
	}
}
