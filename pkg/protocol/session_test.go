package protocol

import (
	"strings"
	"testing"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"
)

func runScript(t *testing.T, script string) string {
	t.Helper()
	var out strings.Builder
	s := NewSession(engine.New(), strings.NewReader(script), &out)
	if err := s.Run(); err != nil {
		t.Fatalf("session run: %v", err)
	}
	return out.String()
}

func TestSessionScenario(t *testing.T) {
	script := "INIT\n" +
		"SUBMIT 1 100 100 S\n" +
		"SUBMIT 2 101 50 S\n" +
		"SUBMIT 3 101 50 B\n" +
		"MATCH\n" +
		"SUBMIT 4 102 150 B\n" +
		"MATCH\n"
	want := "OK\n" +
		"OK\n" +
		"OK\n" +
		"OK\n" +
		"MATCH: Buy 3 @ 101 matches Sell 1 @ 100 for 50 qty\n" +
		"OK\n" +
		"OK\n" +
		"MATCH: Buy 4 @ 102 matches Sell 1 @ 100 for 50 qty\n" +
		"MATCH: Buy 4 @ 102 matches Sell 2 @ 101 for 50 qty\n" +
		"OK\n"
	if got := runScript(t, script); got != want {
		t.Errorf("scenario output:\n%s\nwant:\n%s", got, want)
	}
}

func TestCommandsBeforeInit(t *testing.T) {
	got := runScript(t, "SUBMIT 1 100 10 B\nMATCH\nINIT\nMATCH\n")
	want := "ERR\nERR\nOK\nOK\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBlankLinesSkipped(t *testing.T) {
	got := runScript(t, "\n   \nINIT\n\t\nMATCH\n")
	want := "OK\nOK\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestUnknownCommand(t *testing.T) {
	got := runScript(t, "INIT\nCANCEL 1\nSUB 1 100 10 B\nsubmit 1 100 10 B\n")
	want := "OK\nERR\nERR\nERR\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestExtraTokensIgnored(t *testing.T) {
	e := engine.New()
	var out strings.Builder
	s := NewSession(e, strings.NewReader("INIT\nSUBMIT 1 100 10 B trailing junk\n"), &out)
	if err := s.Run(); err != nil {
		t.Fatalf("session run: %v", err)
	}
	if out.String() != "OK\nOK\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	buys := e.Depth(engine.Buy)
	if len(buys) != 1 || buys[0].Price != 100 || buys[0].Qty != 10 {
		t.Errorf("order not resting as submitted: %+v", buys)
	}
}

func TestShortSubmitLine(t *testing.T) {
	e := engine.New()
	var out strings.Builder
	s := NewSession(e, strings.NewReader("INIT\nSUBMIT 7\n"), &out)
	if err := s.Run(); err != nil {
		t.Fatalf("session run: %v", err)
	}
	if out.String() != "OK\nOK\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	// Missing tokens read as zeroes: price 0, qty 0, sell side.
	sells := e.Depth(engine.Sell)
	if len(sells) != 1 || sells[0].Price != 0 || sells[0].Qty != 0 {
		t.Errorf("expected zero-value sell resting, got %+v", sells)
	}
}

func TestInitClearsBook(t *testing.T) {
	got := runScript(t, "INIT\nSUBMIT 1 100 10 S\nSUBMIT 2 100 10 B\nINIT\nMATCH\n")
	want := "OK\nOK\nOK\nOK\nOK\n"
	if got != want {
		t.Errorf("expected re-init to clear the book, got %q", got)
	}
}

func TestMalformedNumericsAnswerOK(t *testing.T) {
	got := runScript(t, "INIT\nSUBMIT abc xyz ?? B\nMATCH\n")
	want := "OK\nOK\nOK\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
