package protocol

import (
	"math"
	"testing"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"
)

func TestParseUint64(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"123", 123},
		{"", 0},
		{"abc", 0},
		{"12x9", 12},
		{"-5", 0},
		{"18446744073709551615", math.MaxUint64},
		{"18446744073709551616", math.MaxUint64},
		{"99999999999999999999999999", math.MaxUint64},
	}
	for _, c := range cases {
		if got := parseUint64(c.in); got != c.want {
			t.Errorf("parseUint64(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseUint32Truncates(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"4294967295", math.MaxUint32},
		{"4294967296", 0},
		{"4294967297", 1},
		{"18446744073709551615", math.MaxUint32},
	}
	for _, c := range cases {
		if got := parseUint32(c.in); got != c.want {
			t.Errorf("parseUint32(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseSide(t *testing.T) {
	cases := []struct {
		in   string
		want engine.Side
	}{
		{"B", engine.Buy},
		{"BUY", engine.Buy},
		{"Bxyz", engine.Buy},
		{"S", engine.Sell},
		{"SELL", engine.Sell},
		{"b", engine.Sell},
		{"", engine.Sell},
		{"X", engine.Sell},
	}
	for _, c := range cases {
		if got := parseSide(c.in); got != c.want {
			t.Errorf("parseSide(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	toks := tokenize("SUBMIT\t1  100\r 10 B\r")
	want := []string{"SUBMIT", "1", "100", "10", "B"}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], toks[i])
		}
	}
}
