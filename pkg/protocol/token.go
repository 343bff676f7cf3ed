package protocol

import (
	"math"
	"strings"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"
)

func isDelim(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func tokenize(line string) []string {
	return strings.FieldsFunc(line, isDelim)
}

// tokenAt returns the i-th token or "" when the line is short. Missing
// arguments then read as zero values instead of failing the line.
func tokenAt(toks []string, i int) string {
	if i < len(toks) {
		return toks[i]
	}
	return ""
}

// parseUint64 consumes the longest leading run of decimal digits. No digits
// parses as 0; a run past the range clamps to the maximum. Anything after
// the digits is ignored.
func parseUint64(s string) uint64 {
	var v uint64
	overflow := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		if overflow {
			continue
		}
		d := uint64(c - '0')
		if v > (math.MaxUint64-d)/10 {
			overflow = true
			continue
		}
		v = v*10 + d
	}
	if overflow {
		return math.MaxUint64
	}
	return v
}

// parseUint32 narrows parseUint64 by truncation, keeping the low 32 bits.
func parseUint32(s string) uint32 {
	return uint32(parseUint64(s))
}

// parseSide maps a token starting with 'B' to the buy side and everything
// else, the empty token included, to sell.
func parseSide(s string) engine.Side {
	if len(s) > 0 && s[0] == 'B' {
		return engine.Buy
	}
	return engine.Sell
}
