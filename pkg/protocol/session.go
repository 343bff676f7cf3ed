// file: pkg/protocol/session.go

package protocol

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"
)

// Book is the order book surface a session drives. Both engine.Engine and
// exchange.Exchange satisfy it.
type Book interface {
	Reset()
	Submit(id uint64, side engine.Side, price, qty uint32)
	Match() int
	OnTrade(func(engine.Trade))
}

// Session speaks the line protocol over a reader/writer pair:
//
//	INIT                          -> OK
//	SUBMIT <id> <price> <qty> <S> -> OK        (S: B for buy, anything else sell)
//	MATCH                         -> trade lines, then OK
//
// SUBMIT and MATCH before the first INIT answer ERR, as does any
// unrecognized command. Blank lines are skipped without output. Numeric
// tokens are unsigned decimal; malformed ones read as 0 rather than failing
// the line, and tokens past a command's arity are ignored.
//
// The session registers itself as a trade observer on the book, so give
// each session its own book.
type Session struct {
	book   Book
	sc     *bufio.Scanner
	w      *bufio.Writer
	inited bool
}

func NewSession(book Book, r io.Reader, w io.Writer) *Session {
	s := &Session{
		book: book,
		sc:   bufio.NewScanner(r),
		w:    bufio.NewWriter(w),
	}
	book.OnTrade(s.printTrade)
	return s
}

// Run consumes lines until the reader drains or the writer fails. The
// response to each line is flushed before the next is read.
func (s *Session) Run() error {
	for s.sc.Scan() {
		s.handleLine(s.sc.Text())
		if err := s.w.Flush(); err != nil {
			return err
		}
	}
	return s.sc.Err()
}

func (s *Session) handleLine(line string) {
	toks := tokenize(line)
	if len(toks) == 0 {
		return
	}
	switch toks[0] {
	case "INIT":
		s.book.Reset()
		s.inited = true
		s.ok()
	case "SUBMIT":
		if !s.inited {
			s.errLine()
			return
		}
		id := parseUint64(tokenAt(toks, 1))
		price := parseUint32(tokenAt(toks, 2))
		qty := parseUint32(tokenAt(toks, 3))
		side := parseSide(tokenAt(toks, 4))
		s.book.Submit(id, side, price, qty)
		s.ok()
	case "MATCH":
		if !s.inited {
			s.errLine()
			return
		}
		s.book.Match()
		s.ok()
	default:
		s.errLine()
	}
}

func (s *Session) printTrade(t engine.Trade) {
	fmt.Fprintf(s.w, "MATCH: Buy %d @ %d matches Sell %d @ %d for %d qty\n",
		t.BuyID, t.BuyPrice, t.SellID, t.SellPrice, t.Qty)
}

func (s *Session) ok()      { s.w.WriteString("OK\n") }
func (s *Session) errLine() { s.w.WriteString("ERR\n") }
