package fixgateway

import (
	"testing"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"
	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange"
)

func newTestGateway() (*FixGateway, *exchange.Exchange) {
	ex := exchange.New(exchange.Config{Instrument: "TEST"})
	g := NewFixGateway(&Config{}, ex)
	return g, ex
}

func testSession() quickfix.SessionID {
	return quickfix.SessionID{
		BeginString:  quickfix.BeginStringFIX44,
		SenderCompID: "EXEC",
		TargetCompID: "CLIENT",
	}
}

func limitOrder(sessionID quickfix.SessionID, clOrdID string, side enum.Side, price, qty int64) *NewOrderSingle {
	return &NewOrderSingle{
		SessionID: sessionID,
		ClOrdID:   clOrdID,
		Symbol:    "TEST",
		OrdType:   enum.OrdType_LIMIT,
		Price:     decimal.NewFromInt(price),
		Side:      side,
		OrderQty:  decimal.NewFromInt(qty),
	}
}

func TestNarrowPrice(t *testing.T) {
	cases := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"100", 100, false},
		{"0", 0, false},
		{"4294967295", 4294967295, false},
		{"4294967296", 0, true},
		{"-1", 0, true},
		{"100.5", 0, true},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		if err != nil {
			t.Fatal(err)
		}
		got, err := narrowPrice(d)
		if (err != nil) != c.wantErr {
			t.Errorf("narrowPrice(%s) err = %v", c.in, err)
			continue
		}
		if !c.wantErr && got != c.want {
			t.Errorf("narrowPrice(%s) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNarrowQtyRejectsZero(t *testing.T) {
	if _, err := narrowQty(decimal.Zero); err == nil {
		t.Error("zero quantity accepted")
	}
	if _, err := narrowQty(decimal.NewFromFloat(1.5)); err == nil {
		t.Error("fractional quantity accepted")
	}
	if got, err := narrowQty(decimal.NewFromInt(25)); err != nil || got != 25 {
		t.Errorf("narrowQty(25) = %d, %v", got, err)
	}
}

func TestAddOrderRests(t *testing.T) {
	g, ex := newTestGateway()
	sid := testSession()

	g.AddOrder(limitOrder(sid, "C1", enum.Side_SELL, 101, 50))

	depth := ex.Depth(engine.Sell)
	if len(depth) != 1 || depth[0].Price != 101 || depth[0].Qty != 50 {
		t.Fatalf("depth = %+v", depth)
	}
	if _, ok := g.byClOrdID.Load(clOrdKey(sid, "C1")); !ok {
		t.Error("live order not tracked by ClOrdID")
	}
}

func TestAddOrderDuplicateClOrdID(t *testing.T) {
	g, ex := newTestGateway()
	sid := testSession()

	g.AddOrder(limitOrder(sid, "C1", enum.Side_SELL, 101, 50))
	g.AddOrder(limitOrder(sid, "C1", enum.Side_SELL, 102, 60))

	depth := ex.Depth(engine.Sell)
	if len(depth) != 1 || depth[0].Qty != 50 {
		t.Fatalf("duplicate ClOrdID reached the book: %+v", depth)
	}
}

func TestAddOrderSameClOrdIDOtherSession(t *testing.T) {
	g, ex := newTestGateway()
	sidA := testSession()
	sidB := quickfix.SessionID{
		BeginString:  quickfix.BeginStringFIX42,
		SenderCompID: "EXEC",
		TargetCompID: "OTHER",
	}

	g.AddOrder(limitOrder(sidA, "C1", enum.Side_SELL, 101, 50))
	g.AddOrder(limitOrder(sidB, "C1", enum.Side_SELL, 102, 60))

	depth := ex.Depth(engine.Sell)
	if len(depth) != 2 {
		t.Fatalf("ClOrdID should be session-scoped, depth = %+v", depth)
	}
}

func TestAddOrderRejectsMarket(t *testing.T) {
	g, ex := newTestGateway()
	req := limitOrder(testSession(), "C1", enum.Side_BUY, 0, 10)
	req.OrdType = enum.OrdType_MARKET

	g.AddOrder(req)

	if d := ex.Depth(engine.Buy); len(d) != 0 {
		t.Fatalf("market order reached the book: %+v", d)
	}
	if _, ok := g.byClOrdID.Load(clOrdKey(req.SessionID, "C1")); ok {
		t.Error("rejected order left in ClOrdID map")
	}
}

func TestAddOrderRejectsFractionalPrice(t *testing.T) {
	g, ex := newTestGateway()
	req := limitOrder(testSession(), "C1", enum.Side_BUY, 0, 10)
	req.Price = decimal.NewFromFloat(99.5)

	g.AddOrder(req)

	if d := ex.Depth(engine.Buy); len(d) != 0 {
		t.Fatalf("fractional price reached the book: %+v", d)
	}
}

func TestCrossReleasesClOrdIDs(t *testing.T) {
	g, ex := newTestGateway()
	sid := testSession()

	g.AddOrder(limitOrder(sid, "S1", enum.Side_SELL, 100, 50))
	g.AddOrder(limitOrder(sid, "B1", enum.Side_BUY, 100, 50))

	if d := ex.Depth(engine.Sell); len(d) != 0 {
		t.Fatalf("sell side not swept: %+v", d)
	}
	if _, ok := g.byClOrdID.Load(clOrdKey(sid, "S1")); ok {
		t.Error("filled order S1 still live")
	}
	if _, ok := g.byClOrdID.Load(clOrdKey(sid, "B1")); ok {
		t.Error("filled order B1 still live")
	}

	// a done ClOrdID may be reused
	g.AddOrder(limitOrder(sid, "B1", enum.Side_BUY, 99, 10))
	if d := ex.Depth(engine.Buy); len(d) != 1 || d[0].Qty != 10 {
		t.Fatalf("reused ClOrdID rejected: %+v", d)
	}
}

func TestPartialFillState(t *testing.T) {
	g, ex := newTestGateway()
	sid := testSession()

	g.AddOrder(limitOrder(sid, "S1", enum.Side_SELL, 100, 100))
	g.AddOrder(limitOrder(sid, "B1", enum.Side_BUY, 100, 40))

	v, ok := g.byClOrdID.Load(clOrdKey(sid, "S1"))
	if !ok {
		t.Fatal("partially filled order dropped from map")
	}
	ord := v.(*liveOrder)
	ord.mu.Lock()
	cum, leaves, status := ord.cum, ord.leaves(), ord.status()
	ord.mu.Unlock()

	if cum != 40 || leaves != 60 {
		t.Errorf("cum=%d leaves=%d", cum, leaves)
	}
	if status != enum.OrdStatus_PARTIALLY_FILLED {
		t.Errorf("status = %v", status)
	}
	if d := ex.Depth(engine.Sell); len(d) != 1 || d[0].Qty != 60 {
		t.Fatalf("depth = %+v", d)
	}
}

func TestSweepAcrossLevels(t *testing.T) {
	g, _ := newTestGateway()
	sid := testSession()

	g.AddOrder(limitOrder(sid, "S1", enum.Side_SELL, 100, 50))
	g.AddOrder(limitOrder(sid, "S2", enum.Side_SELL, 102, 50))
	g.AddOrder(limitOrder(sid, "B1", enum.Side_BUY, 102, 80))

	// B1 took 50 from S1 and 30 from S2, then finished.
	if _, ok := g.byEngineID.Load(uint64(3)); ok {
		t.Error("filled B1 still tracked by engine id")
	}
	v, ok := g.byClOrdID.Load(clOrdKey(sid, "S2"))
	if !ok {
		t.Fatal("S2 should remain live")
	}
	ord := v.(*liveOrder)
	ord.mu.Lock()
	defer ord.mu.Unlock()
	if ord.cum != 30 || ord.leaves() != 20 {
		t.Errorf("S2 cum=%d leaves=%d", ord.cum, ord.leaves())
	}
	if !ord.avgPx().Equal(decimal.NewFromInt(102)) {
		t.Errorf("S2 avgPx = %s", ord.avgPx())
	}
}

func TestOnTradeIgnoresUnknownOrders(t *testing.T) {
	g, _ := newTestGateway()
	g.onTrade(engine.Trade{BuyID: 998, SellID: 999, BuyPrice: 1, SellPrice: 1, Qty: 5})
}

func TestOnTradeSkipsZeroQty(t *testing.T) {
	g, _ := newTestGateway()
	g.onTrade(engine.Trade{BuyID: 1, SellID: 2, Qty: 0})
}
