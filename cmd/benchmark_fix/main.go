package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	fix42nos "github.com/quickfixgo/fix42/newordersingle"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/quickfix/log/file"
	"github.com/quickfixgo/tag"
	"github.com/shopspring/decimal"
)

var (
	pairsPerSecond int
	runSeconds     int

	sent    atomic.Int64
	reports atomic.Int64
	fills   atomic.Int64
)

type InitiatorApp struct {
	sessionID *quickfix.SessionID
}

func (a *InitiatorApp) OnCreate(sessionID quickfix.SessionID) {
	a.sessionID = &sessionID
}

func (a *InitiatorApp) OnLogon(sessionID quickfix.SessionID) {
	log.Println("Logon success")
	go sendCrossingPairs(sessionID)
}

func (a *InitiatorApp) OnLogout(sessionID quickfix.SessionID)                       {}
func (a *InitiatorApp) ToAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) {}
func (a *InitiatorApp) ToApp(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	return nil
}
func (a *InitiatorApp) FromAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}
func (a *InitiatorApp) FromApp(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	reports.Add(1)
	if execType, err := msg.Body.GetString(tag.ExecType); err == nil {
		if v := enum.ExecType(execType); v == enum.ExecType_FILL || v == enum.ExecType_PARTIAL_FILL {
			fills.Add(1)
		}
	}
	return nil
}

// sendCrossingPairs pushes matched buy/sell pairs at a fixed rate so the
// book churns instead of growing.
func sendCrossingPairs(sessionID quickfix.SessionID) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	elapsed := 0
	for range ticker.C {
		elapsed++
		if elapsed > runSeconds {
			return
		}
		for i := 0; i < pairsPerSecond; i++ {
			price := decimal.NewFromInt(int64(100 + rand.Intn(20)))
			qty := decimal.NewFromInt(int64(1 + rand.Intn(100)))
			sendOrder(sessionID, enum.Side_SELL, price, qty)
			sendOrder(sessionID, enum.Side_BUY, price, qty)
		}
	}
}

func sendOrder(sessionID quickfix.SessionID, side enum.Side, price, qty decimal.Decimal) {
	order := fix42nos.New(
		field.NewClOrdID(randSeq(17)),
		field.NewHandlInst("1"),
		field.NewSymbol("MATCHBOOK"),
		field.NewSide(side),
		field.NewTransactTime(time.Now()),
		field.NewOrdType(enum.OrdType_LIMIT))
	order.SetAccount("BENCH")
	order.SetPrice(price, 0)
	order.SetOrderQty(qty, 0)
	order.SetTimeInForce(enum.TimeInForce_DAY)
	order.SetSenderCompID(sessionID.SenderCompID)
	order.SetTargetCompID(sessionID.TargetCompID)
	if err := quickfix.Send(order); err != nil {
		log.Println(err)
		return
	}
	sent.Add(1)
}

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./config/fix/initiator42.cfg", "quickfix settings file")
	flag.IntVar(&pairsPerSecond, "pairs", 250, "crossing pairs per second")
	flag.IntVar(&runSeconds, "seconds", 60, "seconds to run")
	flag.Parse()

	app := &InitiatorApp{}

	cfg, err := os.Open(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	defer cfg.Close() // nolint

	settings, err := quickfix.ParseSettings(cfg)
	if err != nil {
		log.Fatal(err)
	}

	storeFactory := quickfix.NewMemoryStoreFactory()
	logFactory, _ := file.NewLogFactory(settings)
	initiator, err := quickfix.NewInitiator(app, storeFactory, settings, logFactory)
	if err != nil {
		log.Fatal(err)
	}
	if err := initiator.Start(); err != nil {
		log.Fatal(err)
	}
	log.Println("Initiator started...")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	deadline := time.After(time.Duration(runSeconds+5) * time.Second)
	select {
	case <-sigs:
	case <-deadline:
	}

	initiator.Stop()

	fmt.Println("--------")
	fmt.Printf("Orders Sent   : %d\n", sent.Load())
	fmt.Printf("Reports Seen  : %d\n", reports.Load())
	fmt.Printf("Fill Reports  : %d\n", fills.Load())
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randSeq(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
