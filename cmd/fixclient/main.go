package main

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	fix44nos "github.com/quickfixgo/fix44/newordersingle"
	fix44ocr "github.com/quickfixgo/fix44/ordercancelrequest"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/quickfix/log/file"
	"github.com/quickfixgo/tag"
	"github.com/shopspring/decimal"
)

type InitiatorApp struct {
	sessionID *quickfix.SessionID
}

func (a *InitiatorApp) OnCreate(sessionID quickfix.SessionID) {
	a.sessionID = &sessionID
}

func (a *InitiatorApp) OnLogon(sessionID quickfix.SessionID) {
	log.Println("Logon success", sessionID)
	sendScriptedFlow(sessionID)
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
	msgType, _ := msg.Header.GetString(tag.MsgType)
	switch enum.MsgType(msgType) {
	case enum.MsgType_EXECUTION_REPORT:
		clOrdID, _ := msg.Body.GetString(tag.ClOrdID)
		execType, _ := msg.Body.GetString(tag.ExecType)
		ordStatus, _ := msg.Body.GetString(tag.OrdStatus)
		lastQty, _ := msg.Body.GetString(tag.LastQty)
		leaves, _ := msg.Body.GetString(tag.LeavesQty)
		log.Printf("exec report clOrdID=%s execType=%s ordStatus=%s lastQty=%s leaves=%s",
			clOrdID, execType, ordStatus, lastQty, leaves)
	case enum.MsgType_ORDER_CANCEL_REJECT:
		origClOrdID, _ := msg.Body.GetString(tag.OrigClOrdID)
		text, _ := msg.Body.GetString(tag.Text)
		log.Printf("cancel reject origClOrdID=%s text=%q", origClOrdID, text)
	default:
		log.Printf("app message msgType=%s", msgType)
	}
	return nil
}

// === Message sender ===

// sendScriptedFlow rests a sell, crosses it with a buy, then asks to cancel
// the remainder and shows the reject coming back.
func sendScriptedFlow(sessionID quickfix.SessionID) {
	sellID := randSeq(17)
	orderSell := fix44nos.New(
		field.NewClOrdID(sellID),
		field.NewSide(enum.Side_SELL),
		field.NewTransactTime(time.Now()),
		field.NewOrdType(enum.OrdType_LIMIT))
	orderSell.SetSymbol("MATCHBOOK")
	orderSell.SetAccount("011C399157")
	orderSell.SetPrice(decimal.NewFromInt(101), 0)
	orderSell.SetOrderQty(decimal.NewFromInt(100), 0)
	orderSell.SetTimeInForce(enum.TimeInForce_DAY)
	orderSell.SetSenderCompID(sessionID.SenderCompID)
	orderSell.SetTargetCompID(sessionID.TargetCompID)
	if err := quickfix.Send(orderSell); err != nil {
		log.Println(err)
	}

	orderBuy := fix44nos.New(
		field.NewClOrdID(randSeq(17)),
		field.NewSide(enum.Side_BUY),
		field.NewTransactTime(time.Now()),
		field.NewOrdType(enum.OrdType_LIMIT))
	orderBuy.SetSymbol("MATCHBOOK")
	orderBuy.SetAccount("011C399158")
	orderBuy.SetPrice(decimal.NewFromInt(101), 0)
	orderBuy.SetOrderQty(decimal.NewFromInt(40), 0)
	orderBuy.SetTimeInForce(enum.TimeInForce_DAY)
	orderBuy.SetSenderCompID(sessionID.SenderCompID)
	orderBuy.SetTargetCompID(sessionID.TargetCompID)
	if err := quickfix.Send(orderBuy); err != nil {
		log.Println(err)
	}

	cancel := fix44ocr.New(
		field.NewOrigClOrdID(sellID),
		field.NewClOrdID(randSeq(17)),
		field.NewSide(enum.Side_SELL),
		field.NewTransactTime(time.Now()))
	cancel.SetSymbol("MATCHBOOK")
	cancel.SetSenderCompID(sessionID.SenderCompID)
	cancel.SetTargetCompID(sessionID.TargetCompID)
	if err := quickfix.Send(cancel); err != nil {
		log.Println(err)
	}
}

func main() {
	cfgPath := os.Args[1]
	log.Println("cfgPath:", cfgPath)
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
	err = initiator.Start()
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Initiator started...")
	select {}
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randSeq(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
