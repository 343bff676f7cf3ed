package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"
)

const (
	minPrice = 100
	maxPrice = 200
	minQty   = 1
	maxQty   = 100
)

func main() {
	var (
		numOrders  int
		matchEvery int
		seed       int64
	)
	flag.IntVar(&numOrders, "orders", 1_000_000, "orders to push through the book")
	flag.IntVar(&matchEvery, "match-every", 64, "submits between match sweeps")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "rng seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(seed))
	e := engine.New()

	totalTrades := 0
	totalQty := uint64(0)
	e.OnTrade(func(t engine.Trade) {
		totalTrades++
		totalQty += uint64(t.Qty)
	})

	resets := 0
	start := time.Now()
	for i := 0; i < numOrders; i++ {
		side := engine.Buy
		if rng.Intn(2) == 0 {
			side = engine.Sell
		}
		price := uint32(minPrice + rng.Intn(maxPrice-minPrice+1))
		qty := uint32(minQty + rng.Intn(maxQty-minQty+1))

		if err := e.SubmitChecked(uint64(i+1), side, price, qty); err != nil {
			// pool full: sweep crosses, and if the book is jammed with
			// orders that cannot trade, start a fresh one
			e.Match()
			if err := e.SubmitChecked(uint64(i+1), side, price, qty); err != nil {
				e.Reset()
				resets++
				_ = e.SubmitChecked(uint64(i+1), side, price, qty)
			}
		}

		if i%matchEvery == matchEvery-1 {
			e.Match()
		}
	}
	e.Match()
	elapsed := time.Since(start)

	fmt.Println("--------")
	fmt.Printf("Total Orders      : %d\n", numOrders)
	fmt.Printf("Total Trades      : %d\n", totalTrades)
	fmt.Printf("Total Matched Qty : %d\n", totalQty)
	fmt.Printf("Book Resets       : %d\n", resets)
	fmt.Printf("Time Taken        : %s\n", elapsed)
	fmt.Printf("Orders/sec        : %.0f\n", float64(numOrders)/elapsed.Seconds())
	fmt.Printf("Trades/sec        : %.0f\n", float64(totalTrades)/elapsed.Seconds())
}
