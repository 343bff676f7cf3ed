package model

import "github.com/Milo-Goodfellow-Work/matchbook/pkg/engine"

// OrderRequest is the form an order takes before it reaches the book. Risk
// rules check it; on acceptance the fields pass to the engine unchanged.
type OrderRequest struct {
	ID    uint64
	Side  engine.Side
	Price uint32
	Qty   uint32
}
