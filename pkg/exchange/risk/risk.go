package risk

import "github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"

// Rule rejects order requests before they reach the book. A nil error
// accepts the order.
type Rule interface {
	Check(req *model.OrderRequest) error
}
