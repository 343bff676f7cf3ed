package risk

import "github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"

// MaxQtyRule rejects empty orders and orders larger than Max. A zero Max
// means no upper bound.
type MaxQtyRule struct {
	Max uint32
}

func (r *MaxQtyRule) Check(req *model.OrderRequest) error {
	if req.Qty == 0 {
		return ErrZeroQty
	}
	if r.Max != 0 && req.Qty > r.Max {
		return ErrQtyTooLarge
	}
	return nil
}
