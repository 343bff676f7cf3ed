package risk

import "github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"

// PriceBandRule rejects prices outside [Floor, Ceil]. A zero Ceil means no
// upper bound.
type PriceBandRule struct {
	Floor uint32
	Ceil  uint32
}

func (r *PriceBandRule) Check(req *model.OrderRequest) error {
	if req.Price == 0 {
		return ErrZeroPrice
	}
	if req.Price < r.Floor {
		return ErrPriceOutOfBand
	}
	if r.Ceil != 0 && req.Price > r.Ceil {
		return ErrPriceOutOfBand
	}
	return nil
}
