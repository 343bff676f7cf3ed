package risk

import (
	"encoding/json"
	"os"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"
)

type tickBand struct {
	MaxPrice uint32 `json:"maxPrice"` // 0 = no limit
	Step     uint32 `json:"step"`
}

// TickSizeRule checks that a price lands on its band's tick. Bands are
// ordered; the first band whose MaxPrice covers the order's price applies.
type TickSizeRule struct {
	Bands []tickBand
}

// NewTickSizeRuleFromFile reads a JSON array of {maxPrice, step} bands.
func NewTickSizeRuleFromFile(path string) (*TickSizeRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bands []tickBand
	if err := json.Unmarshal(data, &bands); err != nil {
		return nil, err
	}
	return &TickSizeRule{Bands: bands}, nil
}

func (r *TickSizeRule) Check(req *model.OrderRequest) error {
	for _, band := range r.Bands {
		if band.MaxPrice == 0 || req.Price <= band.MaxPrice {
			if band.Step != 0 && req.Price%band.Step != 0 {
				return ErrInvalidTick
			}
			return nil
		}
	}
	return nil
}
