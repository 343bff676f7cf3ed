package risk

import "errors"

var (
	ErrPriceOutOfBand = errors.New("price outside allowed band")
	ErrZeroPrice      = errors.New("zero price")
	ErrZeroQty        = errors.New("zero quantity")
	ErrQtyTooLarge    = errors.New("quantity above maximum")
	ErrInvalidTick    = errors.New("price not on tick")
)
