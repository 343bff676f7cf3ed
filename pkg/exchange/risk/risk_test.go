package risk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Milo-Goodfellow-Work/matchbook/pkg/exchange/model"
)

func TestPriceBand(t *testing.T) {
	rule := &PriceBandRule{Floor: 50, Ceil: 150}

	cases := []struct {
		price uint32
		want  error
	}{
		{100, nil},
		{50, nil},
		{150, nil},
		{49, ErrPriceOutOfBand},
		{151, ErrPriceOutOfBand},
		{0, ErrZeroPrice},
	}
	for _, c := range cases {
		err := rule.Check(&model.OrderRequest{ID: 1, Price: c.price, Qty: 10})
		if err != c.want {
			t.Errorf("price %d: expected %v, got %v", c.price, c.want, err)
		}
	}

	open := &PriceBandRule{Floor: 1}
	if err := open.Check(&model.OrderRequest{Price: 1 << 30, Qty: 1}); err != nil {
		t.Errorf("zero ceil should not bound upward: %v", err)
	}
}

func TestMaxQty(t *testing.T) {
	rule := &MaxQtyRule{Max: 100}

	if err := rule.Check(&model.OrderRequest{Price: 10, Qty: 100}); err != nil {
		t.Errorf("qty at max rejected: %v", err)
	}
	if err := rule.Check(&model.OrderRequest{Price: 10, Qty: 101}); err != ErrQtyTooLarge {
		t.Errorf("expected ErrQtyTooLarge, got %v", err)
	}
	if err := rule.Check(&model.OrderRequest{Price: 10, Qty: 0}); err != ErrZeroQty {
		t.Errorf("expected ErrZeroQty, got %v", err)
	}
}

func TestTickSizeBands(t *testing.T) {
	rule := &TickSizeRule{Bands: []tickBand{
		{MaxPrice: 1000, Step: 5},
		{MaxPrice: 0, Step: 25},
	}}

	cases := []struct {
		price uint32
		want  error
	}{
		{995, nil},
		{997, ErrInvalidTick},
		{1000, nil},
		{1025, nil},
		{1010, ErrInvalidTick},
	}
	for _, c := range cases {
		err := rule.Check(&model.OrderRequest{Price: c.price, Qty: 1})
		if err != c.want {
			t.Errorf("price %d: expected %v, got %v", c.price, c.want, err)
		}
	}

	// No bands, no rule.
	empty := &TickSizeRule{}
	if err := empty.Check(&model.OrderRequest{Price: 7, Qty: 1}); err != nil {
		t.Errorf("empty rule rejected: %v", err)
	}
}

func TestTickSizeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticks.json")
	body := `[{"maxPrice": 100, "step": 1}, {"maxPrice": 0, "step": 10}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	rule, err := NewTickSizeRuleFromFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := rule.Check(&model.OrderRequest{Price: 110, Qty: 1}); err != nil {
		t.Errorf("110 on step 10 rejected: %v", err)
	}
	if err := rule.Check(&model.OrderRequest{Price: 115, Qty: 1}); err != ErrInvalidTick {
		t.Errorf("expected ErrInvalidTick for 115, got %v", err)
	}

	if _, err := NewTickSizeRuleFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
