package adapter

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func upd(ex Exchange, side Side, price, qty string) Update {
	return Update{Exchange: ex, Side: side, Price: d(price), Quantity: d(qty)}
}

func lvl(price, qty string, ex Exchange) PriceLevel {
	return PriceLevel{Price: d(price), Quantity: d(qty), Exchange: ex}
}

// requireLevels compares ladders by value; decimal exponents may differ.
func requireLevels(t *testing.T, want, got []PriceLevel) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("want %d levels %v, got %d %v", len(want), want, len(got), got)
	}
	for i := range want {
		if !want[i].Price.Equal(got[i].Price) ||
			!want[i].Quantity.Equal(got[i].Quantity) ||
			want[i].Exchange != got[i].Exchange {
			t.Fatalf("level %d: want %s@%s from %s, got %s@%s from %s", i,
				want[i].Quantity, want[i].Price, want[i].Exchange,
				got[i].Quantity, got[i].Price, got[i].Exchange)
		}
	}
}

// recorder collects published summaries.
type recorder struct {
	sums []*Summary
}

func (r *recorder) Publish(s *Summary) { r.sums = append(r.sums, s) }

func (r *recorder) last() *Summary {
	if len(r.sums) == 0 {
		return nil
	}
	return r.sums[len(r.sums)-1]
}
