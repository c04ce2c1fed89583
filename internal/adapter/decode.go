package adapter

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DecodeError wraps err as a transient decode failure for ex.
func DecodeError(ex Exchange, err error) error {
	return fmt.Errorf("%s %w: %w", ex, ErrDecode, err)
}

// ParseStringLevels converts [price, quantity, ...] string tuples, the
// shape most exchanges use, into updates for one side. Extra tuple
// elements are ignored.
func ParseStringLevels(ex Exchange, side Side, raw [][]string) ([]Update, error) {
	out := make([]Update, 0, len(raw))
	for _, r := range raw {
		if len(r) < 2 {
			return nil, fmt.Errorf("%s level: want [price, quantity], got %d fields", side, len(r))
		}
		u, err := ParseLevel(ex, side, r[0], r[1])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// ParseLevel builds one update from decimal strings.
func ParseLevel(ex Exchange, side Side, price, qty string) (Update, error) {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return Update{}, fmt.Errorf("%s price %q: %w", side, price, err)
	}
	q, err := decimal.NewFromString(qty)
	if err != nil {
		return Update{}, fmt.Errorf("%s quantity %q: %w", side, qty, err)
	}
	if !p.IsPositive() {
		return Update{}, fmt.Errorf("%s price %q: not positive", side, price)
	}
	if q.IsNegative() {
		return Update{}, fmt.Errorf("%s quantity %q: negative", side, qty)
	}
	return Update{Exchange: ex, Side: side, Price: p, Quantity: q}, nil
}
