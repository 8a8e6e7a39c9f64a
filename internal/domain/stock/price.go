package stock

import (
	"github.com/shopspring/decimal"
)

// priceScale is the number of decimal places kept after a relative change
const priceScale = 4

var hundred = decimal.NewFromInt(100)

// ChangePrice computes the price stored after a price update.
//
// When absolute is true, proposed replaces the current price outright and a
// negative value is rejected. When absolute is false, proposed is a percentage
// change applied to current (15 means +15%); the result is rounded to
// priceScale places and floored at zero.
func ChangePrice(current, proposed float64, absolute bool) (float64, error) {
	if absolute {
		if proposed < 0 {
			return current, &ValidationError{Violations: []Violation{
				{Field: "price", Message: MsgPriceNegative},
			}}
		}
		return proposed, nil
	}

	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(proposed).Div(hundred))
	next := decimal.NewFromFloat(current).Mul(factor).Round(priceScale)
	if next.IsNegative() {
		return 0, nil
	}
	return next.InexactFloat64(), nil
}
