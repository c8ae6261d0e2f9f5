// Package pricing computes line item amounts. All results are full precision;
// callers round at reporting boundaries.
package pricing

import (
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/money"
	"github.com/shopspring/decimal"
)

// LineSubtotal is price*quantity-discount. Negative results pass through.
func LineSubtotal(price decimal.Decimal, quantity int64, discount decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(quantity)).Sub(discount)
}

// LineTax is the tax charged on a subtotal at taxPercent (8 for 8%).
func LineTax(subtotal, taxPercent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(money.Percent(taxPercent))
}

// LineItemTotal returns (price*quantity-discount) * (1 + taxPercent/100).
func LineItemTotal(price decimal.Decimal, quantity int64, discount, taxPercent decimal.Decimal) decimal.Decimal {
	subtotal := LineSubtotal(price, quantity, discount)
	return subtotal.Add(LineTax(subtotal, taxPercent))
}
