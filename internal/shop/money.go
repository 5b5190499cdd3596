package shop

import "github.com/shopspring/decimal"

var (
	// ShippingFlat is charged once per order.
	ShippingFlat = decimal.RequireFromString("5.99")
	// TaxRate applies to the order subtotal.
	TaxRate = decimal.RequireFromString("0.08")
)

// Tax is round(subtotal*TaxRate, 2).
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

// Total is round(subtotal+shipping+tax, 2).
func Total(subtotal, shipping, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping).Add(tax).Round(2)
}
