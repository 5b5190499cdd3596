package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryMen   Category = "men"
	CategoryWomen Category = "women"
)

// Valid reports whether c is one of the catalog categories.
func (c Category) Valid() bool {
	return c == CategoryMen || c == CategoryWomen
}

// Product is immutable once loaded into a catalog. Price is never negative.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"` // file name under static/images/products
	Description string          `json:"description"`
}

// CartItem is derived from the cart ledger at read time and never stored.
type CartItem struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// OrderItem is a snapshot of a cart line at placement time.
type OrderItem struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type Address struct {
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
}

type Payment struct {
	CardNumber string `json:"card_number"` // spaces stripped
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	NameOnCard string `json:"name_on_card"`
}

// Order monetary fields are computed once at placement and never recomputed.
type Order struct {
	OrderID      string          `json:"order_id"` // 8 uppercase alphanumerics
	Items        []OrderItem     `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Address      Address         `json:"address"`
	PaymentLast4 string          `json:"payment_last4"`
	PlacedAt     time.Time       `json:"placed_at"`
}

// ItemCount is the number of units across all order lines.
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
