package shop

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
)

// AddToCart adds one unit of the product, capped at MaxQuantity.
func (s *Shop) AddToCart(rec *Record, productID int) (models.Product, error) {
	p, ok := s.catalog.Lookup(productID)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	rec.Init()
	setLine(rec, productID, clampQuantity(rec.Cart[productID]+1))
	return p, nil
}

// SetQuantity stores the parsed quantity, removing the line when it is 0.
// The returned flag is false when raw could not be parsed and the default was
// used. Ids unknown to the catalog are never stored.
func (s *Shop) SetQuantity(rec *Record, productID int, raw string) (int, bool) {
	rec.Init()
	qty, valid := ParseQuantity(raw)
	if _, known := s.catalog.Lookup(productID); !known {
		setLine(rec, productID, 0)
	} else {
		setLine(rec, productID, qty)
	}
	return qty, valid
}

// RemoveFromCart drops the line if present.
func (s *Shop) RemoveFromCart(rec *Record, productID int) {
	setLine(rec, productID, 0)
}

// setLine stores qty for id, deleting the line at 0. A new line goes to the
// end of CartOrder; an existing one keeps its place.
func setLine(rec *Record, id, qty int) {
	if qty == 0 {
		delete(rec.Cart, id)
		rec.CartOrder = slices.DeleteFunc(rec.CartOrder, func(o int) bool { return o == id })
		return
	}
	if !slices.Contains(rec.CartOrder, id) {
		rec.CartOrder = append(rec.CartOrder, id)
	}
	rec.Cart[id] = qty
}

// CartIDs lists cart keys in insertion order. Keys present in Cart but not
// in CartOrder follow in ascending id order.
func CartIDs(rec *Record) []int {
	ids := make([]int, 0, len(rec.Cart))
	seen := make(map[int]bool, len(rec.Cart))
	for _, id := range rec.CartOrder {
		if _, ok := rec.Cart[id]; ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	var rest []int
	for id := range rec.Cart {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	return append(ids, rest...)
}

// CartItems joins the ledger with the catalog in insertion order. Stale ids
// and non-positive quantities are skipped but left in storage.
func (s *Shop) CartItems(rec *Record) []models.CartItem {
	items := []models.CartItem{}
	for _, id := range CartIDs(rec) {
		qty := rec.Cart[id]
		p, ok := s.catalog.Lookup(id)
		if !ok || qty <= 0 {
			continue
		}
		items = append(items, models.CartItem{
			Product:  p,
			Quantity: qty,
			Subtotal: p.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	return items
}

// Subtotal sums the materialized line subtotals.
func (s *Shop) Subtotal(rec *Record) decimal.Decimal {
	return sumItems(s.CartItems(rec))
}

func sumItems(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// CartCount is the sum of raw stored quantities, stale ids included.
func (s *Shop) CartCount(rec *Record) int {
	n := 0
	for _, q := range rec.Cart {
		n += q
	}
	return n
}
