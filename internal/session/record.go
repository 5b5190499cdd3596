// Package session maps a shop.Record onto gorilla session values and
// provides a Redis-backed sessions.Store.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
	"github.com/Codingworld786/ecommerce-fullstack/internal/shop"
)

// Keys of the session document. Each sub-field is stored as its own JSON
// string so a corrupt entry only resets that entry.
const (
	KeyCart            = "cart"
	KeyWishlist        = "wishlist"
	KeyCheckoutAddress = "checkout_address"
	KeyCheckoutPayment = "checkout_payment"
	KeyOrders          = "orders"
	KeyLastOrderID     = "last_order_id"
)

// Decode rebuilds the record from session values. Missing or unreadable
// sub-fields fall back to their defaults.
func Decode(values map[interface{}]interface{}) *shop.Record {
	rec := &shop.Record{}

	if raw, ok := rawField(values, KeyCart); ok {
		cart, order, err := decodeCart(raw)
		if err != nil {
			slog.Warn("Resetting corrupt session field", "key", KeyCart, "error", err)
			delete(values, KeyCart)
		} else {
			rec.Cart, rec.CartOrder = cart, order
		}
	}

	var wishlist []int
	if decodeField(values, KeyWishlist, &wishlist) {
		rec.Wishlist = dedupe(wishlist)
	}

	var addr models.Address
	if decodeField(values, KeyCheckoutAddress, &addr) {
		rec.CheckoutAddress = &addr
	}

	var pay models.Payment
	if decodeField(values, KeyCheckoutPayment, &pay) {
		rec.CheckoutPayment = &pay
	}

	var orders []models.Order
	if decodeField(values, KeyOrders, &orders) {
		rec.Orders = orders
	}

	if id, ok := values[KeyLastOrderID].(string); ok {
		rec.LastOrderID = id
	}

	rec.Init()
	return rec
}

// rawField returns the JSON text stored under key. A value of any other type
// is removed.
func rawField(values map[interface{}]interface{}, key string) (string, bool) {
	raw, present := values[key]
	if !present {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		slog.Warn("Resetting session field of unexpected type", "key", key)
		delete(values, key)
		return "", false
	}
	return s, true
}

func decodeField(values map[interface{}]interface{}, key string, dst interface{}) bool {
	s, ok := rawField(values, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		slog.Warn("Resetting corrupt session field", "key", key, "error", err)
		delete(values, key)
		return false
	}
	return true
}

// decodeCart reads the cart object keeping its key order, which is the
// order lines were added in. Non-numeric keys are dropped.
func decodeCart(raw string) (map[int]int, []int, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	if tok, err := dec.Token(); err != nil {
		return nil, nil, err
	} else if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("cart: expected object, got %v", tok)
	}

	cart := make(map[int]int)
	var order []int
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := tok.(string)
		var qty int
		if err := dec.Decode(&qty); err != nil {
			return nil, nil, fmt.Errorf("cart %q: %w", key, err)
		}
		id, err := strconv.Atoi(key)
		if err != nil {
			slog.Warn("Dropping unreadable cart key", "key", key)
			continue
		}
		if _, dup := cart[id]; !dup {
			order = append(order, id)
		}
		cart[id] = qty
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return cart, order, nil
}

// encodeCart writes the cart as a JSON object in insertion order.
func encodeCart(rec *shop.Record) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range shop.CartIDs(rec) {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q:%d", strconv.Itoa(id), rec.Cart[id])
	}
	b.WriteByte('}')
	return b.String()
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Encode writes every sub-field of rec into values. Unset staging fields and
// an empty last order id are removed.
func Encode(rec *shop.Record, values map[interface{}]interface{}) error {
	rec.Init()

	values[KeyCart] = encodeCart(rec)
	if err := encodeField(values, KeyWishlist, rec.Wishlist); err != nil {
		return err
	}
	if err := encodeField(values, KeyOrders, rec.Orders); err != nil {
		return err
	}

	if rec.CheckoutAddress != nil {
		if err := encodeField(values, KeyCheckoutAddress, rec.CheckoutAddress); err != nil {
			return err
		}
	} else {
		delete(values, KeyCheckoutAddress)
	}
	if rec.CheckoutPayment != nil {
		if err := encodeField(values, KeyCheckoutPayment, rec.CheckoutPayment); err != nil {
			return err
		}
	} else {
		delete(values, KeyCheckoutPayment)
	}

	if rec.LastOrderID != "" {
		values[KeyLastOrderID] = rec.LastOrderID
	} else {
		delete(values, KeyLastOrderID)
	}
	return nil
}

func encodeField(values map[interface{}]interface{}, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode session field %s: %w", key, err)
	}
	values[key] = string(b)
	return nil
}
