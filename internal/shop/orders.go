package shop

import "github.com/Codingworld786/ecommerce-fullstack/internal/models"

// FindOrder returns a copy of the order with the given id.
func FindOrder(rec *Record, orderID string) (*models.Order, error) {
	for i := range rec.Orders {
		if rec.Orders[i].OrderID == orderID {
			o := rec.Orders[i]
			return &o, nil
		}
	}
	return nil, ErrOrderNotFound
}

// OrderHistory lists the ledger newest first.
func OrderHistory(rec *Record) []models.Order {
	out := make([]models.Order, 0, len(rec.Orders))
	for i := len(rec.Orders) - 1; i >= 0; i-- {
		out = append(out, rec.Orders[i])
	}
	return out
}
