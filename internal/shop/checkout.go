package shop

import (
	"log/slog"
	"slices"

	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
)

type Stage int

// An address submission moves straight to StagePaymentPending.
const (
	StageEmpty Stage = iota
	StageAddressPending
	StagePaymentPending
	StagePaymentSet
	StagePlaced
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageAddressPending:
		return "address_pending"
	case StagePaymentPending:
		return "payment_pending"
	case StagePaymentSet:
		return "payment_set"
	case StagePlaced:
		return "placed"
	default:
		return "unknown"
	}
}

// Stage derives the checkout stage from the record.
func (s *Shop) Stage(rec *Record) Stage {
	switch {
	case len(s.CartItems(rec)) == 0 && rec.LastOrderID != "":
		return StagePlaced
	case len(s.CartItems(rec)) == 0:
		return StageEmpty
	case rec.CheckoutAddress == nil:
		return StageAddressPending
	case rec.CheckoutPayment == nil:
		return StagePaymentPending
	default:
		return StagePaymentSet
	}
}

// BeginCheckout is the entry guard shared by every checkout step.
func (s *Shop) BeginCheckout(rec *Record) ([]models.CartItem, error) {
	items := s.CartItems(rec)
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}
	return items, nil
}

// SubmitAddress stores the trimmed address. No field is required.
func (s *Shop) SubmitAddress(rec *Record, addr models.Address) error {
	if _, err := s.BeginCheckout(rec); err != nil {
		return err
	}
	a := NormalizeAddress(addr)
	rec.CheckoutAddress = &a
	return nil
}

// BeginPayment guards the payment stage: non-empty cart, then a captured address.
func (s *Shop) BeginPayment(rec *Record) ([]models.CartItem, error) {
	items, err := s.BeginCheckout(rec)
	if err != nil {
		return nil, err
	}
	if rec.CheckoutAddress == nil {
		return nil, ErrAddressRequired
	}
	return items, nil
}

// SubmitPayment stores the payment details. The caller re-displays the
// payment stage afterwards so the visitor can correct before placing.
func (s *Shop) SubmitPayment(rec *Record, pay models.Payment) error {
	if _, err := s.BeginPayment(rec); err != nil {
		return err
	}
	p := NormalizePayment(pay)
	rec.CheckoutPayment = &p
	return nil
}

// PlaceOrder snapshots the cart into a priced order, appends it to the ledger
// and clears the cart and both staging fields. Payment details are optional;
// without them the order records last4 "0000".
func (s *Shop) PlaceOrder(rec *Record) (*models.Order, error) {
	items, err := s.BeginCheckout(rec)
	if err != nil {
		return nil, err
	}
	if rec.CheckoutAddress == nil {
		return nil, ErrAddressRequired
	}
	rec.Init()

	var card string
	if rec.CheckoutPayment != nil {
		card = rec.CheckoutPayment.CardNumber
	}

	lines := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, models.OrderItem{
			Product:  it.Product,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal,
		})
	}
	subtotal := sumItems(items)
	tax := Tax(subtotal)

	order := models.Order{
		OrderID:      s.uniqueOrderID(rec),
		Items:        lines,
		Subtotal:     subtotal,
		Shipping:     ShippingFlat,
		Tax:          tax,
		Total:        Total(subtotal, ShippingFlat, tax),
		Address:      *rec.CheckoutAddress,
		PaymentLast4: Last4(card),
		PlacedAt:     s.now().UTC(),
	}

	rec.Orders = append(rec.Orders, order)
	rec.Cart = make(map[int]int)
	rec.CartOrder = nil
	rec.CheckoutAddress = nil
	rec.CheckoutPayment = nil
	rec.LastOrderID = order.OrderID

	slog.Info("Order placed", "order_id", order.OrderID, "items", order.ItemCount(), "total", order.Total.StringFixed(2))
	return &order, nil
}

func (s *Shop) uniqueOrderID(rec *Record) string {
	for {
		id := s.newOrderID()
		taken := slices.ContainsFunc(rec.Orders, func(o models.Order) bool { return o.OrderID == id })
		if !taken {
			return id
		}
	}
}

// BuyNow replaces the whole cart with a single unit of the product. The
// caller continues at the address stage.
func (s *Shop) BuyNow(rec *Record, productID int) (models.Product, error) {
	p, ok := s.catalog.Lookup(productID)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	rec.Cart = map[int]int{productID: 1}
	rec.CartOrder = []int{productID}
	return p, nil
}
