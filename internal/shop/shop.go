// Package shop implements the per-visitor commerce state machine: cart ledger,
// wishlist, staged checkout and the order ledger. Every operation takes the
// visitor's *Record explicitly and mutates only that record.
package shop

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Codingworld786/ecommerce-fullstack/internal/catalog"
)

type Shop struct {
	catalog    *catalog.Catalog
	newOrderID func() string
	now        func() time.Time
}

type Option func(*Shop)

// WithOrderIDs replaces the order id generator.
func WithOrderIDs(fn func() string) Option {
	return func(s *Shop) { s.newOrderID = fn }
}

// WithClock replaces the clock used to stamp orders.
func WithClock(fn func() time.Time) Option {
	return func(s *Shop) { s.now = fn }
}

func New(c *catalog.Catalog, opts ...Option) *Shop {
	s := &Shop{
		catalog:    c,
		newOrderID: NewOrderID,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Shop) Catalog() *catalog.Catalog {
	return s.catalog
}

// NewOrderID returns 8 uppercase hexadecimal characters taken from a random UUID.
func NewOrderID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
