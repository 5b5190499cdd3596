package shop

import (
	"slices"

	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
)

type ToggleResult int

const (
	WishlistUnchanged ToggleResult = iota
	WishlistAdded
	WishlistRemoved
)

func (t ToggleResult) String() string {
	switch t {
	case WishlistAdded:
		return "added"
	case WishlistRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}

// ToggleWishlist removes the id when present, otherwise appends it if the
// product exists. An unknown, absent id leaves the wishlist untouched and
// returns ErrProductNotFound. The product is zero when a stale id was removed.
func (s *Shop) ToggleWishlist(rec *Record, productID int) (ToggleResult, models.Product, error) {
	rec.Init()
	p, known := s.catalog.Lookup(productID)
	if i := slices.Index(rec.Wishlist, productID); i >= 0 {
		rec.Wishlist = slices.Delete(rec.Wishlist, i, i+1)
		return WishlistRemoved, p, nil
	}
	if !known {
		return WishlistUnchanged, models.Product{}, ErrProductNotFound
	}
	rec.Wishlist = append(rec.Wishlist, productID)
	return WishlistAdded, p, nil
}

// WishlistProducts resolves ids in insertion order, dropping stale ones.
func (s *Shop) WishlistProducts(rec *Record) []models.Product {
	products := []models.Product{}
	for _, id := range rec.Wishlist {
		if p, ok := s.catalog.Lookup(id); ok {
			products = append(products, p)
		}
	}
	return products
}

// WishlistSet is the wishlist as a membership set for views.
func WishlistSet(rec *Record) map[int]bool {
	set := make(map[int]bool, len(rec.Wishlist))
	for _, id := range rec.Wishlist {
		set[id] = true
	}
	return set
}
