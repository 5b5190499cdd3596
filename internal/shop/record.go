package shop

import "github.com/Codingworld786/ecommerce-fullstack/internal/models"

// Record is the complete per-visitor state. It is passed explicitly into
// every operation; loading and saving it is the caller's job.
type Record struct {
	Cart            map[int]int     // product id -> quantity, 1..99
	CartOrder       []int           // insertion order of Cart keys
	Wishlist        []int           // insertion ordered, no duplicates
	CheckoutAddress *models.Address // set by SubmitAddress
	CheckoutPayment *models.Payment // set by SubmitPayment
	Orders          []models.Order  // append only
	LastOrderID     string
}

func NewRecord() *Record {
	r := &Record{}
	r.Init()
	return r
}

// Init fills missing sub-fields with their defaults and leaves the rest alone.
func (r *Record) Init() {
	if r.Cart == nil {
		r.Cart = make(map[int]int)
	}
	if r.Wishlist == nil {
		r.Wishlist = []int{}
	}
	if r.Orders == nil {
		r.Orders = []models.Order{}
	}
}
