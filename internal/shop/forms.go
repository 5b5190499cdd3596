package shop

import (
	"strconv"
	"strings"

	"github.com/Codingworld786/ecommerce-fullstack/internal/models"
)

const MaxQuantity = 99

// ParseQuantity parses a submitted quantity and clamps it to [0, MaxQuantity].
// Unparsable input yields (1, false): the request is not rejected, the line
// is set to a single unit.
func ParseQuantity(raw string) (int, bool) {
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1, false
	}
	return clampQuantity(q), true
}

func clampQuantity(q int) int {
	return max(0, min(MaxQuantity, q))
}

// NormalizeAddress trims every field. Blank fields are accepted as-is.
func NormalizeAddress(a models.Address) models.Address {
	return models.Address{
		FullName:     strings.TrimSpace(a.FullName),
		AddressLine1: strings.TrimSpace(a.AddressLine1),
		AddressLine2: strings.TrimSpace(a.AddressLine2),
		City:         strings.TrimSpace(a.City),
		State:        strings.TrimSpace(a.State),
		ZipCode:      strings.TrimSpace(a.ZipCode),
		Country:      strings.TrimSpace(a.Country),
		Phone:        strings.TrimSpace(a.Phone),
	}
}

// NormalizePayment removes spaces from the card number and trims the other fields.
func NormalizePayment(p models.Payment) models.Payment {
	return models.Payment{
		CardNumber: strings.ReplaceAll(p.CardNumber, " ", ""),
		Expiry:     strings.TrimSpace(p.Expiry),
		CVV:        strings.TrimSpace(p.CVV),
		NameOnCard: strings.TrimSpace(p.NameOnCard),
	}
}

// Last4 returns the final four characters of a card number, or "0000" when
// fewer than four were supplied. Characters are runes, not bytes.
func Last4(card string) string {
	r := []rune(card)
	if len(r) < 4 {
		return "0000"
	}
	return string(r[len(r)-4:])
}
