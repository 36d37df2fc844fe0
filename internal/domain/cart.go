package domain

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Product describes a sellable material at the moment it is added to a cart.
type Product struct {
	ID           string          `json:"productId"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Unit         string          `json:"unit"`
	SupplierName string          `json:"supplierName"`
	Category     string          `json:"category"`
}

type CartLine struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Unit         string          `json:"unit"`
	SupplierName string          `json:"supplierName"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
}

// Total is unitPrice * quantity.
func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SupplierKey normalizes a supplier name into the key used for grouping and
// instruction lookup: lowercased with all whitespace removed.
func SupplierKey(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
