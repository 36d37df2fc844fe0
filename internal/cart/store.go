// Package cart holds the in-memory cart lines of a buyer session.
package cart

import (
	"jugadubazar/internal/domain"

	"github.com/shopspring/decimal"
)

// Store is the canonical line list of one cart. It is not safe for
// concurrent writers; Registry serializes access per session.
type Store struct {
	lines []domain.CartLine
}

func NewStore() *Store {
	return &Store{}
}

// AddItem inserts the product with requestedQty, or bumps an existing line by one.
// A repeat add always increments by exactly one regardless of requestedQty.
func (s *Store) AddItem(p domain.Product, requestedQty int) {
	if i := s.indexOf(p.ID); i >= 0 {
		s.lines[i].Quantity++
		return
	}
	if requestedQty < 1 {
		requestedQty = 1
	}
	s.lines = append(s.lines, domain.CartLine{
		ProductID:    p.ID,
		Name:         p.Name,
		UnitPrice:    p.UnitPrice,
		Unit:         p.Unit,
		SupplierName: p.SupplierName,
		Category:     p.Category,
		Quantity:     requestedQty,
	})
}

func (s *Store) RemoveItem(productID string) {
	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// UpdateQuantity sets the quantity directly; zero or less removes the line.
func (s *Store) UpdateQuantity(productID string, qty int) {
	if qty <= 0 {
		s.RemoveItem(productID)
		return
	}
	if i := s.indexOf(productID); i >= 0 {
		s.lines[i].Quantity = qty
	}
}

func (s *Store) Clear() {
	s.lines = nil
}

func (s *Store) IsInCart(productID string) bool {
	return s.indexOf(productID) >= 0
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) TotalItems() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Total())
	}
	return total
}

func (s *Store) indexOf(productID string) int {
	for i, l := range s.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
