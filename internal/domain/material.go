package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material is a raw material offered by a supplier in the catalog.
type Material struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Unit             string          `json:"unit"`
	SupplierName     string          `json:"supplierName"`
	Category         string          `json:"category"`
	MinOrderQuantity int             `json:"minOrderQuantity"`
	StockQuantity    int             `json:"stockQuantity"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// Product returns the cart descriptor for the material.
func (m Material) Product() Product {
	return Product{
		ID:           m.ID,
		Name:         m.Name,
		UnitPrice:    m.UnitPrice,
		Unit:         m.Unit,
		SupplierName: m.SupplierName,
		Category:     m.Category,
	}
}
