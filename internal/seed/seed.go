package seed

import (
	"context"
	"fmt"

	"jugadubazar/internal/domain"

	"github.com/shopspring/decimal"
)

type materialSeed struct {
	SKU         string
	Name        string
	Description string
	Price       string
	Unit        string
	Supplier    string
	Category    string
	MOQ         int
	Stock       int
}

type upserter interface {
	Upsert(ctx context.Context, m domain.Material, sku string) (*domain.Material, error)
}

var catalog = []materialSeed{
	{SKU: "VEG-ONION-RED", Name: "Red Onion", Description: "Nashik red onions, medium size", Price: "32.00", Unit: "kg", Supplier: "Sharma Traders", Category: "vegetables", MOQ: 5, Stock: 800},
	{SKU: "VEG-POTATO", Name: "Potato", Description: "Agra potatoes for frying", Price: "24.00", Unit: "kg", Supplier: "Sharma Traders", Category: "vegetables", MOQ: 10, Stock: 1200},
	{SKU: "VEG-TOMATO", Name: "Tomato", Description: "Firm hybrid tomatoes", Price: "28.50", Unit: "kg", Supplier: "Sharma Traders", Category: "vegetables", MOQ: 5, Stock: 400},
	{SKU: "OIL-MUSTARD", Name: "Mustard Oil", Description: "Kachi ghani mustard oil", Price: "165.00", Unit: "liter", Supplier: "Gupta Oil Depot", Category: "oils", MOQ: 1, Stock: 300},
	{SKU: "OIL-REFINED", Name: "Refined Sunflower Oil", Description: "15 liter tin for bulk frying", Price: "1890.00", Unit: "tin", Supplier: "Gupta Oil Depot", Category: "oils", MOQ: 1, Stock: 60},
	{SKU: "SPC-CHILLI", Name: "Red Chilli Powder", Description: "Guntur chilli, medium heat", Price: "260.00", Unit: "kg", Supplier: "Rajasthan Masala Co", Category: "spices", MOQ: 1, Stock: 150},
	{SKU: "SPC-CHAAT", Name: "Chaat Masala", Description: "House blend for street chaat", Price: "320.00", Unit: "kg", Supplier: "Rajasthan Masala Co", Category: "spices", MOQ: 1, Stock: 90},
	{SKU: "GRN-BESAN", Name: "Besan", Description: "Fine gram flour for pakoras", Price: "85.00", Unit: "kg", Supplier: "Verma Grains", Category: "grains", MOQ: 5, Stock: 500},
	{SKU: "GRN-MAIDA", Name: "Maida", Description: "Refined wheat flour", Price: "42.00", Unit: "kg", Supplier: "Verma Grains", Category: "grains", MOQ: 10, Stock: 900},
	{SKU: "PKG-PLATE", Name: "Areca Leaf Plates", Description: "Pack of 100 disposable plates", Price: "180.00", Unit: "pack", Supplier: "EcoPack Suppliers", Category: "packaging", MOQ: 2, Stock: 250},
}

// Apply upserts the demo catalog. It is idempotent via the sku conflict key.
func Apply(ctx context.Context, repo upserter) (int, error) {
	n := 0
	for _, s := range catalog {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return n, fmt.Errorf("parse price for %s: %w", s.SKU, err)
		}
		if _, err := repo.Upsert(ctx, domain.Material{
			Name:             s.Name,
			Description:      s.Description,
			UnitPrice:        price,
			Unit:             s.Unit,
			SupplierName:     s.Supplier,
			Category:         s.Category,
			MinOrderQuantity: s.MOQ,
			StockQuantity:    s.Stock,
		}, s.SKU); err != nil {
			return n, fmt.Errorf("upsert material %s: %w", s.SKU, err)
		}
		n++
	}
	return n, nil
}
