package httpserver

import (
	"time"

	"jugadubazar/internal/domain"
	cartsvc "jugadubazar/internal/service/cart"

	"github.com/shopspring/decimal"
)

type cartResponse struct {
	ID          string          `json:"id"`
	Lines       []lineResponse  `json:"lines"`
	Groups      []groupResponse `json:"groups"`
	TotalItems  int             `json:"totalItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type lineResponse struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Unit         string          `json:"unit"`
	SupplierName string          `json:"supplierName"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

type groupResponse struct {
	SupplierID   string          `json:"supplierId"`
	SupplierName string          `json:"supplierName"`
	ProductIDs   []string        `json:"productIds"`
	ItemCount    int             `json:"itemCount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

func toCartResponse(v cartsvc.View) cartResponse {
	lines := make([]lineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, toLineResponse(l))
	}
	groups := make([]groupResponse, 0, len(v.Groups))
	for _, g := range v.Groups {
		ids := make([]string, 0, len(g.Lines))
		for _, l := range g.Lines {
			ids = append(ids, l.ProductID)
		}
		groups = append(groups, groupResponse{
			SupplierID:   g.Key,
			SupplierName: g.SupplierName,
			ProductIDs:   ids,
			ItemCount:    g.ItemCount(),
			Subtotal:     g.Subtotal,
		})
	}
	return cartResponse{
		ID:          v.ID,
		Lines:       lines,
		Groups:      groups,
		TotalItems:  v.TotalItems,
		TotalAmount: v.TotalAmount,
		CreatedAt:   v.CreatedAt,
	}
}

func toLineResponse(l domain.CartLine) lineResponse {
	return lineResponse{
		ProductID:    l.ProductID,
		Name:         l.Name,
		UnitPrice:    l.UnitPrice,
		Unit:         l.Unit,
		SupplierName: l.SupplierName,
		Category:     l.Category,
		Quantity:     l.Quantity,
		LineTotal:    l.Total(),
	}
}

type listResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

func newListResponse[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Count: len(items), Results: items}
}
