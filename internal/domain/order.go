package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierInstructions holds the buyer's notes for one supplier group.
type SupplierInstructions struct {
	SupplierID         string             `json:"supplierId"`
	Notes              string             `json:"notes"`
	DeliveryPreference DeliveryPreference `json:"deliveryPreference"`
	Urgency            Urgency            `json:"urgency"`
}

// DefaultInstructions returns the instructions a new supplier group starts with.
func DefaultInstructions(supplierID string) SupplierInstructions {
	return SupplierInstructions{
		SupplierID:         supplierID,
		DeliveryPreference: DeliveryStandard,
		Urgency:            UrgencyNormal,
	}
}

// SupplierGroup is a derived view of the cart lines sharing one supplier.
type SupplierGroup struct {
	Key          string                `json:"supplierId"`
	SupplierName string                `json:"supplierName"`
	Lines        []CartLine            `json:"lines"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	DeliveryFee  decimal.Decimal       `json:"deliveryFee"`
	Instructions *SupplierInstructions `json:"instructions,omitempty"`
}

// ItemCount sums quantities across the group.
func (g SupplierGroup) ItemCount() int {
	n := 0
	for _, l := range g.Lines {
		n += l.Quantity
	}
	return n
}

type OrderTotals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
}

// Quote is the computed view of a cart under one strategy.
type Quote struct {
	Strategy   Strategy        `json:"strategy"`
	Groups     []SupplierGroup `json:"groups"`
	Totals     OrderTotals     `json:"totals"`
	TotalItems int             `json:"totalItems"`
}

// DeliveryDetails is what the buyer enters at checkout.
type DeliveryDetails struct {
	Address string `json:"deliveryAddress" validate:"required"`
	Phone   string `json:"phoneNumber" validate:"required"`
}

// OrderSummary is handed to the order submitter.
type OrderSummary struct {
	Strategy Strategy        `json:"strategy"`
	Groups   []SupplierGroup `json:"groups"`
	Totals   OrderTotals     `json:"totals"`
	Delivery DeliveryDetails `json:"delivery"`
}

type OrderConfirmation struct {
	OrderID string      `json:"orderId"`
	Status  OrderStatus `json:"status"`
}

// Order is a persisted order summary.
type Order struct {
	ID        string          `json:"id"`
	Status    OrderStatus     `json:"status"`
	Strategy  Strategy        `json:"strategy"`
	Delivery  DeliveryDetails `json:"delivery"`
	Groups    []SupplierGroup `json:"groups"`
	Totals    OrderTotals     `json:"totals"`
	CreatedAt time.Time       `json:"createdAt"`
}
