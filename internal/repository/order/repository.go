package order

import (
	"context"

	"jugadubazar/internal/domain"
)

// Repository persists submitted orders.
type Repository interface {
	Create(ctx context.Context, summary domain.OrderSummary) (domain.OrderConfirmation, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
