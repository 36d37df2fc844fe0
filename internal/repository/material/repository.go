package material

import (
	"context"

	"jugadubazar/internal/domain"
)

type Repository interface {
	List(ctx context.Context, category string) ([]domain.Material, error)
	GetByID(ctx context.Context, id string) (*domain.Material, error)
	Upsert(ctx context.Context, m domain.Material, sku string) (*domain.Material, error)
}
