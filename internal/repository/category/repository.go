package category

import (
	"context"

	"jugadubazar/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Category, error)
}
