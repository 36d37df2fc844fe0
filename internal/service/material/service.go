package material

import (
	"context"
	"strings"

	"jugadubazar/internal/domain"
)

type materialRepo interface {
	List(ctx context.Context, category string) ([]domain.Material, error)
	GetByID(ctx context.Context, id string) (*domain.Material, error)
}

type Service struct {
	repo materialRepo
}

func New(repo materialRepo) *Service {
	return &Service{repo: repo}
}

// List returns the catalog, narrowed to one category when category is set.
func (s *Service) List(ctx context.Context, category string) ([]domain.Material, error) {
	items, err := s.repo.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Material{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Material, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Lookup resolves a material id to the product descriptor placed in a cart.
func (s *Service) Lookup(ctx context.Context, id string) (domain.Product, int, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return domain.Product{}, 0, err
	}
	return m.Product(), m.MinOrderQuantity, nil
}
