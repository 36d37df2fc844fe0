package material

import (
	"context"
	"errors"
	"fmt"

	"jugadubazar/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const selectColumns = `
SELECT id::text, name, COALESCE(description, ''), unit_price::text, unit, supplier_name, category, min_order_quantity, stock_quantity, created_at
FROM materials
`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger.With().Str("repo", "material").Logger()}
}

// List returns the catalog, optionally restricted to one category.
func (r *postgresRepo) List(ctx context.Context, category string) ([]domain.Material, error) {
	q := selectColumns + `
WHERE ($1 = '' OR category = $1)
ORDER BY category ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q, category)
	if err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("list materials")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("list materials rows")
		return nil, err
	}
	r.logger.Debug().Str("category", category).Int("count", len(result)).Msg("list materials")
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Material, error) {
	q := selectColumns + `WHERE id = $1::uuid`
	m, err := scanMaterial(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			r.logger.Debug().Str("material_id", id).Msg("material not found")
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Str("material_id", id).Msg("get material")
		return nil, err
	}
	return m, nil
}

// Upsert inserts or updates the material identified by sku.
func (r *postgresRepo) Upsert(ctx context.Context, m domain.Material, sku string) (*domain.Material, error) {
	const q = `
INSERT INTO materials (id, sku, name, description, unit_price, unit, supplier_name, category, min_order_quantity, stock_quantity)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), $5::numeric, $6, $7, $8, $9, $10)
ON CONFLICT (sku) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    unit_price = EXCLUDED.unit_price,
    unit = EXCLUDED.unit,
    supplier_name = EXCLUDED.supplier_name,
    category = EXCLUDED.category,
    min_order_quantity = EXCLUDED.min_order_quantity,
    stock_quantity = EXCLUDED.stock_quantity
RETURNING id::text, created_at
`
	moq := m.MinOrderQuantity
	if moq < 1 {
		moq = 1
	}
	res := m
	res.MinOrderQuantity = moq
	err := r.pool.QueryRow(ctx, q,
		m.ID,
		sku,
		m.Name,
		m.Description,
		m.UnitPrice.String(),
		m.Unit,
		m.SupplierName,
		m.Category,
		moq,
		m.StockQuantity,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("sku", sku).Msg("upsert material")
		return nil, err
	}
	if m.ID != "" && res.ID != m.ID {
		return nil, fmt.Errorf("material repo: id mismatch for sku=%s existing_id=%s import_id=%s", sku, res.ID, m.ID)
	}
	r.logger.Debug().Str("sku", sku).Str("material_id", res.ID).Msg("upserted material")
	return &res, nil
}

func scanMaterial(row pgx.Row) (*domain.Material, error) {
	var (
		m     domain.Material
		price string
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &price, &m.Unit, &m.SupplierName, &m.Category, &m.MinOrderQuantity, &m.StockQuantity, &m.CreatedAt); err != nil {
		return nil, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse unit_price %q: %w", price, err)
	}
	m.UnitPrice = p
	return &m, nil
}

// isInvalidID reports a lookup key that is not a well-formed uuid.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
