package order

import (
	"context"
	"errors"
	"fmt"

	"jugadubazar/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// Create writes the order, its supplier groups and their lines in one transaction.
func (r *postgresRepo) Create(ctx context.Context, summary domain.OrderSummary) (domain.OrderConfirmation, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.OrderConfirmation{}, err
	}
	defer tx.Rollback(ctx)

	var orderID string
	t := summary.Totals
	err = tx.QueryRow(ctx, `
INSERT INTO orders (status, strategy, delivery_address, phone_number, subtotal, delivery_fee, tax, grand_total)
VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric, $8::numeric)
RETURNING id::text
`, domain.OrderStatusPending.String(), summary.Strategy.String(), summary.Delivery.Address, summary.Delivery.Phone,
		t.Subtotal.String(), t.DeliveryFee.String(), t.Tax.String(), t.GrandTotal.String()).Scan(&orderID)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("insert order: %w", err)
	}

	for gi, g := range summary.Groups {
		var notes string
		var pref, urgency *string
		if g.Instructions != nil {
			notes = g.Instructions.Notes
			p := g.Instructions.DeliveryPreference.String()
			u := g.Instructions.Urgency.String()
			pref, urgency = &p, &u
		}

		var groupID string
		if err := tx.QueryRow(ctx, `
INSERT INTO order_supplier_groups (order_id, position, supplier_key, supplier_name, subtotal, delivery_fee, notes, delivery_preference, urgency)
VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, $9)
RETURNING id::text
`, orderID, gi, g.Key, g.SupplierName, g.Subtotal.String(), g.DeliveryFee.String(), notes, pref, urgency).Scan(&groupID); err != nil {
			return domain.OrderConfirmation{}, fmt.Errorf("insert supplier group %q: %w", g.Key, err)
		}

		for li, l := range g.Lines {
			if _, err := tx.Exec(ctx, `
INSERT INTO order_lines (group_id, position, product_id, name, unit_price, unit, category, quantity)
VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)
`, groupID, li, l.ProductID, l.Name, l.UnitPrice.String(), l.Unit, l.Category, l.Quantity); err != nil {
				return domain.OrderConfirmation{}, fmt.Errorf("insert order line %q: %w", l.ProductID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.OrderConfirmation{}, err
	}
	return domain.OrderConfirmation{OrderID: orderID, Status: domain.OrderStatusPending}, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var (
		o                         domain.Order
		status, strategy          string
		subtotal, fee, tax, grand string
	)
	err := r.pool.QueryRow(ctx, `
SELECT id::text, status, strategy, delivery_address, phone_number,
       subtotal::text, delivery_fee::text, tax::text, grand_total::text, created_at
FROM orders
WHERE id = $1::uuid
`, id).Scan(&o.ID, &status, &strategy, &o.Delivery.Address, &o.Delivery.Phone,
		&subtotal, &fee, &tax, &grand, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	o.Strategy = domain.Strategy(strategy)
	if o.Totals, err = parseTotals(subtotal, fee, tax, grand); err != nil {
		return nil, err
	}

	groups, err := r.loadGroups(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Groups = groups
	return &o, nil
}

func (r *postgresRepo) loadGroups(ctx context.Context, orderID string) ([]domain.SupplierGroup, error) {
	rows, err := r.pool.Query(ctx, `
SELECT g.id::text, g.supplier_key, g.supplier_name, g.subtotal::text, g.delivery_fee::text,
       g.notes, g.delivery_preference, g.urgency,
       l.product_id, l.name, l.unit_price::text, l.unit, l.category, l.quantity
FROM order_supplier_groups g
JOIN order_lines l ON l.group_id = g.id
WHERE g.order_id = $1
ORDER BY g.position ASC, l.position ASC
`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.SupplierGroup
	index := map[string]int{}
	for rows.Next() {
		var (
			groupID, key, name, subtotal, fee, notes string
			pref, urgency                            *string
			line                                     domain.CartLine
			unitPrice                                string
		)
		if err := rows.Scan(&groupID, &key, &name, &subtotal, &fee, &notes, &pref, &urgency,
			&line.ProductID, &line.Name, &unitPrice, &line.Unit, &line.Category, &line.Quantity); err != nil {
			return nil, err
		}
		if line.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parse unit price: %w", err)
		}
		line.SupplierName = name

		i, ok := index[groupID]
		if !ok {
			g := domain.SupplierGroup{Key: key, SupplierName: name}
			if g.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
				return nil, fmt.Errorf("parse group subtotal: %w", err)
			}
			if g.DeliveryFee, err = decimal.NewFromString(fee); err != nil {
				return nil, fmt.Errorf("parse group delivery fee: %w", err)
			}
			if pref != nil && urgency != nil {
				g.Instructions = &domain.SupplierInstructions{
					SupplierID:         key,
					Notes:              notes,
					DeliveryPreference: domain.DeliveryPreference(*pref),
					Urgency:            domain.Urgency(*urgency),
				}
			}
			groups = append(groups, g)
			i = len(groups) - 1
			index[groupID] = i
		}
		groups[i].Lines = append(groups[i].Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func parseTotals(subtotal, fee, tax, grand string) (domain.OrderTotals, error) {
	var (
		t   domain.OrderTotals
		err error
	)
	if t.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return t, fmt.Errorf("parse subtotal: %w", err)
	}
	if t.DeliveryFee, err = decimal.NewFromString(fee); err != nil {
		return t, fmt.Errorf("parse delivery fee: %w", err)
	}
	if t.Tax, err = decimal.NewFromString(tax); err != nil {
		return t, fmt.Errorf("parse tax: %w", err)
	}
	if t.GrandTotal, err = decimal.NewFromString(grand); err != nil {
		return t, fmt.Errorf("parse grand total: %w", err)
	}
	return t, nil
}

// isInvalidID reports a lookup key that is not a well-formed uuid.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
