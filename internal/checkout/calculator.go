// Package checkout derives supplier groups and order totals from cart lines.
// Every function here is pure.
package checkout

import (
	"fmt"

	"jugadubazar/internal/domain"

	"github.com/shopspring/decimal"
)

// GroupBySupplier buckets lines by normalized supplier key, preserving the
// first-seen order of suppliers and the line order within each supplier.
// The group keeps the first raw supplier name it saw for display.
func GroupBySupplier(lines []domain.CartLine) []domain.SupplierGroup {
	var groups []domain.SupplierGroup
	index := map[string]int{}
	for _, l := range lines {
		key := domain.SupplierKey(l.SupplierName)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, domain.SupplierGroup{
				Key:          key,
				SupplierName: l.SupplierName,
				Subtotal:     decimal.Zero,
				DeliveryFee:  decimal.Zero,
			})
		}
		groups[i].Lines = append(groups[i].Lines, l)
		groups[i].Subtotal = groups[i].Subtotal.Add(l.Total())
	}
	return groups
}

// Subtotal sums every line total.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}

// OrderDeliveryFee is free when subtotal strictly exceeds threshold.
func OrderDeliveryFee(subtotal, threshold, flat decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(threshold) {
		return decimal.Zero
	}
	return flat
}

// SupplierDeliveryFee prices one supplier group by its delivery preference.
// Express fees are rounded to paise so they fit the stored money columns.
func SupplierDeliveryFee(pref domain.DeliveryPreference, subtotal decimal.Decimal, p Policy) (decimal.Decimal, error) {
	switch pref {
	case domain.DeliveryEconomy:
		return decimal.Zero, nil
	case domain.DeliveryStandard:
		return OrderDeliveryFee(subtotal, p.FreeDeliveryThreshold, p.FlatDeliveryFee), nil
	case domain.DeliveryExpress:
		return decimal.Max(p.ExpressMinFee, subtotal.Mul(p.ExpressRate).Round(2)), nil
	default:
		return decimal.Zero, fmt.Errorf("checkout: unknown delivery preference %q", pref)
	}
}

// Tax is round(subtotal * rate) to whole rupees.
func Tax(subtotal, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return subtotal.Mul(rate).Round(0)
}

// Calculate builds the quote for lines under policy. Instructions are looked
// up by supplier key; groups without an entry use the defaults.
func Calculate(lines []domain.CartLine, instructions map[string]domain.SupplierInstructions, p Policy) (domain.Quote, error) {
	q := domain.Quote{
		Strategy: p.Strategy,
		Groups:   GroupBySupplier(lines),
		Totals: domain.OrderTotals{
			Subtotal:    decimal.Zero,
			DeliveryFee: decimal.Zero,
			Tax:         decimal.Zero,
			GrandTotal:  decimal.Zero,
		},
	}
	if len(lines) == 0 {
		q.Groups = []domain.SupplierGroup{}
		return q, nil
	}

	subtotal := Subtotal(lines)
	fee := decimal.Zero
	for i := range q.Groups {
		g := &q.Groups[i]
		q.TotalItems += g.ItemCount()
		if !p.SupplierInstructions && !p.SplitSupplierFees {
			continue
		}
		in, ok := instructions[g.Key]
		if !ok {
			in = domain.DefaultInstructions(g.Key)
		}
		g.Instructions = &in
		if !p.SplitSupplierFees {
			continue
		}
		groupFee, err := SupplierDeliveryFee(in.DeliveryPreference, g.Subtotal, p)
		if err != nil {
			return domain.Quote{}, err
		}
		g.DeliveryFee = groupFee
		fee = fee.Add(groupFee)
	}
	if !p.SplitSupplierFees {
		fee = OrderDeliveryFee(subtotal, p.FreeDeliveryThreshold, p.FlatDeliveryFee)
	}

	tax := Tax(subtotal, p.TaxRate)
	q.Totals = domain.OrderTotals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		GrandTotal:  subtotal.Add(fee).Add(tax),
	}
	return q, nil
}
