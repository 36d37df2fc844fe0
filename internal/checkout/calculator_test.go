package checkout

import (
	"testing"

	"jugadubazar/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id, supplier string, price int64, qty int) domain.CartLine {
	return domain.CartLine{
		ProductID:    id,
		Name:         "Item " + id,
		UnitPrice:    decimal.NewFromInt(price),
		Unit:         "kg",
		SupplierName: supplier,
		Quantity:     qty,
	}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal, msg string) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "%s: want %d, got %s", msg, want, got)
}

func TestGroupBySupplierPreservesOrder(t *testing.T) {
	t.Parallel()
	lines := []domain.CartLine{
		line("a", "S1", 10, 1),
		line("b", "S2", 20, 1),
		line("c", "S1", 30, 2),
	}

	groups := GroupBySupplier(lines)
	require.Len(t, groups, 2)
	assert.Equal(t, "S1", groups[0].SupplierName)
	assert.Equal(t, "S2", groups[1].SupplierName)
	require.Len(t, groups[0].Lines, 2)
	assert.Equal(t, "a", groups[0].Lines[0].ProductID)
	assert.Equal(t, "c", groups[0].Lines[1].ProductID)
	assertDecimal(t, 70, groups[0].Subtotal, "S1 subtotal")
	assertDecimal(t, 20, groups[1].Subtotal, "S2 subtotal")
}

func TestGroupBySupplierNormalizesKey(t *testing.T) {
	t.Parallel()
	groups := GroupBySupplier([]domain.CartLine{
		line("a", "Sharma Traders", 10, 1),
		line("b", "sharma  traders", 10, 1),
	})
	require.Len(t, groups, 1)
	assert.Equal(t, "sharmatraders", groups[0].Key)
	assert.Equal(t, "Sharma Traders", groups[0].SupplierName)
}

func TestGroupBySupplierEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, GroupBySupplier(nil))
}

func TestOrderDeliveryFeeSimpleThreshold(t *testing.T) {
	t.Parallel()
	p := SimplePolicy()
	tests := []struct {
		subtotal int64
		want     int64
	}{
		{subtotal: 100, want: 50},
		{subtotal: 500, want: 50},
		{subtotal: 501, want: 0},
	}
	for _, tc := range tests {
		got := OrderDeliveryFee(dec(tc.subtotal), p.FreeDeliveryThreshold, p.FlatDeliveryFee)
		assertDecimal(t, tc.want, got, "simple fee")
	}
}

func TestSupplierDeliveryFee(t *testing.T) {
	t.Parallel()
	p := GroupedPolicy()
	tests := []struct {
		name     string
		pref     domain.DeliveryPreference
		subtotal int64
		want     int64
	}{
		{name: "economy is free", pref: domain.DeliveryEconomy, subtotal: 50, want: 0},
		{name: "standard at threshold", pref: domain.DeliveryStandard, subtotal: 1000, want: 50},
		{name: "standard above threshold", pref: domain.DeliveryStandard, subtotal: 1001, want: 0},
		{name: "express floor", pref: domain.DeliveryExpress, subtotal: 200, want: 100},
		{name: "express percentage", pref: domain.DeliveryExpress, subtotal: 3000, want: 300},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := SupplierDeliveryFee(tc.pref, dec(tc.subtotal), p)
			require.NoError(t, err)
			assertDecimal(t, tc.want, got, tc.name)
		})
	}

	_, err := SupplierDeliveryFee("overnight", dec(10), p)
	require.Error(t, err)
}

func TestTax(t *testing.T) {
	t.Parallel()
	assertDecimal(t, 180, Tax(dec(1000), DefaultTaxRate), "tax on 1000")
	assertDecimal(t, 0, Tax(dec(1000), decimal.Zero), "no tax")
	// 333 * 0.18 = 59.94
	assertDecimal(t, 60, Tax(dec(333), DefaultTaxRate), "rounded tax")
}

func TestCalculateSimple(t *testing.T) {
	t.Parallel()
	lines := []domain.CartLine{line("a", "S1", 100, 2), line("b", "S2", 50, 3)}

	q, err := Calculate(lines, nil, SimplePolicy())
	require.NoError(t, err)
	assert.Equal(t, domain.StrategySimple, q.Strategy)
	assert.Equal(t, 5, q.TotalItems)
	assertDecimal(t, 350, q.Totals.Subtotal, "subtotal")
	assertDecimal(t, 50, q.Totals.DeliveryFee, "fee")
	assertDecimal(t, 0, q.Totals.Tax, "tax")
	assertDecimal(t, 400, q.Totals.GrandTotal, "grand total")
	for _, g := range q.Groups {
		assert.Nil(t, g.Instructions)
	}
}

func TestCalculateGroupedTaxAndFees(t *testing.T) {
	t.Parallel()
	lines := []domain.CartLine{line("a", "S1", 500, 2)}

	economy := map[string]domain.SupplierInstructions{
		"s1": {SupplierID: "s1", DeliveryPreference: domain.DeliveryEconomy, Urgency: domain.UrgencyNormal},
	}
	q, err := Calculate(lines, economy, GroupedPolicy())
	require.NoError(t, err)
	assertDecimal(t, 1000, q.Totals.Subtotal, "subtotal")
	assertDecimal(t, 180, q.Totals.Tax, "tax")
	assertDecimal(t, 0, q.Totals.DeliveryFee, "economy fee")
	assertDecimal(t, 1180, q.Totals.GrandTotal, "grand total")

	// Missing instructions default to standard, which charges 50 at exactly 1000.
	q, err = Calculate(lines, nil, GroupedPolicy())
	require.NoError(t, err)
	assertDecimal(t, 50, q.Totals.DeliveryFee, "standard fee")
	assertDecimal(t, 1230, q.Totals.GrandTotal, "grand total")
	require.NotNil(t, q.Groups[0].Instructions)
	assert.Equal(t, domain.DeliveryStandard, q.Groups[0].Instructions.DeliveryPreference)
}

func TestCalculateGroupedPerSupplierFees(t *testing.T) {
	t.Parallel()
	lines := []domain.CartLine{
		line("a", "S1", 100, 2),
		line("b", "S2", 1100, 1),
		line("c", "S3", 40, 5),
	}
	in := map[string]domain.SupplierInstructions{
		"s1": {SupplierID: "s1", DeliveryPreference: domain.DeliveryExpress, Urgency: domain.UrgencyUrgent},
		"s2": {SupplierID: "s2", DeliveryPreference: domain.DeliveryStandard, Urgency: domain.UrgencyNormal},
		"s3": {SupplierID: "s3", DeliveryPreference: domain.DeliveryStandard, Urgency: domain.UrgencyHigh},
	}

	q, err := Calculate(lines, in, GroupedPolicy())
	require.NoError(t, err)
	require.Len(t, q.Groups, 3)
	assertDecimal(t, 100, q.Groups[0].DeliveryFee, "express S1")
	assertDecimal(t, 0, q.Groups[1].DeliveryFee, "standard S2 above threshold")
	assertDecimal(t, 50, q.Groups[2].DeliveryFee, "standard S3 below threshold")
	assertDecimal(t, 150, q.Totals.DeliveryFee, "summed fee")
	assertDecimal(t, 1500, q.Totals.Subtotal, "subtotal")
	assertDecimal(t, 270, q.Totals.Tax, "tax")
	assertDecimal(t, 1920, q.Totals.GrandTotal, "grand total")
}

func TestCalculateGroupedWholeCartFee(t *testing.T) {
	t.Parallel()
	p := GroupedPolicy()
	p.SplitSupplierFees = false
	lines := []domain.CartLine{line("a", "S1", 600, 1), line("b", "S2", 401, 1)}

	q, err := Calculate(lines, nil, p)
	require.NoError(t, err)
	assertDecimal(t, 0, q.Totals.DeliveryFee, "above 1000")
	for _, g := range q.Groups {
		assert.True(t, g.DeliveryFee.IsZero())
	}

	q, err = Calculate([]domain.CartLine{line("a", "S1", 1000, 1)}, nil, p)
	require.NoError(t, err)
	assertDecimal(t, 50, q.Totals.DeliveryFee, "at 1000")
}

func TestCalculateEmptyCart(t *testing.T) {
	t.Parallel()
	for _, p := range []Policy{SimplePolicy(), GroupedPolicy()} {
		q, err := Calculate(nil, nil, p)
		require.NoError(t, err)
		assert.Empty(t, q.Groups)
		assert.Equal(t, 0, q.TotalItems)
		assert.True(t, q.Totals.Subtotal.IsZero())
		assert.True(t, q.Totals.DeliveryFee.IsZero())
		assert.True(t, q.Totals.Tax.IsZero())
		assert.True(t, q.Totals.GrandTotal.IsZero())
	}
}

func TestPoliciesFor(t *testing.T) {
	t.Parallel()
	ps := DefaultPolicies()
	p, err := ps.For(domain.StrategyGrouped)
	require.NoError(t, err)
	assert.True(t, p.SplitSupplierFees)
	_, err = ps.For("bulk")
	require.Error(t, err)
}

func TestResolveStrategy(t *testing.T) {
	t.Parallel()
	s, err := ResolveStrategy("")
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyGrouped, s)

	s, err = ResolveStrategy(" Simple ")
	require.NoError(t, err)
	assert.Equal(t, domain.StrategySimple, s)

	_, err = ResolveStrategy("bulk")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "strategy", verr.Field)
}

func TestCalculateExpressFeeRoundedToPaise(t *testing.T) {
	t.Parallel()
	l := line("a", "S1", 0, 1)
	l.UnitPrice = decimal.RequireFromString("1234.55")
	in := map[string]domain.SupplierInstructions{
		"s1": {SupplierID: "s1", DeliveryPreference: domain.DeliveryExpress, Urgency: domain.UrgencyNormal},
	}

	q, err := Calculate([]domain.CartLine{l}, in, GroupedPolicy())
	require.NoError(t, err)
	require.Len(t, q.Groups, 1)

	fee := q.Groups[0].DeliveryFee
	assert.Equal(t, "123.46", fee.StringFixed(2))
	assert.True(t, fee.Equal(fee.Round(2)), "fee has sub-paise digits: %s", fee)
	assertDecimal(t, 222, q.Totals.Tax, "tax")
	assert.Equal(t, "1580.01", q.Totals.GrandTotal.String())

	// Every total must survive a NUMERIC(12,2) column unchanged.
	for name, v := range map[string]decimal.Decimal{
		"subtotal": q.Totals.Subtotal,
		"fee":      q.Totals.DeliveryFee,
		"tax":      q.Totals.Tax,
		"grand":    q.Totals.GrandTotal,
	} {
		assert.Truef(t, v.Equal(v.Round(2)), "%s not representable in paise: %s", name, v)
	}
	assert.True(t, q.Totals.GrandTotal.Equal(q.Totals.Subtotal.Add(q.Totals.DeliveryFee).Add(q.Totals.Tax)))
}

func TestCalculateSplitFeesFollowPolicyFields(t *testing.T) {
	t.Parallel()
	p := SimplePolicy()
	p.SplitSupplierFees = true
	p.ExpressMinFee = dec(100)
	p.ExpressRate = DefaultExpressRate
	lines := []domain.CartLine{line("a", "S1", 200, 1), line("b", "S2", 300, 1)}
	in := map[string]domain.SupplierInstructions{
		"s1": {SupplierID: "s1", DeliveryPreference: domain.DeliveryExpress, Urgency: domain.UrgencyHigh},
		"s2": {SupplierID: "s2", DeliveryPreference: domain.DeliveryEconomy, Urgency: domain.UrgencyNormal},
	}

	q, err := Calculate(lines, in, p)
	require.NoError(t, err)
	assert.Equal(t, domain.StrategySimple, q.Strategy)
	require.Len(t, q.Groups, 2)
	for _, g := range q.Groups {
		require.NotNil(t, g.Instructions, "group %s", g.Key)
	}
	assertDecimal(t, 100, q.Groups[0].DeliveryFee, "express S1")
	assertDecimal(t, 0, q.Groups[1].DeliveryFee, "economy S2")
	assertDecimal(t, 100, q.Totals.DeliveryFee, "summed fee")

	p = GroupedPolicy()
	p.SupplierInstructions = false
	p.SplitSupplierFees = false
	q, err = Calculate(lines, in, p)
	require.NoError(t, err)
	for _, g := range q.Groups {
		assert.Nil(t, g.Instructions, "group %s", g.Key)
	}
	assertDecimal(t, 50, q.Totals.DeliveryFee, "whole-cart fee")
}
