package checkout

import (
	"fmt"
	"strings"

	"jugadubazar/internal/domain"

	"github.com/shopspring/decimal"
)

// The two checkout views use different free-delivery thresholds; they are
// kept distinct on purpose.
const (
	FreeDeliveryThresholdSimple  = 500
	FreeDeliveryThresholdGrouped = 1000
	DefaultFlatDeliveryFee       = 50
	DefaultExpressMinFee         = 100
)

var (
	DefaultExpressRate = decimal.RequireFromString("0.10")
	DefaultTaxRate     = decimal.RequireFromString("0.18")
)

// Policy is the fee and tax rule set applied by one checkout strategy.
type Policy struct {
	Strategy              domain.Strategy
	FreeDeliveryThreshold decimal.Decimal
	FlatDeliveryFee       decimal.Decimal
	// TaxRate of zero means the strategy charges no tax.
	TaxRate decimal.Decimal
	// SupplierInstructions attaches delivery instructions to every supplier
	// group. SplitSupplierFees implies it, since fees are priced from them.
	SupplierInstructions bool
	// SplitSupplierFees charges delivery per supplier group by preference
	// instead of one fee for the whole cart.
	SplitSupplierFees bool
	ExpressMinFee     decimal.Decimal
	ExpressRate       decimal.Decimal
}

// SimplePolicy is the single-cart checkout: free above 500, flat 50 otherwise, no tax.
func SimplePolicy() Policy {
	return Policy{
		Strategy:              domain.StrategySimple,
		FreeDeliveryThreshold: decimal.NewFromInt(FreeDeliveryThresholdSimple),
		FlatDeliveryFee:       decimal.NewFromInt(DefaultFlatDeliveryFee),
		TaxRate:               decimal.Zero,
	}
}

// GroupedPolicy is the multi-supplier checkout with per-supplier preferences and 18% tax.
func GroupedPolicy() Policy {
	return Policy{
		Strategy:              domain.StrategyGrouped,
		FreeDeliveryThreshold: decimal.NewFromInt(FreeDeliveryThresholdGrouped),
		FlatDeliveryFee:       decimal.NewFromInt(DefaultFlatDeliveryFee),
		TaxRate:               DefaultTaxRate,
		SupplierInstructions:  true,
		SplitSupplierFees:     true,
		ExpressMinFee:         decimal.NewFromInt(DefaultExpressMinFee),
		ExpressRate:           DefaultExpressRate,
	}
}

// Policies maps each strategy to its rule set.
type Policies struct {
	Simple  Policy
	Grouped Policy
}

func DefaultPolicies() Policies {
	return Policies{Simple: SimplePolicy(), Grouped: GroupedPolicy()}
}

func (p Policies) For(s domain.Strategy) (Policy, error) {
	switch s {
	case domain.StrategySimple:
		return p.Simple, nil
	case domain.StrategyGrouped:
		return p.Grouped, nil
	default:
		return Policy{}, fmt.Errorf("checkout: no policy for strategy %q", s)
	}
}

// ResolveStrategy parses buyer input into a strategy. Blank input selects the
// grouped strategy.
func ResolveStrategy(raw string) (domain.Strategy, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return domain.StrategyGrouped, nil
	}
	s, err := domain.ParseStrategy(raw)
	if err != nil {
		return "", &domain.ValidationError{Title: "Invalid Strategy", Field: "strategy", Message: err.Error()}
	}
	return s, nil
}
