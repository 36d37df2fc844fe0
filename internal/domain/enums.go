package domain

import "fmt"

// DeliveryPreference selects how a supplier group is delivered.
type DeliveryPreference string

const (
	DeliveryEconomy  DeliveryPreference = "economy"
	DeliveryStandard DeliveryPreference = "standard"
	DeliveryExpress  DeliveryPreference = "express"
)

var validDeliveryPreferences = []DeliveryPreference{
	DeliveryEconomy,
	DeliveryStandard,
	DeliveryExpress,
}

// String implements fmt.Stringer.
func (p DeliveryPreference) String() string {
	return string(p)
}

// IsValid reports whether the value is a known DeliveryPreference.
func (p DeliveryPreference) IsValid() bool {
	for _, candidate := range validDeliveryPreferences {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseDeliveryPreference converts raw input into a DeliveryPreference.
func ParseDeliveryPreference(value string) (DeliveryPreference, error) {
	for _, candidate := range validDeliveryPreferences {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery preference %q", value)
}

// Urgency tells the supplier how quickly the buyer needs the goods.
type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

var validUrgencies = []Urgency{
	UrgencyNormal,
	UrgencyHigh,
	UrgencyUrgent,
}

// String implements fmt.Stringer.
func (u Urgency) String() string {
	return string(u)
}

// IsValid reports whether the value is a known Urgency.
func (u Urgency) IsValid() bool {
	for _, candidate := range validUrgencies {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUrgency converts raw input into an Urgency.
func ParseUrgency(value string) (Urgency, error) {
	for _, candidate := range validUrgencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid urgency %q", value)
}

// Strategy names a combination of delivery-fee threshold and tax rule.
type Strategy string

const (
	// StrategySimple is the single-cart checkout: flat fee below 500, no tax.
	StrategySimple Strategy = "simple"
	// StrategyGrouped is the multi-supplier checkout with instructions and tax.
	StrategyGrouped Strategy = "grouped"
)

var validStrategies = []Strategy{
	StrategySimple,
	StrategyGrouped,
}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Strategy.
func (s Strategy) IsValid() bool {
	for _, candidate := range validStrategies {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStrategy converts raw input into a Strategy.
func ParseStrategy(value string) (Strategy, error) {
	for _, candidate := range validStrategies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout strategy %q", value)
}

// OrderStatus tracks a submitted order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
