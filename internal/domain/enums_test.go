package domain

import "testing"

func TestParseDeliveryPreference(t *testing.T) {
	for _, raw := range []string{"economy", "standard", "express"} {
		got, err := ParseDeliveryPreference(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got.String() != raw || !got.IsValid() {
			t.Fatalf("unexpected preference %q", got)
		}
	}
	if _, err := ParseDeliveryPreference("Express"); err == nil {
		t.Fatalf("expected error for non-canonical value")
	}
	if DeliveryPreference("overnight").IsValid() {
		t.Fatalf("unknown preference reported valid")
	}
}

func TestParseUrgency(t *testing.T) {
	got, err := ParseUrgency("urgent")
	if err != nil || got != UrgencyUrgent {
		t.Fatalf("expected urgent, got %q err=%v", got, err)
	}
	if _, err := ParseUrgency(""); err == nil {
		t.Fatalf("expected error for empty urgency")
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy("grouped"); err != nil || s != StrategyGrouped {
		t.Fatalf("expected grouped, got %q err=%v", s, err)
	}
	if _, err := ParseStrategy("bulk"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestSupplierKey(t *testing.T) {
	cases := map[string]string{
		"Sharma Traders":    "sharmatraders",
		"  sharma\ttraders": "sharmatraders",
		"SHARMA TRADERS ":   "sharmatraders",
		"":                  "",
	}
	for in, want := range cases {
		if got := SupplierKey(in); got != want {
			t.Fatalf("SupplierKey(%q) = %q, want %q", in, got, want)
		}
	}
}
