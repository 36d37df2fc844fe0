package checkout

import (
	"context"
	"errors"
	"testing"

	cartstore "jugadubazar/internal/cart"
	"jugadubazar/internal/checkout"
	"jugadubazar/internal/domain"
	"jugadubazar/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubmitter struct {
	calls   int
	last    domain.OrderSummary
	err     error
	orderID string
}

func (s *stubSubmitter) Create(_ context.Context, summary domain.OrderSummary) (domain.OrderConfirmation, error) {
	s.calls++
	s.last = summary
	if s.err != nil {
		return domain.OrderConfirmation{}, s.err
	}
	return domain.OrderConfirmation{OrderID: s.orderID, Status: domain.OrderStatusPending}, nil
}

func setup(t *testing.T, sub *stubSubmitter) (*Service, *cartstore.Registry, string, *prometheus.Registry) {
	t.Helper()
	reg := cartstore.NewRegistry()
	sess := reg.Create()
	require.NoError(t, reg.Do(sess.ID, func(s *cartstore.Session) error {
		s.Store.AddItem(domain.Product{ID: "onion", Name: "Onion", UnitPrice: decimal.NewFromInt(100), Unit: "kg", SupplierName: "Sharma Traders"}, 6)
		s.Store.AddItem(domain.Product{ID: "oil", Name: "Mustard Oil", UnitPrice: decimal.NewFromInt(200), Unit: "liter", SupplierName: "Gupta Oils"}, 2)
		return nil
	}))
	promReg := prometheus.NewRegistry()
	svc := New(reg, sub, checkout.DefaultPolicies(), metrics.NewCheckoutMetrics(promReg), zerolog.Nop())
	return svc, reg, sess.ID, promReg
}

func lineCount(t *testing.T, reg *cartstore.Registry, id string) int {
	t.Helper()
	n := 0
	require.NoError(t, reg.Do(id, func(s *cartstore.Session) error {
		n = len(s.Store.Lines())
		return nil
	}))
	return n
}

func TestCheckoutMissingInformation(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		address string
		phone   string
		field   string
	}{
		{"blank address", "   ", "9876543210", "deliveryAddress"},
		{"blank phone", "12 MG Road", "", "phoneNumber"},
		{"both blank", "", "\t", "deliveryAddress,phoneNumber"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sub := &stubSubmitter{}
			svc, reg, id, _ := setup(t, sub)

			_, err := svc.Checkout(context.Background(), id, Input{DeliveryAddress: tc.address, PhoneNumber: tc.phone})
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, domain.MissingInformationTitle, verr.Title)
			assert.Equal(t, tc.field, verr.Field)
			assert.Zero(t, sub.calls)
			assert.Equal(t, 2, lineCount(t, reg, id))
		})
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	t.Parallel()
	sub := &stubSubmitter{}
	reg := cartstore.NewRegistry()
	sess := reg.Create()
	svc := New(reg, sub, checkout.DefaultPolicies(), nil, zerolog.Nop())

	_, err := svc.Checkout(context.Background(), sess.ID, Input{DeliveryAddress: "Pune", PhoneNumber: "9000000000"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cart", verr.Field)
	assert.Zero(t, sub.calls)
}

func TestCheckoutUnknownCart(t *testing.T) {
	t.Parallel()
	sub := &stubSubmitter{}
	svc, _, _, _ := setup(t, sub)
	_, err := svc.Checkout(context.Background(), "missing", Input{DeliveryAddress: "Pune", PhoneNumber: "9000000000"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckoutSubmitsAndClears(t *testing.T) {
	t.Parallel()
	sub := &stubSubmitter{orderID: "order-1"}
	svc, reg, id, promReg := setup(t, sub)

	require.NoError(t, reg.Do(id, func(s *cartstore.Session) error {
		return s.Instructions.Update(domain.SupplierInstructions{
			SupplierID:         "guptaoils",
			Notes:              "fragile",
			DeliveryPreference: domain.DeliveryEconomy,
			Urgency:            domain.UrgencyUrgent,
		})
	}))

	conf, err := svc.Checkout(context.Background(), id, Input{
		DeliveryAddress: "  12 MG Road, Pune ",
		PhoneNumber:     " 9876543210 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "order-1", conf.OrderID)
	assert.Equal(t, domain.OrderStatusPending, conf.Status)

	require.Equal(t, 1, sub.calls)
	summary := sub.last
	assert.Equal(t, domain.StrategyGrouped, summary.Strategy)
	assert.Equal(t, "12 MG Road, Pune", summary.Delivery.Address)
	assert.Equal(t, "9876543210", summary.Delivery.Phone)
	require.Len(t, summary.Groups, 2)
	require.NotNil(t, summary.Groups[1].Instructions)
	assert.Equal(t, "fragile", summary.Groups[1].Instructions.Notes)
	// 600 standard -> 50, 400 economy -> 0, tax 180
	assert.True(t, summary.Totals.DeliveryFee.Equal(decimal.NewFromInt(50)), summary.Totals.DeliveryFee.String())
	assert.True(t, summary.Totals.GrandTotal.Equal(decimal.NewFromInt(1230)), summary.Totals.GrandTotal.String())

	assert.Zero(t, lineCount(t, reg, id))
	require.NoError(t, reg.Do(id, func(s *cartstore.Session) error {
		_, ok := s.Instructions.Get("guptaoils")
		assert.False(t, ok)
		return nil
	}))

	count, err := testutil.GatherAndCount(promReg, "checkout_success_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCheckoutSimpleStrategy(t *testing.T) {
	t.Parallel()
	sub := &stubSubmitter{orderID: "order-2"}
	svc, _, id, _ := setup(t, sub)

	_, err := svc.Checkout(context.Background(), id, Input{Strategy: "simple", DeliveryAddress: "Pune", PhoneNumber: "9000000000"})
	require.NoError(t, err)
	assert.Equal(t, domain.StrategySimple, sub.last.Strategy)
	assert.True(t, sub.last.Totals.Tax.IsZero())
	assert.True(t, sub.last.Totals.GrandTotal.Equal(decimal.NewFromInt(1000)))
	for _, g := range sub.last.Groups {
		assert.Nil(t, g.Instructions)
	}
}

func TestCheckoutSubmissionFailureKeepsCart(t *testing.T) {
	t.Parallel()
	sub := &stubSubmitter{err: errors.New("connection refused")}
	svc, reg, id, _ := setup(t, sub)

	_, err := svc.Checkout(context.Background(), id, Input{DeliveryAddress: "Pune", PhoneNumber: "9000000000"})
	var serr *domain.SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.EqualError(t, serr.Cause, "connection refused")
	assert.Equal(t, 2, lineCount(t, reg, id))
}

func TestCheckoutInvalidStrategy(t *testing.T) {
	t.Parallel()
	sub := &stubSubmitter{}
	svc, _, id, _ := setup(t, sub)
	_, err := svc.Checkout(context.Background(), id, Input{Strategy: "bulk", DeliveryAddress: "Pune", PhoneNumber: "9000000000"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, sub.calls)
}
