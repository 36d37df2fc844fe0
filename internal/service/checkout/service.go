// Package checkout turns a cart session into a submitted order.
package checkout

import (
	"context"
	"errors"
	"strings"

	cartstore "jugadubazar/internal/cart"
	"jugadubazar/internal/checkout"
	"jugadubazar/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Submitter accepts a finished order summary. The order repository is the
// production implementation.
type Submitter interface {
	Create(ctx context.Context, summary domain.OrderSummary) (domain.OrderConfirmation, error)
}

type recorder interface {
	IncAttempt(strategy string)
	ObserveSuccess(strategy string, grandTotal decimal.Decimal)
	IncFailure(strategy, reason string)
}

type Service struct {
	registry  *cartstore.Registry
	submitter Submitter
	policies  checkout.Policies
	metrics   recorder
	validate  *validator.Validate
	logger    zerolog.Logger
}

func New(registry *cartstore.Registry, submitter Submitter, policies checkout.Policies, metrics recorder, logger zerolog.Logger) *Service {
	return &Service{
		registry:  registry,
		submitter: submitter,
		policies:  policies,
		metrics:   metrics,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

type Input struct {
	Strategy        string `json:"strategy"`
	DeliveryAddress string `json:"deliveryAddress"`
	PhoneNumber     string `json:"phoneNumber"`
}

// Checkout validates the delivery details, prices the cart and submits it.
// The cart is cleared only after the submitter accepts the order.
func (s *Service) Checkout(ctx context.Context, cartID string, in Input) (domain.OrderConfirmation, error) {
	strategy, err := checkout.ResolveStrategy(in.Strategy)
	if err != nil {
		return domain.OrderConfirmation{}, err
	}
	s.attempt(strategy)

	details := domain.DeliveryDetails{
		Address: strings.TrimSpace(in.DeliveryAddress),
		Phone:   strings.TrimSpace(in.PhoneNumber),
	}
	if err := s.checkDetails(details); err != nil {
		s.fail(strategy, "validation")
		return domain.OrderConfirmation{}, err
	}

	policy, err := s.policies.For(strategy)
	if err != nil {
		return domain.OrderConfirmation{}, err
	}

	var conf domain.OrderConfirmation
	var total decimal.Decimal
	err = s.registry.Do(cartID, func(sess *cartstore.Session) error {
		lines := sess.Store.Lines()
		if len(lines) == 0 {
			return &domain.ValidationError{Title: "Empty Cart", Field: "cart", Message: "cart is empty"}
		}
		quote, err := checkout.Calculate(lines, sess.Instructions.Snapshot(), policy)
		if err != nil {
			return err
		}
		summary := domain.OrderSummary{
			Strategy: quote.Strategy,
			Groups:   quote.Groups,
			Totals:   quote.Totals,
			Delivery: details,
		}
		c, err := s.submitter.Create(ctx, summary)
		if err != nil {
			return &domain.SubmissionError{Cause: err}
		}
		sess.Clear()
		conf = c
		total = quote.Totals.GrandTotal
		return nil
	})
	if err != nil {
		s.fail(strategy, failureReason(err))
		s.logger.Warn().Err(err).Str("cart_id", cartID).Str("strategy", strategy.String()).Msg("checkout failed")
		return domain.OrderConfirmation{}, err
	}

	if s.metrics != nil {
		s.metrics.ObserveSuccess(strategy.String(), total)
	}
	s.logger.Info().
		Str("cart_id", cartID).
		Str("order_id", conf.OrderID).
		Str("strategy", strategy.String()).
		Str("grand_total", total.String()).
		Msg("order submitted")
	return conf, nil
}

func (s *Service) checkDetails(d domain.DeliveryDetails) error {
	err := s.validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, jsonField(fe.Field()))
	}
	return &domain.ValidationError{
		Title:   domain.MissingInformationTitle,
		Field:   strings.Join(fields, ","),
		Message: "Please provide delivery address and phone number",
	}
}

func jsonField(structField string) string {
	switch structField {
	case "Address":
		return "deliveryAddress"
	case "Phone":
		return "phoneNumber"
	default:
		return structField
	}
}

func failureReason(err error) string {
	var verr *domain.ValidationError
	var serr *domain.SubmissionError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.As(err, &verr):
		return "validation"
	case errors.As(err, &serr):
		return "submission"
	default:
		return "internal"
	}
}

func (s *Service) attempt(strategy domain.Strategy) {
	if s.metrics != nil {
		s.metrics.IncAttempt(strategy.String())
	}
}

func (s *Service) fail(strategy domain.Strategy, reason string) {
	if s.metrics != nil {
		s.metrics.IncFailure(strategy.String(), reason)
	}
}
