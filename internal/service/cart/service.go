package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	cartstore "jugadubazar/internal/cart"
	"jugadubazar/internal/checkout"
	"jugadubazar/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type catalog interface {
	Lookup(ctx context.Context, materialID string) (domain.Product, int, error)
}

type sessionGauge interface {
	SetActiveSessions(n int)
}

type Service struct {
	registry *cartstore.Registry
	catalog  catalog
	policies checkout.Policies
	gauge    sessionGauge
	logger   zerolog.Logger
}

func New(registry *cartstore.Registry, catalog catalog, policies checkout.Policies, gauge sessionGauge, logger zerolog.Logger) *Service {
	return &Service{
		registry: registry,
		catalog:  catalog,
		policies: policies,
		gauge:    gauge,
		logger:   logger,
	}
}

// View is the cart as returned to the buyer.
type View struct {
	ID          string                 `json:"id"`
	Lines       []domain.CartLine      `json:"lines"`
	Groups      []domain.SupplierGroup `json:"groups"`
	TotalItems  int                    `json:"totalItems"`
	TotalAmount decimal.Decimal        `json:"totalAmount"`
	CreatedAt   time.Time              `json:"createdAt"`
}

type AddItemInput struct {
	MaterialID string `json:"materialId"`
	Quantity   *int   `json:"quantity,omitempty"`
}

type InstructionsInput struct {
	Notes              string `json:"notes"`
	DeliveryPreference string `json:"deliveryPreference"`
	Urgency            string `json:"urgency"`
}

func (s *Service) Create(_ context.Context) (*View, error) {
	sess := s.registry.Create()
	s.reportSessions()
	s.logger.Info().Str("cart_id", sess.ID).Msg("cart session created")
	return s.view(sess.ID, nil)
}

func (s *Service) Get(_ context.Context, cartID string) (*View, error) {
	return s.view(cartID, nil)
}

// AddItem resolves the material from the catalog and adds it to the cart.
// Without an explicit quantity the first insertion uses the material's
// minimum order quantity.
func (s *Service) AddItem(ctx context.Context, cartID string, in AddItemInput) (*View, error) {
	materialID := strings.TrimSpace(in.MaterialID)
	if materialID == "" {
		return nil, &domain.ValidationError{Title: "Invalid Item", Field: "materialId", Message: "required"}
	}
	if !s.registry.Exists(cartID) {
		return nil, domain.ErrNotFound
	}
	if s.catalog == nil {
		return nil, fmt.Errorf("catalog unavailable")
	}
	product, moq, err := s.catalog.Lookup(ctx, materialID)
	if err != nil {
		return nil, err
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	} else if moq > 1 {
		qty = moq
	}
	return s.view(cartID, func(sess *cartstore.Session) error {
		sess.Store.AddItem(product, qty)
		return nil
	})
}

func (s *Service) UpdateQuantity(_ context.Context, cartID, productID string, qty int) (*View, error) {
	return s.view(cartID, func(sess *cartstore.Session) error {
		sess.Store.UpdateQuantity(productID, qty)
		return nil
	})
}

func (s *Service) RemoveItem(_ context.Context, cartID, productID string) (*View, error) {
	return s.view(cartID, func(sess *cartstore.Session) error {
		sess.Store.RemoveItem(productID)
		return nil
	})
}

// Clear empties the cart and drops its supplier instructions.
func (s *Service) Clear(_ context.Context, cartID string) (*View, error) {
	return s.view(cartID, func(sess *cartstore.Session) error {
		sess.Clear()
		return nil
	})
}

// Quote prices the cart under the named strategy without submitting it.
func (s *Service) Quote(_ context.Context, cartID, strategy string) (domain.Quote, error) {
	st, err := checkout.ResolveStrategy(strategy)
	if err != nil {
		return domain.Quote{}, err
	}
	policy, err := s.policies.For(st)
	if err != nil {
		return domain.Quote{}, err
	}
	var q domain.Quote
	err = s.registry.Do(cartID, func(sess *cartstore.Session) error {
		var err error
		q, err = checkout.Calculate(sess.Store.Lines(), sess.Instructions.Snapshot(), policy)
		return err
	})
	return q, err
}

// Instructions lists the instructions of the current supplier groups in group order.
func (s *Service) Instructions(_ context.Context, cartID string) ([]domain.SupplierInstructions, error) {
	out := []domain.SupplierInstructions{}
	err := s.registry.Do(cartID, func(sess *cartstore.Session) error {
		for _, key := range sess.SupplierKeys() {
			in, ok := sess.Instructions.Get(key)
			if !ok {
				in = domain.DefaultInstructions(key)
			}
			out = append(out, in)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateInstructions replaces the instructions of one supplier group. Blank
// preference or urgency keep their current values.
func (s *Service) UpdateInstructions(_ context.Context, cartID, supplierKey string, in InstructionsInput) (domain.SupplierInstructions, error) {
	key := domain.SupplierKey(supplierKey)
	var updated domain.SupplierInstructions
	err := s.registry.Do(cartID, func(sess *cartstore.Session) error {
		current, ok := sess.Instructions.Get(key)
		if !ok {
			return domain.ErrNotFound
		}
		next := current
		next.Notes = in.Notes
		if raw := strings.ToLower(strings.TrimSpace(in.DeliveryPreference)); raw != "" {
			pref, err := domain.ParseDeliveryPreference(raw)
			if err != nil {
				return &domain.ValidationError{Title: "Invalid Instructions", Field: "deliveryPreference", Message: err.Error()}
			}
			next.DeliveryPreference = pref
		}
		if raw := strings.ToLower(strings.TrimSpace(in.Urgency)); raw != "" {
			u, err := domain.ParseUrgency(raw)
			if err != nil {
				return &domain.ValidationError{Title: "Invalid Instructions", Field: "urgency", Message: err.Error()}
			}
			next.Urgency = u
		}
		if err := sess.Instructions.Update(next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	return updated, err
}

// SweepIdle drops sessions unused for longer than ttl.
func (s *Service) SweepIdle(ttl time.Duration) int {
	n := s.registry.Sweep(ttl)
	s.reportSessions()
	if n > 0 {
		s.logger.Info().Int("dropped", n).Dur("ttl", ttl).Msg("idle cart sessions swept")
	}
	return n
}

func (s *Service) view(cartID string, mutate func(*cartstore.Session) error) (*View, error) {
	var v View
	err := s.registry.Do(cartID, func(sess *cartstore.Session) error {
		if mutate != nil {
			if err := mutate(sess); err != nil {
				return err
			}
		}
		lines := sess.Store.Lines()
		v = View{
			ID:          sess.ID,
			Lines:       lines,
			Groups:      checkout.GroupBySupplier(lines),
			TotalItems:  sess.Store.TotalItems(),
			TotalAmount: sess.Store.TotalAmount(),
			CreatedAt:   sess.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Service) reportSessions() {
	if s.gauge != nil {
		s.gauge.SetActiveSessions(s.registry.Len())
	}
}
