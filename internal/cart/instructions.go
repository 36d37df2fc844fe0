package cart

import (
	"fmt"

	"jugadubazar/internal/domain"
)

// InstructionBook keeps the buyer's per-supplier instructions, keyed by
// domain.SupplierKey so lookups agree with grouping.
type InstructionBook struct {
	byKey map[string]domain.SupplierInstructions
}

func NewInstructionBook() *InstructionBook {
	return &InstructionBook{byKey: map[string]domain.SupplierInstructions{}}
}

// Sync initializes defaults for every supplier key not seen before.
// Existing entries are kept even if their group has left the cart.
func (b *InstructionBook) Sync(keys []string) {
	for _, k := range keys {
		if _, ok := b.byKey[k]; !ok {
			b.byKey[k] = domain.DefaultInstructions(k)
		}
	}
}

// Update replaces the instructions for a known supplier key.
func (b *InstructionBook) Update(in domain.SupplierInstructions) error {
	if _, ok := b.byKey[in.SupplierID]; !ok {
		return domain.ErrNotFound
	}
	if !in.DeliveryPreference.IsValid() {
		return domain.NewValidationError("deliveryPreference", fmt.Sprintf("unknown value %q", in.DeliveryPreference))
	}
	if !in.Urgency.IsValid() {
		return domain.NewValidationError("urgency", fmt.Sprintf("unknown value %q", in.Urgency))
	}
	b.byKey[in.SupplierID] = in
	return nil
}

func (b *InstructionBook) Get(key string) (domain.SupplierInstructions, bool) {
	in, ok := b.byKey[key]
	return in, ok
}

// Snapshot returns a copy of all instructions.
func (b *InstructionBook) Snapshot() map[string]domain.SupplierInstructions {
	out := make(map[string]domain.SupplierInstructions, len(b.byKey))
	for k, v := range b.byKey {
		out[k] = v
	}
	return out
}

// Reset discards every instruction.
func (b *InstructionBook) Reset() {
	b.byKey = map[string]domain.SupplierInstructions{}
}
