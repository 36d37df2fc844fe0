package cart

import (
	"sync"
	"time"

	"jugadubazar/internal/domain"

	"github.com/google/uuid"
)

// Session is a buyer's cart plus the instructions attached to its supplier groups.
type Session struct {
	ID           string
	Store        *Store
	Instructions *InstructionBook
	CreatedAt    time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// SupplierKeys returns the distinct supplier keys in first-seen line order.
func (s *Session) SupplierKeys() []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, l := range s.Store.lines {
		k := domain.SupplierKey(l.SupplierName)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// Clear empties the cart and discards its instructions.
func (s *Session) Clear() {
	s.Store.Clear()
	s.Instructions.Reset()
}

// Registry owns every live cart session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: map[string]*Session{},
		now:      time.Now,
	}
}

// Create opens a new empty session.
func (r *Registry) Create() *Session {
	now := r.now()
	s := &Session{
		ID:           uuid.NewString(),
		Store:        NewStore(),
		Instructions: NewInstructionBook(),
		CreatedAt:    now,
		lastSeen:     now,
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Exists reports whether the session is live.
func (r *Registry) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	return ok
}

// Do runs fn with exclusive access to the session. Instructions are synced
// with the supplier groups after fn returns.
func (r *Registry) Do(id string, fn func(*Session) error) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = r.now()
	s.Instructions.Sync(s.SupplierKeys())
	err := fn(s)
	s.Instructions.Sync(s.SupplierKeys())
	return err
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than ttl and returns how many were dropped.
// A session held by Do is in use and is never considered idle.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	live := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		live = append(live, s)
	}
	r.mu.Unlock()

	var idle []*Session
	for _, s := range live {
		if !s.mu.TryLock() {
			continue
		}
		if s.lastSeen.Before(cutoff) {
			idle = append(idle, s)
		}
		s.mu.Unlock()
	}
	if len(idle) == 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for _, s := range idle {
		if r.sessions[s.ID] != s || !s.mu.TryLock() {
			continue
		}
		// Touched since the first pass.
		if !s.lastSeen.Before(cutoff) {
			s.mu.Unlock()
			continue
		}
		delete(r.sessions, s.ID)
		s.mu.Unlock()
		dropped++
	}
	return dropped
}
