package cart

import (
	"context"
	"sync"

	"teapos/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Registry hands out one Session per register, creating and restoring
// sessions on first use.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	taxRate  decimal.Decimal
	store    Store
	logger   *logrus.Entry
}

func NewRegistry(taxRate decimal.Decimal, store Store, logger *logrus.Entry) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		taxRate:  taxRate,
		store:    store,
		logger:   logging.OrDiscard(logger),
	}
}

// Get returns the session for id. A snapshot that cannot be loaded leaves
// the new session with an empty cart. The snapshot is loaded under the
// session's own lock so other registers are not blocked by it.
func (r *Registry) Get(ctx context.Context, id string) *Session {
	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		r.mu.Unlock()
		return s
	}
	s := NewSession(id, r.taxRate, r.store, r.logger)
	s.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	defer s.mu.Unlock()
	if err := s.restoreLocked(ctx); err != nil {
		r.logger.WithError(err).WithField("session_id", id).Warn("restore cart snapshot")
	}
	return s
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
