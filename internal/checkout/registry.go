package checkout

import (
	"context"
	"sync"
	"time"

	"teapos/internal/cart"
	"teapos/internal/logging"
	"teapos/internal/payment"

	"github.com/sirupsen/logrus"
)

// Registry keeps one Flow per register session.
type Registry struct {
	mu        sync.Mutex
	flows     map[string]*Flow
	carts     *cart.Registry
	payments  payment.Processor
	submitter Submitter
	timeout   time.Duration
	logger    *logrus.Entry
}

func NewRegistry(carts *cart.Registry, payments payment.Processor, submitter Submitter, timeout time.Duration, logger *logrus.Entry) *Registry {
	return &Registry{
		flows:     make(map[string]*Flow),
		carts:     carts,
		payments:  payments,
		submitter: submitter,
		timeout:   timeout,
		logger:    logging.OrDiscard(logger),
	}
}

// Get returns the flow for sessionID. The cart session is looked up without
// holding the registry lock since restoring it may hit the snapshot store.
func (r *Registry) Get(ctx context.Context, sessionID string) *Flow {
	r.mu.Lock()
	f, ok := r.flows[sessionID]
	r.mu.Unlock()
	if ok {
		return f
	}

	session := r.carts.Get(ctx, sessionID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.flows[sessionID]; ok {
		return f
	}
	f = NewFlow(session, r.payments, r.submitter, r.timeout, r.logger)
	r.flows[sessionID] = f
	return f
}
