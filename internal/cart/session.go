package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"teapos/internal/domain"
	"teapos/internal/logging"
	"teapos/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	// ErrCheckoutInProgress is returned by cart mutations while a checkout
	// holds the cart.
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrNoLine             = fmt.Errorf("%w: no cart line at that position", domain.ErrNotFound)
)

// View is a consistent read of a session's cart.
type View struct {
	SessionID string            `json:"sessionId"`
	Lines     []domain.LineItem `json:"lines"`
	pricing.Summary
}

// Session is one register's cart with write-through persistence.
// Persistence is best effort: a failed save is logged and the in-memory
// cart stays authoritative.
type Session struct {
	id     string
	mu     sync.Mutex
	cart   *Cart
	held   bool
	store  Store
	logger *logrus.Entry
}

func NewSession(id string, taxRate decimal.Decimal, store Store, logger *logrus.Entry) *Session {
	return &Session{
		id:     id,
		cart:   New(taxRate),
		store:  store,
		logger: logging.OrDiscard(logger).WithField("session_id", id),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) TaxRate() decimal.Decimal {
	return s.cart.TaxRate()
}

// Restore replaces the cart with the persisted snapshot, if any. Other
// calls on the session wait until the load finishes.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restoreLocked(ctx)
}

func (s *Session) restoreLocked(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	lines, err := s.store.Load(ctx, Key(s.id))
	if err != nil {
		return err
	}
	s.cart.replace(lines)
	return nil
}

func (s *Session) Add(ctx context.Context, item domain.LineItem) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return s.view(), ErrCheckoutInProgress
	}
	s.cart.Add(item)
	s.persist(ctx)
	return s.view(), nil
}

// RemoveAt returns ErrNoLine when index does not name a row.
func (s *Session) RemoveAt(ctx context.Context, index int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return s.view(), ErrCheckoutInProgress
	}
	if !s.cart.RemoveAt(index) {
		return s.view(), ErrNoLine
	}
	s.persist(ctx)
	return s.view(), nil
}

func (s *Session) Clear(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return s.view(), ErrCheckoutInProgress
	}
	s.cart.Clear()
	s.persist(ctx)
	return s.view(), nil
}

// Hold freezes the cart for a checkout and returns the contents being
// charged. Mutations fail with ErrCheckoutInProgress until Release.
func (s *Session) Hold() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held {
		return s.view(), ErrCheckoutInProgress
	}
	s.held = true
	return s.view(), nil
}

// Release unfreezes the cart. When ordered is true the held lines became an
// order and the cart is emptied.
func (s *Session) Release(ctx context.Context, ordered bool) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = false
	if ordered {
		s.cart.Clear()
		s.persist(ctx)
	}
	return s.view()
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) view() View {
	return View{
		SessionID: s.id,
		Lines:     s.cart.Lines(),
		Summary:   s.cart.Summary(),
	}
}

func (s *Session) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	var err error
	if s.cart.Len() == 0 {
		err = s.store.Delete(ctx, Key(s.id))
	} else {
		err = s.store.Save(ctx, Key(s.id), s.cart.Lines())
	}
	if err != nil {
		s.logger.WithError(err).Warn("persist cart snapshot")
	}
}
