package cart

import (
	"context"
	"sync"

	"teapos/internal/domain"
)

// Store persists cart snapshots so a restarted register gets its cart back.
type Store interface {
	Save(ctx context.Context, key string, lines []domain.LineItem) error
	Load(ctx context.Context, key string) ([]domain.LineItem, error)
	Delete(ctx context.Context, key string) error
}

// Key is the store key of a session's cart snapshot.
func Key(sessionID string) string {
	return "pos:cart:" + sessionID
}

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]domain.LineItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]domain.LineItem)}
}

func (m *MemoryStore) Save(_ context.Context, key string, lines []domain.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[key] = domain.CloneLines(lines)
	return nil
}

// Load returns nil lines when nothing is stored under key.
func (m *MemoryStore) Load(_ context.Context, key string) ([]domain.LineItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.CloneLines(m.carts[key]), nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, key)
	return nil
}
