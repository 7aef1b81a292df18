package session

import (
	"context"
	"sync"

	"github.com/dkurbatovs/shopcart/internal/models"
)

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	mu   sync.Mutex
	sess *models.Session

	// SaveErr / ClearErr, when set, are returned by the corresponding call.
	SaveErr  error
	ClearErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil, nil
	}
	copied := *m.sess
	return &copied, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	copied := *s
	m.sess = &copied
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.sess = nil
	return nil
}
