package trakt

import (
	"sync"

	"github.com/amaumene/traktmanager/internal/models"
)

// TokenStore defines the interface for storing and retrieving tokens
type TokenStore interface {
	GetToken() (*models.DeviceToken, bool)
	SaveToken(token models.DeviceToken)
}

// MemoryTokenStore holds a single token for the lifetime of the process
type MemoryTokenStore struct {
	mu    sync.Mutex
	token *models.DeviceToken
}

// NewMemoryTokenStore creates a new in-memory token store, optionally seeded
func NewMemoryTokenStore(seed *models.DeviceToken) *MemoryTokenStore {
	s := &MemoryTokenStore{}
	if seed != nil {
		s.SaveToken(*seed)
	}
	return s
}

// GetToken returns a copy of the current token
func (s *MemoryTokenStore) GetToken() (*models.DeviceToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil {
		return nil, false
	}
	t := *s.token
	return &t, true
}

// SaveToken replaces the current token
func (s *MemoryTokenStore) SaveToken(token models.DeviceToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = &token
}
