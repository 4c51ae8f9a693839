package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fastprodman/playereconomy/internal/repos/accounts"
)

var _ accounts.Store = (*Store)(nil)

// Store keeps accounts in process memory. Records are copied in and out so
// callers never share state with the store.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]*accounts.Account
	order []string
	now   func() time.Time
}

func New() *Store {
	return &Store{
		byID: make(map[string]*accounts.Account),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Get(_ context.Context, id string) (*accounts.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byID[id]
	if !ok {
		return nil, accounts.ErrAccountNotFound
	}

	cp := *acc

	return &cp, nil
}

func (s *Store) Insert(_ context.Context, acc *accounts.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[acc.ID]; ok {
		return accounts.ErrAccountExists
	}

	now := s.now()
	acc.Version = 0
	acc.CreatedAt = now
	acc.UpdatedAt = now

	cp := *acc
	s.byID[acc.ID] = &cp
	s.order = append(s.order, acc.ID)

	return nil
}

func (s *Store) Update(_ context.Context, acc *accounts.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byID[acc.ID]
	if !ok {
		return accounts.ErrAccountNotFound
	}

	if cur.Version != acc.Version {
		return accounts.ErrVersionConflict
	}

	acc.Version++
	acc.CreatedAt = cur.CreatedAt
	acc.UpdatedAt = s.now()

	cp := *acc
	s.byID[acc.ID] = &cp

	return nil
}

// GetAll returns copies in insertion order.
func (s *Store) GetAll(_ context.Context) ([]*accounts.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*accounts.Account, 0, len(s.order))
	for _, id := range s.order {
		cp := *s.byID[id]
		out = append(out, &cp)
	}

	return out, nil
}
