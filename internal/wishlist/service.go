package wishlist

import (
	"context"
	"sync"
	"time"

	"plantstore-bff/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for session wishlists.
type Service interface {
	Get(ctx context.Context, sessionID string) ([]Item, error)
	Add(ctx context.Context, sessionID string, item Item) ([]Item, error)
	Remove(ctx context.Context, sessionID, productID string) ([]Item, error)
}

type service struct {
	repo Repository

	mu     sync.Mutex
	stores map[string]*Store
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		stores: make(map[string]*Store),
	}
}

func (s *service) store(ctx context.Context, sessionID string) (*Store, error) {
	s.mu.Lock()
	if st, ok := s.stores[sessionID]; ok {
		s.mu.Unlock()
		return st, nil
	}
	s.mu.Unlock()

	items, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.stores[sessionID]; ok {
		return st, nil
	}

	st := NewStoreFromItems(items)
	s.stores[sessionID] = st
	return st, nil
}

func (s *service) persist(sessionID string, items []Item) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.Save(ctx, sessionID, items); err != nil {
			logger.L().Warn("wishlist persist failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}()
}

func (s *service) Get(ctx context.Context, sessionID string) ([]Item, error) {
	st, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return st.Items(), nil
}

func (s *service) Add(ctx context.Context, sessionID string, item Item) ([]Item, error) {
	st, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := st.Add(item); err != nil {
		return st.Items(), err
	}

	items := st.Items()
	s.persist(sessionID, items)
	return items, nil
}

func (s *service) Remove(ctx context.Context, sessionID, productID string) ([]Item, error) {
	st, err := s.store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	st.Remove(productID)

	items := st.Items()
	s.persist(sessionID, items)
	return items, nil
}
