package cart

import (
	"context"
	"sync"
	"time"

	"plantstore-bff/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for session carts.
type Service interface {
	Get(ctx context.Context, sessionID string) (State, error)
	AddItem(ctx context.Context, sessionID string, item Item) (State, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (State, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (State, error)
	Clear(ctx context.Context, sessionID string) (State, error)
}

// service keeps live stores per session and writes them through to the
// repository. Persistence is fire-and-forget: a failed save is logged, never
// surfaced, and never blocks the mutation path.
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

// store returns the live store for a session, hydrating it from the
// repository on first touch.
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

	// Another request may have hydrated while we were loading.
	if st, ok := s.stores[sessionID]; ok {
		return st, nil
	}

	st := NewStoreFromItems(items)
	s.stores[sessionID] = st
	return st, nil
}

func (s *service) persist(sessionID string, snapshot State) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.Save(ctx, sessionID, snapshot.Items); err != nil {
			logger.L().Warn("cart persist failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
	}()
}

func (s *service) Get(ctx context.Context, sessionID string) (State, error) {
	st, err := s.store(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	return st.Snapshot(), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, item Item) (State, error) {
	st, err := s.store(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	if err := st.AddItem(item); err != nil {
		return st.Snapshot(), err
	}

	snapshot := st.Snapshot()
	s.persist(sessionID, snapshot)

	logger.FromCtx(ctx).Debug("cart item added",
		zap.String("session_id", sessionID),
		zap.String("product_id", item.ID),
		zap.Int("quantity", item.Quantity),
	)

	return snapshot, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (State, error) {
	st, err := s.store(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	if err := st.UpdateQuantity(productID, quantity); err != nil {
		return st.Snapshot(), err
	}

	snapshot := st.Snapshot()
	s.persist(sessionID, snapshot)
	return snapshot, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) (State, error) {
	st, err := s.store(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	st.RemoveItem(productID)

	snapshot := st.Snapshot()
	s.persist(sessionID, snapshot)
	return snapshot, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (State, error) {
	st, err := s.store(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	st.Clear()

	snapshot := st.Snapshot()
	s.persist(sessionID, snapshot)
	return snapshot, nil
}
