package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vbonduro/brickinv/internal/domain"
)

// setRepository is the subset of store.SetStore that SetService requires.
type setRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Set, error)
	Create(ctx context.Context, userID uuid.UUID, setNumber int64, name string) (*domain.Set, error)
	Delete(ctx context.Context, userID uuid.UUID, setNumber int64) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// SetService exposes the collection operations the HTTP layer needs. Input
// validation happens at the boundary; by the time a call lands here the owner
// is authenticated and the parameters are well-formed.
type SetService struct {
	sets   setRepository
	logger *slog.Logger
}

func NewSetService(sets setRepository, logger *slog.Logger) *SetService {
	return &SetService{sets: sets, logger: logger}
}

func (s *SetService) ListSets(ctx context.Context, userID uuid.UUID) ([]*domain.Set, error) {
	return s.sets.ListByUser(ctx, userID)
}

func (s *SetService) AddSet(ctx context.Context, userID uuid.UUID, setNumber int64, name string) (*domain.Set, error) {
	set, err := s.sets.Create(ctx, userID, setNumber, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("set added", "user_id", userID, "set_number", setNumber)
	return set, nil
}

func (s *SetService) RemoveSet(ctx context.Context, userID uuid.UUID, setNumber int64) error {
	if err := s.sets.Delete(ctx, userID, setNumber); err != nil {
		return err
	}
	s.logger.Info("set removed", "user_id", userID, "set_number", setNumber)
	return nil
}

func (s *SetService) RemoveAllSets(ctx context.Context, userID uuid.UUID) error {
	removed, err := s.sets.DeleteAllByUser(ctx, userID)
	if err != nil {
		return err
	}
	s.logger.Info("collection cleared", "user_id", userID, "sets_removed", removed)
	return nil
}
