package repository

import (
	"context"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TransitionStateRepository is a mock implementation of
// repository.TransitionStateRepository.
type TransitionStateRepository struct {
	mock.Mock
}

func (m *TransitionStateRepository) FindState(ctx context.Context, regionID uuid.UUID) (*entity.RegionTransitionState, error) {
	args := m.Called(ctx, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.RegionTransitionState), args.Error(1)
}

func (m *TransitionStateRepository) UpsertState(ctx context.Context, state *entity.RegionTransitionState) error {
	args := m.Called(ctx, state)

	return args.Error(0)
}

func (m *TransitionStateRepository) ConfirmDwell(ctx context.Context, regionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, regionID)

	return args.Bool(0), args.Error(1)
}

func (m *TransitionStateRepository) DeleteState(ctx context.Context, regionID uuid.UUID) error {
	args := m.Called(ctx, regionID)

	return args.Error(0)
}
