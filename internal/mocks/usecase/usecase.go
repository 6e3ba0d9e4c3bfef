// Package usecase provides hand-maintained testify mocks for the use-case
// interfaces, used when testing one service in isolation from another.
package usecase

import (
	"context"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MonitorUsecase is a mock implementation of usecase.MonitorUsecase.
type MonitorUsecase struct {
	mock.Mock
}

func (m *MonitorUsecase) Reconcile(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MonitorUsecase) Register(ctx context.Context, region *entity.Region) error {
	args := m.Called(ctx, region)

	return args.Error(0)
}

func (m *MonitorUsecase) Unregister(ctx context.Context, regionID uuid.UUID) error {
	args := m.Called(ctx, regionID)

	return args.Error(0)
}

// DispatchUsecase is a mock implementation of usecase.DispatchUsecase.
type DispatchUsecase struct {
	mock.Mock
}

func (m *DispatchUsecase) Dispatch(ctx context.Context, region *entity.Region, transition entity.TransitionType) error {
	args := m.Called(ctx, region, transition)

	return args.Error(0)
}

// TransitionUsecase is a mock implementation of usecase.TransitionUsecase.
type TransitionUsecase struct {
	mock.Mock
}

func (m *TransitionUsecase) HandleEvent(ctx context.Context, event entity.RawEvent) {
	m.Called(ctx, event)
}

// HistoryUsecase is a mock implementation of usecase.HistoryUsecase.
type HistoryUsecase struct {
	mock.Mock
}

func (m *HistoryUsecase) Append(ctx context.Context, record *entity.NotificationRecord) error {
	args := m.Called(ctx, record)

	return args.Error(0)
}

func (m *HistoryUsecase) Recent(ctx context.Context) ([]*entity.NotificationRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.NotificationRecord), args.Error(1)
}

func (m *HistoryUsecase) RecentForRegion(ctx context.Context, regionID uuid.UUID) ([]*entity.NotificationRecord, error) {
	args := m.Called(ctx, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.NotificationRecord), args.Error(1)
}

func (m *HistoryUsecase) Clear(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *HistoryUsecase) Watch(ctx context.Context) (<-chan entity.NotificationRecord, func()) {
	args := m.Called(ctx)

	return args.Get(0).(<-chan entity.NotificationRecord), args.Get(1).(func())
}
