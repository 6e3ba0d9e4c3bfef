package repository

import (
	"context"
	"time"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// HistoryRepository is a mock implementation of repository.HistoryRepository.
type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) InsertRecord(ctx context.Context, record *entity.NotificationRecord) error {
	args := m.Called(ctx, record)

	return args.Error(0)
}

func (m *HistoryRepository) FindRecordsSince(ctx context.Context, cutoff time.Time) ([]*entity.NotificationRecord, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.NotificationRecord), args.Error(1)
}

func (m *HistoryRepository) FindRecordsForRegion(ctx context.Context, regionID uuid.UUID) ([]*entity.NotificationRecord, error) {
	args := m.Called(ctx, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.NotificationRecord), args.Error(1)
}

func (m *HistoryRepository) DeleteRecordsBefore(ctx context.Context, cutoff time.Time) error {
	args := m.Called(ctx, cutoff)

	return args.Error(0)
}

func (m *HistoryRepository) DeleteAllRecords(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
