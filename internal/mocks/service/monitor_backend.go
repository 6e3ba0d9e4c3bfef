// Package service provides hand-maintained testify mocks for the domain
// service interfaces.
package service

import (
	"context"
	"time"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MonitorBackend is a mock implementation of service.MonitorBackend.
type MonitorBackend struct {
	mock.Mock
}

func (m *MonitorBackend) RegisterRegion(ctx context.Context, region *entity.Region, dwellDelay time.Duration) error {
	args := m.Called(ctx, region, dwellDelay)

	return args.Error(0)
}

func (m *MonitorBackend) UnregisterRegion(ctx context.Context, regionID uuid.UUID) error {
	args := m.Called(ctx, regionID)

	return args.Error(0)
}

func (m *MonitorBackend) UnregisterAll(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
