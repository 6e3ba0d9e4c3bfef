package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// CapabilityChecker is a mock implementation of service.CapabilityChecker.
type CapabilityChecker struct {
	mock.Mock
}

func (m *CapabilityChecker) HasForegroundLocationAccess(ctx context.Context) bool {
	args := m.Called(ctx)

	return args.Bool(0)
}

func (m *CapabilityChecker) HasBackgroundLocationAccess(ctx context.Context) bool {
	args := m.Called(ctx)

	return args.Bool(0)
}

func (m *CapabilityChecker) HasNotificationAccess(ctx context.Context) bool {
	args := m.Called(ctx)

	return args.Bool(0)
}
