package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Presenter is a mock implementation of service.Presenter.
type Presenter struct {
	mock.Mock
}

func (m *Presenter) Present(ctx context.Context, title, message, deepLink string) error {
	args := m.Called(ctx, title, message, deepLink)

	return args.Error(0)
}
