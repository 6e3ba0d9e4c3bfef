// Package repository provides hand-maintained testify mocks for the domain
// repository interfaces.
package repository

import (
	"context"

	"geocue/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// RegionRepository is a mock implementation of repository.RegionRepository.
type RegionRepository struct {
	mock.Mock
}

func (m *RegionRepository) CreateRegion(ctx context.Context, region *entity.Region) error {
	args := m.Called(ctx, region)

	return args.Error(0)
}

func (m *RegionRepository) UpdateRegion(ctx context.Context, region *entity.Region) error {
	args := m.Called(ctx, region)

	return args.Error(0)
}

func (m *RegionRepository) DeleteRegion(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *RegionRepository) FindRegionByID(ctx context.Context, id uuid.UUID) (*entity.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Region), args.Error(1)
}

func (m *RegionRepository) ListRegions(ctx context.Context) ([]*entity.Region, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Region), args.Error(1)
}
