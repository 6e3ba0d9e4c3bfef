package impl

import (
	"context"
	"testing"
	"time"

	"geocue/internal/domain/entity"
	domainerrors "geocue/internal/domain/errors"
	"geocue/internal/domain/repository"
	mockRepo "geocue/internal/mocks/repository"
	mockUsecase "geocue/internal/mocks/usecase"
	"geocue/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type regionFixture struct {
	regionRepo *mockRepo.RegionRepository
	monitor    *mockUsecase.MonitorUsecase
	service    usecase.RegionUsecase
}

func newRegionFixture() *regionFixture {
	f := &regionFixture{
		regionRepo: new(mockRepo.RegionRepository),
		monitor:    new(mockUsecase.MonitorUsecase),
	}
	f.service = NewRegionService(f.regionRepo, f.monitor, newDiscardLogger())

	return f
}

func regionInput() *usecase.RegionInput {
	return &usecase.RegionInput{
		Name:          "Office",
		Address:       "No. 7, Xinyi Rd",
		Latitude:      25.0330,
		Longitude:     121.5654,
		RadiusMeters:  150,
		NotifyOnEntry: true,
		NotifyOnExit:  true,
		Enabled:       true,
	}
}

func TestRegionService_AddRegion_Success(t *testing.T) {
	f := newRegionFixture()
	ctx := context.Background()

	f.regionRepo.On("CreateRegion", ctx, mock.AnythingOfType("*entity.Region")).Return(nil).Once()
	f.monitor.On("Register", ctx, mock.AnythingOfType("*entity.Region")).Return(nil).Once()

	region, err := f.service.AddRegion(ctx, regionInput())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, region.ID)
	assert.Equal(t, "Office", region.Name)
	assert.InDelta(t, 25.0330, region.Latitude(), 1e-9)
	assert.InDelta(t, 121.5654, region.Longitude(), 1e-9)
	assert.False(t, region.CreatedAt.IsZero())
	f.regionRepo.AssertExpectations(t)
	f.monitor.AssertExpectations(t)
}

func TestRegionService_AddRegion_InvalidRadius(t *testing.T) {
	f := newRegionFixture()
	input := regionInput()
	input.RadiusMeters = 0

	_, err := f.service.AddRegion(context.Background(), input)

	require.ErrorIs(t, err, domainerrors.ErrInvalidRadius)
	f.regionRepo.AssertNotCalled(t, "CreateRegion", mock.Anything, mock.Anything)
}

func TestRegionService_AddRegion_MonitorFailureDoesNotLoseRegion(t *testing.T) {
	f := newRegionFixture()
	ctx := context.Background()

	f.regionRepo.On("CreateRegion", ctx, mock.Anything).Return(nil)
	f.monitor.On("Register", ctx, mock.Anything).Return(errors.New("backend down"))

	region, err := f.service.AddRegion(ctx, regionInput())

	require.NoError(t, err)
	assert.NotNil(t, region)
}

func TestRegionService_UpdateRegion_MirrorsUnregisterThenRegister(t *testing.T) {
	f := newRegionFixture()
	ctx := context.Background()
	id := uuid.New()
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	f.regionRepo.On("FindRegionByID", ctx, id).
		Return(&entity.Region{ID: id, Name: "Old", CreatedAt: createdAt}, nil)
	f.regionRepo.On("UpdateRegion", ctx, mock.MatchedBy(func(r *entity.Region) bool {
		return r.ID == id && r.Name == "Office" && r.CreatedAt.Equal(createdAt)
	})).Return(nil).Once()
	f.monitor.On("Unregister", ctx, id).Return(nil).Once()
	f.monitor.On("Register", ctx, mock.Anything).Return(nil).Once()

	region, err := f.service.UpdateRegion(ctx, id, regionInput())

	require.NoError(t, err)
	assert.Equal(t, createdAt, region.CreatedAt)
	f.regionRepo.AssertExpectations(t)
	f.monitor.AssertExpectations(t)
}

func TestRegionService_UpdateRegion_NotFound(t *testing.T) {
	f := newRegionFixture()
	ctx := context.Background()
	id := uuid.New()

	f.regionRepo.On("FindRegionByID", ctx, id).Return(nil, repository.ErrRegionNotFound)

	_, err := f.service.UpdateRegion(ctx, id, regionInput())

	require.ErrorIs(t, err, domainerrors.ErrRegionNotFound)
}

func TestRegionService_RemoveRegion_UnregistersFromBackend(t *testing.T) {
	f := newRegionFixture()
	ctx := context.Background()
	id := uuid.New()

	f.regionRepo.On("DeleteRegion", ctx, id).Return(nil).Once()
	f.monitor.On("Unregister", ctx, id).Return(nil).Once()

	err := f.service.RemoveRegion(ctx, id)

	require.NoError(t, err)
	f.monitor.AssertExpectations(t)
}

func TestRegionService_RemoveRegion_NotFound(t *testing.T) {
	f := newRegionFixture()
	ctx := context.Background()
	id := uuid.New()

	f.regionRepo.On("DeleteRegion", ctx, id).Return(repository.ErrRegionNotFound)

	err := f.service.RemoveRegion(ctx, id)

	require.ErrorIs(t, err, domainerrors.ErrRegionNotFound)
	f.monitor.AssertNotCalled(t, "Unregister", mock.Anything, mock.Anything)
}

func TestRegionService_RegionsContaining_FiltersByDistance(t *testing.T) {
	f := newRegionFixture()
	ctx := context.Background()

	near := &entity.Region{
		ID:           uuid.New(),
		Name:         "Office",
		Center:       orb.Point{121.5654, 25.0330},
		RadiusMeters: 150,
	}
	far := &entity.Region{
		ID:           uuid.New(),
		Name:         "Airport",
		Center:       orb.Point{121.2330, 25.0797}, // ~33 km away
		RadiusMeters: 500,
	}

	f.regionRepo.On("ListRegions", ctx).Return([]*entity.Region{near, far}, nil)

	matches, err := f.service.RegionsContaining(ctx, 25.0331, 121.5655)

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, near.ID, matches[0].ID)
}
