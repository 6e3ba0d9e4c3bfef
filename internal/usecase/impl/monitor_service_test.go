package impl

import (
	"context"
	"testing"

	"geocue/internal/domain/constants"
	"geocue/internal/domain/entity"
	mockRepo "geocue/internal/mocks/repository"
	mockService "geocue/internal/mocks/service"
	"geocue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type monitorFixture struct {
	regionRepo *mockRepo.RegionRepository
	backend    *mockService.MonitorBackend
	caps       *mockService.CapabilityChecker
	service    usecase.MonitorUsecase
}

func newMonitorFixture() *monitorFixture {
	f := &monitorFixture{
		regionRepo: new(mockRepo.RegionRepository),
		backend:    new(mockService.MonitorBackend),
		caps:       new(mockService.CapabilityChecker),
	}
	f.service = NewMonitorService(f.regionRepo, f.backend, f.caps, newDiscardLogger())

	return f
}

func TestMonitorService_Reconcile_RegistersOnlyEnabledRegions(t *testing.T) {
	f := newMonitorFixture()
	ctx := context.Background()

	enabled := testRegion(uuid.New())
	disabled := testRegion(uuid.New())
	disabled.Enabled = false

	f.regionRepo.On("ListRegions", ctx).Return([]*entity.Region{enabled, disabled}, nil)
	f.caps.On("HasBackgroundLocationAccess", ctx).Return(true)
	f.backend.On("UnregisterAll", ctx).Return(nil).Once()
	f.backend.On("RegisterRegion", ctx, enabled, constants.DwellDelay).Return(nil).Once()

	err := f.service.Reconcile(ctx)

	require.NoError(t, err)
	f.backend.AssertExpectations(t)
	f.backend.AssertNotCalled(t, "RegisterRegion", ctx, disabled, mock.Anything)
}

func TestMonitorService_Reconcile_NoCapability_LeavesWatchSetEmpty(t *testing.T) {
	f := newMonitorFixture()
	ctx := context.Background()

	f.regionRepo.On("ListRegions", ctx).Return([]*entity.Region{testRegion(uuid.New())}, nil)
	f.caps.On("HasBackgroundLocationAccess", ctx).Return(false)
	f.backend.On("UnregisterAll", ctx).Return(nil).Once()

	err := f.service.Reconcile(ctx)

	require.NoError(t, err)
	f.backend.AssertNotCalled(t, "RegisterRegion", mock.Anything, mock.Anything, mock.Anything)
}

func TestMonitorService_Reconcile_ContinuesAfterRegisterFailure(t *testing.T) {
	f := newMonitorFixture()
	ctx := context.Background()

	first := testRegion(uuid.New())
	second := testRegion(uuid.New())

	f.regionRepo.On("ListRegions", ctx).Return([]*entity.Region{first, second}, nil)
	f.caps.On("HasBackgroundLocationAccess", ctx).Return(true)
	f.backend.On("UnregisterAll", ctx).Return(nil)
	f.backend.On("RegisterRegion", ctx, first, constants.DwellDelay).Return(errors.New("backend down")).Once()
	f.backend.On("RegisterRegion", ctx, second, constants.DwellDelay).Return(nil).Once()

	err := f.service.Reconcile(ctx)

	require.NoError(t, err)
	f.backend.AssertExpectations(t)
}

func TestMonitorService_Reconcile_ClearFailure_ReturnsError(t *testing.T) {
	f := newMonitorFixture()
	ctx := context.Background()

	f.regionRepo.On("ListRegions", ctx).Return([]*entity.Region{}, nil)
	f.backend.On("UnregisterAll", ctx).Return(errors.New("backend down"))

	err := f.service.Reconcile(ctx)

	require.Error(t, err)
}

func TestMonitorService_Register_SkipsDisabledRegion(t *testing.T) {
	f := newMonitorFixture()
	ctx := context.Background()
	region := testRegion(uuid.New())
	region.Enabled = false

	err := f.service.Register(ctx, region)

	require.NoError(t, err)
	f.backend.AssertNotCalled(t, "RegisterRegion", mock.Anything, mock.Anything, mock.Anything)
}

func TestMonitorService_Register_PassesDwellDelay(t *testing.T) {
	f := newMonitorFixture()
	ctx := context.Background()
	region := testRegion(uuid.New())

	f.caps.On("HasBackgroundLocationAccess", ctx).Return(true)
	f.backend.On("RegisterRegion", ctx, region, constants.DwellDelay).Return(nil).Once()

	err := f.service.Register(ctx, region)

	require.NoError(t, err)
	f.backend.AssertExpectations(t)
}
