package impl

import (
	"context"
	"testing"
	"time"

	"geocue/internal/domain/entity"
	"geocue/internal/domain/repository"
	mockRepo "geocue/internal/mocks/repository"
	mockUsecase "geocue/internal/mocks/usecase"
	"geocue/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type transitionFixture struct {
	stateRepo  *mockRepo.TransitionStateRepository
	regionRepo *mockRepo.RegionRepository
	dispatcher *mockUsecase.DispatchUsecase
	service    *transitionService
}

func newTransitionFixture() *transitionFixture {
	stateRepo := new(mockRepo.TransitionStateRepository)
	regionRepo := new(mockRepo.RegionRepository)
	dispatcher := new(mockUsecase.DispatchUsecase)

	service := NewTransitionService(stateRepo, regionRepo, dispatcher, util.NewKeyMutex(), newDiscardLogger())

	return &transitionFixture{
		stateRepo:  stateRepo,
		regionRepo: regionRepo,
		dispatcher: dispatcher,
		service:    service.(*transitionService),
	}
}

func testRegion(id uuid.UUID) *entity.Region {
	return &entity.Region{
		ID:            id,
		Name:          "Office",
		RadiusMeters:  150,
		NotifyOnEntry: true,
		NotifyOnExit:  true,
		Enabled:       true,
	}
}

func rawEvent(id uuid.UUID, eventType entity.RawEventType) entity.RawEvent {
	return entity.RawEvent{RegionID: id, Type: eventType, OccurredAt: time.Now()}
}

func TestTransitionService_DriveBy_EmitsNothing(t *testing.T) {
	f := newTransitionFixture()
	ctx := context.Background()
	regionID := uuid.New()

	f.regionRepo.On("FindRegionByID", ctx, regionID).Return(testRegion(regionID), nil)

	// ENTER creates the occupancy record.
	f.stateRepo.On("FindState", ctx, regionID).Return(nil, repository.ErrTransitionStateNotFound).Once()
	f.stateRepo.On("UpsertState", ctx, mock.MatchedBy(func(s *entity.RegionTransitionState) bool {
		return s.RegionID == regionID && !s.DwellConfirmed
	})).Return(nil).Once()
	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawEnter))

	// EXIT with no intervening DWELL deletes it silently.
	f.stateRepo.On("FindState", ctx, regionID).
		Return(&entity.RegionTransitionState{RegionID: regionID, DwellConfirmed: false}, nil).Once()
	f.stateRepo.On("DeleteState", ctx, regionID).Return(nil).Once()
	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawExit))

	f.stateRepo.AssertExpectations(t)
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionService_EnterDwellExit_EmitsEntryThenExit(t *testing.T) {
	f := newTransitionFixture()
	ctx := context.Background()
	regionID := uuid.New()
	region := testRegion(regionID)

	f.regionRepo.On("FindRegionByID", ctx, regionID).Return(region, nil)

	f.stateRepo.On("FindState", ctx, regionID).Return(nil, repository.ErrTransitionStateNotFound).Once()
	f.stateRepo.On("UpsertState", ctx, mock.Anything).Return(nil).Once()
	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawEnter))

	f.stateRepo.On("ConfirmDwell", ctx, regionID).Return(true, nil).Once()
	f.dispatcher.On("Dispatch", ctx, region, entity.TransitionEntry).Return(nil).Once()
	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawDwell))

	f.stateRepo.On("FindState", ctx, regionID).
		Return(&entity.RegionTransitionState{RegionID: regionID, DwellConfirmed: true}, nil).Once()
	f.stateRepo.On("DeleteState", ctx, regionID).Return(nil).Once()
	f.dispatcher.On("Dispatch", ctx, region, entity.TransitionExit).Return(nil).Once()
	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawExit))

	f.stateRepo.AssertExpectations(t)
	f.dispatcher.AssertExpectations(t)
	f.dispatcher.AssertNumberOfCalls(t, "Dispatch", 2)
}

func TestTransitionService_DwellRedelivery_EmitsAtMostOneEntry(t *testing.T) {
	f := newTransitionFixture()
	ctx := context.Background()
	regionID := uuid.New()
	region := testRegion(regionID)

	f.regionRepo.On("FindRegionByID", ctx, regionID).Return(region, nil)

	// First DWELL flips the record; the redelivery finds it already confirmed.
	f.stateRepo.On("ConfirmDwell", ctx, regionID).Return(true, nil).Once()
	f.stateRepo.On("ConfirmDwell", ctx, regionID).Return(false, nil).Once()
	f.dispatcher.On("Dispatch", ctx, region, entity.TransitionEntry).Return(nil).Once()

	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawDwell))
	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawDwell))

	f.dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)
}

func TestTransitionService_DwellWhileOutside_IsNoOp(t *testing.T) {
	f := newTransitionFixture()
	ctx := context.Background()
	regionID := uuid.New()

	f.regionRepo.On("FindRegionByID", ctx, regionID).Return(testRegion(regionID), nil)
	f.stateRepo.On("ConfirmDwell", ctx, regionID).Return(false, nil).Once()

	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawDwell))

	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionService_ExitWhileOutside_IsNoOp(t *testing.T) {
	f := newTransitionFixture()
	ctx := context.Background()
	regionID := uuid.New()

	f.regionRepo.On("FindRegionByID", ctx, regionID).Return(testRegion(regionID), nil)
	f.stateRepo.On("FindState", ctx, regionID).Return(nil, repository.ErrTransitionStateNotFound).Once()

	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawExit))

	f.stateRepo.AssertNotCalled(t, "DeleteState", mock.Anything, mock.Anything)
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionService_UnknownRegion_DropsEvent(t *testing.T) {
	f := newTransitionFixture()
	ctx := context.Background()
	regionID := uuid.New()

	f.regionRepo.On("FindRegionByID", ctx, regionID).Return(nil, repository.ErrRegionNotFound)

	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawEnter))

	f.stateRepo.AssertNotCalled(t, "FindState", mock.Anything, mock.Anything)
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionService_DisabledRegion_DropsEvent(t *testing.T) {
	f := newTransitionFixture()
	ctx := context.Background()
	regionID := uuid.New()
	region := testRegion(regionID)
	region.Enabled = false

	f.regionRepo.On("FindRegionByID", ctx, regionID).Return(region, nil)

	// Disabled while the occupancy record says INSIDE_CONFIRMED: the EXIT is
	// still dropped without touching state or dispatching.
	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawExit))

	f.stateRepo.AssertNotCalled(t, "FindState", mock.Anything, mock.Anything)
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionService_InvalidEventType_DropsEvent(t *testing.T) {
	f := newTransitionFixture()
	ctx := context.Background()

	f.service.HandleEvent(ctx, entity.RawEvent{RegionID: uuid.New(), Type: "LOITER"})

	f.regionRepo.AssertNotCalled(t, "FindRegionByID", mock.Anything, mock.Anything)
}

func TestTransitionService_StorageFailure_SwallowsError(t *testing.T) {
	f := newTransitionFixture()
	ctx := context.Background()
	regionID := uuid.New()

	f.regionRepo.On("FindRegionByID", ctx, regionID).Return(testRegion(regionID), nil)
	f.stateRepo.On("ConfirmDwell", ctx, regionID).Return(false, repository.ErrTransitionStateNotFound).Once()

	// Must not panic or propagate.
	f.service.HandleEvent(ctx, rawEvent(regionID, entity.RawDwell))

	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}
