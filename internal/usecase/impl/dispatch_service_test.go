package impl

import (
	"context"
	"testing"
	"time"

	"geocue/internal/domain/constants"
	"geocue/internal/domain/entity"
	mockService "geocue/internal/mocks/service"
	mockUsecase "geocue/internal/mocks/usecase"
	"geocue/internal/infra/throttle"
	"geocue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dispatchFixture struct {
	caps      *mockService.CapabilityChecker
	presenter *mockService.Presenter
	history   *mockUsecase.HistoryUsecase
	now       time.Time
	service   usecase.DispatchUsecase
}

// newDispatchFixture wires the service against a real throttle driven by the
// fixture's fake clock; advance the clock by mutating f.now.
func newDispatchFixture() *dispatchFixture {
	f := &dispatchFixture{
		caps:      new(mockService.CapabilityChecker),
		presenter: new(mockService.Presenter),
		history:   new(mockUsecase.HistoryUsecase),
		now:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	throt := throttle.New(constants.ThrottleWindow, func() time.Time { return f.now })
	f.service = NewDispatchService(f.caps, throt, f.presenter, f.history, newDiscardLogger())

	return f
}

func TestDispatchService_EntryNotification_PresentedAndRecorded(t *testing.T) {
	f := newDispatchFixture()
	ctx := context.Background()
	region := testRegion(uuid.New())

	f.caps.On("HasNotificationAccess", ctx).Return(true)
	f.presenter.On("Present", ctx, "Arrived at Office", "You arrived at Office",
		"geocue://notifications/"+region.ID.String()).Return(nil).Once()
	f.history.On("Append", ctx, mock.MatchedBy(func(r *entity.NotificationRecord) bool {
		return r.RegionID == region.ID && r.RegionName == "Office" && r.Type == entity.TransitionEntry
	})).Return(nil).Once()

	err := f.service.Dispatch(ctx, region, entity.TransitionEntry)

	require.NoError(t, err)
	f.presenter.AssertExpectations(t)
	f.history.AssertExpectations(t)
}

func TestDispatchService_OverrideMessage_Preferred(t *testing.T) {
	f := newDispatchFixture()
	ctx := context.Background()
	region := testRegion(uuid.New())
	region.ExitMessage = "Don't forget your badge"

	f.caps.On("HasNotificationAccess", ctx).Return(true)
	f.presenter.On("Present", ctx, "Left Office", "Don't forget your badge", mock.Anything).Return(nil).Once()
	f.history.On("Append", ctx, mock.Anything).Return(nil).Once()

	err := f.service.Dispatch(ctx, region, entity.TransitionExit)

	require.NoError(t, err)
	f.presenter.AssertExpectations(t)
}

func TestDispatchService_Throttle_SuppressesDuplicateWithinWindow(t *testing.T) {
	f := newDispatchFixture()
	ctx := context.Background()
	region := testRegion(uuid.New())

	f.caps.On("HasNotificationAccess", ctx).Return(true)
	f.presenter.On("Present", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.history.On("Append", ctx, mock.Anything).Return(nil)

	require.NoError(t, f.service.Dispatch(ctx, region, entity.TransitionEntry))

	f.now = f.now.Add(30 * time.Second)
	require.NoError(t, f.service.Dispatch(ctx, region, entity.TransitionEntry))

	f.presenter.AssertNumberOfCalls(t, "Present", 1)
	f.history.AssertNumberOfCalls(t, "Append", 1)

	// Different direction is a different throttle key.
	require.NoError(t, f.service.Dispatch(ctx, region, entity.TransitionExit))
	f.presenter.AssertNumberOfCalls(t, "Present", 2)

	// Past the window the same key fires again.
	f.now = f.now.Add(constants.ThrottleWindow)
	require.NoError(t, f.service.Dispatch(ctx, region, entity.TransitionEntry))
	f.presenter.AssertNumberOfCalls(t, "Present", 3)
}

func TestDispatchService_NoNotificationAccess_SkipsEverything(t *testing.T) {
	f := newDispatchFixture()
	ctx := context.Background()
	region := testRegion(uuid.New())

	f.caps.On("HasNotificationAccess", ctx).Return(false)

	err := f.service.Dispatch(ctx, region, entity.TransitionEntry)

	require.NoError(t, err)
	f.presenter.AssertNotCalled(t, "Present", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestDispatchService_DirectionOptOut_SkipsDispatch(t *testing.T) {
	f := newDispatchFixture()
	ctx := context.Background()
	region := testRegion(uuid.New())
	region.NotifyOnEntry = false

	f.caps.On("HasNotificationAccess", ctx).Return(true)

	err := f.service.Dispatch(ctx, region, entity.TransitionEntry)

	require.NoError(t, err)
	f.presenter.AssertNotCalled(t, "Present", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchService_PresentFailure_DoesNotReopenThrottle(t *testing.T) {
	f := newDispatchFixture()
	ctx := context.Background()
	region := testRegion(uuid.New())

	f.caps.On("HasNotificationAccess", ctx).Return(true)
	f.presenter.On("Present", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("fcm unavailable")).Once()

	err := f.service.Dispatch(ctx, region, entity.TransitionEntry)
	assert.Error(t, err)
	f.history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)

	// The slot was consumed before presenting; the retry inside the window is
	// throttled rather than re-presented.
	err = f.service.Dispatch(ctx, region, entity.TransitionEntry)
	require.NoError(t, err)
	f.presenter.AssertNumberOfCalls(t, "Present", 1)
}
