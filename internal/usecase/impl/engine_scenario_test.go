package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"geocue/internal/domain/constants"
	"geocue/internal/domain/entity"
	"geocue/internal/domain/repository"
	mockRepo "geocue/internal/mocks/repository"
	mockService "geocue/internal/mocks/service"
	"geocue/internal/infra/throttle"
	"geocue/internal/usecase"
	"geocue/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryStateRepo is an in-memory TransitionStateRepository so scenario tests
// exercise real state sequencing instead of scripted mock returns.
type memoryStateRepo struct {
	mu     sync.Mutex
	states map[uuid.UUID]*entity.RegionTransitionState
}

func newMemoryStateRepo() *memoryStateRepo {
	return &memoryStateRepo{states: make(map[uuid.UUID]*entity.RegionTransitionState)}
}

func (r *memoryStateRepo) FindState(_ context.Context, regionID uuid.UUID) (*entity.RegionTransitionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[regionID]
	if !ok {
		return nil, repository.ErrTransitionStateNotFound
	}
	copied := *state

	return &copied, nil
}

func (r *memoryStateRepo) UpsertState(_ context.Context, state *entity.RegionTransitionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *state
	r.states[state.RegionID] = &copied

	return nil
}

func (r *memoryStateRepo) ConfirmDwell(_ context.Context, regionID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[regionID]
	if !ok || state.DwellConfirmed {
		return false, nil
	}
	state.DwellConfirmed = true

	return true, nil
}

func (r *memoryStateRepo) DeleteState(_ context.Context, regionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, regionID)

	return nil
}

// engineFixture wires the transition, dispatch and history services together
// with only the outer edges (region registry, presenter, ledger storage)
// substituted.
type engineFixture struct {
	regionRepo  *mockRepo.RegionRepository
	historyRepo *mockRepo.HistoryRepository
	presenter   *mockService.Presenter
	stateRepo   *memoryStateRepo
	now         time.Time

	engine usecase.TransitionUsecase

	mu       sync.Mutex
	appended []entity.NotificationRecord
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		regionRepo:  new(mockRepo.RegionRepository),
		historyRepo: new(mockRepo.HistoryRepository),
		presenter:   new(mockService.Presenter),
		stateRepo:   newMemoryStateRepo(),
		now:         time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}

	caps := new(mockService.CapabilityChecker)
	caps.On("HasNotificationAccess", mock.Anything).Return(true)

	f.historyRepo.On("InsertRecord", mock.Anything, mock.AnythingOfType("*entity.NotificationRecord")).
		Run(func(args mock.Arguments) {
			record := args.Get(1).(*entity.NotificationRecord)
			f.mu.Lock()
			f.appended = append(f.appended, *record)
			f.mu.Unlock()
		}).Return(nil)
	f.historyRepo.On("DeleteRecordsBefore", mock.Anything, mock.Anything).Return(nil)

	logger := newDiscardLogger()
	throt := throttle.New(constants.ThrottleWindow, func() time.Time { return f.now })
	history := NewHistoryService(f.historyRepo, logger)
	dispatcher := NewDispatchService(caps, throt, f.presenter, history, logger)
	f.engine = NewTransitionService(f.stateRepo, f.regionRepo, dispatcher, util.NewKeyMutex(), logger)

	return f
}

func (f *engineFixture) records() []entity.NotificationRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]entity.NotificationRecord(nil), f.appended...)
}

func TestEngine_EnterDwellExit_ProducesEntryThenExit(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()
	region := testRegion(uuid.New())
	t0 := f.now

	f.regionRepo.On("FindRegionByID", mock.Anything, region.ID).Return(region, nil)
	f.presenter.On("Present", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	f.engine.HandleEvent(ctx, entity.RawEvent{RegionID: region.ID, Type: entity.RawEnter, OccurredAt: t0})
	f.now = t0.Add(30 * time.Second)
	f.engine.HandleEvent(ctx, entity.RawEvent{RegionID: region.ID, Type: entity.RawDwell, OccurredAt: f.now})
	f.now = t0.Add(5 * time.Minute)
	f.engine.HandleEvent(ctx, entity.RawEvent{RegionID: region.ID, Type: entity.RawExit, OccurredAt: f.now})

	records := f.records()
	require.Len(t, records, 2)
	assert.Equal(t, entity.TransitionEntry, records[0].Type)
	assert.Equal(t, entity.TransitionExit, records[1].Type)
	f.presenter.AssertNumberOfCalls(t, "Present", 2)

	// Back to OUTSIDE: no occupancy record remains.
	_, err := f.stateRepo.FindState(ctx, region.ID)
	assert.ErrorIs(t, err, repository.ErrTransitionStateNotFound)
}

func TestEngine_DriveBy_ProducesNothing(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()
	region := testRegion(uuid.New())
	t0 := f.now

	f.regionRepo.On("FindRegionByID", mock.Anything, region.ID).Return(region, nil)

	f.engine.HandleEvent(ctx, entity.RawEvent{RegionID: region.ID, Type: entity.RawEnter, OccurredAt: t0})
	f.now = t0.Add(5 * time.Second)
	f.engine.HandleEvent(ctx, entity.RawEvent{RegionID: region.ID, Type: entity.RawExit, OccurredAt: f.now})

	assert.Empty(t, f.records())
	f.presenter.AssertNotCalled(t, "Present", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, err := f.stateRepo.FindState(ctx, region.ID)
	assert.ErrorIs(t, err, repository.ErrTransitionStateNotFound)
}

func TestEngine_RedeliveredDwell_ThrottledToOneNotification(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()
	region := testRegion(uuid.New())

	f.regionRepo.On("FindRegionByID", mock.Anything, region.ID).Return(region, nil)
	f.presenter.On("Present", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	f.engine.HandleEvent(ctx, entity.RawEvent{RegionID: region.ID, Type: entity.RawEnter, OccurredAt: f.now})
	f.engine.HandleEvent(ctx, entity.RawEvent{RegionID: region.ID, Type: entity.RawDwell, OccurredAt: f.now})
	f.engine.HandleEvent(ctx, entity.RawEvent{RegionID: region.ID, Type: entity.RawDwell, OccurredAt: f.now})

	require.Len(t, f.records(), 1)
	f.presenter.AssertNumberOfCalls(t, "Present", 1)
}
