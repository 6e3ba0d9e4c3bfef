package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "geocue/internal/delivery/context"
	"geocue/internal/domain/constants"
	"geocue/internal/domain/entity"
	"geocue/internal/domain/repository"
	"geocue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// historyService implements the HistoryUsecase interface. Besides the durable
// ledger it keeps an in-process broadcaster so live consumers observe inserts
// without re-querying.
type historyService struct {
	historyRepo repository.HistoryRepository
	logger      *slog.Logger

	mu       sync.Mutex
	watchers map[uint64]chan entity.NotificationRecord
	nextID   uint64
}

// watchBuffer bounds how far a live consumer may lag before records are
// dropped for it. Dropped broadcasts only affect the live view, never the
// ledger.
const watchBuffer = 16

// NewHistoryService is the constructor for historyService.
func NewHistoryService(
	historyRepo repository.HistoryRepository,
	logger *slog.Logger,
) usecase.HistoryUsecase {
	return &historyService{
		historyRepo: historyRepo,
		logger:      logger,
		watchers:    make(map[uint64]chan entity.NotificationRecord),
	}
}

func (srv *historyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func retentionCutoff() time.Time {
	return time.Now().AddDate(0, 0, -constants.RetentionDays)
}

// Append stores one record, opportunistically purges records outside the
// retention window, and fans the record out to live watchers. The ledger
// self-trims this way without a scheduled task.
func (srv *historyService) Append(ctx context.Context, record *entity.NotificationRecord) error {
	if err := srv.historyRepo.InsertRecord(ctx, record); err != nil {
		return errors.Wrap(err, "failed to insert history record")
	}

	if err := srv.historyRepo.DeleteRecordsBefore(ctx, retentionCutoff()); err != nil {
		// The next append retries the purge; stale rows are filtered out of
		// reads by the cutoff anyway.
		srv.log(ctx).Warn("Failed to purge expired history records", slog.Any("error", err))
	}

	srv.broadcast(*record)

	return nil
}

// Recent returns records inside the retention window, newest first.
func (srv *historyService) Recent(ctx context.Context) ([]*entity.NotificationRecord, error) {
	records, err := srv.historyRepo.FindRecordsSince(ctx, retentionCutoff())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query history")
	}

	return records, nil
}

// RecentForRegion returns in-window records for one region, newest first.
func (srv *historyService) RecentForRegion(ctx context.Context, regionID uuid.UUID) ([]*entity.NotificationRecord, error) {
	records, err := srv.historyRepo.FindRecordsForRegion(ctx, regionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query history for region")
	}

	return records, nil
}

// Clear removes every record regardless of age.
func (srv *historyService) Clear(ctx context.Context) error {
	if err := srv.historyRepo.DeleteAllRecords(ctx); err != nil {
		return errors.Wrap(err, "failed to clear history")
	}

	return nil
}

// Watch registers a live subscriber. The subscription ends when the returned
// cancel func runs or the context is done, whichever comes first; the channel
// is closed exactly once.
func (srv *historyService) Watch(ctx context.Context) (<-chan entity.NotificationRecord, func()) {
	ch := make(chan entity.NotificationRecord, watchBuffer)

	srv.mu.Lock()
	id := srv.nextID
	srv.nextID++
	srv.watchers[id] = ch
	srv.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			srv.mu.Lock()
			delete(srv.watchers, id)
			srv.mu.Unlock()
			close(ch)
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel
}

// broadcast sends the record to every watcher without blocking; a full
// watcher buffer drops the record for that watcher only.
func (srv *historyService) broadcast(record entity.NotificationRecord) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	for _, ch := range srv.watchers {
		select {
		case ch <- record:
		default:
		}
	}
}
