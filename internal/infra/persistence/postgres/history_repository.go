package postgres

import (
	"context"
	"time"

	"geocue/internal/domain/entity"
	domainerrors "geocue/internal/domain/errors"
	"geocue/internal/domain/repository"
	"geocue/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// historyRepository implements the repository.HistoryRepository interface.
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository is the constructor for historyRepository.
func NewHistoryRepository(db *gorm.DB) repository.HistoryRepository {
	return &historyRepository{
		db: db,
	}
}

// InsertRecord appends a dispatched-notification record.
func (repo *historyRepository) InsertRecord(ctx context.Context, record *entity.NotificationRecord) error {
	recordM := fromHistoryDomain(record)

	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrHistoryQueryFailed.WrapMessage("missing required history information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to insert history record")
	}

	return nil
}

// FindRecordsSince retrieves all records dispatched at or after the cutoff,
// ordered newest first.
func (repo *historyRepository) FindRecordsSince(ctx context.Context, cutoff time.Time) ([]*entity.NotificationRecord, error) {
	var recordModels []*model.NotificationHistoryModel

	if err := repo.db.WithContext(ctx).
		Where("dispatched_at >= ?", cutoff).
		Order("dispatched_at DESC").
		Find(&recordModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find history records")
	}

	return toHistoryDomainSlice(recordModels), nil
}

// FindRecordsForRegion retrieves all records for one region, ordered newest
// first.
func (repo *historyRepository) FindRecordsForRegion(ctx context.Context, regionID uuid.UUID) ([]*entity.NotificationRecord, error) {
	var recordModels []*model.NotificationHistoryModel

	if err := repo.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		Order("dispatched_at DESC").
		Find(&recordModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find history records for region")
	}

	return toHistoryDomainSlice(recordModels), nil
}

// DeleteRecordsBefore removes every record dispatched before the cutoff.
func (repo *historyRepository) DeleteRecordsBefore(ctx context.Context, cutoff time.Time) error {
	if err := repo.db.WithContext(ctx).
		Where("dispatched_at < ?", cutoff).
		Delete(&model.NotificationHistoryModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete old history records")
	}

	return nil
}

// DeleteAllRecords removes every record unconditionally.
func (repo *historyRepository) DeleteAllRecords(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.NotificationHistoryModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear history")
	}

	return nil
}

// --- Mapper Functions ---

func toHistoryDomainSlice(models []*model.NotificationHistoryModel) []*entity.NotificationRecord {
	records := make([]*entity.NotificationRecord, 0, len(models))
	for _, recordM := range models {
		records = append(records, toHistoryDomain(recordM))
	}

	return records
}

// toHistoryDomain converts a GORM NotificationHistoryModel to a domain NotificationRecord entity.
func toHistoryDomain(data *model.NotificationHistoryModel) *entity.NotificationRecord {
	if data == nil {
		return nil
	}

	return &entity.NotificationRecord{
		ID:           data.ID,
		RegionID:     data.RegionID,
		RegionName:   data.RegionName,
		Title:        data.Title,
		Message:      data.Message,
		Type:         entity.TransitionType(data.Type),
		DispatchedAt: data.DispatchedAt,
	}
}

// fromHistoryDomain converts a domain NotificationRecord entity to a GORM NotificationHistoryModel.
func fromHistoryDomain(data *entity.NotificationRecord) *model.NotificationHistoryModel {
	if data == nil {
		return nil
	}

	return &model.NotificationHistoryModel{
		ID:           data.ID,
		RegionID:     data.RegionID,
		RegionName:   data.RegionName,
		Title:        data.Title,
		Message:      data.Message,
		Type:         string(data.Type),
		DispatchedAt: data.DispatchedAt,
	}
}
