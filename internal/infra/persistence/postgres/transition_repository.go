package postgres

import (
	"context"

	"geocue/internal/domain/entity"
	"geocue/internal/domain/repository"
	"geocue/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// transitionStateRepository implements the
// repository.TransitionStateRepository interface. Updates are conditioned in
// SQL so that a redelivered event racing a concurrent one can never leave a
// half-applied row.
type transitionStateRepository struct {
	db *gorm.DB
}

// NewTransitionStateRepository is the constructor for transitionStateRepository.
func NewTransitionStateRepository(db *gorm.DB) repository.TransitionStateRepository {
	return &transitionStateRepository{
		db: db,
	}
}

// FindState retrieves the transition state for a region.
func (repo *transitionStateRepository) FindState(ctx context.Context, regionID uuid.UUID) (*entity.RegionTransitionState, error) {
	var stateM model.RegionTransitionStateModel

	if err := repo.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		First(&stateM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTransitionStateNotFound
		}

		return nil, errors.Wrap(err, "failed to find transition state")
	}

	return toTransitionStateDomain(&stateM), nil
}

// UpsertState creates or overwrites the transition state for a region. On
// conflict the whole row is replaced with the caller-supplied state; the
// caller decides what carries over from the previous occupancy.
func (repo *transitionStateRepository) UpsertState(ctx context.Context, state *entity.RegionTransitionState) error {
	stateM := fromTransitionStateDomain(state)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "region_id"}},
			UpdateAll: true,
		}).
		Create(stateM).Error; err != nil {
		return errors.Wrap(err, "failed to upsert transition state")
	}

	return nil
}

// ConfirmDwell flips DwellConfirmed for the region's current occupancy. The
// WHERE clause makes the flip atomic: zero rows affected means no record
// exists or a concurrent delivery already confirmed it.
func (repo *transitionStateRepository) ConfirmDwell(ctx context.Context, regionID uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.RegionTransitionStateModel{}).
		Where("region_id = ? AND dwell_confirmed = ?", regionID, false).
		Update("dwell_confirmed", true)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to confirm dwell")
	}

	return result.RowsAffected > 0, nil
}

// DeleteState removes the transition state for a region.
func (repo *transitionStateRepository) DeleteState(ctx context.Context, regionID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		Delete(&model.RegionTransitionStateModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete transition state")
	}

	return nil
}

// --- Mapper Functions ---

// toTransitionStateDomain converts a GORM RegionTransitionStateModel to a domain entity.
func toTransitionStateDomain(data *model.RegionTransitionStateModel) *entity.RegionTransitionState {
	if data == nil {
		return nil
	}

	return &entity.RegionTransitionState{
		RegionID:       data.RegionID,
		DwellConfirmed: data.DwellConfirmed,
		LastEnterAt:    data.LastEnterAt,
		LastExitAt:     data.LastExitAt,
	}
}

// fromTransitionStateDomain converts a domain entity to a GORM RegionTransitionStateModel.
func fromTransitionStateDomain(data *entity.RegionTransitionState) *model.RegionTransitionStateModel {
	if data == nil {
		return nil
	}

	return &model.RegionTransitionStateModel{
		RegionID:       data.RegionID,
		DwellConfirmed: data.DwellConfirmed,
		LastEnterAt:    data.LastEnterAt,
		LastExitAt:     data.LastExitAt,
	}
}
