// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"geocue/internal/domain/entity"
	domainerrors "geocue/internal/domain/errors"
	"geocue/internal/domain/repository"
	"geocue/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// regionRepository implements the repository.RegionRepository interface.
type regionRepository struct {
	db *gorm.DB
}

// NewRegionRepository is the constructor for regionRepository.
func NewRegionRepository(db *gorm.DB) repository.RegionRepository {
	return &regionRepository{
		db: db,
	}
}

// CreateRegion persists a new region definition.
func (repo *regionRepository) CreateRegion(ctx context.Context, region *entity.Region) error {
	regionM := fromRegionDomain(region)

	if err := repo.db.WithContext(ctx).Create(regionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRegionCreationFailed.WrapMessage("region id already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrRegionCreationFailed.WrapMessage("missing required region information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create region")
	}

	region.CreatedAt = regionM.CreatedAt
	region.UpdatedAt = regionM.UpdatedAt

	return nil
}

// UpdateRegion overwrites an existing region definition.
func (repo *regionRepository) UpdateRegion(ctx context.Context, region *entity.Region) error {
	regionM := fromRegionDomain(region)

	result := repo.db.WithContext(ctx).
		Model(&model.RegionModel{}).
		Where("id = ?", region.ID).
		Select("*").Omit("id", "created_at").
		Updates(regionM)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update region")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRegionNotFound
	}

	return nil
}

// DeleteRegion removes a region definition by id. Deleting a missing region
// is not an error: deletion racing with itself is harmless.
func (repo *regionRepository) DeleteRegion(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RegionModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete region")
	}

	return nil
}

// FindRegionByID retrieves a region by its unique ID.
func (repo *regionRepository) FindRegionByID(ctx context.Context, id uuid.UUID) (*entity.Region, error) {
	var regionM model.RegionModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&regionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRegionNotFound
		}

		return nil, errors.Wrap(err, "failed to find region by ID")
	}

	return toRegionDomain(&regionM), nil
}

// ListRegions retrieves every region definition, newest first.
func (repo *regionRepository) ListRegions(ctx context.Context) ([]*entity.Region, error) {
	var regionModels []*model.RegionModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&regionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list regions")
	}

	regions := make([]*entity.Region, 0, len(regionModels))
	for _, regionM := range regionModels {
		regions = append(regions, toRegionDomain(regionM))
	}

	return regions, nil
}

// --- Mapper Functions ---

// toRegionDomain converts a GORM RegionModel to a domain Region entity.
func toRegionDomain(data *model.RegionModel) *entity.Region {
	if data == nil {
		return nil
	}

	return &entity.Region{
		ID:            data.ID,
		Name:          data.Name,
		Address:       data.Address,
		Center:        orb.Point{data.Longitude, data.Latitude},
		RadiusMeters:  data.RadiusMeters,
		EntryMessage:  data.EntryMessage,
		ExitMessage:   data.ExitMessage,
		NotifyOnEntry: data.NotifyOnEntry,
		NotifyOnExit:  data.NotifyOnExit,
		Enabled:       data.Enabled,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromRegionDomain converts a domain Region entity to a GORM RegionModel.
func fromRegionDomain(data *entity.Region) *model.RegionModel {
	if data == nil {
		return nil
	}

	return &model.RegionModel{
		ID:            data.ID,
		Name:          data.Name,
		Address:       data.Address,
		Latitude:      data.Center.Lat(),
		Longitude:     data.Center.Lon(),
		RadiusMeters:  data.RadiusMeters,
		EntryMessage:  data.EntryMessage,
		ExitMessage:   data.ExitMessage,
		NotifyOnEntry: data.NotifyOnEntry,
		NotifyOnExit:  data.NotifyOnExit,
		Enabled:       data.Enabled,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
