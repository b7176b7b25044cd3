package schedulerepo

import (
	"context"
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/schedule"
	"manufacturing/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type GormScheduleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormScheduleRepository(db *gorm.DB, tracker aggregateTracker) *GormScheduleRepository {
	return &GormScheduleRepository{db: db, tracker: tracker}
}

func (r *GormScheduleRepository) Add(ctx context.Context, entry *schedule.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

func (r *GormScheduleRepository) Update(ctx context.Context, entry *schedule.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	result := r.db.WithContext(ctx).Model(&EntryDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

func (r *GormScheduleRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("schedule entry", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GormCapacityRepository implements ports.CapacityRepository.
type GormCapacityRepository struct {
	db *gorm.DB
}

func NewGormCapacityRepository(db *gorm.DB) *GormCapacityRepository {
	return &GormCapacityRepository{db: db}
}

func (r *GormCapacityRepository) Upsert(ctx context.Context, capacity schedule.StationCapacity) error {
	dto := CapacityDTO{Station: capacity.Station(), MaxUnitsPerDay: capacity.MaxUnitsPerDay()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "station"}},
		DoUpdates: clause.AssignmentColumns([]string{"max_units_per_day", "updated_at"}),
	}).Create(&dto).Error
}

func (r *GormCapacityRepository) Get(ctx context.Context, station string) (schedule.StationCapacity, bool, error) {
	var dto CapacityDTO
	if err := r.db.WithContext(ctx).First(&dto, "station = ?", station).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return schedule.StationCapacity{}, false, nil
		}
		return schedule.StationCapacity{}, false, err
	}

	capacity, err := schedule.NewStationCapacity(dto.Station, dto.MaxUnitsPerDay)
	if err != nil {
		return schedule.StationCapacity{}, false, err
	}
	return capacity, true, nil
}
