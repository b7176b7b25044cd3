// Package qarepo persists QA inspections and the defects found by them.
package qarepo

import (
	"context"
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/qa"
	"manufacturing/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormInspectionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormInspectionRepository(db *gorm.DB, tracker aggregateTracker) *GormInspectionRepository {
	return &GormInspectionRepository{db: db, tracker: tracker}
}

func (r *GormInspectionRepository) Add(ctx context.Context, inspection *qa.Inspection) error {
	if err := inspection.Validate(); err != nil {
		return err
	}

	dto := fromDomain(inspection)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(inspection.ID(), inspection)
	return nil
}

func (r *GormInspectionRepository) Update(ctx context.Context, inspection *qa.Inspection) error {
	if err := inspection.Validate(); err != nil {
		return err
	}

	dto := fromDomain(inspection)
	defects := dto.Defects
	dto.Defects = nil

	db := r.db.WithContext(ctx)
	result := db.Model(&InspectionDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at", "Defects").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	if len(defects) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defects).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(inspection.ID(), inspection)
	return nil
}

func (r *GormInspectionRepository) Get(ctx context.Context, id kernel.UUID) (*qa.Inspection, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InspectionDTO
	err := r.db.WithContext(ctx).
		Preload("Defects", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("qa inspection", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormInspectionRepository) HasPendingForItem(ctx context.Context, itemID kernel.UUID) (bool, error) {
	if err := itemID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&InspectionDTO{}).
		Where("order_item_id = ? AND result = ?", itemID.Bytes(), string(qa.ResultPending)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
