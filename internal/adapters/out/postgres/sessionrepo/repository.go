package sessionrepo

import (
	"context"
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/production"
	"manufacturing/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionRepository implements ports.SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{db: db, tracker: tracker}
}

func (r *GormSessionRepository) Add(ctx context.Context, session *production.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	dto := fromDomain(session)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return err
	}
	if err := r.appendLogs(db, session); err != nil {
		return err
	}

	r.tracker.TrackAggregate(session.ID(), session)
	return nil
}

func (r *GormSessionRepository) Update(ctx context.Context, session *production.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	dto := fromDomain(session)
	workers, pauses := dto.Workers, dto.Pauses
	dto.Workers, dto.Pauses = nil, nil

	db := r.db.WithContext(ctx)
	result := db.Model(&SessionDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "Workers", "Pauses").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(workers) > 0 {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&workers).Error; err != nil {
			return err
		}
	}
	if len(pauses) > 0 {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&pauses).Error; err != nil {
			return err
		}
	}
	if err := r.appendLogs(db, session); err != nil {
		return err
	}

	r.tracker.TrackAggregate(session.ID(), session)
	return nil
}

func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*production.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	err := r.db.WithContext(ctx).
		Preload("Workers", func(db *gorm.DB) *gorm.DB { return db.Order("scan_on_at") }).
		Preload("Pauses", func(db *gorm.DB) *gorm.DB { return db.Order("paused_at") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("production session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormSessionRepository) appendLogs(db *gorm.DB, session *production.Session) error {
	logs := logsFromDomain(session.PullLogs())
	if len(logs) == 0 {
		return nil
	}
	return db.Create(&logs).Error
}
