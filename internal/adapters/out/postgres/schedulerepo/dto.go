// Package schedulerepo persists production schedule entries and station
// capacity limits.
package schedulerepo

import (
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/schedule"

	"github.com/google/uuid"
)

type EntryDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderItemID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Zone            string    `gorm:"type:varchar(64);not null"`
	Station         string    `gorm:"type:varchar(64);index:idx_schedule_station_date"`
	ScheduledDate   time.Time `gorm:"type:date;not null;index:idx_schedule_station_date"`
	PlannedQuantity int       `gorm:"not null"`
	Priority        int       `gorm:"not null;default:0"`
	RunOrder        int       `gorm:"not null;default:0"`
	Status          string    `gorm:"type:varchar(16);not null"`
	Notes           string    `gorm:"type:text"`
	CreatedBy       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt       time.Time
}

func (EntryDTO) TableName() string {
	return "production_schedule"
}

type CapacityDTO struct {
	Station        string `gorm:"type:varchar(64);primaryKey"`
	MaxUnitsPerDay int    `gorm:"not null"`
	UpdatedAt      time.Time
}

func (CapacityDTO) TableName() string {
	return "station_capacity"
}

func fromDomain(e *schedule.Entry) EntryDTO {
	return EntryDTO{
		ID:              e.ID().Bytes(),
		OrderID:         e.OrderID().Bytes(),
		OrderItemID:     e.OrderItemID().Bytes(),
		Zone:            e.Zone(),
		Station:         e.Station(),
		ScheduledDate:   e.ScheduledDate().Time(),
		PlannedQuantity: e.PlannedQuantity(),
		Priority:        e.Priority(),
		RunOrder:        e.RunOrder(),
		Status:          string(e.Status()),
		Notes:           e.Notes(),
		CreatedBy:       e.CreatedBy().Bytes(),
		CreatedAt:       e.CreatedAt(),
	}
}

func toDomain(dto EntryDTO) (*schedule.Entry, error) {
	var ids [4]kernel.UUID
	for i, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.OrderItemID, dto.CreatedBy} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	return schedule.RestoreEntry(schedule.EntryRecord{
		NewEntryParams: schedule.NewEntryParams{
			ID:              ids[0],
			OrderID:         ids[1],
			OrderItemID:     ids[2],
			Zone:            dto.Zone,
			Station:         dto.Station,
			ScheduledDate:   kernel.NewDate(dto.ScheduledDate),
			PlannedQuantity: dto.PlannedQuantity,
			Priority:        dto.Priority,
			RunOrder:        dto.RunOrder,
			Notes:           dto.Notes,
			CreatedBy:       ids[3],
			CreatedAt:       dto.CreatedAt,
		},
		Status: schedule.Status(dto.Status),
	})
}
