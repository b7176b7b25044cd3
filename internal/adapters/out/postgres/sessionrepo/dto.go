// Package sessionrepo persists production sessions with their workers,
// pauses and the append-only quantity log.
package sessionrepo

import (
	"time"

	"manufacturing/internal/adapters/out/postgres/convert"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/production"

	"github.com/google/uuid"
)

type SessionDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderItemID      *uuid.UUID `gorm:"type:uuid;index"`
	Zone             string     `gorm:"type:varchar(64);not null"`
	Station          string     `gorm:"type:varchar(64);not null"`
	TargetQuantity   int        `gorm:"not null;default:0"`
	ProducedQuantity int        `gorm:"not null;default:0"`
	IsSubAssembly    bool       `gorm:"not null;default:false"`
	Notes            string     `gorm:"type:text"`
	Status           string     `gorm:"type:varchar(16);not null;index"`
	StartedAt        time.Time  `gorm:"not null"`
	EndedAt          *time.Time
	Workers          []WorkerDTO `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Pauses           []PauseDTO  `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

func (SessionDTO) TableName() string {
	return "production_sessions"
}

type WorkerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	ScanOnAt  time.Time `gorm:"not null"`
	ScanOffAt *time.Time
}

func (WorkerDTO) TableName() string {
	return "session_workers"
}

type PauseDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason          string    `gorm:"type:varchar(32);not null"`
	Notes           string    `gorm:"type:text"`
	PausedAt        time.Time `gorm:"not null"`
	ResumedAt       *time.Time
	DurationMinutes *float64 `gorm:"type:numeric(10,2)"`
}

func (PauseDTO) TableName() string {
	return "session_pauses"
}

// LogDTO is a production_logs row. Rows are only ever inserted.
type LogDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"type:uuid;not null"`
	QuantityChange int       `gorm:"not null"`
	RunningTotal   int       `gorm:"not null"`
	LoggedAt       time.Time `gorm:"not null"`
}

func (LogDTO) TableName() string {
	return "production_logs"
}

func fromDomain(s *production.Session) SessionDTO {
	sessionID := s.ID().Bytes()
	workers := make([]WorkerDTO, 0, len(s.Workers()))
	for _, w := range s.Workers() {
		workers = append(workers, WorkerDTO{
			ID:        w.ID.Bytes(),
			SessionID: sessionID,
			UserID:    w.UserID.Bytes(),
			ScanOnAt:  w.ScanOnAt,
			ScanOffAt: w.ScanOffAt,
		})
	}
	pauses := make([]PauseDTO, 0, len(s.Pauses()))
	for _, p := range s.Pauses() {
		pauses = append(pauses, PauseDTO{
			ID:              p.ID.Bytes(),
			SessionID:       sessionID,
			Reason:          string(p.Reason),
			Notes:           p.Notes,
			PausedAt:        p.PausedAt,
			ResumedAt:       p.ResumedAt,
			DurationMinutes: p.DurationMinutes,
		})
	}

	return SessionDTO{
		ID:               sessionID,
		OrderItemID:      convert.UUIDPtr(s.OrderItemID()),
		Zone:             s.Zone(),
		Station:          s.Station(),
		TargetQuantity:   s.TargetQuantity(),
		ProducedQuantity: s.ProducedQuantity(),
		IsSubAssembly:    s.IsSubAssembly(),
		Notes:            s.Notes(),
		Status:           string(s.Status()),
		StartedAt:        s.StartedAt(),
		EndedAt:          s.EndedAt(),
		Workers:          workers,
		Pauses:           pauses,
	}
}

func logsFromDomain(logs []production.Log) []LogDTO {
	dtos := make([]LogDTO, 0, len(logs))
	for _, l := range logs {
		dtos = append(dtos, LogDTO{
			ID:             l.ID.Bytes(),
			SessionID:      l.SessionID.Bytes(),
			UserID:         l.UserID.Bytes(),
			QuantityChange: l.QuantityChange,
			RunningTotal:   l.RunningTotal,
			LoggedAt:       l.LoggedAt,
		})
	}
	return dtos
}

func toDomain(dto SessionDTO) (*production.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := convert.KernelUUIDPtr(dto.OrderItemID)
	if err != nil {
		return nil, err
	}

	workers := make([]production.Worker, 0, len(dto.Workers))
	for _, w := range dto.Workers {
		workerID, idErr := kernel.UUIDFromBytes(w.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		userID, idErr := kernel.UUIDFromBytes(w.UserID[:])
		if idErr != nil {
			return nil, idErr
		}
		workers = append(workers, production.Worker{ID: workerID, UserID: userID, ScanOnAt: w.ScanOnAt, ScanOffAt: w.ScanOffAt})
	}

	pauses := make([]production.Pause, 0, len(dto.Pauses))
	for _, p := range dto.Pauses {
		pauseID, idErr := kernel.UUIDFromBytes(p.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		reason, reasonErr := production.ParsePauseReason(p.Reason)
		if reasonErr != nil {
			return nil, reasonErr
		}
		pauses = append(pauses, production.Pause{
			ID:              pauseID,
			Reason:          reason,
			Notes:           p.Notes,
			PausedAt:        p.PausedAt,
			ResumedAt:       p.ResumedAt,
			DurationMinutes: p.DurationMinutes,
		})
	}

	return production.RestoreSession(production.SessionRecord{
		ID:               id,
		OrderItemID:      itemID,
		Zone:             dto.Zone,
		Station:          dto.Station,
		TargetQuantity:   dto.TargetQuantity,
		ProducedQuantity: dto.ProducedQuantity,
		IsSubAssembly:    dto.IsSubAssembly,
		Notes:            dto.Notes,
		Status:           production.Status(dto.Status),
		StartedAt:        dto.StartedAt,
		EndedAt:          dto.EndedAt,
	}, workers, pauses)
}
