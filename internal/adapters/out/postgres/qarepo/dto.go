package qarepo

import (
	"time"

	"manufacturing/internal/adapters/out/postgres/convert"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/qa"

	"github.com/google/uuid"
)

type InspectionDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderItemID    *uuid.UUID `gorm:"type:uuid;index"`
	SessionID      *uuid.UUID `gorm:"type:uuid;index"`
	InspectionType string     `gorm:"type:varchar(32);not null"`
	BatchSize      int        `gorm:"not null;default:0"`
	Result         string     `gorm:"type:varchar(16);not null;index"`
	InspectorID    *uuid.UUID `gorm:"type:uuid"`
	InspectedAt    *time.Time
	Notes          string      `gorm:"type:text"`
	CreatedAt      time.Time   `gorm:"not null"`
	Defects        []DefectDTO `gorm:"foreignKey:InspectionID;constraint:OnDelete:CASCADE"`
}

func (InspectionDTO) TableName() string {
	return "qa_inspections"
}

type DefectDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	InspectionID uuid.UUID `gorm:"type:uuid;not null;index"`
	DefectType   string    `gorm:"type:varchar(16);not null"`
	Quantity     int       `gorm:"not null"`
	Description  string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (DefectDTO) TableName() string {
	return "qa_defects"
}

func fromDomain(i *qa.Inspection) InspectionDTO {
	inspectionID := i.ID().Bytes()
	defects := make([]DefectDTO, 0, len(i.Defects()))
	for _, d := range i.Defects() {
		defects = append(defects, DefectDTO{
			ID:           d.ID.Bytes(),
			InspectionID: inspectionID,
			DefectType:   string(d.Type),
			Quantity:     d.Quantity,
			Description:  d.Description,
			CreatedAt:    d.CreatedAt,
		})
	}

	return InspectionDTO{
		ID:             inspectionID,
		OrderItemID:    convert.UUIDPtr(i.OrderItemID()),
		SessionID:      convert.UUIDPtr(i.SessionID()),
		InspectionType: string(i.Type()),
		BatchSize:      i.BatchSize(),
		Result:         string(i.Result()),
		InspectorID:    convert.UUIDPtr(i.InspectorID()),
		InspectedAt:    i.InspectedAt(),
		Notes:          i.Notes(),
		CreatedAt:      i.CreatedAt(),
		Defects:        defects,
	}
}

func toDomain(dto InspectionDTO) (*qa.Inspection, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := convert.KernelUUIDPtr(dto.OrderItemID)
	if err != nil {
		return nil, err
	}
	sessionID, err := convert.KernelUUIDPtr(dto.SessionID)
	if err != nil {
		return nil, err
	}
	inspectorID, err := convert.KernelUUIDPtr(dto.InspectorID)
	if err != nil {
		return nil, err
	}

	defects := make([]qa.Defect, 0, len(dto.Defects))
	for _, d := range dto.Defects {
		defectID, idErr := kernel.UUIDFromBytes(d.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		defectType, typeErr := qa.ParseDefectType(d.DefectType)
		if typeErr != nil {
			return nil, typeErr
		}
		defects = append(defects, qa.Defect{
			ID: defectID, Type: defectType, Quantity: d.Quantity, Description: d.Description, CreatedAt: d.CreatedAt,
		})
	}

	return qa.RestoreInspection(qa.InspectionRecord{
		ID:          id,
		OrderItemID: itemID,
		SessionID:   sessionID,
		Type:        qa.Type(dto.InspectionType),
		BatchSize:   dto.BatchSize,
		Result:      qa.Result(dto.Result),
		InspectorID: inspectorID,
		InspectedAt: dto.InspectedAt,
		Notes:       dto.Notes,
		CreatedAt:   dto.CreatedAt,
	}, defects)
}
