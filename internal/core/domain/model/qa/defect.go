package qa

import (
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
)

// DefectType is what happens to units rejected by an inspection.
type DefectType string

const (
	DefectRework  DefectType = "rework"
	DefectSeconds DefectType = "seconds"
	DefectDestroy DefectType = "destroy"
)

func ParseDefectType(s string) (DefectType, error) {
	switch DefectType(s) {
	case DefectRework, DefectSeconds, DefectDestroy:
		return DefectType(s), nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("defect type", fmt.Errorf("%q is not rework, seconds or destroy", s))
}

// Defect is a count of rejected units found by an inspection.
type Defect struct {
	ID          kernel.UUID
	Type        DefectType
	Quantity    int
	Description string
	CreatedAt   time.Time
}

func newDefect(id kernel.UUID, defectType DefectType, quantity int, description string, at time.Time) (Defect, error) {
	if err := id.Validate(); err != nil {
		return Defect{}, err
	}
	if _, err := ParseDefectType(string(defectType)); err != nil {
		return Defect{}, err
	}
	if quantity <= 0 {
		return Defect{}, errs.NewValueIsInvalidErrorWithCause("defect quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Defect{ID: id, Type: defectType, Quantity: quantity, Description: description, CreatedAt: at}, nil
}
