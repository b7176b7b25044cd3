// Package convert maps optional kernel values to and from their column types.
package convert

import (
	"time"

	"manufacturing/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func UUIDPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func KernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func DatePtr(d *kernel.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}
