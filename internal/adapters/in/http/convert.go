package http

import (
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func fromAPIUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func fromOptionalAPIUUID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := fromAPIUUID(*id)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

func toAPIUUID(id kernel.UUID) openapi_types.UUID {
	return id.Bytes()
}

func toOptionalAPIUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	converted := toAPIUUID(*id)
	return &converted
}

func fromAPIDate(name string, d openapi_types.Date) (kernel.Date, error) {
	if d.Time.IsZero() {
		return kernel.Date{}, errs.NewValueIsRequiredError(name)
	}
	return kernel.NewDate(d.Time), nil
}

func fromOptionalAPIDate(d *openapi_types.Date) *kernel.Date {
	if d == nil || d.Time.IsZero() {
		return nil
	}
	converted := kernel.NewDate(d.Time)
	return &converted
}

func toAPIDate(d kernel.Date) openapi_types.Date {
	return openapi_types.Date{Time: d.Time()}
}

func toOptionalAPIDate(d *kernel.Date) *openapi_types.Date {
	if d == nil {
		return nil
	}
	converted := toAPIDate(*d)
	return &converted
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
