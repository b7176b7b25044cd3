package services_test

import (
	"testing"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/services"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityChecker_Check(t *testing.T) {
	day, err := kernel.ParseDate("2026-09-01")
	require.NoError(t, err)
	checker := services.NewCapacityChecker()

	tests := []struct {
		name                        string
		maxCapacity, current, extra int
		wantNewTotal, wantRemaining int
		wantExceed                  bool
	}{
		{name: "over capacity", maxCapacity: 500, current: 450, extra: 100, wantNewTotal: 550, wantRemaining: 50, wantExceed: true},
		{name: "exactly full", maxCapacity: 500, current: 450, extra: 50, wantNewTotal: 500, wantRemaining: 50},
		{name: "empty station", maxCapacity: 9999, current: 0, extra: 300, wantNewTotal: 300, wantRemaining: 9999},
		{name: "already over", maxCapacity: 400, current: 450, extra: 0, wantNewTotal: 450, wantRemaining: 0, wantExceed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := checker.Check("VIK-1", day, tt.maxCapacity, tt.current, tt.extra)

			require.NoError(t, err)
			assert.Equal(t, tt.wantNewTotal, report.NewTotal)
			assert.Equal(t, tt.wantRemaining, report.RemainingCapacity)
			assert.Equal(t, tt.wantExceed, report.WouldExceed)
			assert.Equal(t, tt.current, report.CurrentTotal)
			assert.Equal(t, tt.extra, report.AdditionalQuantity)
		})
	}
}

func TestCapacityChecker_Check_Invalid(t *testing.T) {
	day, err := kernel.ParseDate("2026-09-01")
	require.NoError(t, err)
	checker := services.NewCapacityChecker()

	_, err = checker.Check("", day, 500, 0, 1)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	_, err = checker.Check("VIK-1", kernel.Date{}, 500, 0, 1)
	require.ErrorIs(t, err, kernel.ErrDateIsNotConstructed)
	_, err = checker.Check("VIK-1", day, 0, 0, 1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = checker.Check("VIK-1", day, 500, 0, -1)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
