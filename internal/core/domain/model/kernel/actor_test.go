package kernel_test

import (
	"testing"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RolePlanner)
		require.NoError(t, err)
		assert.Equal(t, kernel.RolePlanner, actor.Role())
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID(), kernel.Role("forklift_god"))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, kernel.RolePlanner)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestActor_Permissions(t *testing.T) {
	tests := []struct {
		role          kernel.Role
		docking       bool
		forceComplete bool
		approveQA     bool
	}{
		{kernel.RoleFloorWorker, true, false, false},
		{kernel.RolePlanner, true, false, false},
		{kernel.RoleProductionManager, true, true, true},
		{kernel.RoleQALead, false, false, true},
		{kernel.RoleDriver, false, false, false},
		{kernel.RoleExecutive, true, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			actor, err := kernel.NewActor(kernel.NewUUID(), tt.role)
			require.NoError(t, err)

			assert.Equal(t, tt.docking, actor.CanConfirmDocking())
			assert.Equal(t, tt.forceComplete, actor.CanForceComplete())
			assert.Equal(t, tt.approveQA, actor.CanApproveQA())
		})
	}
}

func TestActor_Require(t *testing.T) {
	actor, _ := kernel.NewActor(kernel.NewUUID(), kernel.RoleDriver)

	require.NoError(t, actor.Require(true, "log production"))

	err := actor.Require(actor.CanConfirmDocking(), "complete docking")
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "driver")
}
