package kernel

import (
	"fmt"
	"slices"

	"manufacturing/internal/pkg/errs"
)

// Role is the job function an authenticated user acts under.
type Role string

const (
	RoleExecutive         Role = "executive"
	RoleOffice            Role = "office"
	RolePlanner           Role = "planner"
	RoleProductionManager Role = "production_manager"
	RoleFloorWorker       Role = "floor_worker"
	RoleQALead            Role = "qa_lead"
	RoleDispatch          Role = "dispatch"
	RoleYard              Role = "yard"
	RoleDriver            Role = "driver"
	RoleOpsManager        Role = "ops_manager"
	RoleAdmin             Role = "admin"
)

var allRoles = []Role{
	RoleExecutive, RoleOffice, RolePlanner, RoleProductionManager, RoleFloorWorker,
	RoleQALead, RoleDispatch, RoleYard, RoleDriver, RoleOpsManager, RoleAdmin,
}

var (
	dockingRoles = []Role{
		RolePlanner, RoleProductionManager, RoleFloorWorker, RoleExecutive,
		RoleOffice, RoleAdmin, RoleOpsManager,
	}
	forceCompleteRoles = []Role{RoleProductionManager, RoleExecutive, RoleAdmin, RoleOpsManager}
	qaApprovalRoles    = []Role{RoleQALead, RoleProductionManager, RoleExecutive, RoleAdmin, RoleOpsManager}
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !slices.Contains(allRoles, r) {
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
	return r, nil
}

// Actor is the user on whose behalf an operation runs.
type Actor struct {
	id   UUID
	role Role
}

func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

func (a Actor) ID() UUID { return a.id }
func (a Actor) Role() Role { return a.role }

func (a Actor) Validate() error {
	return a.id.Validate()
}

// CanConfirmDocking reports whether the actor may release cut-list items to ready.
func (a Actor) CanConfirmDocking() bool {
	return slices.Contains(dockingRoles, a.role)
}

// CanForceComplete reports whether the actor may close production short of
// target or move an item to finished without QA.
func (a Actor) CanForceComplete() bool {
	return slices.Contains(forceCompleteRoles, a.role)
}

func (a Actor) CanApproveQA() bool {
	return slices.Contains(qaApprovalRoles, a.role)
}

// Require returns a PermissionDeniedError when allowed is false.
func (a Actor) Require(allowed bool, action string) error {
	if !allowed {
		return errs.NewPermissionDeniedError(action, string(a.role))
	}
	return nil
}
