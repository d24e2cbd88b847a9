package auth

import (
	"context"

	"foundation/internal/model"
)

// Decision is the outcome of a role-policy check. Decisions are plain
// return values, never errors: denial is an expected control-flow outcome.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

func allow(reason string) Decision { return Decision{Allowed: true, Reason: reason} }
func deny(reason string) Decision  { return Decision{Allowed: false, Reason: reason} }

// CanAccessAdminArea reports whether the role may enter the admin panel.
func CanAccessAdminArea(role model.Role) bool {
	return role == model.RoleAdmin || role == model.RoleSuperuser
}

// CanCreateRole decides whether actingRole may create an account with
// targetRole. The only denied pair among privileged actors is
// admin -> superuser.
func CanCreateRole(actingRole, targetRole model.Role) Decision {
	switch actingRole {
	case model.RoleSuperuser:
		return allow("superuser can create any role")
	case model.RoleAdmin:
		if targetRole == model.RoleSuperuser {
			return deny("admins cannot create superusers")
		}
		if targetRole == model.RoleAdmin || targetRole == model.RoleUser {
			return allow("admin can create users and admins")
		}
	case model.RoleUser:
		return deny("regular users cannot create accounts")
	}
	return deny("permission denied")
}

// UserLookup resolves a user id to its current record. A nil user with a
// nil error means the target does not exist.
type UserLookup func(ctx context.Context, id string) (*model.User, error)

// CanManageUser decides whether the acting user may edit or delete the
// target user. Admin self-management is routed through the profile
// self-service path, never the admin user-management path. A missing target
// is a denial, never an error.
func CanManageUser(ctx context.Context, targetUserID string, actingRole model.Role, actingUserID string, lookup UserLookup) Decision {
	if actingRole == model.RoleSuperuser {
		return allow("superuser has full permissions")
	}
	if actingRole == model.RoleUser {
		return deny("regular users cannot manage other users")
	}

	if actingRole == model.RoleAdmin {
		if targetUserID == actingUserID {
			return deny("use the profile page to edit your own account")
		}

		target, err := lookup(ctx, targetUserID)
		if err != nil || target == nil {
			return deny("target user not found")
		}

		if target.Role == model.RoleAdmin || target.Role == model.RoleSuperuser {
			return deny("admins cannot manage other admins or superusers")
		}
		if target.Role == model.RoleUser {
			return allow("admin can manage regular users")
		}
	}

	return deny("permission denied")
}
