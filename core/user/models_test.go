package user

import (
	"testing"

	"github.com/darasahub/darasa/core/tenant"
)

func TestShellForRoles(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  Shell
	}{
		{name: "no roles", roles: nil, want: ShellLearner},
		{name: "empty roles", roles: []string{}, want: ShellLearner},
		{name: "learner only", roles: []string{RoleLearner}, want: ShellLearner},
		{name: "unknown role string", roles: []string{"lol:"}, want: ShellLearner},
		{name: "instructor", roles: []string{RoleInstructor}, want: ShellAdmin},
		{name: "org admin", roles: []string{RoleOrgAdmin}, want: ShellAdmin},
		{name: "super admin", roles: []string{RoleSuperAdmin}, want: ShellAdmin},
		{name: "learner and instructor", roles: []string{RoleLearner, RoleInstructor}, want: ShellAdmin},
		{name: "all roles", roles: AllRoles, want: ShellAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShellForRoles(tt.roles)
			if got != tt.want {
				t.Errorf("ShellForRoles() = %v, want %v", got, tt.want)
			}
			// exactly one chrome variant, never neither
			if got != ShellAdmin && got != ShellLearner {
				t.Errorf("ShellForRoles() = %v, not a known shell", got)
			}
		})
	}
}

func TestMaxRolePriority(t *testing.T) {
	if got := MaxRolePriority(nil); got != 0 {
		t.Errorf("MaxRolePriority(nil) = %d, want 0", got)
	}
	if got := MaxRolePriority([]string{RoleLearner, RoleSuperAdmin}); got != RolePriority(RoleSuperAdmin) {
		t.Errorf("MaxRolePriority() = %d, want %d", got, RolePriority(RoleSuperAdmin))
	}
}

func TestUserBelongsTo(t *testing.T) {
	stanford := tenant.Tenant{Key: "stanford"}
	mit := tenant.Tenant{Key: "mit"}
	platform := tenant.Platform()

	tests := []struct {
		name string
		usr  User
		tnt  tenant.Tenant
		want bool
	}{
		{name: "member", usr: User{TenantKey: "stanford", Roles: []string{RoleLearner}}, tnt: stanford, want: true},
		{name: "not a member", usr: User{TenantKey: "stanford", Roles: []string{RoleLearner}}, tnt: mit, want: false},
		{name: "platform portal admits anyone", usr: User{TenantKey: "stanford", Roles: []string{RoleLearner}}, tnt: platform, want: true},
		{name: "super admin enters any portal", usr: User{Roles: []string{RoleSuperAdmin}}, tnt: mit, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.usr.BelongsTo(tt.tnt); got != tt.want {
				t.Errorf("BelongsTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserRoleChecks(t *testing.T) {
	usr := User{Roles: []string{RoleInstructor, RoleLearner}}
	if !usr.IsInstructor() || !usr.IsLearner() {
		t.Error("expected instructor and learner roles to match")
	}
	if usr.IsSuperAdmin() || usr.IsOrgAdmin() {
		t.Error("unexpected admin roles")
	}
	if usr.Shell() != ShellAdmin {
		t.Errorf("Shell() = %v, want %v", usr.Shell(), ShellAdmin)
	}
}
