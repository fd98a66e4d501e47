package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/darasahub/darasa/core"
	"github.com/darasahub/darasa/core/tenant"
)

// Roles
const (
	// Platform staff
	RoleSuperAdmin = "super:"

	// Organization staff
	RoleOrgAdmin   = "admin:"
	RoleInstructor = "instructor:"

	// Learner
	RoleLearner = "learner:"
)

var (
	AllRoles = []string{RoleSuperAdmin, RoleOrgAdmin, RoleInstructor, RoleLearner}

	rolePriorities = map[string]int{
		RoleSuperAdmin: 40,
		RoleOrgAdmin:   30,
		RoleInstructor: 20,
		RoleLearner:    10,
	}

	Roles = []Role{
		{Name: "Learner", Value: RoleLearner},
		{Name: "Instructor", Value: RoleInstructor},
		{Name: "Org Admin", Value: RoleOrgAdmin},
		{Name: "Super Admin", Value: RoleSuperAdmin},
	}
)

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Shell variants: the persistent chrome (navigation + branding) wrapping page content.
type Shell string

const (
	// ShellAdmin is the administrator/instructor chrome: top navigation + sidebar.
	ShellAdmin Shell = "admin"
	// ShellLearner is the learner chrome: mobile-first bottom navigation.
	ShellLearner Shell = "learner"
)

// ShellForRoles maps a role set to exactly one chrome variant.
// Learner-only (or empty) role sets get the learner shell; any higher role gets
// the admin shell. Total and deterministic: never both, never neither.
func ShellForRoles(roles []string) Shell {
	if MaxRolePriority(roles) > RolePriority(RoleLearner) {
		return ShellAdmin
	}
	return ShellLearner
}

type User struct {
	ID           int       `json:"id"`
	TenantKey    string    `json:"tenant_key"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	Roles        []string  `json:"roles"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u *User) IsSuperAdmin() bool {
	return u.RoleStartsWith(RoleSuperAdmin)
}

func (u *User) IsOrgAdmin() bool {
	return u.RoleStartsWith(RoleOrgAdmin)
}

func (u *User) IsInstructor() bool {
	return u.RoleStartsWith(RoleInstructor)
}

func (u *User) IsLearner() bool {
	return u.RoleStartsWith(RoleLearner)
}

// Shell returns the chrome variant this user's pages render inside.
func (u *User) Shell() Shell {
	return ShellForRoles(u.Roles)
}

// BelongsTo reports whether the user may log into the given organization's portal.
// Platform staff may enter any portal.
func (u *User) BelongsTo(t tenant.Tenant) bool {
	if u.IsSuperAdmin() || t.IsPlatform() {
		return true
	}
	return u.TenantKey == t.Key
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string   `json:"name" validate:"required"`
	TenantKey       string   `json:"tenant_key" validate:"omitempty,slug"`
	Username        string   `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Password        string   `json:"password" validate:"required"`
	PasswordConfirm string   `json:"password_confirm" validate:"required,eqfield=Password"`
	Roles           []string `json:"roles" validate:"omitempty,allroles"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nu.Name = core.CleanString(nu.Name)
	nu.TenantKey = core.CleanString(nu.TenantKey, true /* lower */)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username, nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Name            string   `json:"name"`
	Username        string   `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email           string   `json:"email" validate:"omitempty,email"`
	IsActive        *bool    `json:"is_active"`
	Roles           []string `json:"roles" validate:"omitempty,allroles"`
	Password        string   `json:"password" validate:"omitempty"`
	PasswordConfirm string   `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate, origUsr User, svc ServiceInterface) error {
	if name := core.CleanString(uu.Name); name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	if uname := core.CleanString(uu.Username, true /* lower */); uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}

	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(uu.Username, uu.Email, origUsr)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp *ResetUserPassword) Validate(validate *validator.Validate) error {
	return validate.Struct(rp)
}

type QueryFilter struct {
	Search      string    `query:"search"`
	TenantKey   string    `query:"tenant"`
	Roles       []string  `query:"role"`
	IsActive    *bool     `query:"is_active"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.TenantKey == "" && qf.Roles == nil && qf.IsActive == nil &&
		qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.TenantKey = core.CleanString(qf.TenantKey, true /* lower */)
}
