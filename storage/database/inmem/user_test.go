package inmemdb

import (
	"testing"

	"github.com/darasahub/darasa/core/user"
)

func newSeededDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	if err = Seed(db); err != nil {
		t.Fatalf("seeding db: %v", err)
	}
	return db
}

func TestFilterUsers(t *testing.T) {
	db := newSeededDB(t)
	repo := &userRepository{db: db}

	active := true
	inactive := false

	tests := []struct {
		name   string
		filter user.QueryFilter
		want   []string // expected usernames, in ID order
	}{
		{
			name: "empty filter returns all",
			want: []string{
				"rootadmin", "alicecarter", "bobmwangi", "carolbanza", "davidokoth",
				"esthernala", "frankssema", "gracenabirye", "henrikabila",
			},
		},
		{
			name:   "by organization",
			filter: user.QueryFilter{TenantKey: "stanford"},
			want:   []string{"alicecarter", "bobmwangi", "carolbanza"},
		},
		{
			name:   "by role prefix",
			filter: user.QueryFilter{Roles: []string{user.RoleInstructor}},
			want:   []string{"bobmwangi", "davidokoth", "frankssema"},
		},
		{
			name:   "by several roles",
			filter: user.QueryFilter{Roles: []string{user.RoleSuperAdmin, user.RoleOrgAdmin}},
			want:   []string{"rootadmin", "alicecarter", "davidokoth"},
		},
		{
			name:   "search matches name username and email",
			filter: user.QueryFilter{Search: "NALA"},
			want:   []string{"esthernala"},
		},
		{
			name:   "search within organization",
			filter: user.QueryFilter{Search: "stanford.edu", TenantKey: "stanford", Roles: []string{user.RoleLearner}},
			want:   []string{"carolbanza"},
		},
		{
			name:   "is_active true matches everyone seeded",
			filter: user.QueryFilter{TenantKey: "unikin", IsActive: &active},
			want:   []string{"henrikabila"},
		},
		{
			name:   "is_active false matches no one seeded",
			filter: user.QueryFilter{IsActive: &inactive},
			want:   []string{},
		},
		{
			name:   "no match",
			filter: user.QueryFilter{Search: "nobody"},
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.FilterUsers(tt.filter)
			if err != nil {
				t.Fatalf("FilterUsers() failed: %v", err)
			}
			if len(users) != len(tt.want) {
				t.Fatalf("FilterUsers() returned %d users, want %d", len(users), len(tt.want))
			}
			for i, usr := range users {
				if usr.Username != tt.want[i] {
					t.Errorf("users[%d].Username = %q, want %q", i, usr.Username, tt.want[i])
				}
			}
		})
	}
}

func TestCheckUsernameUniqueness(t *testing.T) {
	db := newSeededDB(t)
	repo := &userRepository{db: db}

	if err := repo.CheckUsernameUniqueness("carolbanza", ""); err != user.ErrUsernameExists {
		t.Errorf("CheckUsernameUniqueness() error = %v, want ErrUsernameExists", err)
	}
	if err := repo.CheckUsernameUniqueness("", "carol@stanford.edu"); err != user.ErrEmailExists {
		t.Errorf("CheckUsernameUniqueness() error = %v, want ErrEmailExists", err)
	}
	if err := repo.CheckUsernameUniqueness("newcomer", "new@test.test"); err != nil {
		t.Errorf("CheckUsernameUniqueness() error = %v, want nil", err)
	}

	// a user does not collide with themselves
	carol, err := repo.GetUserByUsername("carolbanza")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	if err = repo.CheckUsernameUniqueness(carol.Username, carol.Email, carol); err != nil {
		t.Errorf("CheckUsernameUniqueness(excluding self) error = %v, want nil", err)
	}
}

func TestUpdateUserKeepsUnsetFields(t *testing.T) {
	db := newSeededDB(t)
	repo := &userRepository{db: db}

	carol, err := repo.GetUserByUsername("carolbanza")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}

	inactive := false
	updated, err := repo.UpdateUser(user.User{ID: carol.ID, Name: "Carol B."}, &inactive)
	if err != nil {
		t.Fatalf("UpdateUser() failed: %v", err)
	}
	if updated.Name != "Carol B." {
		t.Errorf("Name = %q, want %q", updated.Name, "Carol B.")
	}
	if updated.IsActive {
		t.Error("IsActive = true, want false")
	}
	if updated.Username != carol.Username || updated.Email != carol.Email {
		t.Error("unset fields must be kept")
	}
	if len(updated.Roles) != len(carol.Roles) {
		t.Error("unset roles must be kept")
	}

	if _, err = repo.UpdateUser(user.User{ID: 999}, nil); err != user.ErrNotFound {
		t.Errorf("UpdateUser(999) error = %v, want ErrNotFound", err)
	}
}

func TestSetLastLogin(t *testing.T) {
	db := newSeededDB(t)
	repo := &userRepository{db: db}

	carol, err := repo.GetUserByUsername("carolbanza")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	if !carol.LastLogin.IsZero() {
		t.Fatal("seeded user should never have logged in")
	}

	updated, err := repo.SetLastLogin(carol)
	if err != nil {
		t.Fatalf("SetLastLogin() failed: %v", err)
	}
	if updated.LastLogin.IsZero() {
		t.Error("LastLogin not set")
	}
}

func TestDeleteUsersByID(t *testing.T) {
	db := newSeededDB(t)
	repo := &userRepository{db: db}

	if err := repo.DeleteUsersByID(4, 9); err != nil {
		t.Fatalf("DeleteUsersByID() failed: %v", err)
	}
	if _, err := repo.GetUserByID(4); err != user.ErrNotFound {
		t.Errorf("GetUserByID(4) error = %v, want ErrNotFound", err)
	}
	users, err := repo.QueryAllUsers()
	if err != nil {
		t.Fatalf("QueryAllUsers() failed: %v", err)
	}
	if len(users) != 7 {
		t.Errorf("QueryAllUsers() returned %d users after delete, want 7", len(users))
	}
}
