package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/darasahub/darasa/core"
	"github.com/darasahub/darasa/core/tenant"
	"github.com/darasahub/darasa/core/user"
	emailsvc "github.com/darasahub/darasa/services/email"
	inmemdb "github.com/darasahub/darasa/storage/database/inmem"
	testutil "github.com/darasahub/darasa/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	if err = inmemdb.Seed(db); err != nil {
		t.Fatalf("inmemdb.Seed() failed: %v", err)
	}
	usrRepo = inmemdb.NewUserRepository(db)

	conf := core.NewConfig()
	registry, err := tenant.NewRegistry(inmemdb.NewTenantRepository(db))
	if err != nil {
		t.Fatalf("tenant.NewRegistry() failed: %v", err)
	}

	return &commandLine{
		usrSvc:   user.NewService(usrRepo, emailsvc.NewConsoleServiceMock(conf), conf),
		registry: registry,
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe", "awe@test.cd", "mdr", "", nil, true)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, extra: extra{pwd: "lol"}},
		{name: "reset with email", args: []string{"resetpassword", "-username", usr.Email}, extra: extra{pwd: "lmao"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUserByID(usr.ID)
				if err != nil {
					t.Fatalf("GetUserByID() failed, %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "missing email", args: []string{"adduser", "-name", "Jo", "-username", "jodoe1"}, wantErr: errHelp},
		{
			name:  "name username email and password creates a learner",
			args:  []string{"adduser", "-name", "Jo Doe", "-username", "jodoe1", "-email", "jo@test.cd", "-org", "stanford"},
			extra: extra{pwd: "S3cret!pass"},
		},
		{
			name:  "running again updates the same account",
			args:  []string{"adduser", "-name", "Jo B. Doe", "-username", "jodoe1", "-email", "jo@test.cd", "-org", "stanford"},
			extra: extra{pwd: "S3cret!pass"},
		},
		{
			name:  "super grants all roles",
			args:  []string{"adduser", "-name", "Boss", "-username", "bigboss", "-email", "boss@test.cd", "-super"},
			extra: extra{pwd: "S3cret!pass"},
		},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	jo, err := usrRepo.GetUserByUsername("jodoe1")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	if jo.Name != "Jo B. Doe" {
		t.Errorf("Name = %q, want the updated name", jo.Name)
	}
	if len(jo.Roles) != 1 || jo.Roles[0] != user.RoleLearner {
		t.Errorf("Roles = %v, want learner only", jo.Roles)
	}

	boss, err := usrRepo.GetUserByUsername("bigboss")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	if len(boss.Roles) != len(user.AllRoles) {
		t.Errorf("Roles = %v, want all roles", boss.Roles)
	}
}

func Test_commandLine_listTenants(t *testing.T) {
	cli := setup(t)

	// listtenants prints to stdout; capture it
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() failed: %v", err)
	}
	os.Stdout = w

	runErr := cli.run([]string{"admin", "listtenants"})

	_ = w.Close()
	os.Stdout = orig

	var out bytes.Buffer
	if _, err = out.ReadFrom(r); err != nil {
		t.Fatalf("reading captured output: %v", err)
	}
	if runErr != nil {
		t.Fatalf("cli.run() error = %v", runErr)
	}

	for _, want := range []string{"KEY", "LEGACY ID", "stanford", "mit", "makerere", "unikin", tenant.PlatformKey} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func Test_commandLine_help(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin"}); err != errHelp {
		t.Errorf("cli.run() error = %v, wantErr %v", err, errHelp)
	}
	if err := cli.run([]string{"admin", "wat"}); err != errHelp {
		t.Errorf("cli.run() error = %v, wantErr %v", err, errHelp)
	}
}
