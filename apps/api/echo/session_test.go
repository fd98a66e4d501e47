package echoapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/darasahub/darasa/core/user"
)

type stubUserService struct {
	user.ServiceInterface
	getByID func(id int) (user.User, error)
}

func (s stubUserService) GetByID(id int) (user.User, error) { return s.getByID(id) }

func newSessionContext(token string, reqCtx context.Context) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/stanford/dashboard", nil)
	if reqCtx != nil {
		req = req.WithContext(reqCtx)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func Test_restoreSession(t *testing.T) {
	appJWTConfig.SigningKey = []byte("secret")
	jwtExpirationDelta = time.Hour

	usr := user.User{
		ID:        7,
		Username:  "awe",
		Email:     "awe@test.cd",
		TenantKey: "stanford",
		IsActive:  true,
		Roles:     []string{user.RoleLearner},
	}
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	tests := []struct {
		name     string
		token    string
		getByID  func(id int) (user.User, error)
		timeout  time.Duration
		cancel   bool
		wantUser bool
	}{
		{
			name:     "lookup within the deadline restores the user",
			token:    token,
			getByID:  func(int) (user.User, error) { return usr, nil },
			timeout:  500 * time.Millisecond,
			wantUser: true,
		},
		{
			name:  "slow lookup times out to anonymous",
			token: token,
			getByID: func(int) (user.User, error) {
				time.Sleep(200 * time.Millisecond)
				return usr, nil
			},
			timeout: 5 * time.Millisecond,
		},
		{
			name:  "cancelled request drops the in-flight result",
			token: token,
			getByID: func(int) (user.User, error) {
				time.Sleep(50 * time.Millisecond)
				return usr, nil
			},
			timeout: 500 * time.Millisecond,
			cancel:  true,
		},
		{
			name:  "deactivated account stays anonymous",
			token: token,
			getByID: func(int) (user.User, error) {
				inactive := usr
				inactive.IsActive = false
				return inactive, nil
			},
			timeout: 500 * time.Millisecond,
		},
		{
			name:    "garbage token stays anonymous",
			token:   "lmaooolol",
			getByID: func(int) (user.User, error) { return usr, nil },
			timeout: 500 * time.Millisecond,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqCtx := context.Background()
			if tt.cancel {
				var cancel context.CancelFunc
				reqCtx, cancel = context.WithCancel(reqCtx)
				cancel()
			}
			ctx := newSessionContext(tt.token, reqCtx)

			restoreSession(ctx, stubUserService{getByID: tt.getByID}, tt.timeout)

			got, ok := ctx.Get(contextUserKey).(user.User)
			if ok != tt.wantUser {
				t.Fatalf("user restored = %v, want %v", ok, tt.wantUser)
			}
			if tt.wantUser && got.ID != usr.ID {
				t.Errorf("user ID = %d, want %d", got.ID, usr.ID)
			}
		})
	}
}
