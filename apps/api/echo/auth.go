package echoapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/darasahub/darasa/core"
	"github.com/darasahub/darasa/core/tenant"
	"github.com/darasahub/darasa/core/user"
)

const sessionCookieName = "darasa_session"

var (
	// appJWTConfig is the default JWT auth middleware config, set up by initAuth.
	appJWTConfig = middleware.JWTConfig{
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(Claims),
	}

	contextClaimsKey = "userClaims"
	contextUserKey   = "user"

	appName                   string
	jwtExpirationDelta        time.Duration
	jwtRefreshExpirationDelta time.Duration
)

func initAuth(conf *core.Config) {
	appJWTConfig.SigningKey = conf.SecretKey
	appName = conf.AppName
	jwtExpirationDelta = conf.Server.JWTExpirationDelta
	jwtRefreshExpirationDelta = conf.Server.JWTRefreshExpirationDelta
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64    `json:"oriat,omitempty"`
	Username     string   `json:"username,omitempty"`
	Email        string   `json:"email,omitempty"`
	TenantKey    string   `json:"tenant_key,omitempty"`
	IsSuperAdmin bool     `json:"is_super_admin,omitempty"` // -> platform screens
	IsOrgAdmin   bool     `json:"is_org_admin,omitempty"`   // -> ADMIN SHELL
	IsInstructor bool     `json:"is_instructor,omitempty"`  // -> ADMIN SHELL
	IsLearner    bool     `json:"is_learner,omitempty"`     // -> LEARNER SHELL
	Roles        []string `json:"roles,omitempty"`
}

func GetUserClaims(usr user.User, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	var oriat int64
	if len(origIat) > 0 {
		oriat = origIat[0]
	} else {
		oriat = nownix
	}

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    appName,
			Subject:   strconv.Itoa(usr.ID),
			Audience:  "Academia",
			ExpiresAt: now.Add(jwtExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Username:     usr.Username,
		Email:        usr.Email,
		TenantKey:    usr.TenantKey,
		IsSuperAdmin: usr.IsSuperAdmin(),
		IsOrgAdmin:   usr.IsOrgAdmin(),
		IsInstructor: usr.IsInstructor(),
		IsLearner:    usr.IsLearner(),
		Roles:        usr.Roles,
	}
	return claims
}

// authenticate checks the given credentials and, when org is non-empty, that the
// account may enter that organization's portal.
func authenticate(uname, pwd, org string, reg *tenant.Registry, svc user.ServiceInterface) (user.User, error) {
	usr, err := svc.GetByUsernameOrEmail(uname)
	if err != nil {
		if err == user.ErrNotFound {
			return user.User{}, errAuthenticationFailed
		}
		return user.User{}, errors.Wrap(err, "finding user by username or email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return user.User{}, errAuthenticationFailed
	}
	if !usr.IsActive {
		return user.User{}, errAccountDeactivated
	}
	if org != "" {
		t, err := reg.LookupStrict(org)
		if err != nil {
			return user.User{}, errAuthenticationFailed
		}
		if !usr.BelongsTo(t) {
			return user.User{}, errWrongOrganization
		}
	}
	usr, err = svc.SetLastLogin(usr)
	if err != nil {
		return user.User{}, errors.Wrap(err, "setting lastLogin")
	}
	return usr, nil
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func parseToken(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, new(Claims), func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != appJWTConfig.SigningMethod {
			return nil, errors.New("unexpected signing method")
		}
		return appJWTConfig.SigningKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errUnauthorized
	}
	return claims, nil
}

// tokenFromRequest looks for a bearer token in the Authorization header first,
// then in the session cookie.
func tokenFromRequest(ctx echo.Context) string {
	auth := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := ctx.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// restoreSession resurrects the visitor's session from their token, bounded by
// timeout. On timeout, a cancelled request or any failure the visitor is simply
// anonymous; an in-flight lookup that loses the race is discarded so a stale
// result never leaks into a later navigation.
func restoreSession(ctx echo.Context, svc user.ServiceInterface, timeout time.Duration) {
	raw := tokenFromRequest(ctx)
	if raw == "" {
		return
	}
	claims, err := parseToken(raw)
	if err != nil {
		return
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return
	}

	type result struct {
		usr user.User
		err error
	}
	resCh := make(chan result, 1)
	go func() {
		usr, err := svc.GetByID(id)
		resCh <- result{usr: usr, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-resCh:
		if res.err != nil || !res.usr.IsActive {
			return
		}
		ctx.Set(contextClaimsKey, *claims)
		ctx.Set(contextUserKey, res.usr)
	case <-ctx.Request().Context().Done():
	case <-timer.C:
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	if claims, ok := ctx.Get(contextClaimsKey).(Claims); ok {
		return claims, nil
	}
	return Claims{}, errUnauthorized
}

func getContextUser(ctx echo.Context, svc user.ServiceInterface, clms ...Claims) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}

	var claims Claims
	var err error
	if len(clms) > 0 {
		claims = clms[0]
	} else {
		claims, err = getContextClaims(ctx)
		if err != nil {
			return user.User{}, errors.Wrap(err, "getting context claims")
		}
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return user.User{}, errors.Wrap(err, "parsing claims subject")
	}
	usr, err := svc.GetByID(id)
	if err != nil {
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(contextUserKey, usr)
	return usr, nil
}

func refreshToken(ctx echo.Context, svc user.ServiceInterface) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}

	usr, err := getContextUser(ctx, svc, claims)
	if err != nil {
		return "", errors.Wrap(err, "getting context user")
	}

	// check if user is still active
	if !usr.IsActive {
		return "", errAccountDeactivated
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(jwtRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	newClaims := GetUserClaims(usr, claims.OrigIssuedAt)
	token, err := GenerateToken(newClaims)
	return token, errors.Wrap(err, "generating token")
}

// landingPath is where a freshly logged-in user is sent when no next path is given.
func landingPath(usr user.User, reg *tenant.Registry) string {
	if usr.IsSuperAdmin() {
		return "/dashboard"
	}
	key := usr.TenantKey
	if key == "" {
		key = reg.Default().Key
	}
	if usr.Shell() == user.ShellLearner {
		return "/" + key + "/learner/dashboard"
	}
	return "/" + key + "/dashboard"
}

// safeNextPath only accepts site-relative paths, so the login flow cannot be
// abused as an open redirect.
func safeNextPath(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return ""
	}
	return next
}

func setSessionCookie(ctx echo.Context, token string) {
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(jwtExpirationDelta),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
