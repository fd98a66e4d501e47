package echoapi

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/darasahub/darasa/core/tenant"
	"github.com/darasahub/darasa/core/user"
	metricsvc "github.com/darasahub/darasa/services/metrics"
)

var contextTenantKey = "tenant"

// sessionMiddleware restores the visitor's session (if any) on every request.
// It never rejects: deciding what an anonymous visitor may see is the guard's job.
func sessionMiddleware(svc user.ServiceInterface, timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			restoreSession(ctx, svc, timeout)
			return next(ctx)
		}
	}
}

// loginRequiredMiddleware turns anonymous visitors away from protected routes:
// API clients get a 401, everyone else is sent to the login page with the
// requested path preserved in the next query param.
func loginRequiredMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if _, ok := ctx.Get(contextUserKey).(user.User); ok {
			return next(ctx)
		}
		metricsvc.GuardDenials.Inc()

		if wantsJSON(ctx) {
			return errUnauthorized
		}
		loc := "/login?next=" + url.QueryEscape(ctx.Request().URL.RequestURI())
		return ctx.Redirect(http.StatusFound, loc)
	}
}

func wantsJSON(ctx echo.Context) bool {
	if strings.HasPrefix(ctx.Path(), "/v1/") {
		return true
	}
	accept := ctx.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON)
}

// superAdminMiddleware fences the platform administration screens.
func superAdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		usr, ok := ctx.Get(contextUserKey).(user.User)
		if !ok {
			return errUnauthorized
		}
		if !usr.IsSuperAdmin() {
			return errHttpForbidden
		}
		return next(ctx)
	}
}

// orgStaffMiddleware restricts an endpoint to organization staff (or platform staff).
func orgStaffMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		usr, ok := ctx.Get(contextUserKey).(user.User)
		if !ok {
			return errUnauthorized
		}
		if !(usr.IsSuperAdmin() || usr.IsOrgAdmin() || usr.IsInstructor()) {
			return errHttpForbidden
		}
		return next(ctx)
	}
}

// tenantMiddleware resolves the :org path param to an organization.
// Unknown keys fall back to the platform tenant so shared pages still render
// branded chrome; the fallback is counted separately.
func tenantMiddleware(reg *tenant.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			key := ctx.Param("org")
			if t, err := reg.LookupStrict(key); err == nil {
				metricsvc.TenantResolutions.WithLabelValues("tenant").Inc()
				ctx.Set(contextTenantKey, t)
			} else {
				metricsvc.TenantResolutions.WithLabelValues("fallback").Inc()
				ctx.Set(contextTenantKey, reg.Default())
			}
			return next(ctx)
		}
	}
}

// platformTenantMiddleware pins platform-level routes to the platform tenant.
func platformTenantMiddleware(reg *tenant.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			metricsvc.TenantResolutions.WithLabelValues("platform").Inc()
			ctx.Set(contextTenantKey, reg.Default())
			return next(ctx)
		}
	}
}

func getContextTenant(ctx echo.Context) (tenant.Tenant, error) {
	if t, ok := ctx.Get(contextTenantKey).(tenant.Tenant); ok {
		return t, nil
	}
	return tenant.Tenant{}, errors.New("organization not found in echo.Context")
}

// rateLimiterTTL is how long an idle client keeps its limiter before the next
// sweep reclaims it.
const rateLimiterTTL = 10 * time.Minute

type ipLimiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// ipLimiterPool hands out one rate limiter per client IP. Idle entries are
// swept on access so the map stays bounded by recently active clients.
type ipLimiterPool struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	entries   map[string]*ipLimiterEntry
	lastSweep time.Time
}

func newIPLimiterPool(limit float64, burst int, ttl time.Duration) *ipLimiterPool {
	return &ipLimiterPool{
		limit:   rate.Limit(limit),
		burst:   burst,
		ttl:     ttl,
		entries: make(map[string]*ipLimiterEntry),
	}
}

func (p *ipLimiterPool) get(ip string, now time.Time) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if now.Sub(p.lastSweep) >= p.ttl {
		for key, e := range p.entries {
			if now.Sub(e.lastSeen) >= p.ttl {
				delete(p.entries, key)
			}
		}
		p.lastSweep = now
	}

	e, ok := p.entries[ip]
	if !ok {
		e = &ipLimiterEntry{lim: rate.NewLimiter(p.limit, p.burst)}
		p.entries[ip] = e
	}
	e.lastSeen = now
	return e.lim
}

// rateLimitMiddleware throttles brute-forceable endpoints per client IP.
func rateLimitMiddleware(limit float64, burst int) echo.MiddlewareFunc {
	pool := newIPLimiterPool(limit, burst, rateLimiterTTL)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !pool.get(ctx.RealIP(), time.Now()).Allow() {
				metricsvc.Logins.WithLabelValues("throttled").Inc()
				return errTooManyRequests
			}
			return next(ctx)
		}
	}
}
