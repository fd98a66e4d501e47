package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/darasahub/darasa/core/tenant"
	metricsvc "github.com/darasahub/darasa/services/metrics"
)

// legacyRedirect answers retired /portal/{id}/... paths with a permanent
// redirect to the slug-based equivalent. The content is never served in place;
// unknown ids are a plain 404.
func legacyRedirect(resolver *tenant.Resolver) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		res := resolver.Resolve(ctx.Request().URL.Path)
		switch res.Kind {
		case tenant.ResolvedRedirect:
			metricsvc.TenantResolutions.WithLabelValues("redirect").Inc()
			metricsvc.LegacyRedirects.Inc()
			return ctx.Redirect(http.StatusMovedPermanently, res.Location)
		default:
			metricsvc.TenantResolutions.WithLabelValues("not_found").Inc()
			return errHttpNotFound
		}
	}
}
