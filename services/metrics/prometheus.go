package metricsvc

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request-path counters exposed on the debug server.
var (
	// TenantResolutions counts path resolutions by outcome
	// (tenant, platform, redirect, not_found, fallback).
	TenantResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "darasa",
		Name:      "tenant_resolutions_total",
		Help:      "Path-to-organization resolutions by outcome.",
	}, []string{"outcome"})

	LegacyRedirects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "darasa",
		Name:      "legacy_redirects_total",
		Help:      "Permanent redirects served for retired /portal/{id} paths.",
	})

	GuardDenials = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "darasa",
		Name:      "guard_denials_total",
		Help:      "Requests turned away from protected routes for lack of a session.",
	})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "darasa",
		Name:      "logins_total",
		Help:      "Login attempts by result (ok, denied, throttled).",
	}, []string{"result"})
)

// Handler serves the scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
