package tenant

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Resolution outcomes, evaluated in the fixed order Legacy -> Known -> Unknown.
const (
	// ResolvedTenant: the first path segment is a registered tenant key.
	ResolvedTenant ResolutionKind = iota
	// ResolvedPlatform: no tenant key matched; the path is a platform-level route.
	ResolvedPlatform
	// ResolvedRedirect: a legacy /portal/{id} path; must be answered with a
	// permanent redirect, never served in place.
	ResolvedRedirect
	// ResolvedNotFound: a legacy id with no registry mapping.
	ResolvedNotFound
)

type (
	ResolutionKind int

	// Resolution is the ephemeral, per-navigation outcome of path resolution.
	Resolution struct {
		Kind      ResolutionKind
		Tenant    Tenant // set when Kind == ResolvedTenant
		Remainder string // sub-path after the tenant key; "/" when none
		Location  string // redirect target, set when Kind == ResolvedRedirect
	}

	// Resolver derives the owning organization from a URL path.
	Resolver struct {
		registry    *Registry
		legacyPaths map[string]string
	}
)

// DefaultLegacyPaths maps the first sub-path segment of a legacy
// /portal/{id}/... URL to its slug-based equivalent. Data-driven so new
// sub-paths need a table entry, not new branching code. The empty key is the
// fallback target for legacy paths with no (or an unmapped) sub-path.
var DefaultLegacyPaths = map[string]string{
	"":             "/%s/dashboard",
	"dashboard":    "/%s/dashboard",
	"courses":      "/%s/courses",
	"students":     "/%s/students",
	"instructors":  "/%s/instructors",
	"certificates": "/%s/certificates",
	"analytics":    "/%s/analytics",
	"reports":      "/%s/reports",
	"settings":     "/%s/settings",
}

func NewResolver(reg *Registry, legacyPaths ...map[string]string) *Resolver {
	paths := DefaultLegacyPaths
	if len(legacyPaths) > 0 {
		paths = legacyPaths[0]
	}
	return &Resolver{registry: reg, legacyPaths: paths}
}

// Resolve determines which organization owns the given path.
// It is pure: resolving the same path twice against an unchanged registry
// yields the same Resolution. Malformed paths (empty, only slashes, bad
// escapes) resolve to the platform rather than failing.
func (r *Resolver) Resolve(path string) Resolution {
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}

	segs := splitPath(path)
	if len(segs) == 0 {
		return Resolution{Kind: ResolvedPlatform, Remainder: "/"}
	}

	// legacy numeric paths take precedence: some ids could otherwise be
	// mistaken for slugs by a loosely configured registry
	if segs[0] == "portal" {
		return r.resolveLegacy(segs[1:])
	}

	if t, err := r.registry.LookupStrict(segs[0]); err == nil {
		return Resolution{Kind: ResolvedTenant, Tenant: t, Remainder: "/" + strings.Join(segs[1:], "/")}
	}

	return Resolution{Kind: ResolvedPlatform, Remainder: "/" + strings.Join(segs, "/")}
}

// resolveLegacy maps /portal/{id}/... to a permanent redirect target.
// A mapped sub-path keeps any deeper segments; an unmapped one falls back to
// the tenant's dashboard root. Unknown ids are not-found, never a crash.
func (r *Resolver) resolveLegacy(segs []string) Resolution {
	if len(segs) == 0 {
		return Resolution{Kind: ResolvedNotFound}
	}

	id, err := strconv.Atoi(segs[0])
	if err != nil || id <= 0 {
		return Resolution{Kind: ResolvedNotFound}
	}
	t, err := r.registry.LookupByLegacyID(id)
	if err != nil {
		return Resolution{Kind: ResolvedNotFound}
	}

	var sub string
	if len(segs) > 1 {
		sub = segs[1]
	}
	tmpl, ok := r.legacyPaths[sub]
	if !ok {
		tmpl = r.legacyPaths[""]
	}

	loc := fmt.Sprintf(tmpl, t.Key)
	if ok && len(segs) > 2 {
		loc += "/" + strings.Join(segs[2:], "/")
	}
	return Resolution{Kind: ResolvedRedirect, Location: loc}
}

func splitPath(path string) []string {
	segs := make([]string, 0, 4)
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
