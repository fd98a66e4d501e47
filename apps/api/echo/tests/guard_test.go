package tests

import (
	"net/http"
	"testing"
)

func Test_guardRedirectsAnonymousBrowsers(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		wantLocation string
	}{
		{name: "platform dashboard", path: "/dashboard", wantLocation: "/login?next=%2Fdashboard"},
		{name: "org dashboard", path: "/stanford/dashboard", wantLocation: "/login?next=%2Fstanford%2Fdashboard"},
		{name: "learner screen", path: "/stanford/learner/courses", wantLocation: "/login?next=%2Fstanford%2Flearner%2Fcourses"},
		{name: "query string preserved", path: "/stanford/courses?status=published", wantLocation: "/login?next=%2Fstanford%2Fcourses%3Fstatus%3Dpublished"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			req.Header.Del("Content-Type") // a plain browser navigation
			app.ServeHTTP(rec, req)

			if rec.Code != http.StatusFound {
				t.Errorf("code = %v; want %v", rec.Code, http.StatusFound)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Location = %q; want %q", loc, tt.wantLocation)
			}
		})
	}
}

func Test_guardRejectsAnonymousAPIClients(t *testing.T) {
	wantData := marchallObj(t, errNotAuthenticated)

	// API prefix is enough
	req, rec := newRequest(http.MethodGet, "/v1/users/roles")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: wantData}, rec)

	// so is an Accept header asking for JSON
	req, rec = newRequest(http.MethodGet, "/stanford/dashboard")
	req.Header.Set("Accept", "application/json")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: wantData}, rec)
}

func Test_guardLetsSessionsThrough(t *testing.T) {
	carol := getUser(t, "carolbanza")
	token := getToken(t, carol)

	// bearer header
	req, rec := newAuthRequest(http.MethodGet, "/stanford/learner/dashboard", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	// session cookie
	req, rec = newRequest(http.MethodGet, "/stanford/learner/dashboard")
	req.AddCookie(&http.Cookie{Name: "darasa_session", Value: token})
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	// a garbage token is just an anonymous visitor
	req, rec = newRequest(http.MethodGet, "/stanford/learner/dashboard")
	req.AddCookie(&http.Cookie{Name: "darasa_session", Value: "lol.nope.nada"})
	req.Header.Del("Content-Type")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Errorf("code = %v; want %v", rec.Code, http.StatusFound)
	}
}

func Test_superAdminScreensAreFenced(t *testing.T) {
	wantForbidden := marchallObj(t, httpErr{Error: "permission denied"})

	tests := []httpTest{
		{name: "super admin allowed", token: getToken(t, getUser(t, "rootadmin")), wantCode: http.StatusOK},
		{name: "org admin denied", token: getToken(t, getUser(t, "alicecarter")), wantCode: http.StatusForbidden, wantData: wantForbidden},
		{name: "instructor denied", token: getToken(t, getUser(t, "bobmwangi")), wantCode: http.StatusForbidden, wantData: wantForbidden},
		{name: "learner denied", token: getToken(t, getUser(t, "carolbanza")), wantCode: http.StatusForbidden, wantData: wantForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/super-admin/organizations", tt.token)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("code = %v; want %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantData != nil {
				checkCodeAndData(t, tt, rec)
			}
		})
	}
}
