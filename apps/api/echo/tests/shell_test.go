package tests

import (
	"net/http"
	"testing"
)

func Test_shellFollowsRoles(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		path      string
		wantShell string
		wantPage  string
	}{
		{name: "learner gets learner chrome", username: "carolbanza", path: "/stanford/learner/dashboard", wantShell: "learner", wantPage: "learner/dashboard"},
		{name: "instructor gets admin chrome", username: "bobmwangi", path: "/stanford/dashboard", wantShell: "admin", wantPage: "org/dashboard"},
		{name: "org admin gets admin chrome", username: "alicecarter", path: "/stanford/courses", wantShell: "admin", wantPage: "org/courses"},
		{name: "super admin gets admin chrome", username: "rootadmin", path: "/dashboard", wantShell: "admin", wantPage: "dashboard"},
		{name: "multi-role user gets admin chrome", username: "davidokoth", path: "/mit/dashboard", wantShell: "admin", wantPage: "org/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr := getUser(t, tt.username)
			req, rec := newAuthRequest(http.MethodGet, tt.path, getToken(t, usr))
			app.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
			}
			page := decodePage(t, rec)
			if string(page.Shell) != tt.wantShell {
				t.Errorf("shell = %q; want %q", page.Shell, tt.wantShell)
			}
			if page.Page != tt.wantPage {
				t.Errorf("page = %q; want %q", page.Page, tt.wantPage)
			}
			if page.User == nil || page.User.Username != tt.username {
				t.Errorf("user = %+v; want %q", page.User, tt.username)
			}
		})
	}
}

func Test_learnerDashboardData(t *testing.T) {
	carol := getUser(t, "carolbanza")
	req, rec := newAuthRequest(http.MethodGet, "/stanford/learner/dashboard", getToken(t, carol))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	page := decodePage(t, rec)
	data, ok := page.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T; want object", page.Data)
	}
	if got, _ := data["enrolled_count"].(float64); got != 2 {
		t.Errorf("enrolled_count = %v; want 2", got)
	}
	if got, _ := data["completed_count"].(float64); got != 1 {
		t.Errorf("completed_count = %v; want 1", got)
	}
}

func Test_orgScreensUseTheOrgBranding(t *testing.T) {
	esther := getUser(t, "esthernala")
	req, rec := newAuthRequest(http.MethodGet, "/mit/learner/courses", getToken(t, esther))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	page := decodePage(t, rec)
	if page.Branding.Acronym != "MIT" {
		t.Errorf("branding.acronym = %q; want %q", page.Branding.Acronym, "MIT")
	}
	if page.Branding.PrimaryColor != "#A31F34" {
		t.Errorf("branding.primary_color = %q; want %q", page.Branding.PrimaryColor, "#A31F34")
	}
}

func Test_courseDetailIsTenantScoped(t *testing.T) {
	alice := getUser(t, "alicecarter")
	token := getToken(t, alice)

	// a stanford course under the stanford portal
	req, rec := newAuthRequest(http.MethodGet, "/stanford/courses/1", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	// an mit course under the stanford portal does not exist
	req, rec = newAuthRequest(http.MethodGet, "/stanford/courses/4", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
}

func Test_courseSubScreens(t *testing.T) {
	token := getToken(t, getUser(t, "alicecarter"))

	tests := []struct {
		name     string
		path     string
		wantPage string
	}{
		{name: "edit", path: "/stanford/courses/1/edit", wantPage: "org/course-edit"},
		{name: "settings", path: "/stanford/courses/1/settings", wantPage: "org/course-settings"},
		{name: "analytics", path: "/stanford/courses/1/analytics", wantPage: "org/course-analytics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			app.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
			}
			page := decodePage(t, rec)
			if page.Page != tt.wantPage {
				t.Errorf("page = %q; want %q", page.Page, tt.wantPage)
			}
		})
	}

	// sub-screens are tenant-scoped like the detail page
	req, rec := newAuthRequest(http.MethodGet, "/stanford/courses/4/analytics", token)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
}
