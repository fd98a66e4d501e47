package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahub/darasa/core/tenant"
	"github.com/darasahub/darasa/core/user"
)

type (
	// Branding is the organization's visual identity as sent to clients.
	// It comes from the registry only; page bodies cannot override it.
	Branding struct {
		Name           string `json:"name"`
		Acronym        string `json:"acronym"`
		PrimaryColor   string `json:"primary_color"`
		SecondaryColor string `json:"secondary_color"`
		LogoURL        string `json:"logo_url"`
		HeaderImageURL string `json:"header_image_url"`
	}

	SessionUser struct {
		ID        int      `json:"id"`
		Name      string   `json:"name"`
		Username  string   `json:"username"`
		Email     string   `json:"email"`
		TenantKey string   `json:"tenant_key,omitempty"`
		Roles     []string `json:"roles"`
	}

	// PageResponse is the shell envelope wrapping every page body: which chrome
	// variant to render, whose branding, who is signed in and the page's own data.
	PageResponse struct {
		Shell    user.Shell   `json:"shell"`
		Branding Branding     `json:"branding"`
		User     *SessionUser `json:"user,omitempty"`
		Page     string       `json:"page"`
		Data     interface{}  `json:"data,omitempty"`
	}
)

func brandingFor(t tenant.Tenant) Branding {
	return Branding{
		Name:           t.Name,
		Acronym:        t.Acronym,
		PrimaryColor:   t.Branding.PrimaryColor,
		SecondaryColor: t.Branding.SecondaryColor,
		LogoURL:        t.Branding.LogoURL,
		HeaderImageURL: t.Branding.HeaderImageURL,
	}
}

// renderPage wraps a page body in the shell envelope. The chrome variant is a
// pure function of the visitor's roles; anonymous visitors get the learner
// chrome. The owning organization must have been set by a tenant middleware.
func renderPage(ctx echo.Context, page string, data interface{}) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context tenant")
	}

	res := PageResponse{
		Shell:    user.ShellForRoles(nil),
		Branding: brandingFor(t),
		Page:     page,
		Data:     data,
	}
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		res.Shell = usr.Shell()
		res.User = &SessionUser{
			ID:        usr.ID,
			Name:      usr.Name,
			Username:  usr.Username,
			Email:     usr.Email,
			TenantKey: usr.TenantKey,
			Roles:     usr.Roles,
		}
	}
	return ctx.JSON(http.StatusOK, res)
}
