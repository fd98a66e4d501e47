package tenant

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/darasahub/darasa/core"
)

// Plan tiers
const (
	PlanTrial        = "trial"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

var PlanTiers = []string{PlanTrial, PlanProfessional, PlanEnterprise}

// Branding is the per-organization visual customization applied uniformly
// across that organization's pages. Read-only to pages.
type Branding struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	LogoURL        string `json:"logo_url"`
	HeaderImageURL string `json:"header_image_url"`
}

// Tenant represents one organization/customer using the platform,
// identified by a URL slug (Key). LegacyID is the integer identifier from
// the retired /portal/{id} URL scheme, kept only for redirect compatibility.
type Tenant struct {
	Key       string    `json:"key"`
	LegacyID  int       `json:"legacy_id,omitempty"`
	Name      string    `json:"name"`
	Acronym   string    `json:"acronym"`
	Location  string    `json:"location"`
	Plan      string    `json:"plan"`
	Branding  Branding  `json:"branding"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// IsPlatform reports whether this is the platform's own tenant,
// the fallback used for non-tenant pages.
func (t Tenant) IsPlatform() bool {
	return t.Key == PlatformKey
}

// UpdateTenant defines what presentation metadata a super admin may modify.
// The Key and LegacyID of an organization are immutable.
type UpdateTenant struct {
	Name           string `json:"name"`
	Acronym        string `json:"acronym" validate:"omitempty,uppercase"`
	Location       string `json:"location"`
	Plan           string `json:"plan" validate:"omitempty,oneof=trial professional enterprise"`
	PrimaryColor   string `json:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor string `json:"secondary_color" validate:"omitempty,hexcolor"`
	LogoURL        string `json:"logo_url" validate:"omitempty,uri"`
	HeaderImageURL string `json:"header_image_url" validate:"omitempty,uri"`
}

func (ut *UpdateTenant) Validate(validate *validator.Validate) error {
	ut.Name = core.CleanString(ut.Name)
	ut.Acronym = core.CleanString(ut.Acronym)
	ut.Location = core.CleanString(ut.Location)
	ut.Plan = core.CleanString(ut.Plan, true /* lower */)
	return validate.Struct(ut)
}

// InitValidators registers tenant-specific validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterCustomTranslation(validate, translator, "uppercase", "must be all uppercase")
	core.RegisterCustomTranslation(validate, translator, "hexcolor", "must be a hex color such as #8C1515")
	core.RegisterCustomTranslation(validate, translator, "oneof", "invalid choice")
}
