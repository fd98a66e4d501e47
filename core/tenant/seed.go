package tenant

import "time"

// PlatformKey is the slug of the platform's own tenant, used as the fallback
// for unknown keys and for non-tenant pages.
const PlatformKey = "darasa"

// Platform returns the platform tenant with its own branding.
// Branding fields are always non-empty so pages never render a blank chrome.
func Platform() Tenant {
	return Tenant{
		Key:      PlatformKey,
		Name:     "Darasa",
		Acronym:  "DARASA",
		Location: "Remote",
		Plan:     PlanEnterprise,
		Branding: Branding{
			PrimaryColor:   "#1D4ED8",
			SecondaryColor: "#0F172A",
			LogoURL:        "/static/darasa/logo.svg",
			HeaderImageURL: "/static/darasa/header.jpg",
		},
	}
}

// Defaults is the static organization table loaded at process start.
// Keys double as the first URL path segment of each organization's portal;
// legacy ids come from the retired /portal/{id} scheme.
func Defaults() []Tenant {
	now := time.Now().UTC()
	tenants := []Tenant{
		Platform(),
		{
			Key:      "stanford",
			LegacyID: 1,
			Name:     "Stanford University",
			Acronym:  "SU",
			Location: "Stanford, CA",
			Plan:     PlanEnterprise,
			Branding: Branding{
				PrimaryColor:   "#8C1515",
				SecondaryColor: "#2E2D29",
				LogoURL:        "/static/orgs/stanford/logo.png",
				HeaderImageURL: "/static/orgs/stanford/header.jpg",
			},
		},
		{
			Key:      "mit",
			LegacyID: 2,
			Name:     "Massachusetts Institute of Technology",
			Acronym:  "MIT",
			Location: "Cambridge, MA",
			Plan:     PlanEnterprise,
			Branding: Branding{
				PrimaryColor:   "#A31F34",
				SecondaryColor: "#8A8B8C",
				LogoURL:        "/static/orgs/mit/logo.png",
				HeaderImageURL: "/static/orgs/mit/header.jpg",
			},
		},
		{
			Key:      "makerere",
			LegacyID: 3,
			Name:     "Makerere University",
			Acronym:  "MAK",
			Location: "Kampala, Uganda",
			Plan:     PlanProfessional,
			Branding: Branding{
				PrimaryColor:   "#006341",
				SecondaryColor: "#C8102E",
				LogoURL:        "/static/orgs/makerere/logo.png",
				HeaderImageURL: "/static/orgs/makerere/header.jpg",
			},
		},
		{
			Key:      "unikin",
			LegacyID: 4,
			Name:     "Université de Kinshasa",
			Acronym:  "UNIKIN",
			Location: "Kinshasa, DRC",
			Plan:     PlanTrial,
			Branding: Branding{
				PrimaryColor:   "#003DA5",
				SecondaryColor: "#FFD100",
				LogoURL:        "/static/orgs/unikin/logo.png",
				HeaderImageURL: "/static/orgs/unikin/header.jpg",
			},
		},
	}
	for i := range tenants {
		tenants[i].CreatedAt = now
		tenants[i].UpdatedAt = now
	}
	return tenants
}
