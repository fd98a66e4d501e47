package tenant

import (
	"sort"
	"time"
)

type (
	// ServiceInterface is what the super-admin organization screens consume.
	ServiceInterface interface {
		Query() ([]Tenant, error)
		GetByKey(key string) (Tenant, error)
		Update(key string, ut UpdateTenant) (Tenant, error)
	}

	service struct {
		repo     Repository
		registry *Registry
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, registry *Registry) ServiceInterface {
	return &service{repo: repo, registry: registry}
}

func (svc *service) Query() ([]Tenant, error) {
	tenants, err := svc.repo.QueryAllTenants()
	if err != nil {
		return nil, err
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].Key < tenants[j].Key })
	return tenants, nil
}

func (svc *service) GetByKey(key string) (Tenant, error) {
	return svc.repo.GetTenantByKey(key)
}

// Update modifies an organization's presentation metadata and refreshes the
// registry snapshot so subsequent resolutions see the new branding.
func (svc *service) Update(key string, ut UpdateTenant) (Tenant, error) {
	t, err := svc.repo.GetTenantByKey(key)
	if err != nil {
		return Tenant{}, err
	}

	if ut.Name != "" {
		t.Name = ut.Name
	}
	if ut.Acronym != "" {
		t.Acronym = ut.Acronym
	}
	if ut.Location != "" {
		t.Location = ut.Location
	}
	if ut.Plan != "" {
		t.Plan = ut.Plan
	}
	if ut.PrimaryColor != "" {
		t.Branding.PrimaryColor = ut.PrimaryColor
	}
	if ut.SecondaryColor != "" {
		t.Branding.SecondaryColor = ut.SecondaryColor
	}
	if ut.LogoURL != "" {
		t.Branding.LogoURL = ut.LogoURL
	}
	if ut.HeaderImageURL != "" {
		t.Branding.HeaderImageURL = ut.HeaderImageURL
	}
	t.UpdatedAt = time.Now().UTC()

	t, err = svc.repo.UpdateTenant(t)
	if err != nil {
		return Tenant{}, err
	}
	if err = svc.registry.Reload(); err != nil {
		return Tenant{}, err
	}
	return t, nil
}
