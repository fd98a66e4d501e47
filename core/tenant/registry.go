package tenant

import (
	"errors"
	"sync"
)

var (
	// errors
	ErrNotFound = errors.New("organization not found")
)

// Repository is the persistence contract for organizations.
// The shipped implementation is an in-memory table seeded at startup.
type Repository interface {
	QueryAllTenants() ([]Tenant, error)
	GetTenantByKey(key string) (Tenant, error)
	GetTenantByLegacyID(id int) (Tenant, error)
	UpdateTenant(t Tenant) (Tenant, error)
}

// Registry resolves tenant keys and legacy ids to organizations.
// Lookups run against an immutable snapshot of the repository; the snapshot is
// rebuilt only when an organization is edited (Reload), so the read path never
// touches the repository.
type Registry struct {
	repo Repository

	mutex      sync.RWMutex
	byKey      map[string]Tenant
	byLegacyID map[int]Tenant
	deflt      Tenant
}

func NewRegistry(repo Repository) (*Registry, error) {
	reg := &Registry{repo: repo}
	if err := reg.Reload(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Reload rebuilds the lookup snapshot from the repository.
func (reg *Registry) Reload() error {
	tenants, err := reg.repo.QueryAllTenants()
	if err != nil {
		return err
	}

	byKey := make(map[string]Tenant, len(tenants))
	byLegacyID := make(map[int]Tenant, len(tenants))
	deflt := Platform()
	for _, t := range tenants {
		byKey[t.Key] = t
		if t.LegacyID > 0 {
			byLegacyID[t.LegacyID] = t
		}
		if t.IsPlatform() {
			deflt = t
		}
	}

	reg.mutex.Lock()
	reg.byKey = byKey
	reg.byLegacyID = byLegacyID
	reg.deflt = deflt
	reg.mutex.Unlock()
	return nil
}

// Lookup returns the organization registered under key, falling back to the
// platform tenant for unknown keys so that shared pages (home, login, pricing)
// still render branded chrome.
func (reg *Registry) Lookup(key string) Tenant {
	if t, err := reg.LookupStrict(key); err == nil {
		return t
	}
	return reg.Default()
}

// LookupStrict returns the organization registered under key, or ErrNotFound.
// The path resolver uses this to tell tenant slugs from platform routes.
func (reg *Registry) LookupStrict(key string) (Tenant, error) {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	if t, ok := reg.byKey[key]; ok {
		return t, nil
	}
	return Tenant{}, ErrNotFound
}

// LookupByLegacyID returns the organization that owned the given id under the
// retired /portal/{id} URL scheme, or ErrNotFound for unmapped ids.
func (reg *Registry) LookupByLegacyID(id int) (Tenant, error) {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	if t, ok := reg.byLegacyID[id]; ok {
		return t, nil
	}
	return Tenant{}, ErrNotFound
}

// Default returns the platform's own tenant.
func (reg *Registry) Default() Tenant {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	return reg.deflt
}

// All returns every registered organization, platform tenant included.
func (reg *Registry) All() []Tenant {
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()

	tenants := make([]Tenant, 0, len(reg.byKey))
	for _, t := range reg.byKey {
		tenants = append(tenants, t)
	}
	return tenants
}
