package inmemdb

import (
	"sort"

	"github.com/darasahub/darasa/core/tenant"
)

type tenantRepository struct {
	db *DB
}

func NewTenantRepository(db *DB) tenant.Repository {
	return &tenantRepository{db: db}
}

func (repo *tenantRepository) QueryAllTenants() ([]tenant.Tenant, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tenants := make([]tenant.Tenant, 0, len(repo.db.tenants))
	for _, t := range repo.db.tenants {
		tenants = append(tenants, *t)
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].Key < tenants[j].Key })
	return tenants, nil
}

func (repo *tenantRepository) GetTenantByKey(key string) (tenant.Tenant, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if t, ok := repo.db.tenants[key]; ok {
		return *t, nil
	}
	return tenant.Tenant{}, tenant.ErrNotFound
}

func (repo *tenantRepository) GetTenantByLegacyID(id int) (tenant.Tenant, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, t := range repo.db.tenants {
		if t.LegacyID == id && id > 0 {
			return *t, nil
		}
	}
	return tenant.Tenant{}, tenant.ErrNotFound
}

func (repo *tenantRepository) UpdateTenant(t tenant.Tenant) (tenant.Tenant, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.tenants[t.Key]; !ok {
		return tenant.Tenant{}, tenant.ErrNotFound
	}
	repo.db.tenants[t.Key] = &t
	return t, nil
}

// CreateTenant is only used by fixtures; organizations are not created at runtime.
func (repo *tenantRepository) CreateTenant(t tenant.Tenant) (tenant.Tenant, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.tenants[t.Key] = &t
	return t, nil
}
