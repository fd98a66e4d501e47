package tenant

import (
	"testing"
)

// staticRepo serves a fixed tenant table; enough for registry and resolver tests.
type staticRepo struct {
	tenants []Tenant
}

func (r *staticRepo) QueryAllTenants() ([]Tenant, error) { return r.tenants, nil }

func (r *staticRepo) GetTenantByKey(key string) (Tenant, error) {
	for _, t := range r.tenants {
		if t.Key == key {
			return t, nil
		}
	}
	return Tenant{}, ErrNotFound
}

func (r *staticRepo) GetTenantByLegacyID(id int) (Tenant, error) {
	for _, t := range r.tenants {
		if t.LegacyID == id && id > 0 {
			return t, nil
		}
	}
	return Tenant{}, ErrNotFound
}

func (r *staticRepo) UpdateTenant(t Tenant) (Tenant, error) {
	for i, orig := range r.tenants {
		if orig.Key == t.Key {
			r.tenants[i] = t
			return t, nil
		}
	}
	return Tenant{}, ErrNotFound
}

func newTestRegistry(t *testing.T) (*Registry, *staticRepo) {
	t.Helper()
	repo := &staticRepo{tenants: Defaults()}
	reg, err := NewRegistry(repo)
	if err != nil {
		t.Fatalf("NewRegistry() failed: %v", err)
	}
	return reg, repo
}

func TestRegistryLookupFallsBackToPlatform(t *testing.T) {
	reg, _ := newTestRegistry(t)

	for _, key := range []string{"nope", "", "STANFORD", "portal"} {
		got := reg.Lookup(key)
		if got.Key != PlatformKey {
			t.Errorf("Lookup(%q).Key = %q, want %q", key, got.Key, PlatformKey)
		}
		// fallback must still render branded chrome
		b := got.Branding
		if b.PrimaryColor == "" || b.SecondaryColor == "" || b.LogoURL == "" || b.HeaderImageURL == "" {
			t.Errorf("Lookup(%q) returned blank branding: %+v", key, b)
		}
	}
}

func TestRegistryLookupStrict(t *testing.T) {
	reg, _ := newTestRegistry(t)

	if got, err := reg.LookupStrict("stanford"); err != nil || got.Key != "stanford" {
		t.Errorf("LookupStrict(stanford) = (%v, %v)", got.Key, err)
	}
	if _, err := reg.LookupStrict("nope"); err != ErrNotFound {
		t.Errorf("LookupStrict(nope) error = %v, want ErrNotFound", err)
	}
}

func TestRegistryLookupByLegacyID(t *testing.T) {
	reg, _ := newTestRegistry(t)

	// every seeded legacy id must round-trip to its organization
	for _, seeded := range Defaults() {
		if seeded.LegacyID == 0 {
			continue
		}
		got, err := reg.LookupByLegacyID(seeded.LegacyID)
		if err != nil {
			t.Fatalf("LookupByLegacyID(%d) failed: %v", seeded.LegacyID, err)
		}
		if got.Key != seeded.Key {
			t.Errorf("LookupByLegacyID(%d).Key = %q, want %q", seeded.LegacyID, got.Key, seeded.Key)
		}
	}

	if _, err := reg.LookupByLegacyID(99); err != ErrNotFound {
		t.Errorf("LookupByLegacyID(99) error = %v, want ErrNotFound", err)
	}
	if _, err := reg.LookupByLegacyID(0); err != ErrNotFound {
		t.Errorf("LookupByLegacyID(0) error = %v, want ErrNotFound", err)
	}
}

func TestRegistryReload(t *testing.T) {
	reg, repo := newTestRegistry(t)

	updated, err := repo.GetTenantByKey("mit")
	if err != nil {
		t.Fatalf("GetTenantByKey() failed: %v", err)
	}
	updated.Name = "MIT (renamed)"
	if _, err = repo.UpdateTenant(updated); err != nil {
		t.Fatalf("UpdateTenant() failed: %v", err)
	}

	// snapshot is immutable until reloaded
	if got := reg.Lookup("mit"); got.Name == updated.Name {
		t.Error("Lookup() saw the update before Reload()")
	}
	if err = reg.Reload(); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}
	if got := reg.Lookup("mit"); got.Name != updated.Name {
		t.Errorf("Lookup().Name = %q after Reload(), want %q", got.Name, updated.Name)
	}
}

func TestRegistryAll(t *testing.T) {
	reg, _ := newTestRegistry(t)

	all := reg.All()
	if len(all) != len(Defaults()) {
		t.Errorf("All() returned %d tenants, want %d", len(all), len(Defaults()))
	}
}
