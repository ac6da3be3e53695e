//go:build !integration

package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"myStoreCloud/domain"
	"myStoreCloud/pkg/config"

	"gorm.io/gorm"
)

type fakeDirectory struct {
	stores map[string]domain.Store
	err    error
}

func (f *fakeDirectory) FindActiveBySubdomain(ctx context.Context, subdomain string) (domain.Store, error) {
	if f.err != nil {
		return domain.Store{}, f.err
	}
	store, ok := f.stores[subdomain]
	if !ok {
		return domain.Store{}, gorm.ErrRecordNotFound
	}
	return store, nil
}

func newTestRegistry(directory StoreDirectory, opens *int64) *TenantRegistry {
	open := func(dsn string) (*gorm.DB, error) {
		if opens != nil {
			atomic.AddInt64(opens, 1)
		}
		return &gorm.DB{}, nil
	}
	return NewTenantRegistry(&config.Config{}, directory, open)
}

func TestResolve_OpensAndCachesHandle(t *testing.T) {
	var opens int64
	registry := newTestRegistry(&fakeDirectory{stores: map[string]domain.Store{
		"alice": {ID: 1, Subdomain: "alice", DatabaseName: "tenant_alice"},
	}}, &opens)

	first, err := registry.Resolve(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	second, err := registry.Resolve(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("repeated resolutions must return the cached handle")
	}
	if opens != 1 {
		t.Errorf("expected exactly one open, got %d", opens)
	}
}

func TestResolve_UnknownTenant(t *testing.T) {
	registry := newTestRegistry(&fakeDirectory{stores: map[string]domain.Store{}}, nil)

	_, err := registry.Resolve(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestResolve_EmptyTenant(t *testing.T) {
	registry := newTestRegistry(&fakeDirectory{}, nil)

	_, err := registry.Resolve(context.Background(), "")
	if !errors.Is(err, domain.ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestResolve_DirectoryFailureSurfaces(t *testing.T) {
	registry := newTestRegistry(&fakeDirectory{err: errors.New("control plane down")}, nil)

	_, err := registry.Resolve(context.Background(), "alice")
	if err == nil {
		t.Fatal("expected lookup error to surface")
	}
	if errors.Is(err, domain.ErrTenantNotFound) {
		t.Fatal("a real lookup failure must not masquerade as tenant-not-found")
	}
}

func TestResolve_ConcurrentFirstUseOpensOnce(t *testing.T) {
	var opens int64
	registry := newTestRegistry(&fakeDirectory{stores: map[string]domain.Store{
		"alice": {ID: 1, Subdomain: "alice", DatabaseName: "tenant_alice"},
	}}, &opens)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := registry.Resolve(context.Background(), "alice"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if opens != 1 {
		t.Errorf("expected exactly one open under contention, got %d", opens)
	}
}

func TestResolve_DistinctTenantsGetDistinctHandles(t *testing.T) {
	var opens int64
	registry := newTestRegistry(&fakeDirectory{stores: map[string]domain.Store{
		"alice": {ID: 1, Subdomain: "alice", DatabaseName: "tenant_alice"},
		"bob":   {ID: 2, Subdomain: "bob", DatabaseName: "tenant_bob"},
	}}, &opens)

	alice, err := registry.Resolve(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	bob, err := registry.Resolve(context.Background(), "bob")
	if err != nil {
		t.Fatal(err)
	}

	if alice == bob {
		t.Error("tenants must not share a handle")
	}
	if opens != 2 {
		t.Errorf("expected two opens, got %d", opens)
	}
}
