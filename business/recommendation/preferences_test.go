//go:build !integration

package recommendation

import (
	"context"
	"math"
	"testing"

	"myStoreCloud/domain"
)

func preferenceRepos() (Repositories, *fakePrefs) {
	prefs := &fakePrefs{}

	p1, p2 := uint64(1), uint64(2)

	repos := emptyRepos()
	repos.Behavior = &fakeBehavior{
		events: []domain.BehaviorEvent{
			{CustomerID: ptr(9), Action: domain.ActionView, ProductID: &p1},
			{CustomerID: ptr(9), Action: domain.ActionPurchase, ProductID: &p1},
			{CustomerID: ptr(9), Action: domain.ActionView, ProductID: &p2},
			{CustomerID: ptr(9), Action: domain.ActionSearch, SearchQuery: "boots"},
		},
	}
	repos.Catalog = &fakeCatalog{
		forProducts: []domain.ProductCategoryMapping{
			{ProductID: 1, CategoryID: 10},
			{ProductID: 2, CategoryID: 20},
		},
		categories: []domain.Category{
			{CategoryID: 10, CategoryName: "Shoes"},
			{CategoryID: 20, CategoryName: "Hats"},
		},
	}
	repos.Prefs = prefs

	return repos, prefs
}

func TestUpdatePreferences_StrengthIsActivityFraction(t *testing.T) {
	repos, prefs := preferenceRepos()
	svc := newTestService(repos)

	if err := svc.UpdatePreferences(context.Background(), "acme", 9); err != nil {
		t.Fatal(err)
	}

	if len(prefs.upserts) != 2 {
		t.Fatalf("expected 2 upserts, got %d: %+v", len(prefs.upserts), prefs.upserts)
	}

	byValue := make(map[string]domain.CustomerPreference)
	for _, p := range prefs.upserts {
		byValue[p.PreferenceValue] = p
	}

	// 2 of 4 events touched Shoes, 1 of 4 touched Hats
	shoes, ok := byValue["Shoes"]
	if !ok || math.Abs(shoes.Strength-0.5) > 1e-9 {
		t.Errorf("expected Shoes strength 0.5, got %+v", shoes)
	}
	hats, ok := byValue["Hats"]
	if !ok || math.Abs(hats.Strength-0.25) > 1e-9 {
		t.Errorf("expected Hats strength 0.25, got %+v", hats)
	}

	for _, p := range prefs.upserts {
		if p.CustomerID != 9 || p.PreferenceType != preferenceTypeCategory {
			t.Errorf("unexpected preference row: %+v", p)
		}
	}
}

func TestUpdatePreferences_IdempotentValues(t *testing.T) {
	repos, prefs := preferenceRepos()
	svc := newTestService(repos)

	if err := svc.UpdatePreferences(context.Background(), "acme", 9); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdatePreferences(context.Background(), "acme", 9); err != nil {
		t.Fatal(err)
	}

	// The second run upserts the same values; the totals do not grow.
	if len(prefs.upserts) != 4 {
		t.Fatalf("expected 4 upsert calls over two runs, got %d", len(prefs.upserts))
	}

	first := prefs.upserts[:2]
	second := prefs.upserts[2:]

	firstByValue := make(map[string]float64)
	for _, p := range first {
		firstByValue[p.PreferenceValue] = p.Strength
	}
	for _, p := range second {
		if firstByValue[p.PreferenceValue] != p.Strength {
			t.Errorf("second run changed %q: %v != %v", p.PreferenceValue, p.Strength, firstByValue[p.PreferenceValue])
		}
	}
}

func TestUpdatePreferences_SkipsOrphanedCategories(t *testing.T) {
	repos, prefs := preferenceRepos()
	catalog := repos.Catalog.(*fakeCatalog)
	// category 20 no longer exists
	catalog.categories = []domain.Category{
		{CategoryID: 10, CategoryName: "Shoes"},
	}

	svc := newTestService(repos)

	if err := svc.UpdatePreferences(context.Background(), "acme", 9); err != nil {
		t.Fatal(err)
	}

	if len(prefs.upserts) != 1 || prefs.upserts[0].PreferenceValue != "Shoes" {
		t.Fatalf("expected only Shoes upserted, got %+v", prefs.upserts)
	}
}

func TestUpdatePreferences_NoEventsIsNoop(t *testing.T) {
	prefs := &fakePrefs{}
	repos := emptyRepos()
	repos.Prefs = prefs

	svc := newTestService(repos)

	if err := svc.UpdatePreferences(context.Background(), "acme", 9); err != nil {
		t.Fatal(err)
	}

	if len(prefs.upserts) != 0 {
		t.Fatalf("expected no upserts, got %+v", prefs.upserts)
	}
}

func TestUpdatePreferences_RequiresCustomer(t *testing.T) {
	svc := newTestService(emptyRepos())

	if err := svc.UpdatePreferences(context.Background(), "acme", 0); err == nil {
		t.Fatal("expected error for missing customer id")
	}
}
