//go:build !integration

package recommendation

import (
	"context"
	"math"
	"testing"
	"time"

	"myStoreCloud/domain"
)

// hybridRepos sets up a tenant where the identified customer has both a
// purchase history (feeding collaborative) and a view history (feeding
// recently viewed), with product 1 appearing in both.
func hybridRepos() Repositories {
	now := time.Now()

	repos := emptyRepos()
	repos.Behavior = &fakeBehavior{
		purchased: []uint64{100, 101},
		purchasers: []domain.PurchasePair{
			{CustomerID: 2, ProductID: 100},
			{CustomerID: 2, ProductID: 101},
		},
		byCustomers: []domain.PurchasePair{
			{CustomerID: 2, ProductID: 1},
		},
	}
	repos.Views = &fakeViews{views: []domain.ProductView{
		{ProductID: 1, SessionID: "s1", CreatedAt: now},
		{ProductID: 2, SessionID: "s1", CreatedAt: now.Add(-1 * time.Minute)},
	}}
	return repos
}

func TestHybrid_MergesOverlappingProducts(t *testing.T) {
	repos := hybridRepos()
	svc := newTestService(repos)

	results, err := svc.Generate(context.Background(), Request{
		TenantID:   "acme",
		SessionID:  "s1",
		CustomerID: ptr(1),
		Limit:      10,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}

	// product 1: collaborative 0.1*0.4 + recently viewed 0.9*0.1 = 0.13
	if results[0].ProductID != 1 {
		t.Fatalf("expected product 1 first, got %d", results[0].ProductID)
	}
	if math.Abs(results[0].Score-0.13) > 1e-9 {
		t.Errorf("expected merged score 0.13, got %v", results[0].Score)
	}
	if results[0].Type != domain.TypeHybrid {
		t.Errorf("multi-strategy product must be typed %q, got %q", domain.TypeHybrid, results[0].Type)
	}
	if len(results[0].Reasons) != 2 {
		t.Errorf("expected the union of both reasons, got %v", results[0].Reasons)
	}

	// product 2: recently viewed only, 0.8*0.1 = 0.08
	if results[1].ProductID != 2 {
		t.Fatalf("expected product 2 second, got %d", results[1].ProductID)
	}
	if math.Abs(results[1].Score-0.08) > 1e-9 {
		t.Errorf("expected score 0.08, got %v", results[1].Score)
	}
	if results[1].Type != domain.TypeRecentlyViewed {
		t.Errorf("single-strategy product keeps its own type, got %q", results[1].Type)
	}
}

func TestHybrid_FailingStrategyContributesNothing(t *testing.T) {
	now := time.Now()

	repos := hybridRepos()
	repos.Behavior = &fakeBehavior{
		purchasedErr: errTest,
		// trending still works
		actionCounts: []domain.ProductActionCount{
			{ProductID: 3, Action: domain.ActionView, Count: 5},
		},
	}
	repos.Views = &fakeViews{views: []domain.ProductView{
		{ProductID: 2, SessionID: "s1", CreatedAt: now},
	}}

	svc := newTestService(repos)

	results, err := svc.Generate(context.Background(), Request{
		TenantID:   "acme",
		SessionID:  "s1",
		CustomerID: ptr(1),
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("one failing strategy must not fail the blend: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected trending and recently viewed to survive, got %+v", results)
	}
}

func TestHybrid_HonorsLimit(t *testing.T) {
	repos := hybridRepos()
	svc := newTestService(repos)

	results, err := svc.Generate(context.Background(), Request{
		TenantID:   "acme",
		SessionID:  "s1",
		CustomerID: ptr(1),
		Limit:      1,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}
	if results[0].ProductID != 1 {
		t.Errorf("expected the top merged product to survive the cut, got %d", results[0].ProductID)
	}
}

func TestHybrid_RespectsExclusions(t *testing.T) {
	repos := hybridRepos()
	svc := newTestService(repos)

	results, err := svc.Generate(context.Background(), Request{
		TenantID:          "acme",
		SessionID:         "s1",
		CustomerID:        ptr(1),
		Limit:             10,
		ExcludeProductIDs: []uint64{1},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range results {
		if r.ProductID == 1 {
			t.Fatalf("excluded product leaked into results: %+v", results)
		}
	}
}
