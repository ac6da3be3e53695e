//go:build !integration

package recommendation

import (
	"context"
	"testing"

	"myStoreCloud/domain"
)

func TestCollaborative_AnonymousVisitorGetsNothing(t *testing.T) {
	svc := newTestService(emptyRepos())

	results, err := svc.collaborative(context.Background(), emptyRepos(), Request{SessionID: "s1"}, 10, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results for anonymous visitor, got %d", len(results))
	}
}

func TestCollaborative_SingleOverlapIsIgnored(t *testing.T) {
	repos := emptyRepos()
	repos.Behavior = &fakeBehavior{
		purchased: []uint64{10, 11},
		// customer 3 shares only one product, below the overlap floor
		purchasers: []domain.PurchasePair{
			{CustomerID: 3, ProductID: 10},
		},
		byCustomers: []domain.PurchasePair{
			{CustomerID: 3, ProductID: 20},
		},
	}

	svc := newTestService(repos)

	results, err := svc.collaborative(context.Background(), repos, Request{CustomerID: ptr(1), SessionID: "s1"}, 10, map[uint64]struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %+v", results)
	}
}

func TestCollaborative_ScoreScalesWithPurchaseCount(t *testing.T) {
	// Customers 2 and 3 each share two purchases with the target. Both
	// bought product 20; only customer 2 bought product 21.
	repos := emptyRepos()
	repos.Behavior = &fakeBehavior{
		purchased: []uint64{10, 11},
		purchasers: []domain.PurchasePair{
			{CustomerID: 2, ProductID: 10},
			{CustomerID: 2, ProductID: 11},
			{CustomerID: 3, ProductID: 10},
			{CustomerID: 3, ProductID: 11},
		},
		byCustomers: []domain.PurchasePair{
			{CustomerID: 2, ProductID: 20},
			{CustomerID: 3, ProductID: 20},
			{CustomerID: 2, ProductID: 21},
			// already owned, must not come back
			{CustomerID: 2, ProductID: 10},
		},
	}

	svc := newTestService(repos)

	results, err := svc.collaborative(context.Background(), repos, Request{CustomerID: ptr(1), SessionID: "s1"}, 10, map[uint64]struct{}{})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}

	if results[0].ProductID != 20 || results[0].Score != 0.2 {
		t.Errorf("expected product 20 with score 0.2, got %+v", results[0])
	}
	if results[1].ProductID != 21 || results[1].Score != 0.1 {
		t.Errorf("expected product 21 with score 0.1, got %+v", results[1])
	}

	for _, r := range results {
		if r.Type != domain.TypeCollaborative {
			t.Errorf("expected type %q, got %q", domain.TypeCollaborative, r.Type)
		}
		if len(r.Reasons) != 1 || r.Reasons[0] != "Customers like you also purchased this" {
			t.Errorf("unexpected reasons: %v", r.Reasons)
		}
	}
}

func TestCollaborative_ScoreSaturatesAtOne(t *testing.T) {
	purchasers := make([]domain.PurchasePair, 0)
	byCustomers := make([]domain.PurchasePair, 0)
	for c := uint64(2); c <= 16; c++ {
		purchasers = append(purchasers,
			domain.PurchasePair{CustomerID: c, ProductID: 10},
			domain.PurchasePair{CustomerID: c, ProductID: 11},
		)
		byCustomers = append(byCustomers, domain.PurchasePair{CustomerID: c, ProductID: 99})
	}

	repos := emptyRepos()
	repos.Behavior = &fakeBehavior{
		purchased:   []uint64{10, 11},
		purchasers:  purchasers,
		byCustomers: byCustomers,
	}

	svc := newTestService(repos)

	results, err := svc.collaborative(context.Background(), repos, Request{CustomerID: ptr(1), SessionID: "s1"}, 10, map[uint64]struct{}{})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score != 1.0 {
		t.Errorf("expected saturated score 1.0, got %v", results[0].Score)
	}
}

func TestCollaborative_RespectsExclusions(t *testing.T) {
	repos := emptyRepos()
	repos.Behavior = &fakeBehavior{
		purchased: []uint64{10, 11},
		purchasers: []domain.PurchasePair{
			{CustomerID: 2, ProductID: 10},
			{CustomerID: 2, ProductID: 11},
		},
		byCustomers: []domain.PurchasePair{
			{CustomerID: 2, ProductID: 20},
			{CustomerID: 2, ProductID: 21},
		},
	}

	svc := newTestService(repos)

	exclude := map[uint64]struct{}{20: {}}
	results, err := svc.collaborative(context.Background(), repos, Request{CustomerID: ptr(1), SessionID: "s1"}, 10, exclude)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 1 || results[0].ProductID != 21 {
		t.Fatalf("expected only product 21, got %+v", results)
	}
}
