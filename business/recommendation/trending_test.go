//go:build !integration

package recommendation

import (
	"context"
	"errors"
	"math"
	"testing"

	"myStoreCloud/domain"
)

func TestTrending_WeightsAndNormalization(t *testing.T) {
	repos := emptyRepos()
	repos.Behavior = &fakeBehavior{
		actionCounts: []domain.ProductActionCount{
			// product 1: 10 views -> 10.0
			{ProductID: 1, Action: domain.ActionView, Count: 10},
			// product 2: 2 views + 4 purchases -> 2 + 12 = 14.0
			{ProductID: 2, Action: domain.ActionView, Count: 2},
			{ProductID: 2, Action: domain.ActionPurchase, Count: 4},
			// product 3: only 2 events, below the floor
			{ProductID: 3, Action: domain.ActionView, Count: 2},
		},
	}

	svc := newTestService(repos)

	results, err := svc.trending(context.Background(), repos, Request{TenantID: "acme", SessionID: "s1"}, 10, map[uint64]struct{}{})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}

	if results[0].ProductID != 2 || results[0].Score != 1.0 {
		t.Errorf("expected product 2 normalized to 1.0, got %+v", results[0])
	}

	want := 10.0 / 14.0
	if results[1].ProductID != 1 || math.Abs(results[1].Score-want) > 1e-9 {
		t.Errorf("expected product 1 with score %v, got %+v", want, results[1])
	}

	if results[0].Type != domain.TypeTrending {
		t.Errorf("expected type %q, got %q", domain.TypeTrending, results[0].Type)
	}
}

func TestTrending_OtherActionsCountTowardFloorOnly(t *testing.T) {
	// Three add_to_cart events clear the floor but contribute no score,
	// so normalization falls back instead of dividing by zero.
	repos := emptyRepos()
	repos.Behavior = &fakeBehavior{
		actionCounts: []domain.ProductActionCount{
			{ProductID: 5, Action: domain.ActionAddToCart, Count: 3},
		},
	}

	svc := newTestService(repos)

	results, err := svc.trending(context.Background(), repos, Request{TenantID: "acme", SessionID: "s1"}, 10, map[uint64]struct{}{})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 1 || results[0].Score != 0 {
		t.Fatalf("expected product 5 with zero score, got %+v", results)
	}
}

func TestTrending_ServesFromCache(t *testing.T) {
	cached := []domain.RecommendationResult{
		{ProductID: 42, Score: 1.0, Type: domain.TypeTrending, Reasons: []string{reasonTrending}},
		{ProductID: 43, Score: 0.5, Type: domain.TypeTrending, Reasons: []string{reasonTrending}},
	}

	cache := &fakeTrendCache{stored: map[string][]domain.RecommendationResult{"acme": cached}}

	// reader errors, so any hit proves the cache served
	repos := emptyRepos()
	repos.Behavior = &fakeBehavior{countsErr: errors.New("db down")}

	svc := newTestServiceWithCache(repos, cache)

	results, err := svc.trending(context.Background(), repos, Request{TenantID: "acme", SessionID: "s1"}, 10, map[uint64]struct{}{43: {}})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 1 || results[0].ProductID != 42 {
		t.Fatalf("expected cached product 42 only, got %+v", results)
	}
}

func TestTrending_PopulatesCacheOnMiss(t *testing.T) {
	cache := &fakeTrendCache{}

	repos := emptyRepos()
	repos.Behavior = &fakeBehavior{
		actionCounts: []domain.ProductActionCount{
			{ProductID: 1, Action: domain.ActionView, Count: 5},
		},
	}

	svc := newTestServiceWithCache(repos, cache)

	_, err := svc.trending(context.Background(), repos, Request{TenantID: "acme", SessionID: "s1"}, 10, map[uint64]struct{}{})
	if err != nil {
		t.Fatal(err)
	}

	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}
	if len(cache.stored["acme"]) != 1 {
		t.Fatalf("expected full ranking cached, got %+v", cache.stored["acme"])
	}
}
