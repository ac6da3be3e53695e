//go:build !integration

package recommendation

import (
	"context"
	"math"
	"testing"
	"time"

	"myStoreCloud/domain"
)

func TestRecentlyViewed_ScoreDecaysPerRank(t *testing.T) {
	now := time.Now()

	repos := emptyRepos()
	repos.Views = &fakeViews{views: []domain.ProductView{
		{ProductID: 1, SessionID: "s1", CreatedAt: now},
		{ProductID: 2, SessionID: "s1", CreatedAt: now.Add(-1 * time.Minute)},
		{ProductID: 3, SessionID: "s1", CreatedAt: now.Add(-2 * time.Minute)},
	}}

	svc := newTestService(repos)

	results, err := svc.recentlyViewed(context.Background(), repos, Request{SessionID: "s1"}, 10, map[uint64]struct{}{})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	wantScores := []float64{0.9, 0.8, 0.7}
	for i, want := range wantScores {
		if math.Abs(results[i].Score-want) > 1e-9 {
			t.Errorf("rank %d: expected score %v, got %v", i, want, results[i].Score)
		}
	}

	if results[0].Type != domain.TypeRecentlyViewed {
		t.Errorf("expected type %q, got %q", domain.TypeRecentlyViewed, results[0].Type)
	}
	if results[0].Reasons[0] != reasonRecentlyViewed {
		t.Errorf("unexpected reason: %v", results[0].Reasons)
	}
}

func TestRecentlyViewed_ScoreFloorsAtMinimum(t *testing.T) {
	now := time.Now()

	views := make([]domain.ProductView, 0, 12)
	for i := 1; i <= 12; i++ {
		views = append(views, domain.ProductView{
			ProductID: uint64(i),
			SessionID: "s1",
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}

	repos := emptyRepos()
	repos.Views = &fakeViews{views: views}

	svc := newTestService(repos)

	results, err := svc.recentlyViewed(context.Background(), repos, Request{SessionID: "s1"}, 12, map[uint64]struct{}{})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 12 {
		t.Fatalf("expected 12 results, got %d", len(results))
	}

	// ranks 9 onward would go to 0 and below, they floor at 0.1
	for i := 8; i < 12; i++ {
		if math.Abs(results[i].Score-0.1) > 1e-9 {
			t.Errorf("rank %d: expected floor score 0.1, got %v", i, results[i].Score)
		}
	}
}

func TestRecentlyViewed_DeduplicatesByLatestView(t *testing.T) {
	now := time.Now()

	repos := emptyRepos()
	repos.Views = &fakeViews{views: []domain.ProductView{
		{ProductID: 1, SessionID: "s1", CreatedAt: now},
		{ProductID: 2, SessionID: "s1", CreatedAt: now.Add(-1 * time.Minute)},
		{ProductID: 1, SessionID: "s1", CreatedAt: now.Add(-2 * time.Minute)},
	}}

	svc := newTestService(repos)

	results, err := svc.recentlyViewed(context.Background(), repos, Request{SessionID: "s1"}, 10, map[uint64]struct{}{})
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 distinct products, got %d: %+v", len(results), results)
	}
	if results[0].ProductID != 1 || results[0].Score != 0.9 {
		t.Errorf("expected product 1 at rank 0 with 0.9, got %+v", results[0])
	}
	if results[1].ProductID != 2 || results[1].Score != 0.8 {
		t.Errorf("expected product 2 at rank 1 with 0.8, got %+v", results[1])
	}
}
