//go:build !integration

package recommendation

import (
	"context"
	"testing"

	"myStoreCloud/domain"
)

func shownRec(recType string, clicked, purchased bool) domain.Recommendation {
	return domain.Recommendation{
		RecommendationType: recType,
		Shown:              true,
		Clicked:            clicked,
		Purchased:          purchased,
	}
}

func TestAnalytics_RatesRoundedToTwoDecimals(t *testing.T) {
	rows := make([]domain.Recommendation, 0, 10)
	// 10 shown, 3 clicked, 1 purchased -> CTR 30.00, conversion 10.00
	for i := 0; i < 10; i++ {
		rows = append(rows, shownRec(domain.TypeCollaborative, i < 3, i < 1))
	}

	recs := &fakeRecs{shown: rows}
	repos := emptyRepos()
	repos.Recs = recs

	svc := newTestService(repos)

	stats, err := svc.Analytics(context.Background(), "acme", 30)
	if err != nil {
		t.Fatal(err)
	}

	if len(stats) != 1 {
		t.Fatalf("expected one row, got %d", len(stats))
	}

	s := stats[0]
	if s.RecommendationType != domain.TypeCollaborative {
		t.Errorf("unexpected type %q", s.RecommendationType)
	}
	if s.TotalShown != 10 || s.TotalClicked != 3 || s.TotalPurchased != 1 {
		t.Errorf("unexpected totals: %+v", s)
	}
	if s.ClickThroughRate != 30.0 {
		t.Errorf("expected CTR 30.00, got %v", s.ClickThroughRate)
	}
	if s.ConversionRate != 10.0 {
		t.Errorf("expected conversion 10.00, got %v", s.ConversionRate)
	}
}

func TestAnalytics_RepeatingFractionRounds(t *testing.T) {
	rows := []domain.Recommendation{
		shownRec(domain.TypeTrending, true, false),
		shownRec(domain.TypeTrending, false, false),
		shownRec(domain.TypeTrending, false, false),
	}

	recs := &fakeRecs{shown: rows}
	repos := emptyRepos()
	repos.Recs = recs

	svc := newTestService(repos)

	stats, err := svc.Analytics(context.Background(), "acme", 7)
	if err != nil {
		t.Fatal(err)
	}

	// 1/3 -> 33.333... -> 33.33
	if stats[0].ClickThroughRate != 33.33 {
		t.Errorf("expected CTR 33.33, got %v", stats[0].ClickThroughRate)
	}
}

func TestAnalytics_OmitsTypesWithoutActivity(t *testing.T) {
	rows := []domain.Recommendation{
		shownRec(domain.TypeTrending, false, false),
	}

	recs := &fakeRecs{shown: rows}
	repos := emptyRepos()
	repos.Recs = recs

	svc := newTestService(repos)

	stats, err := svc.Analytics(context.Background(), "acme", 0)
	if err != nil {
		t.Fatal(err)
	}

	if len(stats) != 1 {
		t.Fatalf("types without shown rows must be omitted, got %+v", stats)
	}
	if stats[0].RecommendationType != domain.TypeTrending {
		t.Errorf("unexpected type %q", stats[0].RecommendationType)
	}
}

func TestAnalytics_SortedByTypeName(t *testing.T) {
	rows := []domain.Recommendation{
		shownRec(domain.TypeTrending, false, false),
		shownRec(domain.TypeCollaborative, false, false),
		shownRec(domain.TypeHybrid, false, false),
	}

	recs := &fakeRecs{shown: rows}
	repos := emptyRepos()
	repos.Recs = recs

	svc := newTestService(repos)

	stats, err := svc.Analytics(context.Background(), "acme", 30)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(stats); i++ {
		if stats[i-1].RecommendationType > stats[i].RecommendationType {
			t.Fatalf("rows not sorted by type: %+v", stats)
		}
	}
}
