//go:build !integration

package recommendation

import (
	"context"
	"testing"

	"gorm.io/gorm"
)

func TestTrackFeedback_ValidatesInput(t *testing.T) {
	svc := newTestService(emptyRepos())

	cases := []struct {
		name string
		in   FeedbackInput
	}{
		{"missing tenant", FeedbackInput{SessionID: "s1", ProductID: 1, Action: FeedbackClicked}},
		{"missing session", FeedbackInput{TenantID: "acme", ProductID: 1, Action: FeedbackClicked}},
		{"missing product", FeedbackInput{TenantID: "acme", SessionID: "s1", Action: FeedbackClicked}},
		{"bad action", FeedbackInput{TenantID: "acme", SessionID: "s1", ProductID: 1, Action: "liked"}},
	}

	for _, tc := range cases {
		if err := svc.TrackFeedback(context.Background(), tc.in); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestTrackFeedback_SilentWhenNoMatch(t *testing.T) {
	recs := &fakeRecs{findErr: gorm.ErrRecordNotFound}
	repos := emptyRepos()
	repos.Recs = recs

	svc := newTestService(repos)

	err := svc.TrackFeedback(context.Background(), FeedbackInput{
		TenantID:  "acme",
		SessionID: "s1",
		ProductID: 7,
		Action:    FeedbackClicked,
	})
	if err != nil {
		t.Fatalf("missing recommendation must be a silent no-op, got %v", err)
	}

	if len(recs.marked) != 0 {
		t.Fatalf("nothing should be marked, got %+v", recs.marked)
	}
}

func TestTrackFeedback_MarksTheMatch(t *testing.T) {
	recs := &fakeRecs{}
	recs.found.ID = 42
	repos := emptyRepos()
	repos.Recs = recs

	svc := newTestService(repos)

	err := svc.TrackFeedback(context.Background(), FeedbackInput{
		TenantID:   "acme",
		CustomerID: ptr(9),
		SessionID:  "s1",
		ProductID:  7,
		Action:     FeedbackPurchased,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(recs.marked) != 1 {
		t.Fatalf("expected one mark, got %d", len(recs.marked))
	}
	m := recs.marked[0]
	if m.id != 42 || m.action != FeedbackPurchased || m.at.IsZero() {
		t.Errorf("unexpected mark: %+v", m)
	}
}

func TestTrackFeedback_FindFailurePropagates(t *testing.T) {
	recs := &fakeRecs{findErr: errTest}
	repos := emptyRepos()
	repos.Recs = recs

	svc := newTestService(repos)

	err := svc.TrackFeedback(context.Background(), FeedbackInput{
		TenantID:  "acme",
		SessionID: "s1",
		ProductID: 7,
		Action:    FeedbackShown,
	})
	if err == nil {
		t.Fatal("a real storage failure must surface")
	}
}
