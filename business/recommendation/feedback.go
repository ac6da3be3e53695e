package recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myStoreCloud/pkg/logger"
	"myStoreCloud/pkg/metrics"

	"gorm.io/gorm"
)

const (
	FeedbackShown     = "shown"
	FeedbackClicked   = "clicked"
	FeedbackPurchased = "purchased"
)

var validFeedbackActions = map[string]bool{
	FeedbackShown:     true,
	FeedbackClicked:   true,
	FeedbackPurchased: true,
}

// FeedbackInput records one shown/clicked/purchased transition against a
// previously persisted recommendation.
type FeedbackInput struct {
	TenantID   string
	CustomerID *uint64
	SessionID  string
	ProductID  uint64
	Action     string
}

// TrackFeedback flips the matching recommendation's flag and stamps its
// timestamp. A feedback event with no matching persisted recommendation
// is a silent no-op: results that were never persisted simply cannot
// close the loop, and that is not the caller's problem.
func (s *Service) TrackFeedback(ctx context.Context, in FeedbackInput) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if in.TenantID == "" {
		return errors.New("tenant id is required")
	}
	if in.SessionID == "" {
		return errors.New("session id is required")
	}
	if in.ProductID == 0 {
		return errors.New("product id is required")
	}
	if !validFeedbackActions[in.Action] {
		return fmt.Errorf("invalid feedback action %q", in.Action)
	}

	repos, err := s.reposFor(ctx, in.TenantID)
	if err != nil {
		return err
	}

	rec, err := repos.Recs.FindForFeedback(ctx, in.CustomerID, in.SessionID, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("feedback target missing, ignoring",
				"tenant", in.TenantID,
				"session_id", in.SessionID,
				"product_id", in.ProductID,
				"action", in.Action,
			)
			return nil
		}
		return fmt.Errorf("find recommendation for feedback: %w", err)
	}

	if err := repos.Recs.MarkFeedback(ctx, rec.ID, in.Action, time.Now()); err != nil {
		return fmt.Errorf("mark feedback: %w", err)
	}

	metrics.FeedbackEventsTotal.WithLabelValues(in.Action).Inc()

	return nil
}
