package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TypeCollaborative  = "collaborative"
	TypeContentBased   = "content_based"
	TypeTrending       = "trending"
	TypeRecentlyViewed = "recently_viewed"
	TypeHybrid         = "hybrid"
)

// Recommendation is a persisted engine result kept for feedback tracking.
// Only the feedback recorder mutates it, and only the shown/clicked/
// purchased flags with their timestamps.
//
// CREATE TABLE recommendations (
//     id                   BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     customer_id          BIGINT,
//     session_id           TEXT NOT NULL,
//     product_id           BIGINT NOT NULL,
//     recommendation_type  TEXT NOT NULL,
//     score                NUMERIC NOT NULL,
//     reasons              JSONB,
//     shown                BOOLEAN DEFAULT FALSE,
//     shown_at             TIMESTAMPTZ,
//     clicked              BOOLEAN DEFAULT FALSE,
//     clicked_at           TIMESTAMPTZ,
//     purchased            BOOLEAN DEFAULT FALSE,
//     purchased_at         TIMESTAMPTZ,
//     created_at           TIMESTAMPTZ DEFAULT NOW()
// );

type Recommendation struct {
	ID                 uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID         *uint64                     `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	SessionID          string                      `gorm:"column:session_id;index;not null" json:"session_id"`
	ProductID          uint64                      `gorm:"column:product_id;index;not null" json:"product_id"`
	RecommendationType string                      `gorm:"column:recommendation_type;not null" json:"recommendation_type"`
	Score              float64                     `gorm:"column:score;type:numeric;not null" json:"score"`
	Reasons            datatypes.JSONSlice[string] `gorm:"column:reasons;type:jsonb" json:"reasons"`
	Shown              bool                        `gorm:"column:shown;default:false" json:"shown"`
	ShownAt            *time.Time                  `gorm:"column:shown_at" json:"shown_at,omitempty"`
	Clicked            bool                        `gorm:"column:clicked;default:false" json:"clicked"`
	ClickedAt          *time.Time                  `gorm:"column:clicked_at" json:"clicked_at,omitempty"`
	Purchased          bool                        `gorm:"column:purchased;default:false" json:"purchased"`
	PurchasedAt        *time.Time                  `gorm:"column:purchased_at" json:"purchased_at,omitempty"`
	CreatedAt          time.Time                   `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

// RecommendationResult is what the engine returns to callers. Hybrid
// scores are weighted sums across strategies and can exceed 1.0 when
// several strategies agree on one product.
type RecommendationResult struct {
	ProductID uint64   `json:"product_id"`
	Score     float64  `json:"score"`
	Type      string   `json:"type"`
	Reasons   []string `json:"reasons"`
}

// CustomerPreference is a derived per-customer affinity, recomputed by the
// preference updater. Unique per (customer, type, value); updates replace,
// never append.
type CustomerPreference struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID      uint64    `gorm:"column:customer_id;not null;uniqueIndex:idx_customer_preference" json:"customer_id"`
	PreferenceType  string    `gorm:"column:preference_type;not null;uniqueIndex:idx_customer_preference" json:"preference_type"`
	PreferenceValue string    `gorm:"column:preference_value;not null;uniqueIndex:idx_customer_preference" json:"preference_value"`
	Strength        float64   `gorm:"column:strength;type:numeric;not null" json:"strength"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CustomerPreference) TableName() string {
	return "customer_preferences"
}

// RecommendationAnalytics is one aggregated row per recommendation type
// over a rolling window. Types with no shown recommendations are omitted.
type RecommendationAnalytics struct {
	RecommendationType string  `json:"recommendation_type"`
	TotalShown         int64   `json:"total_shown"`
	TotalClicked       int64   `json:"total_clicked"`
	TotalPurchased     int64   `json:"total_purchased"`
	ClickThroughRate   float64 `json:"click_through_rate"`
	ConversionRate     float64 `json:"conversion_rate"`
}
