package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Tracked customer actions. The behavior log is append-only: rows are
// never updated or deleted, orphaned references to removed products or
// customers stay as history.
const (
	ActionView           = "view"
	ActionAddToCart      = "add_to_cart"
	ActionRemoveFromCart = "remove_from_cart"
	ActionPurchase       = "purchase"
	ActionSearch         = "search"
)

// CREATE TABLE behavior_events (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     customer_id     BIGINT,
//     session_id      TEXT NOT NULL,
//     action          TEXT NOT NULL,
//     product_id      BIGINT,
//     search_query    TEXT,
//     device_type     TEXT,
//     source          TEXT,
//     time_spent      INT,
//     metadata        JSONB,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type BehaviorEvent struct {
	ID          uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID  *uint64           `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	SessionID   string            `gorm:"column:session_id;index;not null" json:"session_id"`
	Action      string            `gorm:"column:action;not null" json:"action"`
	ProductID   *uint64           `gorm:"column:product_id;index" json:"product_id,omitempty"`
	SearchQuery string            `gorm:"column:search_query;type:text" json:"search_query,omitempty"`
	DeviceType  string            `gorm:"column:device_type" json:"device_type,omitempty"`
	Source      string            `gorm:"column:source" json:"source,omitempty"`
	TimeSpent   int               `gorm:"column:time_spent" json:"time_spent,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (BehaviorEvent) TableName() string {
	return "behavior_events"
}

// ProductView supplements the paired view BehaviorEvent with the time the
// visitor actually spent on the product page.
type ProductView struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID   *uint64   `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
	SessionID    string    `gorm:"column:session_id;index;not null" json:"session_id"`
	ProductID    uint64    `gorm:"column:product_id;index;not null" json:"product_id"`
	ViewDuration int       `gorm:"column:view_duration" json:"view_duration"`
	Referrer     string    `gorm:"column:referrer;type:text" json:"referrer,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (ProductView) TableName() string {
	return "product_views"
}

// PurchasePair is a (customer, product) purchase projection used by the
// collaborative strategy.
type PurchasePair struct {
	CustomerID uint64 `gorm:"column:customer_id" json:"customer_id"`
	ProductID  uint64 `gorm:"column:product_id" json:"product_id"`
}

// ProductActionCount aggregates behavior events per product and action
// inside a time window. Input to the trending strategy.
type ProductActionCount struct {
	ProductID uint64 `gorm:"column:product_id" json:"product_id"`
	Action    string `gorm:"column:action" json:"action"`
	Count     int64  `gorm:"column:count" json:"count"`
}
