package domain

import (
	"time"

	"gorm.io/gorm"
)

// Stores live in the control-plane database. Every store owns one
// dedicated tenant database, resolved at request time by subdomain.
//
// CREATE TABLE public.stores (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     owner_id        BIGINT NOT NULL,
//     store_name      TEXT NOT NULL,
//     subdomain       TEXT NOT NULL UNIQUE,
//     database_name   TEXT NOT NULL UNIQUE,
//     api_key         TEXT NOT NULL,
//     is_active       BOOLEAN DEFAULT TRUE,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Store struct {
	ID           uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID      uint           `gorm:"column:owner_id;not null" json:"owner_id"`
	StoreName    string         `gorm:"column:store_name;type:text;not null" json:"store_name"`
	Subdomain    string         `gorm:"column:subdomain;type:text;uniqueIndex;not null" json:"subdomain"`
	DatabaseName string         `gorm:"column:database_name;type:text;uniqueIndex;not null" json:"-"`
	ApiKey       string         `gorm:"column:api_key;type:text;not null" json:"api_key,omitempty"`
	IsActive     bool           `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}
