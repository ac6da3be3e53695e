package domain

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a shopper of a single store. Lives in the tenant database,
// so customer IDs are only meaningful inside one tenant.
type Customer struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName  string `gorm:"column:full_name;type:text" json:"full_name"`
	Email     string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}
