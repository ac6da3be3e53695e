package domain

import (
	"time"
)

// CREATE TABLE categories (
//     category_id     BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     category_name   TEXT NOT NULL,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Category struct {
	CategoryID   uint64    `gorm:"primaryKey;column:category_id;autoIncrement" json:"category_id"`
	CategoryName string    `gorm:"column:category_name;type:text;not null" json:"category_name"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// ProductCategoryMapping links products to categories many-to-many. The
// content-based strategy reads it, nothing in the engine writes it.
type ProductCategoryMapping struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  uint64 `gorm:"column:product_id;not null;uniqueIndex:idx_product_category" json:"product_id"`
	CategoryID uint64 `gorm:"column:category_id;not null;uniqueIndex:idx_product_category" json:"category_id"`
}

func (ProductCategoryMapping) TableName() string {
	return "product_category_mappings"
}
