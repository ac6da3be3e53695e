package domain

import (
	"time"
)

// CREATE TABLE products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_sku     TEXT,
//     product_name    TEXT NOT NULL,
//     description     TEXT,
//     normal_price    NUMERIC,
//     sale_price      NUMERIC,
//     quantity        NUMERIC,
//     is_active       BOOLEAN DEFAULT TRUE,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductSKU  string    `gorm:"column:product_sku;type:text" json:"product_sku"`
	ProductName string    `gorm:"column:product_name;type:text;not null" json:"product_name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	NormalPrice float64   `gorm:"column:normal_price;type:numeric" json:"normal_price"`
	SalePrice   float64   `gorm:"column:sale_price;type:numeric" json:"sale_price"`
	Quantity    float64   `gorm:"column:quantity;type:numeric" json:"quantity"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
