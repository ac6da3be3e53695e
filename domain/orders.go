package domain

import "time"

type Orders struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID    uint64    `gorm:"column:customer_id;not null" json:"customer_id"`
	ProductID     uint64    `gorm:"column:product_id;not null" json:"product_id"`
	Quantity      int       `gorm:"column:quantity;not null" json:"quantity"`
	PriceEach     float64   `gorm:"column:price_each;type:numeric" json:"price_each"`
	Subtotal      float64   `gorm:"column:subtotal;type:numeric" json:"subtotal"`
	OrderStatus   string    `gorm:"column:order_status;default:pending" json:"order_status"`
	PaymentMethod string    `gorm:"column:payment_method" json:"payment_method"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Orders) TableName() string {
	return "orders"
}
