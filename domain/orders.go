package domain

import "time"

// Order statuses as written by the order service. Only DELIVERED orders
// are reviewable; any other terminal status (returned, refunded) blocks
// review creation.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusReturned  = "RETURNED"
	OrderStatusRefunded  = "REFUNDED"
)

// Orders is the read model of the order service's orders table. This
// service never writes it.
type Orders struct {
	ID          uint64      `gorm:"primaryKey;column:id" json:"id"`
	UserID      uint        `gorm:"column:user_id" json:"user_id"`
	OrderStatus string      `gorm:"column:order_status" json:"order_status"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt   time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"column:updated_at" json:"updated_at"`
}

func (Orders) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"id"`
	OrderID   uint64 `gorm:"column:order_id" json:"order_id"`
	ProductID uint64 `gorm:"column:product_id" json:"product_id"`
	Quantity  int    `gorm:"column:quantity" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Contains reports whether the order includes the given product.
func (o *Orders) Contains(productID uint64) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
