package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
)

// OrderLineItem captures the snapshot of each item within an order,
// independent of the cart rows it was cut from.
type OrderLineItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index:order_line_items_order_id_idx" json:"order_id"`
	ItemID    uuid.UUID       `gorm:"column:item_id;type:uuid;not null" json:"item_id"`
	Kind      enums.ItemKind  `gorm:"column:kind;type:text;not null" json:"kind"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Image     string          `gorm:"column:image;not null" json:"image"`
	Quantity  int             `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
