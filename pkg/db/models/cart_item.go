package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
)

// CartItem is one line in a user's cart. Name, price, and image are snapshots
// copied at add time; the kind is assigned from the catalog record then and
// never re-derived. At most one row may exist per (user_id, item_id).
type CartItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:cart_items_user_id_idx;uniqueIndex:cart_items_user_item_key" json:"user_id"`
	ItemID    uuid.UUID       `gorm:"column:item_id;type:uuid;not null;index:cart_items_item_id_idx;uniqueIndex:cart_items_user_item_key" json:"item_id"`
	Kind      enums.ItemKind  `gorm:"column:kind;type:text;not null" json:"kind"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Image     string          `gorm:"column:image;not null" json:"image"`
	Quantity  int             `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
