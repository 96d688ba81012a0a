package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
)

// WishlistItem links a user to a saved catalog entry. Display fields are
// snapshots; there is no quantity.
type WishlistItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:wishlist_items_user_id_idx;uniqueIndex:wishlist_items_user_item_key" json:"user_id"`
	ItemID    uuid.UUID       `gorm:"column:item_id;type:uuid;not null;index:wishlist_items_item_id_idx;uniqueIndex:wishlist_items_user_item_key" json:"item_id"`
	Kind      enums.ItemKind  `gorm:"column:kind;type:text;not null" json:"kind"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Image     string          `gorm:"column:image;not null" json:"image"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
