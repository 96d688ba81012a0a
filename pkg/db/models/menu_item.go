package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
)

// MenuItem is one entry on the café menu side of the catalog.
type MenuItem struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string             `gorm:"column:name;not null" json:"name"`
	Description  *string            `gorm:"column:description" json:"description,omitempty"`
	Price        decimal.Decimal    `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Category     enums.MenuCategory `gorm:"column:category;type:text;not null;index" json:"category"`
	Image        string             `gorm:"column:image;not null" json:"image"`
	IsAvailable  bool               `gorm:"column:is_available;not null;default:true" json:"is_available"`
	DisplayOrder int                `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
