package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
)

// Artwork is a one-of-a-kind gallery piece. Once its order completes it is
// flagged unavailable and drops out of listings.
type Artwork struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string                `gorm:"column:title;not null" json:"title"`
	Artist       string                `gorm:"column:artist;not null" json:"artist"`
	Category     enums.ArtworkCategory `gorm:"column:category;type:text;not null;index" json:"category"`
	Price        decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Image        string                `gorm:"column:image;not null" json:"image"`
	Description  *string               `gorm:"column:description" json:"description,omitempty"`
	IsAvailable  bool                  `gorm:"column:is_available;not null;default:true" json:"is_available"`
	DisplayOrder int                   `gorm:"column:display_order;not null;default:0" json:"display_order"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
