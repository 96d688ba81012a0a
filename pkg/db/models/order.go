package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	"github.com/rabuste-coffee/rabuste-backend/pkg/types"
)

// Order is an immutable snapshot cut from a cart at checkout. Only Status
// changes after creation; TotalAmount is computed once and never recomputed.
type Order struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index:orders_user_id_idx" json:"user_id"`
	CustomerName    string              `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerEmail   string              `gorm:"column:customer_email;not null" json:"customer_email"`
	TotalAmount     decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	Status          enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	OrderType       enums.OrderType     `gorm:"column:order_type;type:text;not null" json:"order_type"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'online'" json:"payment_method"`
	PaymentID       *string             `gorm:"column:payment_id" json:"payment_id,omitempty"`
	DeliveryAddress *types.Address      `gorm:"column:delivery_address;type:jsonb;serializer:json" json:"delivery_address,omitempty"`
	Notes           *string             `gorm:"column:notes" json:"notes,omitempty"`
	Items           []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
