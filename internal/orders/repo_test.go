package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  order_type TEXT NOT NULL,
  payment_method TEXT NOT NULL DEFAULT 'online',
  payment_id TEXT,
  delivery_address TEXT,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  image TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, gdb.Exec(ordersTable).Error)

	return gdb
}

func orderRow(userID uuid.UUID, status enums.OrderStatus) models.Order {
	return models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		CustomerName:  "Vera Lindqvist",
		CustomerEmail: "vera@example.com",
		TotalAmount:   decimal.NewFromInt(100),
		Status:        status,
		OrderType:     enums.OrderTypeMenu,
		PaymentMethod: enums.PaymentMethodOnline,
	}
}

func TestRepositoryUpdateStatusIsConditionalOnCurrentStatus(t *testing.T) {
	gdb := setupOrdersTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	order := orderRow(uuid.New(), enums.OrderStatusPending)
	require.NoError(t, repo.Create(ctx, &order))

	rows, err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// A second writer that still believes the order is pending must lose
	// without touching the stored terminal status.
	rows, err = repo.UpdateStatus(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCompleted, stored.Status)
}
