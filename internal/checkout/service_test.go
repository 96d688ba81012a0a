package checkout

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/internal/cart"
	"github.com/rabuste-coffee/rabuste-backend/internal/catalog"
	"github.com/rabuste-coffee/rabuste-backend/internal/orders"
	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
	"github.com/rabuste-coffee/rabuste-backend/pkg/logger"
)

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type memCartRepo struct {
	rows []models.CartItem
}

func (m *memCartRepo) WithTx(tx *gorm.DB) cart.CartRepository { return m }

func (m *memCartRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	out := []models.CartItem{}
	for _, row := range m.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memCartRepo) ListForUserLocked(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return m.ListForUser(ctx, userID)
}

func (m *memCartRepo) Create(ctx context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m.rows = append(m.rows, *item)
	return nil
}

func (m *memCartRepo) Save(ctx context.Context, item *models.CartItem) error {
	for i := range m.rows {
		if m.rows[i].ID == item.ID {
			m.rows[i] = *item
			return nil
		}
	}
	m.rows = append(m.rows, *item)
	return nil
}

func (m *memCartRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	drop := map[uuid.UUID]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	kept := m.rows[:0]
	for _, row := range m.rows {
		if !drop[row.ID] {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}

func (m *memCartRepo) DeleteForUserItems(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	return 0, nil
}

func (m *memCartRepo) ClearForUser(ctx context.Context, userID uuid.UUID) error { return nil }

func (m *memCartRepo) UserIDsHoldingItems(ctx context.Context, itemIDs []uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type memOrdersRepo struct {
	orders []models.Order
}

func (m *memOrdersRepo) WithTx(tx *gorm.DB) orders.OrdersRepository { return m }

func (m *memOrdersRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders = append(m.orders, *order)
	return nil
}

func (m *memOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *memOrdersRepo) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *memOrdersRepo) List(ctx context.Context, query orders.ListQuery) ([]models.Order, error) {
	return nil, nil
}

func (m *memOrdersRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (int64, error) {
	return 0, nil
}

func cartRow(userID, itemID uuid.UUID, kind enums.ItemKind, name string, price int64, qty int) models.CartItem {
	return models.CartItem{
		ID:       uuid.New(),
		UserID:   userID,
		ItemID:   itemID,
		Kind:     kind,
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Image:    name + ".jpg",
		Quantity: qty,
	}
}

func newService(t *testing.T, carts *memCartRepo, orderRepo *memOrdersRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Carts:  carts,
		Orders: orderRepo,
		Tx:     stubTx{},
		Logger: logger.New(logger.Options{ServiceName: "checkout-test", Level: zerolog.ErrorLevel, Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseInput(orderType enums.OrderType) Input {
	return Input{
		OrderType:     orderType,
		CustomerName:  "Vera Lindqvist",
		CustomerEmail: "vera@example.com",
		PaymentMethod: enums.PaymentMethodOnline,
	}
}

func TestCheckoutByTypeRemovesOnlySelectedItems(t *testing.T) {
	carts := &memCartRepo{}
	orderRepo := &memOrdersRepo{}
	userID := uuid.New()
	artItem := uuid.New()
	carts.rows = []models.CartItem{
		cartRow(userID, uuid.New(), enums.ItemKindMenu, "Cortado", 100, 1),
		cartRow(userID, artItem, enums.ItemKindArt, "Harbor Dusk", 500, 1),
	}
	svc := newService(t, carts, orderRepo)

	order, err := svc.Checkout(context.Background(), userID, baseInput(enums.OrderTypeMenu))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if !order.TotalAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected total 100, got %s", order.TotalAmount)
	}
	if order.OrderType != enums.OrderTypeMenu {
		t.Fatalf("expected menu order, got %s", order.OrderType)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if len(carts.rows) != 1 || carts.rows[0].ItemID != artItem {
		t.Fatalf("expected only the artwork to remain in the cart")
	}
}

func TestCheckoutTotalMultipliesQuantities(t *testing.T) {
	carts := &memCartRepo{}
	orderRepo := &memOrdersRepo{}
	userID := uuid.New()
	carts.rows = []models.CartItem{
		cartRow(userID, uuid.New(), enums.ItemKindMenu, "Flat White", 110, 3),
		cartRow(userID, uuid.New(), enums.ItemKindMenu, "Cardamom Bun", 45, 2),
	}
	svc := newService(t, carts, orderRepo)

	order, err := svc.Checkout(context.Background(), userID, baseInput(enums.OrderTypeMenu))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if !order.TotalAmount.Equal(decimal.NewFromInt(420)) {
		t.Fatalf("expected total 420, got %s", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected two line items, got %d", len(order.Items))
	}
	if len(carts.rows) != 0 {
		t.Fatalf("expected cart emptied, got %d rows", len(carts.rows))
	}
}

type catalogStub struct {
	items map[uuid.UUID]*catalog.Item
}

func (s *catalogStub) Resolve(ctx context.Context, itemID uuid.UUID) (*catalog.Item, error) {
	if item, ok := s.items[itemID]; ok {
		return item, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found in catalog")
}

func TestCheckoutTotalKeepsPriceSnapshotAfterCatalogChange(t *testing.T) {
	carts := &memCartRepo{}
	userID := uuid.New()
	menuID := uuid.New()
	resolver := &catalogStub{items: map[uuid.UUID]*catalog.Item{
		menuID: {
			ID:          menuID,
			Kind:        enums.ItemKindMenu,
			Name:        "Flat White",
			Price:       decimal.NewFromInt(110),
			IsAvailable: true,
		},
	}}
	cartSvc, err := cart.NewService(carts, stubTx{}, resolver)
	if err != nil {
		t.Fatalf("new cart service: %v", err)
	}
	if _, err := cartSvc.AddItem(context.Background(), userID, cart.AddItemInput{ItemID: menuID, Quantity: 2}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	// The catalog price rises between add and checkout.
	resolver.items[menuID].Price = decimal.NewFromInt(180)

	svc := newService(t, carts, &memOrdersRepo{})
	order, err := svc.Checkout(context.Background(), userID, baseInput(enums.OrderTypeMenu))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if !order.TotalAmount.Equal(decimal.NewFromInt(220)) {
		t.Fatalf("total must use the add-time price snapshot, got %s", order.TotalAmount)
	}
	if len(order.Items) != 1 || !order.Items[0].Price.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("line item must carry the snapshot price, got %+v", order.Items)
	}
}

func TestCheckoutEmptySelectionIsRejected(t *testing.T) {
	carts := &memCartRepo{}
	userID := uuid.New()
	carts.rows = []models.CartItem{
		cartRow(userID, uuid.New(), enums.ItemKindMenu, "Cortado", 100, 1),
	}
	svc := newService(t, carts, &memOrdersRepo{})

	_, err := svc.Checkout(context.Background(), userID, baseInput(enums.OrderTypeArt))
	if err == nil {
		t.Fatal("expected empty-cart error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeEmptyCart {
		t.Fatalf("expected empty cart, got %v", err)
	}
	if len(carts.rows) != 1 {
		t.Fatalf("cart must be untouched, got %d rows", len(carts.rows))
	}
}

func TestCheckoutExplicitListMissingItemIsNotFound(t *testing.T) {
	carts := &memCartRepo{}
	userID := uuid.New()
	inCart := uuid.New()
	carts.rows = []models.CartItem{
		cartRow(userID, inCart, enums.ItemKindMenu, "Cortado", 100, 1),
	}
	svc := newService(t, carts, &memOrdersRepo{})

	input := baseInput(enums.OrderTypeMenu)
	input.ItemIDs = []uuid.UUID{inCart, uuid.New()}

	_, err := svc.Checkout(context.Background(), userID, input)
	if err == nil {
		t.Fatal("expected not-found for item outside the cart")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(carts.rows) != 1 {
		t.Fatalf("cart must be untouched, got %d rows", len(carts.rows))
	}
}

func TestCheckoutMixedSelectionDerivesMixedType(t *testing.T) {
	carts := &memCartRepo{}
	orderRepo := &memOrdersRepo{}
	userID := uuid.New()
	carts.rows = []models.CartItem{
		cartRow(userID, uuid.New(), enums.ItemKindMenu, "Cortado", 100, 2),
		cartRow(userID, uuid.New(), enums.ItemKindArt, "Harbor Dusk", 500, 1),
	}
	svc := newService(t, carts, orderRepo)

	order, err := svc.Checkout(context.Background(), userID, baseInput(enums.OrderTypeMixed))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if order.OrderType != enums.OrderTypeMixed {
		t.Fatalf("expected mixed order, got %s", order.OrderType)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("expected total 700, got %s", order.TotalAmount)
	}
}

func TestCheckoutRequiresCustomerDetails(t *testing.T) {
	carts := &memCartRepo{}
	userID := uuid.New()
	carts.rows = []models.CartItem{
		cartRow(userID, uuid.New(), enums.ItemKindMenu, "Cortado", 100, 1),
	}
	svc := newService(t, carts, &memOrdersRepo{})

	input := baseInput(enums.OrderTypeMenu)
	input.CustomerEmail = "  "

	_, err := svc.Checkout(context.Background(), userID, input)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
