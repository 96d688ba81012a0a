package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/internal/cart"
	"github.com/rabuste-coffee/rabuste-backend/internal/orders"
	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
	"github.com/rabuste-coffee/rabuste-backend/pkg/logger"
	"github.com/rabuste-coffee/rabuste-backend/pkg/metrics"
	"github.com/rabuste-coffee/rabuste-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Notifier receives fire-and-forget order events. Implementations must not
// block checkout; failures are theirs to log.
type Notifier interface {
	OrderCreated(ctx context.Context, order *models.Order)
}

// Input describes one checkout request. Selection is either the explicit
// item list or, when empty, every cart item whose kind matches OrderType.
type Input struct {
	OrderType       enums.OrderType
	ItemIDs         []uuid.UUID
	CustomerName    string
	CustomerEmail   string
	PaymentMethod   enums.PaymentMethod
	PaymentID       *string
	DeliveryAddress *types.Address
	Notes           *string
}

// Service converts cart selections into pending orders.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, input Input) (*models.Order, error)
}

type service struct {
	carts    cart.CartRepository
	orders   orders.OrdersRepository
	tx       txRunner
	notifier Notifier
	logg     *logger.Logger
	metrics  *metrics.OrderMetrics
}

// ServiceParams bundles the dependencies for a checkout service.
type ServiceParams struct {
	Carts    cart.CartRepository
	Orders   orders.OrdersRepository
	Tx       txRunner
	Notifier Notifier
	Logger   *logger.Logger
	Metrics  *metrics.OrderMetrics
}

// NewService builds a checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		carts:    params.Carts,
		orders:   params.Orders,
		tx:       params.Tx,
		notifier: params.Notifier,
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

// Checkout selects items from the user's cart, computes the total from the
// stored snapshots, creates a pending order, and removes the selected rows
// from the cart. Order creation and cart removal commit or roll back as one
// unit. The total is never recomputed from the live catalog.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, input Input) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.carts.WithTx(tx)
		rows, err := cartRepo.ListForUserLocked(ctx, userID)
		if err != nil {
			return err
		}

		selected, err := selectItems(rows, input)
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "no cart items match the requested order")
		}

		total := decimal.Zero
		lineItems := make([]models.OrderLineItem, 0, len(selected))
		rowIDs := make([]uuid.UUID, 0, len(selected))
		for _, row := range selected {
			total = total.Add(row.Price.Mul(decimal.NewFromInt(int64(row.Quantity))))
			lineItems = append(lineItems, models.OrderLineItem{
				ItemID:   row.ItemID,
				Kind:     row.Kind,
				Name:     row.Name,
				Price:    row.Price,
				Image:    row.Image,
				Quantity: row.Quantity,
			})
			rowIDs = append(rowIDs, row.ID)
		}

		order = &models.Order{
			UserID:          userID,
			CustomerName:    strings.TrimSpace(input.CustomerName),
			CustomerEmail:   strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
			TotalAmount:     total,
			Status:          enums.OrderStatusPending,
			OrderType:       deriveOrderType(selected),
			PaymentMethod:   input.PaymentMethod,
			PaymentID:       input.PaymentID,
			DeliveryAddress: input.DeliveryAddress,
			Notes:           input.Notes,
			Items:           lineItems,
		}
		if err := s.orders.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
		}
		return cartRepo.DeleteByIDs(ctx, rowIDs)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncCreated(order.OrderType.String())
	if s.notifier != nil {
		go s.notifier.OrderCreated(context.WithoutCancel(ctx), order)
	}
	return order, nil
}

func validateInput(input Input) error {
	if len(input.ItemIDs) == 0 && !input.OrderType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "order type or an explicit item list is required")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	return nil
}

// selectItems applies the explicit list when present, the order-type filter
// otherwise. Explicitly requested items missing from the cart are an error,
// not silently skipped.
func selectItems(rows []models.CartItem, input Input) ([]models.CartItem, error) {
	if len(input.ItemIDs) > 0 {
		byItem := map[uuid.UUID]models.CartItem{}
		for _, row := range rows {
			byItem[row.ItemID] = row
		}
		selected := make([]models.CartItem, 0, len(input.ItemIDs))
		for _, id := range input.ItemIDs {
			row, ok := byItem[id]
			if !ok {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound,
					fmt.Sprintf("item %s is not in the cart", id))
			}
			selected = append(selected, row)
		}
		return selected, nil
	}

	if input.OrderType == enums.OrderTypeMixed {
		return rows, nil
	}
	var selected []models.CartItem
	for _, row := range rows {
		if matchesOrderType(row.Kind, input.OrderType) {
			selected = append(selected, row)
		}
	}
	return selected, nil
}

func matchesOrderType(kind enums.ItemKind, orderType enums.OrderType) bool {
	switch orderType {
	case enums.OrderTypeMenu:
		return kind == enums.ItemKindMenu
	case enums.OrderTypeArt:
		return kind == enums.ItemKindArt
	default:
		return true
	}
}

// deriveOrderType reports what the selection actually contains, regardless
// of what the caller asked for.
func deriveOrderType(selected []models.CartItem) enums.OrderType {
	hasMenu, hasArt := false, false
	for _, row := range selected {
		switch row.Kind {
		case enums.ItemKindMenu:
			hasMenu = true
		case enums.ItemKindArt:
			hasArt = true
		}
	}
	switch {
	case hasMenu && hasArt:
		return enums.OrderTypeMixed
	case hasArt:
		return enums.OrderTypeArt
	default:
		return enums.OrderTypeMenu
	}
}
