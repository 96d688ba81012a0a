package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/internal/purge"
	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
	"github.com/rabuste-coffee/rabuste-backend/pkg/logger"
	"github.com/rabuste-coffee/rabuste-backend/pkg/metrics"
	"github.com/rabuste-coffee/rabuste-backend/pkg/pagination"
)

// OrdersRepository abstracts persistence for orders.
type OrdersRepository interface {
	WithTx(tx *gorm.DB) OrdersRepository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, query ListQuery) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (int64, error)
}

type purgeRunner interface {
	Run(ctx context.Context, itemIDs []uuid.UUID, trigger string) (*purge.Result, error)
}

// Page is one page of an order listing.
type Page struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// StatusUpdateResult reports an admin status change plus any purge it
// triggered.
type StatusUpdateResult struct {
	Order *models.Order `json:"order"`
	Purge *purge.Result `json:"purge,omitempty"`
}

// Service exposes order reads and the status machine.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	AdminList(ctx context.Context, status *enums.OrderStatus, params pagination.Params) (*Page, error)
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*StatusUpdateResult, error)
}

type service struct {
	repo    OrdersRepository
	purge   purgeRunner
	logg    *logger.Logger
	metrics *metrics.OrderMetrics
}

// ServiceParams bundles the dependencies for an orders service.
type ServiceParams struct {
	Repo    OrdersRepository
	Purge   purgeRunner
	Logger  *logger.Logger
	Metrics *metrics.OrderMetrics
}

// NewService builds an orders service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Purge == nil {
		return nil, fmt.Errorf("purge runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    params.Repo,
		purge:   params.Purge,
		logg:    params.Logger,
		metrics: params.Metrics,
	}, nil
}

// List returns the user's orders newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Page, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	return s.list(ctx, ListQuery{UserID: &userID}, params)
}

// Get loads one order owned by the user.
func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return order, nil
}

// Cancel moves the user's pending order to cancelled. Terminal orders stay
// exactly as they are.
func (s *service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, enums.OrderStatusCancelled) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot cancel an order in status %s", order.Status))
	}

	rows, err := s.repo.UpdateStatus(ctx, order.ID, order.Status, enums.OrderStatusCancelled)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancelling order")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			"order status changed while the cancellation was in flight")
	}
	s.metrics.IncTransition(order.Status.String(), enums.OrderStatusCancelled.String())
	order.Status = enums.OrderStatusCancelled
	return order, nil
}

// AdminList returns all orders, optionally filtered by status.
func (s *service) AdminList(ctx context.Context, status *enums.OrderStatus, params pagination.Params) (*Page, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}
	return s.list(ctx, ListQuery{Status: status}, params)
}

// AdminUpdateStatus applies a status transition. Completing an order that
// contains artwork triggers the system-wide purge of those pieces from every
// cart and wishlist; purge failures are logged, never surfaced as a failed
// completion.
func (s *service) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*StatusUpdateResult, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	if !CanTransition(order.Status, status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move an order from %s to %s", order.Status, status))
	}

	rows, err := s.repo.UpdateStatus(ctx, order.ID, order.Status, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order left status %s while the update was in flight", order.Status))
	}
	s.metrics.IncTransition(order.Status.String(), status.String())
	order.Status = status

	result := &StatusUpdateResult{Order: order}
	if status == enums.OrderStatusCompleted {
		if artIDs := artItemIDs(order); len(artIDs) > 0 {
			ctx := s.logg.WithOrderID(ctx, order.ID.String())
			purgeRes, err := s.purge.Run(ctx, artIDs, "order-completed")
			if err != nil {
				s.logg.Error(ctx, "sold-item purge failed, order stays completed", err)
			} else {
				result.Purge = purgeRes
			}
		}
	}
	return result, nil
}

func (s *service) list(ctx context.Context, query ListQuery, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	query.Cursor = cursor
	query.Limit = params.Limit

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}

	page, hasMore := pagination.TrimPage(rows, params.Limit)
	out := &Page{Orders: page}
	if hasMore {
		last := page[len(page)-1]
		out.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return out, nil
}

// artItemIDs collects the item ids of art line items on the order.
func artItemIDs(order *models.Order) []uuid.UUID {
	var ids []uuid.UUID
	for _, item := range order.Items {
		if item.Kind == enums.ItemKindArt {
			ids = append(ids, item.ItemID)
		}
	}
	return ids
}
