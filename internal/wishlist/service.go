package wishlist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/internal/catalog"
	"github.com/rabuste-coffee/rabuste-backend/pkg/db"
	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
)

type itemResolver interface {
	Resolve(ctx context.Context, itemID uuid.UUID) (*catalog.Item, error)
}

// WishlistRepository abstracts persistence for wishlist rows.
type WishlistRepository interface {
	WithTx(tx *gorm.DB) WishlistRepository
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	Create(ctx context.Context, item *models.WishlistItem) error
	DeleteForUserItems(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error)
	UserIDsHoldingItems(ctx context.Context, itemIDs []uuid.UUID) ([]uuid.UUID, error)
}

// Service owns wishlist reads and writes.
type Service interface {
	AddItem(ctx context.Context, userID, itemID uuid.UUID) (*models.WishlistItem, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
}

type service struct {
	repo    WishlistRepository
	catalog itemResolver
}

// NewService builds a wishlist service backed by the provided stack.
func NewService(repo WishlistRepository, catalogSvc itemResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog resolver required")
	}
	return &service{repo: repo, catalog: catalogSvc}, nil
}

// AddItem saves a catalog item to the user's wishlist, copying the display
// snapshot and the kind the catalog dictates. Items already sold cannot be
// saved; a duplicate add is a conflict and leaves the wishlist unchanged.
func (s *service) AddItem(ctx context.Context, userID, itemID uuid.UUID) (*models.WishlistItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	item, err := s.catalog.Resolve(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "item is no longer available")
	}

	row := models.WishlistItem{
		UserID: userID,
		ItemID: item.ID,
		Kind:   item.Kind,
		Name:   item.Name,
		Price:  item.Price,
		Image:  item.Image,
	}
	if err := s.repo.Create(ctx, &row); err != nil {
		if db.IsUniqueViolation(err, "wishlist_items_user_item_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "item is already in the wishlist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving wishlist item")
	}
	return &row, nil
}

// List returns the user's wishlist.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading wishlist")
	}
	return rows, nil
}

// RemoveItem deletes one wishlist row.
func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	removed, err := s.repo.DeleteForUserItems(ctx, userID, []uuid.UUID{itemID})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing wishlist item")
	}
	if removed == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the wishlist")
	}
	return nil
}
