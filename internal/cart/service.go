package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/internal/catalog"
	"github.com/rabuste-coffee/rabuste-backend/pkg/db"
	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type itemResolver interface {
	Resolve(ctx context.Context, itemID uuid.UUID) (*catalog.Item, error)
}

// CartRepository abstracts persistence for cart line items.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	ListForUserLocked(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	Save(ctx context.Context, item *models.CartItem) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
	DeleteForUserItems(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error)
	ClearForUser(ctx context.Context, userID uuid.UUID) error
	UserIDsHoldingItems(ctx context.Context, itemIDs []uuid.UUID) ([]uuid.UUID, error)
}

// AddItemInput carries an add-to-cart request. Quantity zero means one.
type AddItemInput struct {
	ItemID   uuid.UUID
	Quantity int
}

// Service owns cart mutations. Every write runs in one transaction with the
// user's rows locked, so merges and adds are atomic per user.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) ([]models.CartItem, error)
	GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) ([]models.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo    CartRepository
	tx      txRunner
	catalog itemResolver
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, catalogSvc itemResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog resolver required")
	}
	return &service{repo: repo, tx: tx, catalog: catalogSvc}, nil
}

// AddItem adds a catalog item to the user's cart. The kind is fixed from the
// catalog record here and never re-derived. Menu items merge by summing
// quantities; artworks never stack, a second add is rejected with
// AlreadyInCart and the cart is left exactly as it was.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	item, err := s.catalog.Resolve(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "item is no longer available")
	}
	if item.Kind == enums.ItemKindArt && qty != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "artworks are one-of-a-kind, quantity is always 1")
	}

	var out []models.CartItem
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rows, err := repo.ListForUserLocked(ctx, userID)
		if err != nil {
			return err
		}
		rows, err = collapseDuplicates(ctx, repo, rows)
		if err != nil {
			return err
		}

		existing := findByItemID(rows, item.ID)
		if existing != nil {
			if existing.Kind == enums.ItemKindArt {
				return pkgerrors.New(pkgerrors.CodeAlreadyInCart, "artwork is already in the cart")
			}
			existing.Quantity += qty
			if err := repo.Save(ctx, existing); err != nil {
				return err
			}
		} else {
			row := models.CartItem{
				UserID:   userID,
				ItemID:   item.ID,
				Kind:     item.Kind,
				Name:     item.Name,
				Price:    item.Price,
				Image:    item.Image,
				Quantity: qty,
			}
			if err := repo.Create(ctx, &row); err != nil {
				if db.IsUniqueViolation(err, "cart_items_user_item_key") && item.Kind == enums.ItemKindArt {
					return pkgerrors.New(pkgerrors.CodeAlreadyInCart, "artwork is already in the cart")
				}
				// A valid token for a since-deleted account fails the
				// user FK, not a lookup.
				if db.IsForeignKeyViolation(err, "cart_items_user_id_fkey") {
					return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
				}
				return err
			}
			rows = append(rows, row)
		}
		out = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetCart returns the user's cart rows.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	return rows, nil
}

// UpdateQuantity sets the quantity of a menu line item. Artwork quantities
// are fixed at 1 and cannot change.
func (s *service) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var out []models.CartItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rows, err := repo.ListForUserLocked(ctx, userID)
		if err != nil {
			return err
		}
		rows, err = collapseDuplicates(ctx, repo, rows)
		if err != nil {
			return err
		}

		existing := findByItemID(rows, itemID)
		if existing == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
		}
		if existing.Kind == enums.ItemKindArt {
			return pkgerrors.New(pkgerrors.CodeValidation, "artwork quantity cannot change")
		}
		existing.Quantity = quantity
		if err := repo.Save(ctx, existing); err != nil {
			return err
		}
		out = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveItem deletes one line item from the user's cart.
func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	removed, err := s.repo.DeleteForUserItems(ctx, userID, []uuid.UUID{itemID})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart item")
	}
	if removed == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item is not in the cart")
	}
	return nil
}

// Clear removes every row from the user's cart.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.ClearForUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return nil
}

// collapseDuplicates merges legacy rows sharing an item id into the oldest
// row, summing quantities for menu items and pinning artworks at 1. The
// unique index prevents new duplicates; rows imported from the old system
// may still carry them.
func collapseDuplicates(ctx context.Context, repo CartRepository, rows []models.CartItem) ([]models.CartItem, error) {
	byItem := map[uuid.UUID]*models.CartItem{}
	merged := map[uuid.UUID]bool{}
	keep := make([]models.CartItem, 0, len(rows))
	var drop []uuid.UUID

	for i := range rows {
		row := rows[i]
		first, seen := byItem[row.ItemID]
		if !seen {
			keep = append(keep, row)
			byItem[row.ItemID] = &keep[len(keep)-1]
			continue
		}
		drop = append(drop, row.ID)
		merged[row.ItemID] = true
		if first.Kind == enums.ItemKindArt {
			first.Quantity = 1
			continue
		}
		first.Quantity += row.Quantity
	}

	if len(drop) == 0 {
		return rows, nil
	}

	for i := range keep {
		if !merged[keep[i].ItemID] {
			continue
		}
		if err := repo.Save(ctx, &keep[i]); err != nil {
			return nil, err
		}
	}
	if err := repo.DeleteByIDs(ctx, drop); err != nil {
		return nil, err
	}
	return keep, nil
}

func findByItemID(rows []models.CartItem, itemID uuid.UUID) *models.CartItem {
	for i := range rows {
		if rows[i].ItemID == itemID {
			return &rows[i]
		}
	}
	return nil
}
