package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
)

// Repository exposes persistence operations for wishlist rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) WishlistRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListForUser returns the user's wishlist rows, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new wishlist row.
func (r *Repository) Create(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// DeleteForUserItems removes the user's rows for the given item ids and
// returns how many rows went away.
func (r *Repository) DeleteForUserItems(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id IN ?", userID, itemIDs).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// SweepUser deletes the user's rows for the given item ids on the provided
// transaction. Used by the sold-item purge.
func (r *Repository) SweepUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	return r.WithTx(tx).DeleteForUserItems(ctx, userID, itemIDs)
}

// UserIDsHoldingItems returns the distinct owners of wishlist rows
// referencing any of the given item ids.
func (r *Repository) UserIDsHoldingItems(ctx context.Context, itemIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var userIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Distinct("user_id").
		Where("item_id IN ?", itemIDs).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
