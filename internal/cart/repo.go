package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
)

// Repository exposes persistence operations for cart line items.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListForUser returns the user's cart rows, oldest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListForUserLocked returns the user's cart rows under a row lock. Callers
// must run this inside a transaction.
func (r *Repository) ListForUserLocked(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new cart row.
func (r *Repository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Save persists changes to an existing cart row.
func (r *Repository) Save(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteByIDs removes the given cart rows.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.CartItem{}).Error
}

// DeleteForUserItems removes the user's rows for the given item ids and
// returns how many rows went away.
func (r *Repository) DeleteForUserItems(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id IN ?", userID, itemIDs).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ClearForUser removes every cart row belonging to the user.
func (r *Repository) ClearForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// SweepUser deletes the user's rows for the given item ids on the provided
// transaction. Used by the sold-item purge.
func (r *Repository) SweepUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	return r.WithTx(tx).DeleteForUserItems(ctx, userID, itemIDs)
}

// UserIDsHoldingItems returns the distinct owners of cart rows referencing
// any of the given item ids.
func (r *Repository) UserIDsHoldingItems(ctx context.Context, itemIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var userIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Distinct("user_id").
		Where("item_id IN ?", itemIDs).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
