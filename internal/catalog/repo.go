package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
)

// Repository exposes persistence operations for the two catalog tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CatalogRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListMenuItems returns menu items ordered for display, optionally filtered
// by category. Unavailable items are excluded.
func (r *Repository) ListMenuItems(ctx context.Context, category *enums.MenuCategory) ([]models.MenuItem, error) {
	q := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("display_order ASC, name ASC")
	if category != nil {
		q = q.Where("category = ?", *category)
	}

	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListArtworks returns available artworks ordered for display, optionally
// filtered by category. Sold pieces never appear.
func (r *Repository) ListArtworks(ctx context.Context, category *enums.ArtworkCategory) ([]models.Artwork, error) {
	q := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("display_order ASC, title ASC")
	if category != nil {
		q = q.Where("category = ?", *category)
	}

	var artworks []models.Artwork
	if err := q.Find(&artworks).Error; err != nil {
		return nil, err
	}
	return artworks, nil
}

// FindMenuItem loads a single menu item by id.
func (r *Repository) FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindArtwork loads a single artwork by id.
func (r *Repository) FindArtwork(ctx context.Context, id uuid.UUID) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&artwork).Error; err != nil {
		return nil, err
	}
	return &artwork, nil
}

// MarkArtworksSold flips is_available off for the given artworks and returns
// how many rows changed.
func (r *Repository) MarkArtworksSold(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Artwork{}).
		Where("id IN ?", ids).
		Update("is_available", false)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
