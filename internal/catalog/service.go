package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
)

// CatalogRepository abstracts persistence for the menu and artwork tables.
type CatalogRepository interface {
	WithTx(tx *gorm.DB) CatalogRepository
	ListMenuItems(ctx context.Context, category *enums.MenuCategory) ([]models.MenuItem, error)
	ListArtworks(ctx context.Context, category *enums.ArtworkCategory) ([]models.Artwork, error)
	FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	FindArtwork(ctx context.Context, id uuid.UUID) (*models.Artwork, error)
	MarkArtworksSold(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// Service exposes catalog reads and the unified item lookup used by cart and
// wishlist adds.
type Service interface {
	ListMenu(ctx context.Context, category *enums.MenuCategory) ([]models.MenuItem, error)
	ListArtworks(ctx context.Context, category *enums.ArtworkCategory) ([]models.Artwork, error)
	Resolve(ctx context.Context, itemID uuid.UUID) (*Item, error)
}

type service struct {
	repo CatalogRepository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo CatalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListMenu returns available menu items, optionally filtered by category.
func (s *service) ListMenu(ctx context.Context, category *enums.MenuCategory) ([]models.MenuItem, error) {
	items, err := s.repo.ListMenuItems(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing menu items")
	}
	return items, nil
}

// ListArtworks returns available artworks, optionally filtered by category.
func (s *service) ListArtworks(ctx context.Context, category *enums.ArtworkCategory) ([]models.Artwork, error) {
	artworks, err := s.repo.ListArtworks(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing artworks")
	}
	return artworks, nil
}

// Resolve looks the item up in the menu table first, then the artwork table,
// and returns a snapshot carrying the kind the owning table dictates. Every
// existing catalog record maps to exactly one kind; an id in neither table is
// NotFound.
func (s *service) Resolve(ctx context.Context, itemID uuid.UUID) (*Item, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	menuItem, err := s.repo.FindMenuItem(ctx, itemID)
	if err == nil {
		return itemFromMenu(menuItem), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up menu item")
	}

	artwork, err := s.repo.FindArtwork(ctx, itemID)
	if err == nil {
		return itemFromArtwork(artwork), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up artwork")
	}

	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found in catalog")
}
