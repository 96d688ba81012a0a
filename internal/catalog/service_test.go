package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
)

type stubRepo struct {
	menuItems map[uuid.UUID]*models.MenuItem
	artworks  map[uuid.UUID]*models.Artwork
}

func (s *stubRepo) WithTx(tx *gorm.DB) CatalogRepository { return s }

func (s *stubRepo) ListMenuItems(ctx context.Context, category *enums.MenuCategory) ([]models.MenuItem, error) {
	out := []models.MenuItem{}
	for _, m := range s.menuItems {
		if category == nil || m.Category == *category {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *stubRepo) ListArtworks(ctx context.Context, category *enums.ArtworkCategory) ([]models.Artwork, error) {
	out := []models.Artwork{}
	for _, a := range s.artworks {
		if category == nil || a.Category == *category {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubRepo) FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	if m, ok := s.menuItems[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindArtwork(ctx context.Context, id uuid.UUID) (*models.Artwork, error) {
	if a, ok := s.artworks[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) MarkArtworksSold(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if a, ok := s.artworks[id]; ok && a.IsAvailable {
			a.IsAvailable = false
			n++
		}
	}
	return n, nil
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		menuItems: map[uuid.UUID]*models.MenuItem{},
		artworks:  map[uuid.UUID]*models.Artwork{},
	}
}

func TestResolveMenuRowYieldsMenuKind(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.menuItems[id] = &models.MenuItem{
		ID:          id,
		Name:        "Cold Brew",
		Price:       decimal.NewFromInt(120),
		Category:    enums.MenuCategoryCold,
		Image:       "cold-brew.jpg",
		IsAvailable: true,
	}

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	item, err := svc.Resolve(context.Background(), id)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if item.Kind != enums.ItemKindMenu {
		t.Fatalf("expected kind menu, got %s", item.Kind)
	}
	if item.Name != "Cold Brew" {
		t.Fatalf("unexpected name %q", item.Name)
	}
}

func TestResolveArtworkRowYieldsArtKind(t *testing.T) {
	repo := newStubRepo()
	id := uuid.New()
	repo.artworks[id] = &models.Artwork{
		ID:          id,
		Title:       "Morning Fog",
		Artist:      "R. Tan",
		Category:    enums.ArtworkCategoryPainting,
		Price:       decimal.NewFromInt(5000),
		Image:       "fog.jpg",
		IsAvailable: true,
	}

	svc, _ := NewService(repo)

	item, err := svc.Resolve(context.Background(), id)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if item.Kind != enums.ItemKindArt {
		t.Fatalf("expected kind art, got %s", item.Kind)
	}
	if item.Name != "Morning Fog" {
		t.Fatalf("unexpected name %q", item.Name)
	}
}

func TestResolveUnknownIDIsNotFound(t *testing.T) {
	svc, _ := NewService(newStubRepo())

	_, err := svc.Resolve(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for unknown item")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolveNilIDIsValidation(t *testing.T) {
	svc, _ := NewService(newStubRepo())

	_, err := svc.Resolve(context.Background(), uuid.Nil)
	if err == nil {
		t.Fatal("expected error for nil item id")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListArtworksFiltersByCategory(t *testing.T) {
	repo := newStubRepo()
	painting := uuid.New()
	photo := uuid.New()
	repo.artworks[painting] = &models.Artwork{ID: painting, Category: enums.ArtworkCategoryPainting, IsAvailable: true}
	repo.artworks[photo] = &models.Artwork{ID: photo, Category: enums.ArtworkCategoryPhotography, IsAvailable: true}

	svc, _ := NewService(repo)

	category := enums.ArtworkCategoryPainting
	artworks, err := svc.ListArtworks(context.Background(), &category)
	if err != nil {
		t.Fatalf("list artworks: %v", err)
	}
	if len(artworks) != 1 || artworks[0].ID != painting {
		t.Fatalf("expected only the painting, got %d rows", len(artworks))
	}
}
