package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/internal/catalog"
	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
)

var errDuplicate = errors.New(`duplicate key value violates unique constraint "wishlist_items_user_item_key"`)

type stubResolver struct {
	items map[uuid.UUID]*catalog.Item
}

func (s *stubResolver) Resolve(ctx context.Context, itemID uuid.UUID) (*catalog.Item, error) {
	if item, ok := s.items[itemID]; ok {
		return item, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found in catalog")
}

type memRepo struct {
	rows []models.WishlistItem
}

func (m *memRepo) WithTx(tx *gorm.DB) WishlistRepository { return m }

func (m *memRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	out := []models.WishlistItem{}
	for _, row := range m.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memRepo) Create(ctx context.Context, item *models.WishlistItem) error {
	for _, row := range m.rows {
		if row.UserID == item.UserID && row.ItemID == item.ItemID {
			// matches the postgres unique index text so IsUniqueViolation fires
			return errDuplicate
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m.rows = append(m.rows, *item)
	return nil
}

func (m *memRepo) DeleteForUserItems(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	drop := map[uuid.UUID]bool{}
	for _, id := range itemIDs {
		drop[id] = true
	}
	var removed int64
	kept := m.rows[:0]
	for _, row := range m.rows {
		if row.UserID == userID && drop[row.ItemID] {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	m.rows = kept
	return removed, nil
}

func (m *memRepo) UserIDsHoldingItems(ctx context.Context, itemIDs []uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func newFixture() (*memRepo, *stubResolver, Service, uuid.UUID, uuid.UUID) {
	repo := &memRepo{}
	artID := uuid.New()
	resolver := &stubResolver{items: map[uuid.UUID]*catalog.Item{
		artID: {
			ID:          artID,
			Kind:        enums.ItemKindArt,
			Name:        "Quiet Street",
			Price:       decimal.NewFromInt(3600),
			Image:       "quiet-street.jpg",
			IsAvailable: true,
		},
	}}
	svc, _ := NewService(repo, resolver)
	return repo, resolver, svc, uuid.New(), artID
}

func TestAddItemCopiesSnapshotAndKind(t *testing.T) {
	repo, _, svc, userID, artID := newFixture()

	row, err := svc.AddItem(context.Background(), userID, artID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if row.Kind != enums.ItemKindArt {
		t.Fatalf("expected kind art, got %s", row.Kind)
	}
	if row.Name != "Quiet Street" {
		t.Fatalf("unexpected snapshot name %q", row.Name)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("expected one stored row, got %d", len(repo.rows))
	}
}

func TestAddDuplicateIsConflict(t *testing.T) {
	repo, _, svc, userID, artID := newFixture()

	if _, err := svc.AddItem(context.Background(), userID, artID); err != nil {
		t.Fatalf("first add: %v", err)
	}

	_, err := svc.AddItem(context.Background(), userID, artID)
	if err == nil {
		t.Fatal("expected duplicate add to be rejected")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("wishlist should be unchanged, got %d rows", len(repo.rows))
	}
}

func TestAddSoldArtworkIsRejected(t *testing.T) {
	_, resolver, svc, userID, artID := newFixture()
	resolver.items[artID].IsAvailable = false

	_, err := svc.AddItem(context.Background(), userID, artID)
	if err == nil {
		t.Fatal("expected sold artwork add to be rejected")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRemoveMissingItemIsNotFound(t *testing.T) {
	_, _, svc, userID, _ := newFixture()

	err := svc.RemoveItem(context.Background(), userID, uuid.New())
	if err == nil {
		t.Fatal("expected error removing missing item")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
