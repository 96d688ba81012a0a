package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rabuste-coffee/rabuste-backend/pkg/db/models"
	"github.com/rabuste-coffee/rabuste-backend/pkg/enums"
)

// Item is the unified add-time snapshot handed to cart and wishlist flows.
// Kind comes from the table the record lives in, so classification is total:
// a menu row is always menu and an artwork row is always art.
type Item struct {
	ID          uuid.UUID
	Kind        enums.ItemKind
	Name        string
	Price       decimal.Decimal
	Image       string
	IsAvailable bool
}

func itemFromMenu(m *models.MenuItem) *Item {
	return &Item{
		ID:          m.ID,
		Kind:        enums.ItemKindMenu,
		Name:        m.Name,
		Price:       m.Price,
		Image:       m.Image,
		IsAvailable: m.IsAvailable,
	}
}

func itemFromArtwork(a *models.Artwork) *Item {
	return &Item{
		ID:          a.ID,
		Kind:        enums.ItemKindArt,
		Name:        a.Title,
		Price:       a.Price,
		Image:       a.Image,
		IsAvailable: a.IsAvailable,
	}
}
