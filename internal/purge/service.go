package purge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/rabuste-coffee/rabuste-backend/pkg/config"
	pkgerrors "github.com/rabuste-coffee/rabuste-backend/pkg/errors"
	"github.com/rabuste-coffee/rabuste-backend/pkg/logger"
	"github.com/rabuste-coffee/rabuste-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type sweeper interface {
	UserIDsHoldingItems(ctx context.Context, itemIDs []uuid.UUID) ([]uuid.UUID, error)
	SweepUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error)
}

type artworkMarker interface {
	MarkArtworksSold(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// Result reports what one purge run did.
type Result struct {
	UsersScanned        int   `json:"users_scanned"`
	UsersModified       int   `json:"users_modified"`
	CartRowsRemoved     int64 `json:"cart_rows_removed"`
	WishlistRowsRemoved int64 `json:"wishlist_rows_removed"`
	ArtworksMarkedSold  int64 `json:"artworks_marked_sold"`
	DeadlineHit         bool  `json:"deadline_hit"`
	// PartialErr aggregates per-user failures. The run itself still counts
	// as a success; callers log this and move on.
	PartialErr error `json:"-"`
}

// Service removes sold items from every cart and wishlist in the system.
type Service interface {
	Run(ctx context.Context, itemIDs []uuid.UUID, trigger string) (*Result, error)
}

type service struct {
	tx        txRunner
	carts     sweeper
	wishlists sweeper
	artworks  artworkMarker
	logg      *logger.Logger
	metrics   *metrics.PurgeMetrics
	cfg       config.PurgeConfig
}

// ServiceParams bundles the dependencies for a purge service.
type ServiceParams struct {
	Tx        txRunner
	Carts     sweeper
	Wishlists sweeper
	Artworks  artworkMarker
	Logger    *logger.Logger
	Metrics   *metrics.PurgeMetrics
	Config    config.PurgeConfig
}

// NewService builds the purge service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart sweeper required")
	}
	if params.Wishlists == nil {
		return nil, fmt.Errorf("wishlist sweeper required")
	}
	if params.Artworks == nil {
		return nil, fmt.Errorf("artwork marker required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:        params.Tx,
		carts:     params.Carts,
		wishlists: params.Wishlists,
		artworks:  params.Artworks,
		logg:      params.Logger,
		metrics:   params.Metrics,
		cfg:       params.Config,
	}, nil
}

// Run marks the given artworks sold, then walks every user holding one of
// them in a cart or wishlist and deletes those rows. Each user is an
// independent transaction; one user's failure is recorded and skipped, never
// propagated. The run stops cleanly at the configured soft deadline and
// reports how far it got.
func (s *service) Run(ctx context.Context, itemIDs []uuid.UUID, trigger string) (*Result, error) {
	if len(itemIDs) == 0 {
		return &Result{}, nil
	}

	started := time.Now()
	deadline := started.Add(s.softDeadline())
	res := &Result{}

	sold, err := s.artworks.MarkArtworksSold(ctx, itemIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking artworks sold")
	}
	res.ArtworksMarkedSold = sold

	holders, err := s.collectHolders(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	for _, userID := range holders {
		if time.Now().After(deadline) {
			res.DeadlineHit = true
			s.logg.Warn(s.logg.WithField(ctx, "users_remaining", len(holders)-res.UsersScanned),
				"purge soft deadline reached, stopping")
			break
		}

		res.UsersScanned++
		cartRemoved, wishRemoved, err := s.purgeUser(ctx, userID, itemIDs)
		if err != nil {
			res.PartialErr = multierr.Append(res.PartialErr,
				fmt.Errorf("purge user %s: %w", userID, err))
			s.metrics.IncUserFailure(trigger)
			s.logg.Error(s.logg.WithUserID(ctx, userID.String()), "purging user failed, skipping", err)
			continue
		}
		if cartRemoved+wishRemoved > 0 {
			res.UsersModified++
		}
		res.CartRowsRemoved += cartRemoved
		res.WishlistRowsRemoved += wishRemoved
	}

	s.metrics.ObserveDuration(trigger, time.Since(started))
	s.metrics.AddUsersScanned(trigger, res.UsersScanned)
	s.metrics.AddItemsRemoved(trigger, "carts", int(res.CartRowsRemoved))
	s.metrics.AddItemsRemoved(trigger, "wishlists", int(res.WishlistRowsRemoved))

	if res.PartialErr != nil {
		s.logg.Error(ctx, "purge finished with partial failures",
			pkgerrors.Wrap(pkgerrors.CodePartialFailure, res.PartialErr, "purge partial failure"))
	}
	return res, nil
}

// collectHolders unions the distinct user ids referencing the items across
// both collections.
func (s *service) collectHolders(ctx context.Context, itemIDs []uuid.UUID) ([]uuid.UUID, error) {
	cartHolders, err := s.carts.UserIDsHoldingItems(ctx, itemIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "scanning carts")
	}
	wishlistHolders, err := s.wishlists.UserIDsHoldingItems(ctx, itemIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "scanning wishlists")
	}

	seen := map[uuid.UUID]bool{}
	holders := make([]uuid.UUID, 0, len(cartHolders)+len(wishlistHolders))
	for _, id := range cartHolders {
		if !seen[id] {
			seen[id] = true
			holders = append(holders, id)
		}
	}
	for _, id := range wishlistHolders {
		if !seen[id] {
			seen[id] = true
			holders = append(holders, id)
		}
	}
	return holders, nil
}

func (s *service) purgeUser(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int64, int64, error) {
	var cartRemoved, wishRemoved int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		cartRemoved, err = s.carts.SweepUser(ctx, tx, userID, itemIDs)
		if err != nil {
			return err
		}
		wishRemoved, err = s.wishlists.SweepUser(ctx, tx, userID, itemIDs)
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	return cartRemoved, wishRemoved, nil
}

func (s *service) softDeadline() time.Duration {
	if s.cfg.SoftDeadline <= 0 {
		return 30 * time.Second
	}
	return s.cfg.SoftDeadline
}
