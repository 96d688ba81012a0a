package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rabuste-coffee/rabuste-backend/api/controllers"
	"github.com/rabuste-coffee/rabuste-backend/api/middleware"
	"github.com/rabuste-coffee/rabuste-backend/internal/cart"
	"github.com/rabuste-coffee/rabuste-backend/internal/catalog"
	checkoutsvc "github.com/rabuste-coffee/rabuste-backend/internal/checkout"
	"github.com/rabuste-coffee/rabuste-backend/internal/orders"
	"github.com/rabuste-coffee/rabuste-backend/internal/users"
	"github.com/rabuste-coffee/rabuste-backend/internal/wishlist"
	"github.com/rabuste-coffee/rabuste-backend/pkg/auth/session"
	"github.com/rabuste-coffee/rabuste-backend/pkg/config"
	"github.com/rabuste-coffee/rabuste-backend/pkg/db"
	"github.com/rabuste-coffee/rabuste-backend/pkg/logger"
	redisclient "github.com/rabuste-coffee/rabuste-backend/pkg/redis"
)

// RouterParams carries everything the router wires into handlers.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    redisclient.Pinger
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry
	Users    users.Service
	Catalog  catalog.Service
	Cart     cart.Service
	Wishlist wishlist.Service
	Checkout checkoutsvc.Service
	Orders   orders.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(p.Users, logg))
		r.Post("/login", controllers.AuthLogin(p.Users, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.Users, cfg.JWT, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/menu", controllers.MenuList(p.Catalog, logg))
		r.Get("/artworks", controllers.ArtworkList(p.Catalog, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

		r.Post("/auth/logout", controllers.AuthLogout(p.Users, logg))
		r.Get("/auth/me", controllers.AuthMe(p.Users, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(p.Cart, logg))
			r.Post("/", controllers.CartAddItem(p.Cart, logg))
			r.Patch("/{itemId}", controllers.CartUpdateQuantity(p.Cart, logg))
			r.Delete("/{itemId}", controllers.CartRemoveItem(p.Cart, logg))
			r.Delete("/", controllers.CartClear(p.Cart, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(p.Wishlist, logg))
			r.Post("/", controllers.WishlistAddItem(p.Wishlist, logg))
			r.Delete("/{itemId}", controllers.WishlistRemoveItem(p.Wishlist, logg))
		})

		r.Post("/checkout", controllers.Checkout(p.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(p.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(p.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.OrderCancel(p.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(p.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(p.Orders, logg))
		})
	})

	return r
}
