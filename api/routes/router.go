package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/kitcart/api/controllers"
	"github.com/angelmondragon/kitcart/api/middleware"
	"github.com/angelmondragon/kitcart/internal/cart"
	"github.com/angelmondragon/kitcart/pkg/config"
	"github.com/angelmondragon/kitcart/pkg/logger"
)

// NewRouter wires the cart API. metricsHandler is mounted at /metrics when non-nil.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storage controllers.Pinger,
	catalog controllers.CatalogReader,
	cartService cart.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, storage, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.App.CORSOrigins))

		r.Get("/catalog", controllers.CatalogList(catalog, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(cfg.Session, logg))

			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(cartService, logg))
			r.Post("/checkout", controllers.CartCheckout(cartService, logg))
		})
	})

	return r
}
