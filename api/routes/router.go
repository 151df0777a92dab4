package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/bcf-portal/api/controllers"
	"github.com/angelmondragon/bcf-portal/api/middleware"
	"github.com/angelmondragon/bcf-portal/internal/catalog"
	"github.com/angelmondragon/bcf-portal/pkg/config"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
	pkgredis "github.com/angelmondragon/bcf-portal/pkg/redis"
)

// Deps are the collaborators the router hands to controllers.
type Deps struct {
	Catalog     catalog.Reader
	Workspaces  controllers.Workspaces
	Idempotency pkgredis.IdempotencyStore
	// Ready lists the backends checked by /health/ready.
	Ready map[string]controllers.Pinger
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Ready))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		// Idempotency needs the owner from Auth to scope its keys.
		if deps.Idempotency != nil {
			r.Use(middleware.Idempotency(deps.Idempotency, logg))
		}

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.ListCatalog(deps.Catalog, logg))
			r.Get("/{productId}", controllers.GetCatalogProduct(deps.Catalog, logg))
		})

		r.Route("/configurator", func(r chi.Router) {
			r.Post("/", controllers.StartConfiguration(deps.Workspaces, logg))
			r.Get("/", controllers.GetConfiguration(deps.Workspaces, logg))
			r.Delete("/", controllers.AbandonConfiguration(deps.Workspaces, logg))
			r.Post("/media/{mediaRef}", controllers.ToggleMedia(deps.Workspaces, logg))
			r.Patch("/selection", controllers.UpdateSelection(deps.Workspaces, logg))
			r.Post("/advance", controllers.AdvanceConfiguration(deps.Workspaces, logg))
			r.Post("/retreat", controllers.RetreatConfiguration(deps.Workspaces, logg))
			r.Post("/commit", controllers.CommitConfiguration(deps.Workspaces, logg))
		})

		r.Route("/batch", func(r chi.Router) {
			r.Get("/", controllers.GetBatch(deps.Workspaces, logg))
			r.Delete("/items/{itemId}", controllers.RemoveBatchItem(deps.Workspaces, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.SubmitOrder(deps.Workspaces, logg))
			r.Get("/", controllers.ListOrders(deps.Workspaces, logg))
		})
	})

	return r
}
