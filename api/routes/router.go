package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adsync-labs/campaigns-backend/api/controllers"
	"github.com/adsync-labs/campaigns-backend/api/middleware"
	"github.com/adsync-labs/campaigns-backend/internal/campaigns"
	"github.com/adsync-labs/campaigns-backend/internal/countries"
	"github.com/adsync-labs/campaigns-backend/internal/payouts"
	"github.com/adsync-labs/campaigns-backend/pkg/config"
	"github.com/adsync-labs/campaigns-backend/pkg/db"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
	"github.com/adsync-labs/campaigns-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store *db.Client,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	campaignService campaigns.Service,
	payoutService payouts.Service,
	countryService countries.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var ready http.HandlerFunc
	switch {
	case store != nil && redisClient != nil:
		ready = controllers.HealthReady(cfg, logg, store, redisClient)
	case store != nil:
		ready = controllers.HealthReady(cfg, logg, store)
	default:
		ready = controllers.HealthReady(cfg, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.HealthLive(cfg))
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", ready)
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		if store != nil {
			r.Use(middleware.Availability(store, logg))
		}
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, logg))
		}

		r.Get("/status", controllers.Status(cfg))

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", controllers.CampaignList(campaignService, logg))
			r.Post("/", controllers.CampaignCreate(campaignService, logg))
			r.Get("/{id}", controllers.CampaignGet(campaignService, logg))
			r.Put("/{id}", controllers.CampaignUpdate(campaignService, logg))
			r.Patch("/{id}/toggle", controllers.CampaignToggle(campaignService, logg))
			r.Delete("/{id}", controllers.CampaignDelete(campaignService, logg))
		})

		r.Route("/payouts", func(r chi.Router) {
			r.Get("/campaign/{campaignId}", controllers.PayoutListByCampaign(payoutService, logg))
			r.Post("/campaign/{campaignId}", controllers.PayoutCreate(payoutService, logg))
			r.Put("/{id}", controllers.PayoutUpdate(payoutService, logg))
			r.Delete("/{id}", controllers.PayoutDelete(payoutService, logg))
		})

		r.Route("/countries", func(r chi.Router) {
			r.Get("/", controllers.CountryList(countryService, logg))
			r.Get("/{id}", controllers.CountryGet(countryService, logg))
		})
	})

	return r
}
