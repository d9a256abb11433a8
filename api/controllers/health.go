package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/adsync-labs/campaigns-backend/api/responses"
	"github.com/adsync-labs/campaigns-backend/pkg/config"
	pkgerrors "github.com/adsync-labs/campaigns-backend/pkg/errors"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
	"go.uber.org/multierr"
)

const serviceVersion = "1.0.0"

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness. It answers even while the database is
// down so the orchestrator does not restart a reconnecting instance.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status":    "ok",
			"service":   cfg.App.ServiceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// HealthReady reports readiness by pinging every attached dependency. Nil
// pingers (an unconfigured Redis) are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var combined error
		for _, p := range pingers {
			if p == nil {
				continue
			}
			combined = multierr.Append(combined, p.Ping(ctx))
		}
		if combined != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check failed"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

// Status reports API identity metadata.
func Status(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status":      "ok",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"version":     serviceVersion,
			"environment": cfg.App.Env,
		})
	}
}
