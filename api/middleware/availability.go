package middleware

import (
	"net/http"

	"github.com/adsync-labs/campaigns-backend/api/responses"
	"github.com/adsync-labs/campaigns-backend/pkg/db"
	pkgerrors "github.com/adsync-labs/campaigns-backend/pkg/errors"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
)

// Availability rejects requests with 503 while the database connection is
// down. Mounted on the API subtree only, so liveness and metrics endpoints
// keep answering during an outage.
func Availability(store db.Availability, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store != nil && !store.Connected() {
				ctx := r.Context()
				if logg != nil {
					logg.Warn(ctx, "request rejected, database not connected")
				}
				err := pkgerrors.New(pkgerrors.CodeDependency, "service temporarily unavailable").
					WithDetails(map[string]any{"reason": "database connection issue"})
				responses.WriteError(ctx, logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
