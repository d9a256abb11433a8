package controllers

import (
	"net/http"

	"github.com/adsync-labs/campaigns-backend/api/responses"
	"github.com/adsync-labs/campaigns-backend/api/validators"
	"github.com/adsync-labs/campaigns-backend/internal/countries"
	pkgerrors "github.com/adsync-labs/campaigns-backend/pkg/errors"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
)

// CountryList handles listing the country catalog ordered by name.
func CountryList(svc countries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "country service unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// CountryGet handles fetching one country by id.
func CountryGet(svc countries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "country service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		country, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, country)
	}
}
