package controllers

import (
	"net/http"

	"github.com/adsync-labs/campaigns-backend/api/responses"
	"github.com/adsync-labs/campaigns-backend/api/validators"
	"github.com/adsync-labs/campaigns-backend/internal/payouts"
	pkgerrors "github.com/adsync-labs/campaigns-backend/pkg/errors"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type payoutRequest struct {
	CountryID        int64            `json:"countryId" validate:"required"`
	Amount           *decimal.Decimal `json:"amount"`
	Budget           *decimal.Decimal `json:"budget"`
	AutoStop         *bool            `json:"autoStop"`
	BudgetAlert      *bool            `json:"budgetAlert"`
	BudgetAlertEmail *string          `json:"budgetAlertEmail" validate:"omitempty,email"`
}

func (p payoutRequest) toCreateInput() payouts.CreateInput {
	return payouts.CreateInput{
		Amount:           *p.Amount,
		Budget:           toNullDecimal(p.Budget),
		AutoStop:         p.AutoStop != nil && *p.AutoStop,
		BudgetAlert:      p.BudgetAlert != nil && *p.BudgetAlert,
		BudgetAlertEmail: p.BudgetAlertEmail,
	}
}

type payoutUpdateRequest struct {
	Amount           *decimal.Decimal `json:"amount"`
	Budget           *decimal.Decimal `json:"budget"`
	AutoStop         *bool            `json:"autoStop"`
	BudgetAlert      *bool            `json:"budgetAlert"`
	BudgetAlertEmail *string          `json:"budgetAlertEmail" validate:"omitempty,email"`
}

func (p payoutUpdateRequest) toUpdateInput() payouts.UpdateInput {
	input := payouts.UpdateInput{
		Amount:           p.Amount,
		AutoStop:         p.AutoStop,
		BudgetAlert:      p.BudgetAlert,
		BudgetAlertEmail: p.BudgetAlertEmail,
	}
	if p.Budget != nil {
		budget := toNullDecimal(p.Budget)
		input.Budget = &budget
	}
	return input
}

// PayoutListByCampaign handles listing a campaign's payouts. An unknown
// campaign yields an empty list.
func PayoutListByCampaign(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payout service unavailable"))
			return
		}

		campaignID, err := validators.ParseIDParam(r, "campaignId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListByCampaign(r.Context(), campaignID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// PayoutCreate handles adding a payout to a campaign.
func PayoutCreate(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payout service unavailable"))
			return
		}

		campaignID, err := validators.ParseIDParam(r, "campaignId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload payoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if details := amountErrors(payload.Amount, payload.Budget); details != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details))
			return
		}

		created, err := svc.Create(r.Context(), campaignID, payload.CountryID, payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// PayoutUpdate handles a partial payout update.
func PayoutUpdate(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payout service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload payoutUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		details := map[string]string{}
		if payload.Amount != nil && payload.Amount.IsNegative() {
			details["amount"] = "must be a positive number"
		}
		if payload.Budget != nil && payload.Budget.IsNegative() {
			details["budget"] = "must be a positive number"
		}
		if len(details) > 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details))
			return
		}

		updated, err := svc.Update(r.Context(), id, payload.toUpdateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// PayoutDelete handles removing a payout.
func PayoutDelete(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payout service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
