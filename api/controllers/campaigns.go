package controllers

import (
	"fmt"
	"net/http"

	"github.com/adsync-labs/campaigns-backend/api/responses"
	"github.com/adsync-labs/campaigns-backend/api/validators"
	"github.com/adsync-labs/campaigns-backend/internal/campaigns"
	pkgerrors "github.com/adsync-labs/campaigns-backend/pkg/errors"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type campaignPayoutPayload struct {
	CountryID        int64            `json:"countryId" validate:"required"`
	Amount           *decimal.Decimal `json:"amount"`
	Budget           *decimal.Decimal `json:"budget"`
	AutoStop         *bool            `json:"autoStop"`
	BudgetAlert      *bool            `json:"budgetAlert"`
	BudgetAlertEmail *string          `json:"budgetAlertEmail" validate:"omitempty,email"`
}

type campaignRequest struct {
	Title          string                  `json:"title" validate:"required"`
	LandingPageURL string                  `json:"landingPageUrl" validate:"required,url"`
	IsRunning      *bool                   `json:"isRunning"`
	Payouts        []campaignPayoutPayload `json:"payouts" validate:"omitempty,dive"`
}

func (p campaignRequest) amountErrors() map[string]string {
	details := map[string]string{}
	for i, payout := range p.Payouts {
		prefix := fmt.Sprintf("payouts.%d.", i)
		for field, msg := range amountErrors(payout.Amount, payout.Budget) {
			details[prefix+field] = msg
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// amountErrors validates the monetary fields shared by payout payloads. The
// amount is mandatory and neither value may be negative.
func amountErrors(amount, budget *decimal.Decimal) map[string]string {
	details := map[string]string{}
	if amount == nil {
		details["amount"] = "is required"
	} else if amount.IsNegative() {
		details["amount"] = "must be a positive number"
	}
	if budget != nil && budget.IsNegative() {
		details["budget"] = "must be a positive number"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (p campaignRequest) toCreateInput() campaigns.CreateInput {
	input := campaigns.CreateInput{
		Title:          p.Title,
		LandingPageURL: p.LandingPageURL,
	}
	if p.IsRunning != nil {
		input.IsRunning = *p.IsRunning
	}
	for _, payout := range p.Payouts {
		input.Payouts = append(input.Payouts, campaigns.PayoutInput{
			CountryID:        payout.CountryID,
			Amount:           *payout.Amount,
			Budget:           toNullDecimal(payout.Budget),
			AutoStop:         payout.AutoStop != nil && *payout.AutoStop,
			BudgetAlert:      payout.BudgetAlert != nil && *payout.BudgetAlert,
			BudgetAlertEmail: payout.BudgetAlertEmail,
		})
	}
	return input
}

func (p campaignRequest) toUpdateInput() campaigns.UpdateInput {
	title := p.Title
	landingPageURL := p.LandingPageURL
	return campaigns.UpdateInput{
		Title:          &title,
		LandingPageURL: &landingPageURL,
		IsRunning:      p.IsRunning,
	}
}

func toNullDecimal(value *decimal.Decimal) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *value, Valid: true}
}

// CampaignList handles listing campaigns with optional search and running
// state filters.
func CampaignList(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		filter := campaigns.ListFilter{
			Search:    r.URL.Query().Get("search"),
			IsRunning: validators.ParseOptionalBool(r, "isRunning"),
		}

		rows, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// CampaignGet handles fetching one campaign by id.
func CampaignGet(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		campaign, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, campaign)
	}
}

// CampaignCreate handles creating a campaign with optional nested payouts.
func CampaignCreate(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		var payload campaignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if details := payload.amountErrors(); details != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details))
			return
		}

		created, err := svc.Create(r.Context(), payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// CampaignUpdate handles replacing a campaign's mutable fields. Payouts are
// managed through their own endpoints and ignored here.
func CampaignUpdate(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload campaignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if details := payload.amountErrors(); details != nil {
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

// CampaignToggle handles flipping a campaign's running state.
func CampaignToggle(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		toggled, err := svc.Toggle(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toggled)
	}
}

// CampaignDelete handles removing a campaign and its payouts.
func CampaignDelete(svc campaigns.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "campaign service unavailable"))
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
