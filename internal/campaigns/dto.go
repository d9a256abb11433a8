package campaigns

import (
	"strings"

	"github.com/adsync-labs/campaigns-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ListFilter narrows campaign listings. A nil IsRunning means both states.
type ListFilter struct {
	Search    string
	IsRunning *bool
}

// PayoutInput carries a payout created inline with its campaign.
type PayoutInput struct {
	CountryID        int64
	Amount           decimal.Decimal
	Budget           decimal.NullDecimal
	AutoStop         bool
	BudgetAlert      bool
	BudgetAlertEmail *string
}

// CreateInput carries the fields accepted when creating a campaign.
type CreateInput struct {
	Title          string
	LandingPageURL string
	IsRunning      bool
	Payouts        []PayoutInput
}

// UpdateInput carries a partial campaign update. Nil fields are left as is.
type UpdateInput struct {
	Title          *string
	LandingPageURL *string
	IsRunning      *bool
}

func (in CreateInput) toModel() *models.Campaign {
	campaign := &models.Campaign{
		Title:          strings.TrimSpace(in.Title),
		LandingPageURL: strings.TrimSpace(in.LandingPageURL),
		IsRunning:      in.IsRunning,
	}
	for _, p := range in.Payouts {
		campaign.Payouts = append(campaign.Payouts, models.Payout{
			CountryID:        p.CountryID,
			Amount:           p.Amount,
			Budget:           p.Budget,
			AutoStop:         p.AutoStop,
			BudgetAlert:      p.BudgetAlert,
			BudgetAlertEmail: p.BudgetAlertEmail,
		})
	}
	return campaign
}

func (in UpdateInput) apply(campaign *models.Campaign) {
	if in.Title != nil {
		campaign.Title = strings.TrimSpace(*in.Title)
	}
	if in.LandingPageURL != nil {
		campaign.LandingPageURL = strings.TrimSpace(*in.LandingPageURL)
	}
	if in.IsRunning != nil {
		campaign.IsRunning = *in.IsRunning
	}
}
