package payouts

import (
	"github.com/adsync-labs/campaigns-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// CreateInput carries the fields accepted when creating a payout.
type CreateInput struct {
	Amount           decimal.Decimal
	Budget           decimal.NullDecimal
	AutoStop         bool
	BudgetAlert      bool
	BudgetAlertEmail *string
}

// UpdateInput carries a partial payout update. Nil fields are left as is.
type UpdateInput struct {
	Amount           *decimal.Decimal
	Budget           *decimal.NullDecimal
	AutoStop         *bool
	BudgetAlert      *bool
	BudgetAlertEmail *string
}

func (in CreateInput) toModel(campaignID, countryID int64) *models.Payout {
	return &models.Payout{
		CampaignID:       campaignID,
		CountryID:        countryID,
		Amount:           in.Amount,
		Budget:           in.Budget,
		AutoStop:         in.AutoStop,
		BudgetAlert:      in.BudgetAlert,
		BudgetAlertEmail: in.BudgetAlertEmail,
	}
}

func (in UpdateInput) apply(payout *models.Payout) {
	if in.Amount != nil {
		payout.Amount = *in.Amount
	}
	if in.Budget != nil {
		payout.Budget = *in.Budget
	}
	if in.AutoStop != nil {
		payout.AutoStop = *in.AutoStop
	}
	if in.BudgetAlert != nil {
		payout.BudgetAlert = *in.BudgetAlert
	}
	if in.BudgetAlertEmail != nil {
		payout.BudgetAlertEmail = in.BudgetAlertEmail
	}
}
