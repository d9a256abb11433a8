package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payout is a per-country monetary allocation owned by one campaign.
// The (campaign_id, country_id) pair is unique at the storage layer.
type Payout struct {
	ID               int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	Amount           decimal.Decimal     `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	Budget           decimal.NullDecimal `gorm:"column:budget;type:decimal(10,2)" json:"budget"`
	AutoStop         bool                `gorm:"column:auto_stop;not null;default:false" json:"autoStop"`
	BudgetAlert      bool                `gorm:"column:budget_alert;not null;default:false" json:"budgetAlert"`
	BudgetAlertEmail *string             `gorm:"column:budget_alert_email" json:"budgetAlertEmail"`
	CampaignID       int64               `gorm:"column:campaign_id;not null;uniqueIndex:idx_payouts_campaign_country" json:"campaignId"`
	Campaign         *Campaign           `gorm:"foreignKey:CampaignID" json:"-"`
	CountryID        int64               `gorm:"column:country_id;not null;uniqueIndex:idx_payouts_campaign_country" json:"countryId"`
	Country          *Country            `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
