package models

import "time"

// Campaign is an advertising campaign with its per-country payouts.
// JSON field names follow the public API contract (camelCase).
type Campaign struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title          string    `gorm:"column:title;size:255;not null" json:"title"`
	LandingPageURL string    `gorm:"column:landing_page_url;type:text;not null" json:"landingPageUrl"`
	IsRunning      bool      `gorm:"column:is_running;not null;default:false" json:"isRunning"`
	Payouts        []Payout  `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"payouts"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
