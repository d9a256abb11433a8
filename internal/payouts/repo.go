package payouts

import (
	"context"

	"github.com/adsync-labs/campaigns-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles payout persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to payout operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByCampaign returns the payouts of one campaign with countries
// preloaded. An unknown campaign yields an empty slice.
func (r *Repository) ListByCampaign(ctx context.Context, campaignID int64) ([]models.Payout, error) {
	payouts := []models.Payout{}
	err := r.db.WithContext(ctx).
		Preload("Country").
		Where("campaign_id = ?", campaignID).
		Find(&payouts).Error
	if err != nil {
		return nil, err
	}
	return payouts, nil
}

// FindByID loads a payout with its campaign and country.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Payout, error) {
	var payout models.Payout
	err := r.db.WithContext(ctx).
		Preload("Campaign").
		Preload("Country").
		First(&payout, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

// FindByCampaignAndCountry loads the payout for a campaign/country pair.
func (r *Repository) FindByCampaignAndCountry(ctx context.Context, campaignID, countryID int64) (*models.Payout, error) {
	var payout models.Payout
	err := r.db.WithContext(ctx).
		First(&payout, "campaign_id = ? AND country_id = ?", campaignID, countryID).Error
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

// Create inserts the payout.
func (r *Repository) Create(ctx context.Context, payout *models.Payout) error {
	return r.db.WithContext(ctx).Create(payout).Error
}

// Save persists the payout's fields.
func (r *Repository) Save(ctx context.Context, payout *models.Payout) error {
	return r.db.WithContext(ctx).Omit("Campaign", "Country").Save(payout).Error
}

// Delete removes the payout.
func (r *Repository) Delete(ctx context.Context, payout *models.Payout) error {
	return r.db.WithContext(ctx).Delete(payout).Error
}
