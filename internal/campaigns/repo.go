package campaigns

import (
	"context"
	"strings"

	"github.com/adsync-labs/campaigns-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles campaign persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to campaign operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns campaigns matching the filter, with payouts and their
// countries preloaded. Search matches title and landing page URL, case
// insensitively.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Campaign, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Preload("Payouts").
		Preload("Payouts.Country")

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(landing_page_url) LIKE ?", pattern, pattern)
	}
	if filter.IsRunning != nil {
		q = q.Where("is_running = ?", *filter.IsRunning)
	}

	campaigns := []models.Campaign{}
	if err := q.Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// FindByID loads a campaign with its payouts and countries.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).
		Preload("Payouts").
		Preload("Payouts.Country").
		First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// Create inserts the campaign together with any nested payouts.
func (r *Repository) Create(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

// Save persists the campaign's scalar fields.
func (r *Repository) Save(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(campaign).Error
}

// Delete removes the campaign and its payouts.
func (r *Repository) Delete(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(campaign).Error
}
