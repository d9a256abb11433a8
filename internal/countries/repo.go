package countries

import (
	"context"

	"github.com/adsync-labs/campaigns-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles country persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to country operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every country ordered by display name.
func (r *Repository) List(ctx context.Context) ([]models.Country, error) {
	countries := []models.Country{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// FindByID loads a country by its id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Country, error) {
	var country models.Country
	if err := r.db.WithContext(ctx).First(&country, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

// FindByCode loads a country by its two-letter code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Country, error) {
	var country models.Country
	if err := r.db.WithContext(ctx).First(&country, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

// Count returns the number of country rows.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Country{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateBatch inserts the provided countries in one statement.
func (r *Repository) CreateBatch(ctx context.Context, rows []models.Country) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
