package payouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/adsync-labs/campaigns-backend/pkg/db"
	"github.com/adsync-labs/campaigns-backend/pkg/db/models"
	pkgerrors "github.com/adsync-labs/campaigns-backend/pkg/errors"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
	"gorm.io/gorm"
)

// repository is the persistence surface the payout service needs.
type repository interface {
	ListByCampaign(ctx context.Context, campaignID int64) ([]models.Payout, error)
	FindByID(ctx context.Context, id int64) (*models.Payout, error)
	FindByCampaignAndCountry(ctx context.Context, campaignID, countryID int64) (*models.Payout, error)
	Create(ctx context.Context, payout *models.Payout) error
	Save(ctx context.Context, payout *models.Payout) error
	Delete(ctx context.Context, payout *models.Payout) error
}

// campaignFinder resolves the owning campaign of a payout.
type campaignFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Campaign, error)
}

// countryFinder resolves the targeted country of a payout.
type countryFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Country, error)
}

// notifier receives payout lifecycle events. Calls must not block and must
// not fail the triggering operation.
type notifier interface {
	PayoutCreated(ctx context.Context, payout *models.Payout)
	PayoutUpdated(ctx context.Context, payout *models.Payout)
	PayoutDeleted(ctx context.Context, payout *models.Payout)
}

// Service exposes payout management.
type Service interface {
	ListByCampaign(ctx context.Context, campaignID int64) ([]models.Payout, error)
	Create(ctx context.Context, campaignID, countryID int64, input CreateInput) (*models.Payout, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Payout, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo      repository
	campaigns campaignFinder
	countries countryFinder
	notifier  notifier
	logg      *logger.Logger
}

// NewService wires a payout service over its repositories and notifier.
func NewService(repo repository, campaigns campaignFinder, countries countryFinder, notif notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payouts: repository is required")
	}
	if campaigns == nil {
		return nil, fmt.Errorf("payouts: campaign finder is required")
	}
	if countries == nil {
		return nil, fmt.Errorf("payouts: country finder is required")
	}
	if notif == nil {
		return nil, fmt.Errorf("payouts: notifier is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("payouts: logger is required")
	}
	return &service{repo: repo, campaigns: campaigns, countries: countries, notifier: notif, logg: logg}, nil
}

func (s *service) ListByCampaign(ctx context.Context, campaignID int64) ([]models.Payout, error) {
	rows, err := s.repo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payouts")
	}
	return rows, nil
}

// Create adds a payout to a campaign. Both the campaign and the country must
// exist, and the campaign may hold at most one payout per country.
func (s *service) Create(ctx context.Context, campaignID, countryID int64, input CreateInput) (*models.Payout, error) {
	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign or country not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign")
	}
	country, err := s.countries.FindByID(ctx, countryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign or country not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load country")
	}

	if _, err := s.repo.FindByCampaignAndCountry(ctx, campaignID, countryID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "payout already exists for this campaign and country")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing payout")
	}

	payout := input.toModel(campaignID, countryID)
	if err := s.repo.Create(ctx, payout); err != nil {
		// A concurrent create for the same pair loses the race at the
		// unique constraint.
		if db.IsUniqueViolation(err, "idx_payouts_campaign_country") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "payout already exists for this campaign and country")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payout")
	}
	payout.Country = country

	if campaign.IsRunning {
		s.notifier.PayoutCreated(ctx, payout)
	}
	return payout, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Payout, error) {
	payout, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(payout)
	if err := s.repo.Save(ctx, payout); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payout")
	}

	if payout.Campaign != nil && payout.Campaign.IsRunning {
		s.notifier.PayoutUpdated(ctx, payout)
	}
	return payout, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	payout, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	wasRunning := payout.Campaign != nil && payout.Campaign.IsRunning
	if err := s.repo.Delete(ctx, payout); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payout")
	}

	if wasRunning {
		s.notifier.PayoutDeleted(ctx, payout)
	}
	return nil
}

func (s *service) load(ctx context.Context, id int64) (*models.Payout, error) {
	payout, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payout not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payout")
	}
	return payout, nil
}
