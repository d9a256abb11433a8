package campaigns

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

// repository is the persistence surface the campaign service needs.
type repository interface {
	List(ctx context.Context, filter ListFilter) ([]models.Campaign, error)
	FindByID(ctx context.Context, id int64) (*models.Campaign, error)
	Create(ctx context.Context, campaign *models.Campaign) error
	Save(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, campaign *models.Campaign) error
}

// notifier receives campaign lifecycle events. Calls must not block and must
// not fail the triggering operation.
type notifier interface {
	CampaignCreated(ctx context.Context, campaign *models.Campaign)
	CampaignUpdated(ctx context.Context, campaign *models.Campaign)
	CampaignStarted(ctx context.Context, campaign *models.Campaign)
	CampaignStopped(ctx context.Context, campaign *models.Campaign)
	CampaignDeleted(ctx context.Context, campaign *models.Campaign)
}

// Service exposes campaign management.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.Campaign, error)
	Get(ctx context.Context, id int64) (*models.Campaign, error)
	Create(ctx context.Context, input CreateInput) (*models.Campaign, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.Campaign, error)
	Toggle(ctx context.Context, id int64) (*models.Campaign, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     repository
	notifier notifier
	logg     *logger.Logger
}

// NewService wires a campaign service over its repository and notifier.
func NewService(repo repository, notif notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("campaigns: repository is required")
	}
	if notif == nil {
		return nil, fmt.Errorf("campaigns: notifier is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("campaigns: logger is required")
	}
	return &service{repo: repo, notifier: notif, logg: logg}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Campaign, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list campaigns")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Campaign, error) {
	return s.load(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Campaign, error) {
	campaign := input.toModel()
	if err := s.repo.Create(ctx, campaign); err != nil {
		if db.IsUniqueViolation(err, "idx_payouts_campaign_country") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate payout country in campaign")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create campaign")
	}

	// Reload so nested payouts carry their country rows.
	created, err := s.load(ctx, campaign.ID)
	if err != nil {
		return nil, err
	}
	if created.IsRunning {
		s.notifier.CampaignCreated(ctx, created)
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.Campaign, error) {
	campaign, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	wasRunning := campaign.IsRunning
	input.apply(campaign)
	if err := s.repo.Save(ctx, campaign); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update campaign")
	}

	switch {
	case !wasRunning && campaign.IsRunning:
		s.notifier.CampaignStarted(ctx, campaign)
	case wasRunning && !campaign.IsRunning:
		s.notifier.CampaignStopped(ctx, campaign)
	case wasRunning && campaign.IsRunning:
		s.notifier.CampaignUpdated(ctx, campaign)
	}
	return campaign, nil
}

func (s *service) Toggle(ctx context.Context, id int64) (*models.Campaign, error) {
	campaign, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	campaign.IsRunning = !campaign.IsRunning
	if err := s.repo.Save(ctx, campaign); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle campaign")
	}

	if campaign.IsRunning {
		s.notifier.CampaignStarted(ctx, campaign)
	} else {
		s.notifier.CampaignStopped(ctx, campaign)
	}
	return campaign, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	campaign, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	wasRunning := campaign.IsRunning
	if err := s.repo.Delete(ctx, campaign); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete campaign")
	}

	if wasRunning {
		s.notifier.CampaignDeleted(ctx, campaign)
	}
	return nil
}

func (s *service) load(ctx context.Context, id int64) (*models.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign")
	}
	return campaign, nil
}
