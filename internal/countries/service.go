package countries

import (
	"context"
	"errors"
	"fmt"

	"github.com/adsync-labs/campaigns-backend/pkg/db/models"
	pkgerrors "github.com/adsync-labs/campaigns-backend/pkg/errors"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
	"gorm.io/gorm"
)

// repository is the persistence surface the country service needs.
type repository interface {
	List(ctx context.Context) ([]models.Country, error)
	FindByID(ctx context.Context, id int64) (*models.Country, error)
	FindByCode(ctx context.Context, code string) (*models.Country, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, rows []models.Country) error
}

// Service exposes the country catalog.
type Service interface {
	List(ctx context.Context) ([]models.Country, error)
	Get(ctx context.Context, id int64) (*models.Country, error)
	GetByCode(ctx context.Context, code string) (*models.Country, error)
	Seed(ctx context.Context, rows []models.Country) error
}

type service struct {
	repo repository
	logg *logger.Logger
}

// NewService wires a country service over the given repository.
func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("countries: repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("countries: logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]models.Country, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list countries")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Country, error) {
	country, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "country not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load country")
	}
	return country, nil
}

func (s *service) GetByCode(ctx context.Context, code string) (*models.Country, error) {
	country, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "country not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load country")
	}
	return country, nil
}

// Seed inserts the given countries once. A non-empty table means a previous
// run already seeded and the call is a no-op.
func (s *service) Seed(ctx context.Context, rows []models.Country) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count countries")
	}
	if count > 0 {
		s.logg.Debug(ctx, "countries already seeded, skipping")
		return nil
	}
	if err := s.repo.CreateBatch(ctx, rows); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed countries")
	}
	s.logg.Info(ctx, fmt.Sprintf("seeded %d countries", len(rows)))
	return nil
}
