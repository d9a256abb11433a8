package campaigns

import (
	"context"
	"testing"

	"github.com/adsync-labs/campaigns-backend/pkg/db"
	"github.com/adsync-labs/campaigns-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Country{}, &models.Campaign{}, &models.Payout{}))
	return conn
}

func seedCountries(t *testing.T, conn *gorm.DB) (models.Country, models.Country) {
	t.Helper()
	us := models.Country{Code: "US", Name: "United States"}
	ca := models.Country{Code: "CA", Name: "Canada"}
	require.NoError(t, conn.Create(&us).Error)
	require.NoError(t, conn.Create(&ca).Error)
	return us, ca
}

func TestCreateWithNestedPayouts(t *testing.T) {
	conn := newTestDB(t)
	us, ca := seedCountries(t, conn)
	repo := NewRepository(conn)
	ctx := context.Background()

	campaign := &models.Campaign{
		Title:          "Summer Sale",
		LandingPageURL: "https://example.com/sale",
		IsRunning:      true,
		Payouts: []models.Payout{
			{CountryID: us.ID, Amount: decimal.RequireFromString("2.50")},
			{CountryID: ca.ID, Amount: decimal.RequireFromString("1.75")},
		},
	}
	require.NoError(t, repo.Create(ctx, campaign))
	require.NotZero(t, campaign.ID)

	loaded, err := repo.FindByID(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Payouts, 2)
	require.NotNil(t, loaded.Payouts[0].Country)
	require.Equal(t, campaign.ID, loaded.Payouts[0].CampaignID)
}

func TestListSearchAndRunningFilter(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	require.NoError(t, conn.Create(&models.Campaign{Title: "Summer Sale", LandingPageURL: "https://a.example", IsRunning: true}).Error)
	require.NoError(t, conn.Create(&models.Campaign{Title: "Winter Promo", LandingPageURL: "https://b.example/summer", IsRunning: false}).Error)
	require.NoError(t, conn.Create(&models.Campaign{Title: "Spring Launch", LandingPageURL: "https://c.example", IsRunning: true}).Error)

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Search matches title and landing page URL regardless of case.
	bySearch, err := repo.List(ctx, ListFilter{Search: "SUMMER"})
	require.NoError(t, err)
	require.Len(t, bySearch, 2)

	running := true
	byBoth, err := repo.List(ctx, ListFilter{Search: "summer", IsRunning: &running})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	require.Equal(t, "Summer Sale", byBoth[0].Title)

	stopped := false
	byFlag, err := repo.List(ctx, ListFilter{IsRunning: &stopped})
	require.NoError(t, err)
	require.Len(t, byFlag, 1)
	require.Equal(t, "Winter Promo", byFlag[0].Title)
}

func TestDuplicatePayoutCountryRejected(t *testing.T) {
	conn := newTestDB(t)
	us, _ := seedCountries(t, conn)
	repo := NewRepository(conn)
	ctx := context.Background()

	campaign := &models.Campaign{
		Title:          "Summer Sale",
		LandingPageURL: "https://example.com",
		Payouts: []models.Payout{
			{CountryID: us.ID, Amount: decimal.RequireFromString("2.50")},
		},
	}
	require.NoError(t, repo.Create(ctx, campaign))

	dup := models.Payout{CampaignID: campaign.ID, CountryID: us.ID, Amount: decimal.RequireFromString("3.00")}
	err := conn.Create(&dup).Error
	require.Error(t, err)
	require.True(t, db.IsUniqueViolation(err, "idx_payouts_campaign_country"))
}

func TestDeleteRemovesPayouts(t *testing.T) {
	conn := newTestDB(t)
	us, _ := seedCountries(t, conn)
	repo := NewRepository(conn)
	ctx := context.Background()

	campaign := &models.Campaign{
		Title:          "Summer Sale",
		LandingPageURL: "https://example.com",
		Payouts: []models.Payout{
			{CountryID: us.ID, Amount: decimal.RequireFromString("2.50")},
		},
	}
	require.NoError(t, repo.Create(ctx, campaign))

	loaded, err := repo.FindByID(ctx, campaign.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, loaded))

	_, err = repo.FindByID(ctx, campaign.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, conn.Model(&models.Payout{}).Where("campaign_id = ?", campaign.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestSaveDoesNotTouchPayouts(t *testing.T) {
	conn := newTestDB(t)
	us, _ := seedCountries(t, conn)
	repo := NewRepository(conn)
	ctx := context.Background()

	campaign := &models.Campaign{
		Title:          "Summer Sale",
		LandingPageURL: "https://example.com",
		Payouts: []models.Payout{
			{CountryID: us.ID, Amount: decimal.RequireFromString("2.50")},
		},
	}
	require.NoError(t, repo.Create(ctx, campaign))

	loaded, err := repo.FindByID(ctx, campaign.ID)
	require.NoError(t, err)
	loaded.Title = "Renamed"
	loaded.Payouts[0].Amount = decimal.RequireFromString("9.99")
	require.NoError(t, repo.Save(ctx, loaded))

	reloaded, err := repo.FindByID(ctx, campaign.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", reloaded.Title)
	require.True(t, reloaded.Payouts[0].Amount.Equal(decimal.RequireFromString("2.50")))
}
