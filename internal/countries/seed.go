package countries

import "github.com/adsync-labs/campaigns-backend/pkg/db/models"

// DefaultSeed returns the countries provisioned on a fresh environment.
func DefaultSeed() []models.Country {
	return []models.Country{
		{Code: "EE", Name: "Estonia"},
		{Code: "LV", Name: "Latvia"},
		{Code: "LT", Name: "Lithuania"},
		{Code: "DK", Name: "Denmark"},
		{Code: "FI", Name: "Finland"},
		{Code: "IS", Name: "Iceland"},
		{Code: "NO", Name: "Norway"},
		{Code: "SE", Name: "Sweden"},
		{Code: "AT", Name: "Austria"},
		{Code: "BE", Name: "Belgium"},
		{Code: "BG", Name: "Bulgaria"},
		{Code: "HR", Name: "Croatia"},
		{Code: "CY", Name: "Cyprus"},
		{Code: "CZ", Name: "Czech Republic"},
		{Code: "FR", Name: "France"},
		{Code: "DE", Name: "Germany"},
		{Code: "GR", Name: "Greece"},
		{Code: "HU", Name: "Hungary"},
		{Code: "IE", Name: "Ireland"},
		{Code: "IT", Name: "Italy"},
		{Code: "LU", Name: "Luxembourg"},
		{Code: "MT", Name: "Malta"},
		{Code: "NL", Name: "Netherlands"},
		{Code: "PL", Name: "Poland"},
		{Code: "PT", Name: "Portugal"},
		{Code: "RO", Name: "Romania"},
		{Code: "SK", Name: "Slovakia"},
		{Code: "SI", Name: "Slovenia"},
		{Code: "ES", Name: "Spain"},
		{Code: "CH", Name: "Switzerland"},
		{Code: "TR", Name: "Turkey"},
		{Code: "UA", Name: "Ukraine"},
		{Code: "GB", Name: "United Kingdom"},
		{Code: "US", Name: "United States"},
		{Code: "CA", Name: "Canada"},
		{Code: "AU", Name: "Australia"},
		{Code: "JP", Name: "Japan"},
		{Code: "BR", Name: "Brazil"},
		{Code: "MX", Name: "Mexico"},
		{Code: "SG", Name: "Singapore"},
		{Code: "AE", Name: "United Arab Emirates"},
		{Code: "SA", Name: "Saudi Arabia"},
		{Code: "ZA", Name: "South Africa"},
		{Code: "NG", Name: "Nigeria"},
		{Code: "EG", Name: "Egypt"},
		{Code: "AR", Name: "Argentina"},
		{Code: "CL", Name: "Chile"},
		{Code: "CO", Name: "Colombia"},
		{Code: "PE", Name: "Peru"},
	}
}
