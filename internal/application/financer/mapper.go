package financer

import (
	"github.com/beneflow/beneflow-api/internal/application/dto"
	"github.com/beneflow/beneflow-api/internal/domain/entity"
)

// toFinancerResponse convierte el entity al DTO de salida. Modules queda nil:
// el caller decide si adjunta la vista de módulos.
func toFinancerResponse(f *entity.Financer) *dto.FinancerResponse {
	return &dto.FinancerResponse{
		ID:                  f.ID,
		Name:                f.Name,
		DivisionID:          f.DivisionID,
		ExternalID:          f.ExternalID,
		Timezone:            f.Timezone,
		RegistrationNumber:  f.RegistrationNumber,
		RegistrationCountry: f.RegistrationCountry,
		Website:             f.Website,
		IBAN:                f.IBAN,
		BIC:                 f.BIC,
		VATNumber:           f.VATNumber,
		CompanyNumber:       f.CompanyNumber,
		RepresentativeID:    f.RepresentativeID,
		Active:              f.Active,
		Status:              f.Status,
		AvailableLanguages:  f.AvailableLanguages,
		CorePackagePrice:    f.CorePackagePrice,
		CreatedAt:           f.CreatedAt,
		UpdatedAt:           f.UpdatedAt,
	}
}
