package converter

import (
	"agenda-backend/internal/delivery/dto"
	"agenda-backend/internal/domain/entity"
)

// CompanyToResponse converts a Company entity to CompanyResponse DTO
func CompanyToResponse(company *entity.Company) *dto.CompanyResponse {
	if company == nil {
		return nil
	}

	return &dto.CompanyResponse{
		ID:        company.ID,
		Name:      company.Name,
		CreatedAt: company.CreatedAt,
		UpdatedAt: company.UpdatedAt,
	}
}

// CompaniesToResponses converts a slice of Company entities to CompanyResponse DTOs
func CompaniesToResponses(companies []entity.Company) []dto.CompanyResponse {
	responses := make([]dto.CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = *CompanyToResponse(&companies[i])
	}
	return responses
}

// MembershipsToOptions converts memberships (with Role and Company preloaded)
// to the disambiguation options returned at login.
func MembershipsToOptions(memberships []entity.Membership) []dto.CompanyOption {
	options := make([]dto.CompanyOption, len(memberships))
	for i, m := range memberships {
		options[i] = dto.CompanyOption{
			CompanyID:   m.CompanyID,
			CompanyName: m.Company.Name,
			Role:        m.Role.Name,
		}
	}
	return options
}
