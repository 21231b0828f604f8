package converter

import (
	"agenda-backend/internal/delivery/dto"
	"agenda-backend/internal/domain/entity"
)

// ServiceToResponse converts a Service entity to ServiceResponse DTO
func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	return &dto.ServiceResponse{
		ID:          service.ID,
		Title:       service.Title,
		Description: service.Description,
		Price:       service.Price,
		Duration:    service.Duration,
		CompanyID:   service.CompanyID,
		CreatedAt:   service.CreatedAt,
		UpdatedAt:   service.UpdatedAt,
	}
}

// ServicesToResponses converts a slice of Service entities to ServiceResponse DTOs
func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		responses[i] = *ServiceToResponse(&services[i])
	}
	return responses
}
