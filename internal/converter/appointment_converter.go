package converter

import (
	"agenda-backend/internal/delivery/dto"
	"agenda-backend/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:        appointment.ID,
		Date:      appointment.Date.Format(dateLayout),
		Hour:      appointment.Hour,
		UserID:    appointment.UserID,
		CompanyID: appointment.CompanyID,
		ServiceID: appointment.ServiceID,
		CreatedAt: appointment.CreatedAt,
	}
}

// AppointmentToDetail converts an Appointment (with Service preloaded) to the
// detail projection.
func AppointmentToDetail(appointment *entity.Appointment) *dto.AppointmentDetailResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentDetailResponse{
		Identifier:   appointment.ID,
		ServiceTitle: appointment.Service.Title,
		Date:         appointment.Date.Format(dateLayout),
		Hour:         appointment.Hour,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
