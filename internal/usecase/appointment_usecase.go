package usecase

import (
	"context"
	"errors"
	"time"

	"agenda-backend/internal/converter"
	"agenda-backend/internal/delivery/dto"
	"agenda-backend/internal/domain/entity"
	"agenda-backend/internal/domain/repository"
	"agenda-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
	ErrPastDate            = errors.New("appointment date must be after today")
	ErrSlotTaken           = errors.New("slot is already booked for this company")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "15:04"
)

type AppointmentUsecase interface {
	// CreateAppointment books a slot for a company. The booking is rejected
	// when the exact slot is taken or when the service duration windows of
	// the new and an existing appointment overlap. Check and insert run in
	// one transaction under row locks, with the unique slot constraint as
	// the final arbiter for races.
	CreateAppointment(ctx context.Context, companyID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*dto.AppointmentDetailResponse, error)
	ListCompanyAppointments(ctx context.Context, companyID uuid.UUID) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	serviceRepo     repository.ServiceRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, companyID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	startMinutes, err := parseHour(req.Hour)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !date.After(today) {
		return nil, ErrPastDate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc, err := u.serviceRepo.FindByID(tx, req.ServiceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", req.ServiceID, err)
		return nil, err
	}
	if svc == nil || svc.CompanyID != companyID {
		return nil, ErrServiceNotFound
	}

	// Lock the day's appointments so concurrent bookings serialize here.
	existing, err := u.appointmentRepo.FindForUpdate(tx, companyID, date)
	if err != nil {
		u.log.Warnf("Failed to load appointments for conflict check: %+v", err)
		return nil, err
	}

	if err := u.checkSlotConflict(tx, existing, startMinutes, svc.Duration, req.Hour); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		Date:      date,
		Hour:      req.Hour,
		UserID:    req.UserID,
		CompanyID: companyID,
		ServiceID: req.ServiceID,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "uq_company_slot") {
			return nil, ErrSlotTaken
		}
		if isForeignKeyError(err, "user") {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &req.UserID, entity.AuditActionAppointmentCreate, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"company_id":     companyID.String(),
		"date":           req.Date,
		"hour":           req.Hour,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, company=%s, slot=%s %s", appointment.ID, companyID, req.Date, req.Hour)
	return converter.AppointmentToResponse(appointment), nil
}

// checkSlotConflict rejects the booking when an existing appointment holds
// the same hour or when duration windows overlap. Durations come from each
// appointment's service.
func (u *appointmentUsecase) checkSlotConflict(tx *gorm.DB, existing []entity.Appointment, startMinutes, duration int, hour string) error {
	if len(existing) == 0 {
		return nil
	}

	serviceIDs := make([]uuid.UUID, 0, len(existing))
	seen := make(map[uuid.UUID]bool, len(existing))
	for _, a := range existing {
		if a.Hour == hour {
			return ErrSlotTaken
		}
		if !seen[a.ServiceID] {
			seen[a.ServiceID] = true
			serviceIDs = append(serviceIDs, a.ServiceID)
		}
	}

	services, err := u.serviceRepo.FindByIDs(tx, serviceIDs)
	if err != nil {
		u.log.Warnf("Failed to load services for conflict check: %+v", err)
		return err
	}
	durations := make(map[uuid.UUID]int, len(services))
	for _, s := range services {
		durations[s.ID] = s.Duration
	}

	newEnd := startMinutes + duration
	for _, a := range existing {
		existingStart, err := parseHour(a.Hour)
		if err != nil {
			// Stored hours are validated on write; treat a bad row as
			// occupying only its exact minute.
			continue
		}
		existingEnd := existingStart + durations[a.ServiceID]
		if startMinutes < existingEnd && existingStart < newEnd {
			return ErrSlotTaken
		}
	}

	return nil
}

func (u *appointmentUsecase) GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*dto.AppointmentDetailResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToDetail(appointment), nil
}

func (u *appointmentUsecase) ListCompanyAppointments(ctx context.Context, companyID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByCompanyID(u.db.WithContext(ctx), companyID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for company %s: %+v", companyID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// parseDate parses a strict YYYY-MM-DD date. time.Parse alone accepts
// unpadded components, so the length is checked first.
func parseDate(value string) (time.Time, error) {
	if len(value) != len(dateLayout) {
		return time.Time{}, ErrInvalidDateFormat
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return date, nil
}

// parseHour parses a strict zero-padded HH:MM and returns minutes from
// midnight.
func parseHour(value string) (int, error) {
	if len(value) != len(hourLayout) {
		return 0, ErrInvalidTimeFormat
	}
	t, err := time.Parse(hourLayout, value)
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	return t.Hour()*60 + t.Minute(), nil
}
