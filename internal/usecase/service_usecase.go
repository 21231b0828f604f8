package usecase

import (
	"context"
	"errors"

	"agenda-backend/internal/converter"
	"agenda-backend/internal/delivery/dto"
	"agenda-backend/internal/delivery/http/middleware"
	"agenda-backend/internal/domain/entity"
	"agenda-backend/internal/domain/repository"
	"agenda-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrServiceNotFound = errors.New("service not found")

type ServiceUsecase interface {
	// CreateService registers a service under the caller's company.
	CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	ListCompanyServices(ctx context.Context, companyID uuid.UUID) (*dto.ServiceListResponse, error)
}

type serviceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	serviceRepo  repository.ServiceRepository
	auditService service.AuditService
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
) ServiceUsecase {
	return &serviceUsecase{
		db:           db,
		log:          log,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (u *serviceUsecase) CreateService(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	actorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	companyID, ok := middleware.GetCompanyIDFromContext(ctx)
	if !ok {
		return nil, errors.New("company not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	svc := &entity.Service{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		CompanyID:   companyID,
	}

	if err := u.serviceRepo.Create(tx, svc); err != nil {
		if isForeignKeyError(err, "company") {
			return nil, ErrCompanyNotFound
		}
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actorID, entity.AuditActionServiceCreate, entity.JSON{
		"service_id": svc.ID.String(),
		"company_id": companyID.String(),
		"title":      svc.Title,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) ListCompanyServices(ctx context.Context, companyID uuid.UUID) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindByCompanyID(u.db.WithContext(ctx), companyID)
	if err != nil {
		u.log.Warnf("Failed to list services for company %s: %+v", companyID, err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}
