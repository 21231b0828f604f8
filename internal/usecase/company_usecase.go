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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrAlreadyMember   = errors.New("user already belongs to that company")
	ErrRoleNotSeeded   = errors.New("role table is not seeded")
)

type CompanyUsecase interface {
	// CreateCompanyWithAdmin creates the company and its admin membership
	// in one transaction; either both rows exist afterwards or neither.
	CreateCompanyWithAdmin(ctx context.Context, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*dto.CompanyResponse, error)
	ListCompanies(ctx context.Context) (*dto.CompanyListResponse, error)
	// CreateClient creates a client for the caller's company. Idempotent by
	// nit: an existing user only gains a new membership.
	CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
}

type companyUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	companyRepo    repository.CompanyRepository
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	membershipRepo repository.MembershipRepository
	auditService   service.AuditService
}

func NewCompanyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	membershipRepo repository.MembershipRepository,
	auditService service.AuditService,
) CompanyUsecase {
	return &companyUsecase{
		db:             db,
		log:            log,
		companyRepo:    companyRepo,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		membershipRepo: membershipRepo,
		auditService:   auditService,
	}
}

func (u *companyUsecase) CreateCompanyWithAdmin(ctx context.Context, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	admin, err := u.userRepo.FindByID(tx, req.AdminID)
	if err != nil {
		u.log.Warnf("Failed to find admin user: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrUserNotFound
	}

	adminRole, err := u.roleRepo.FindByName(tx, entity.RoleAdmin)
	if err != nil {
		u.log.Warnf("Failed to find admin role: %+v", err)
		return nil, err
	}
	if adminRole == nil {
		return nil, ErrRoleNotSeeded
	}

	company := &entity.Company{Name: req.Name}
	if err := u.companyRepo.Create(tx, company); err != nil {
		u.log.Warnf("Failed to create company: %+v", err)
		return nil, err
	}

	membership := &entity.Membership{
		UserID:    admin.ID,
		CompanyID: company.ID,
		RoleID:    adminRole.ID,
	}
	if err := u.membershipRepo.Create(tx, membership); err != nil {
		if isDuplicateKeyError(err, "uq_user_company") {
			return nil, ErrAlreadyMember
		}
		u.log.Warnf("Failed to create admin membership: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &admin.ID, entity.AuditActionCompanyCreate, entity.JSON{
		"company_id": company.ID.String(),
		"name":       company.Name,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Company created: id=%s, admin=%s", company.ID, admin.ID)
	return converter.CompanyToResponse(company), nil
}

func (u *companyUsecase) GetCompany(ctx context.Context, id uuid.UUID) (*dto.CompanyResponse, error) {
	company, err := u.companyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find company: %+v", err)
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	return converter.CompanyToResponse(company), nil
}

func (u *companyUsecase) ListCompanies(ctx context.Context) (*dto.CompanyListResponse, error) {
	companies, err := u.companyRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list companies: %+v", err)
		return nil, err
	}

	return &dto.CompanyListResponse{
		Companies: converter.CompaniesToResponses(companies),
		Total:     len(companies),
	}, nil
}

func (u *companyUsecase) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
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

	clientRole, err := u.roleRepo.FindByName(tx, entity.RoleClient)
	if err != nil {
		u.log.Warnf("Failed to find client role: %+v", err)
		return nil, err
	}
	if clientRole == nil {
		return nil, ErrRoleNotSeeded
	}

	user, err := u.userRepo.FindByNIT(tx, req.NIT)
	if err != nil {
		u.log.Warnf("Failed to find user by nit: %+v", err)
		return nil, err
	}

	reused := user != nil
	if user == nil {
		// Clients created by a company start with an unusable random
		// password until they go through a reset flow.
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}

		user = &entity.User{
			Name:      req.Name,
			LastName:  req.LastName,
			NIT:       req.NIT,
			Email:     req.Email,
			Cellphone: req.Cellphone,
			Password:  string(hashedPassword),
		}
		if err := u.userRepo.Create(tx, user); err != nil {
			if isDuplicateKeyError(err, "email") {
				return nil, ErrEmailAlreadyExists
			}
			u.log.Warnf("Failed to create client user: %+v", err)
			return nil, err
		}
	}

	membership := &entity.Membership{
		UserID:    user.ID,
		CompanyID: companyID,
		RoleID:    clientRole.ID,
	}
	if err := u.membershipRepo.Create(tx, membership); err != nil {
		if isDuplicateKeyError(err, "uq_user_company") {
			return nil, ErrAlreadyMember
		}
		u.log.Warnf("Failed to create client membership: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &actorID, entity.AuditActionClientCreate, entity.JSON{
		"client_id":  user.ID.String(),
		"company_id": companyID.String(),
		"nit":        user.NIT,
		"reused":     reused,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.ClientResponse{
		User:      *converter.UserToResponse(user),
		CompanyID: companyID,
		Reused:    reused,
	}, nil
}
