package usecase

import (
	"context"
	"errors"
	"fmt"

	"agenda-backend/internal/converter"
	"agenda-backend/internal/delivery/dto"
	"agenda-backend/internal/domain/entity"
	"agenda-backend/internal/domain/repository"
	"agenda-backend/internal/service"
	"agenda-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrMembershipNotFound = errors.New("user does not belong to that company")
)

type AuthUsecase interface {
	// Login authenticates by email and password. Depending on the user's
	// memberships it returns an access token (zero or one membership) or a
	// pending token plus the candidate companies (several memberships).
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// SelectCompany finalizes a disambiguated login by exchanging the
	// pending token for an access token scoped to one membership.
	SelectCompany(ctx context.Context, req *dto.SelectCompanyRequest) (*dto.TokenResponse, error)
	// Logout revokes the access token by removing its allowlist key.
	Logout(ctx context.Context, userID uuid.UUID, tokenID, email string) error
}

type authUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	jwtService     *jwt.JWTService
	redisClient    *redis.Client
	auditService   service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		jwtService:     jwtService,
		redisClient:    redisClient,
		auditService:   auditService,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	memberships, err := u.membershipRepo.FindByUserID(db, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find memberships for user %s: %+v", user.ID, err)
		return nil, err
	}

	switch len(memberships) {
	case 0:
		// No membership means the unscoped super-admin.
		token, err := u.issueAccessToken(ctx, user, entity.RoleRoot, nil)
		if err != nil {
			return nil, err
		}
		u.recordLogin(user, "root")
		return &dto.LoginResponse{Token: token}, nil

	case 1:
		m := memberships[0]
		companyID := m.CompanyID
		token, err := u.issueAccessToken(ctx, user, m.Role.Name, &companyID)
		if err != nil {
			return nil, err
		}
		u.recordLogin(user, string(m.Role.Name))
		return &dto.LoginResponse{Token: token}, nil

	default:
		// Several memberships: the caller must pick a company before any
		// scoped token is issued.
		pendingToken, tokenID, err := u.jwtService.GeneratePendingToken(user.ID, user.Email)
		if err != nil {
			u.log.Warnf("Failed to generate pending token: %+v", err)
			return nil, err
		}

		pendingKey := fmt.Sprintf("pending_token:%s:%s", user.ID.String(), tokenID)
		if err := u.redisClient.Set(ctx, pendingKey, "valid", u.jwtService.GetPendingExpiry()).Err(); err != nil {
			u.log.Warnf("Failed to store pending token in Redis: %+v", err)
			return nil, err
		}

		return &dto.LoginResponse{
			PendingToken: pendingToken,
			Companies:    converter.MembershipsToOptions(memberships),
		}, nil
	}
}

func (u *authUsecase) SelectCompany(ctx context.Context, req *dto.SelectCompanyRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.PendingToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.PendingToken {
		return nil, ErrInvalidToken
	}

	pendingKey := fmt.Sprintf("pending_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, pendingKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check pending token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", claims.UserID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	membership, err := u.membershipRepo.FindByUserAndCompany(db, claims.UserID, req.CompanyID)
	if err != nil {
		u.log.Warnf("Failed to find membership: %+v", err)
		return nil, err
	}
	if membership == nil {
		return nil, ErrMembershipNotFound
	}

	// Consume the pending token so it cannot be exchanged twice.
	if err := u.redisClient.Del(ctx, pendingKey).Err(); err != nil {
		u.log.Warnf("Failed to delete pending token: %+v", err)
		return nil, err
	}

	companyID := membership.CompanyID
	token, err := u.issueAccessToken(ctx, user, membership.Role.Name, &companyID)
	if err != nil {
		return nil, err
	}
	u.recordLogin(user, string(membership.Role.Name))

	return token, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, tokenID, email string) error {
	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	_ = u.auditService.Record(u.db, &userID, entity.AuditActionUserLogout, entity.JSON{
		"email": email,
	})

	return nil
}

func (u *authUsecase) issueAccessToken(ctx context.Context, user *entity.User, role entity.RoleName, companyID *uuid.UUID) (*dto.TokenResponse, error) {
	accessToken, tokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, role, companyID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", user.ID.String(), tokenID)
	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
		Role:        role,
		CompanyID:   companyID,
	}, nil
}

// recordLogin writes the audit entry outside any transaction; a failure
// here never blocks the login itself.
func (u *authUsecase) recordLogin(user *entity.User, role string) {
	_ = u.auditService.Record(u.db, &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"email": user.Email,
		"role":  role,
	})
}
