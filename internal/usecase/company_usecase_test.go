package usecase_test

import (
	"context"
	"testing"

	"agenda-backend/internal/delivery/dto"
	"agenda-backend/internal/delivery/http/middleware"
	"agenda-backend/internal/domain/entity"
	"agenda-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminContext(actorID, companyID uuid.UUID) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, actorID)
	ctx = context.WithValue(ctx, middleware.RoleKey, entity.RoleAdmin)
	return context.WithValue(ctx, middleware.CompanyIDKey, companyID)
}

func TestCreateCompanyWithAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	admin := newTestUser(t)
	userRepo := newFakeUserRepo(admin)
	companyRepo := newFakeCompanyRepo()
	membershipRepo := newFakeMembershipRepo()
	audit := &fakeAuditService{}
	uc := usecase.NewCompanyUsecase(db, newTestLogger(), companyRepo, userRepo, newFakeRoleRepo(), membershipRepo, audit)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.CreateCompanyWithAdmin(context.Background(), &dto.CreateCompanyRequest{
		Name:    "Barber Bros",
		AdminID: admin.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Barber Bros", resp.Name)

	// The admin membership is created in the same transaction.
	require.Len(t, membershipRepo.memberships, 1)
	assert.Equal(t, admin.ID, membershipRepo.memberships[0].UserID)
	assert.Equal(t, resp.ID, membershipRepo.memberships[0].CompanyID)
	assert.Contains(t, audit.entries, entity.AuditActionCompanyCreate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCompanyWithAdmin_UnknownAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	uc := usecase.NewCompanyUsecase(db, newTestLogger(), newFakeCompanyRepo(), newFakeUserRepo(), newFakeRoleRepo(), newFakeMembershipRepo(), &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := uc.CreateCompanyWithAdmin(context.Background(), &dto.CreateCompanyRequest{
		Name:    "Barber Bros",
		AdminID: uuid.New(),
	})
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClient_NewUser(t *testing.T) {
	db, mock := newMockDB(t)
	companyID := uuid.New()
	userRepo := newFakeUserRepo()
	membershipRepo := newFakeMembershipRepo()
	audit := &fakeAuditService{}
	uc := usecase.NewCompanyUsecase(db, newTestLogger(), newFakeCompanyRepo(), userRepo, newFakeRoleRepo(), membershipRepo, audit)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.CreateClient(adminContext(uuid.New(), companyID), &dto.CreateClientRequest{
		Name:     "Ana",
		LastName: "Lopez",
		NIT:      "900123456",
		Email:    "ana@example.com",
	})
	require.NoError(t, err)

	assert.False(t, resp.Reused)
	assert.Equal(t, companyID, resp.CompanyID)
	assert.Equal(t, "900123456", resp.User.NIT)
	assert.Equal(t, 1, userRepo.created)
	require.Len(t, membershipRepo.memberships, 1)
	assert.Equal(t, 2, membershipRepo.memberships[0].RoleID) // client role
	assert.Contains(t, audit.entries, entity.AuditActionClientCreate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClient_ExistingNITReusesUser(t *testing.T) {
	db, mock := newMockDB(t)
	companyID := uuid.New()
	existing := newTestUser(t)
	userRepo := newFakeUserRepo(existing)
	membershipRepo := newFakeMembershipRepo()
	uc := usecase.NewCompanyUsecase(db, newTestLogger(), newFakeCompanyRepo(), userRepo, newFakeRoleRepo(), membershipRepo, &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.CreateClient(adminContext(uuid.New(), companyID), &dto.CreateClientRequest{
		Name:     "Different Name",
		LastName: "Different Last",
		NIT:      existing.NIT,
		Email:    "other@example.com",
	})
	require.NoError(t, err)

	// The existing user row is kept; only the membership is added.
	assert.True(t, resp.Reused)
	assert.Equal(t, existing.ID, resp.User.ID)
	assert.Equal(t, 0, userRepo.created)
	require.Len(t, membershipRepo.memberships, 1)
	assert.Equal(t, existing.ID, membershipRepo.memberships[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClient_DuplicateMembership(t *testing.T) {
	db, mock := newMockDB(t)
	companyID := uuid.New()
	existing := newTestUser(t)
	membershipRepo := newFakeMembershipRepo()
	membershipRepo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "uq_user_company"}
	uc := usecase.NewCompanyUsecase(db, newTestLogger(), newFakeCompanyRepo(), newFakeUserRepo(existing), newFakeRoleRepo(), membershipRepo, &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := uc.CreateClient(adminContext(uuid.New(), companyID), &dto.CreateClientRequest{
		Name:     "Ana",
		LastName: "Lopez",
		NIT:      existing.NIT,
		Email:    existing.Email,
	})
	assert.ErrorIs(t, err, usecase.ErrAlreadyMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClient_MissingCompanyScope(t *testing.T) {
	db, _ := newMockDB(t)
	uc := usecase.NewCompanyUsecase(db, newTestLogger(), newFakeCompanyRepo(), newFakeUserRepo(), newFakeRoleRepo(), newFakeMembershipRepo(), &fakeAuditService{})

	// Root tokens carry no company, so client creation has no scope.
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, uuid.New())
	_, err := uc.CreateClient(ctx, &dto.CreateClientRequest{
		Name:     "Ana",
		LastName: "Lopez",
		NIT:      "900123456",
		Email:    "ana@example.com",
	})
	assert.Error(t, err)
}
