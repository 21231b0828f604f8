package usecase_test

import (
	"io"
	"testing"
	"time"

	"agenda-backend/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB returns a gorm DB backed by sqlmock. Repositories in these
// tests are fakes, so the mock only has to satisfy transaction calls
// (Begin/Commit/Rollback).
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fake repositories, keyed in memory. They ignore the *gorm.DB handle.

type fakeUserRepo struct {
	users     map[uuid.UUID]*entity.User
	createErr error
	created   int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	r.created++
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByNIT(_ *gorm.DB, nit string) (*entity.User, error) {
	for _, u := range r.users {
		if u.NIT == nit {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ *gorm.DB) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeRoleRepo struct {
	roles map[entity.RoleName]*entity.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[entity.RoleName]*entity.Role{
		entity.RoleAdmin:  {ID: 1, Name: entity.RoleAdmin},
		entity.RoleClient: {ID: 2, Name: entity.RoleClient},
	}}
}

func (r *fakeRoleRepo) FindByName(_ *gorm.DB, name entity.RoleName) (*entity.Role, error) {
	return r.roles[name], nil
}

func (r *fakeRoleRepo) Seed(_ *gorm.DB) error { return nil }

type fakeCompanyRepo struct {
	companies map[uuid.UUID]*entity.Company
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: map[uuid.UUID]*entity.Company{}}
	for _, c := range companies {
		r.companies[c.ID] = c
	}
	return r
}

func (r *fakeCompanyRepo) Create(_ *gorm.DB, company *entity.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	company.CreatedAt = time.Now()
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Company, error) {
	return r.companies[id], nil
}

func (r *fakeCompanyRepo) FindAll(_ *gorm.DB) ([]entity.Company, error) {
	out := make([]entity.Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, *c)
	}
	return out, nil
}

type fakeMembershipRepo struct {
	memberships []entity.Membership
	createErr   error
	nextID      int
}

func newFakeMembershipRepo(memberships ...entity.Membership) *fakeMembershipRepo {
	return &fakeMembershipRepo{memberships: memberships, nextID: len(memberships) + 1}
}

func (r *fakeMembershipRepo) Create(_ *gorm.DB, membership *entity.Membership) error {
	if r.createErr != nil {
		return r.createErr
	}
	membership.ID = r.nextID
	r.nextID++
	r.memberships = append(r.memberships, *membership)
	return nil
}

func (r *fakeMembershipRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID) ([]entity.Membership, error) {
	var out []entity.Membership
	for _, m := range r.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) FindByUserAndCompany(_ *gorm.DB, userID, companyID uuid.UUID) (*entity.Membership, error) {
	for _, m := range r.memberships {
		if m.UserID == userID && m.CompanyID == companyID {
			found := m
			return &found, nil
		}
	}
	return nil, nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo(services ...*entity.Service) *fakeServiceRepo {
	r := &fakeServiceRepo{services: map[uuid.UUID]*entity.Service{}}
	for _, s := range services {
		r.services[s.ID] = s
	}
	return r
}

func (r *fakeServiceRepo) Create(_ *gorm.DB, service *entity.Service) error {
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	return r.services[id], nil
}

func (r *fakeServiceRepo) FindByIDs(_ *gorm.DB, ids []uuid.UUID) ([]entity.Service, error) {
	var out []entity.Service
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) FindByCompanyID(_ *gorm.DB, companyID uuid.UUID) ([]entity.Service, error) {
	var out []entity.Service
	for _, s := range r.services {
		if s.CompanyID == companyID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	appointments []entity.Appointment
	createErr    error
}

func (r *fakeAppointmentRepo) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.CreatedAt = time.Now()
	r.appointments = append(r.appointments, *appointment)
	return nil
}

func (r *fakeAppointmentRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	for _, a := range r.appointments {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepo) FindForUpdate(_ *gorm.DB, companyID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.CompanyID == companyID && a.Date.Equal(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByCompanyID(_ *gorm.DB, companyID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeAuditLogRepo struct {
	logs []entity.AuditLog
}

func (r *fakeAuditLogRepo) Create(_ *gorm.DB, log *entity.AuditLog) error {
	log.ID = int64(len(r.logs) + 1)
	log.CreatedAt = time.Now()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditLogRepo) FindAll(_ *gorm.DB) ([]entity.AuditLog, error) {
	out := make([]entity.AuditLog, len(r.logs))
	copy(out, r.logs)
	return out, nil
}

// fakeAuditService records entries in memory.
type fakeAuditService struct {
	entries []string
}

func (s *fakeAuditService) Record(_ *gorm.DB, _ *uuid.UUID, action string, _ entity.JSON) error {
	s.entries = append(s.entries, action)
	return nil
}
