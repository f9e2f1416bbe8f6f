package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"blood-donation-backend/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, sqlMock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return m.Called(ctx, db, user).Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	args := m.Called(ctx, db, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, db, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return m.Called(ctx, db, user).Error(0)
}

func (m *mockUserRepo) FirstOrCreateByEmail(ctx context.Context, db *gorm.DB, user *entity.User) (*entity.User, error) {
	args := m.Called(ctx, db, user)
	stored, _ := args.Get(0).(*entity.User)
	return stored, args.Error(1)
}

type mockDonorRepo struct{ mock.Mock }

func (m *mockDonorRepo) Create(ctx context.Context, db *gorm.DB, donor *entity.Donor) error {
	return m.Called(ctx, db, donor).Error(0)
}

func (m *mockDonorRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Donor, error) {
	args := m.Called(ctx, db, id)
	donor, _ := args.Get(0).(*entity.Donor)
	return donor, args.Error(1)
}

func (m *mockDonorRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Donor, error) {
	args := m.Called(ctx, db, userID)
	donor, _ := args.Get(0).(*entity.Donor)
	return donor, args.Error(1)
}

func (m *mockDonorRepo) FirstOrCreateByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Donor, error) {
	args := m.Called(ctx, db, userID)
	donor, _ := args.Get(0).(*entity.Donor)
	return donor, args.Error(1)
}

func (m *mockDonorRepo) UpdateBloodGroup(ctx context.Context, db *gorm.DB, id uuid.UUID, group entity.BloodGroup) error {
	return m.Called(ctx, db, id, group).Error(0)
}

func (m *mockDonorRepo) UpdateLastDonation(ctx context.Context, db *gorm.DB, id uuid.UUID, date time.Time) error {
	return m.Called(ctx, db, id, date).Error(0)
}

func (m *mockDonorRepo) FindTop(ctx context.Context, db *gorm.DB, city string, limit int) ([]entity.TopDonor, error) {
	args := m.Called(ctx, db, city, limit)
	donors, _ := args.Get(0).([]entity.TopDonor)
	return donors, args.Error(1)
}

type mockScheduleRepo struct{ mock.Mock }

func (m *mockScheduleRepo) Create(ctx context.Context, db *gorm.DB, schedule *entity.DonorSchedule) error {
	return m.Called(ctx, db, schedule).Error(0)
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.DonorSchedule, error) {
	args := m.Called(ctx, db, id)
	schedule, _ := args.Get(0).(*entity.DonorSchedule)
	return schedule, args.Error(1)
}

func (m *mockScheduleRepo) FindUpcoming(ctx context.Context, db *gorm.DB, filter entity.ScheduleFilter, page entity.Page) ([]entity.DonorSchedule, int64, error) {
	args := m.Called(ctx, db, filter, page)
	schedules, _ := args.Get(0).([]entity.DonorSchedule)
	return schedules, args.Get(1).(int64), args.Error(2)
}

func (m *mockScheduleRepo) Update(ctx context.Context, db *gorm.DB, schedule *entity.DonorSchedule) error {
	return m.Called(ctx, db, schedule).Error(0)
}

type mockDonationRepo struct{ mock.Mock }

func (m *mockDonationRepo) Create(ctx context.Context, db *gorm.DB, donation *entity.Donation) error {
	return m.Called(ctx, db, donation).Error(0)
}

func (m *mockDonationRepo) ExistsPending(ctx context.Context, db *gorm.DB, donorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, db, donorID)
	return args.Bool(0), args.Error(1)
}

func (m *mockDonationRepo) ExistsPendingForSchedule(ctx context.Context, db *gorm.DB, donorID, scheduleID uuid.UUID) (bool, error) {
	args := m.Called(ctx, db, donorID, scheduleID)
	return args.Bool(0), args.Error(1)
}

func (m *mockDonationRepo) FindForFinalize(ctx context.Context, db *gorm.DB, pmiCenterID, scheduleID, donorID uuid.UUID) (*entity.Donation, error) {
	args := m.Called(ctx, db, pmiCenterID, scheduleID, donorID)
	donation, _ := args.Get(0).(*entity.Donation)
	return donation, args.Error(1)
}

func (m *mockDonationRepo) FinalizeStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.DonationStatus) (int64, error) {
	args := m.Called(ctx, db, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDonationRepo) FindHistory(ctx context.Context, db *gorm.DB, filter entity.DonationFilter, page entity.Page) ([]entity.Donation, int64, error) {
	args := m.Called(ctx, db, filter, page)
	donations, _ := args.Get(0).([]entity.Donation)
	return donations, args.Get(1).(int64), args.Error(2)
}

func (m *mockDonationRepo) FindHistoryAll(ctx context.Context, db *gorm.DB, filter entity.DonationFilter, limit int) ([]entity.Donation, error) {
	args := m.Called(ctx, db, filter, limit)
	donations, _ := args.Get(0).([]entity.Donation)
	return donations, args.Error(1)
}

func (m *mockDonationRepo) FindOne(ctx context.Context, db *gorm.DB, id uuid.UUID, filter entity.DonationFilter) (*entity.Donation, error) {
	args := m.Called(ctx, db, id, filter)
	donation, _ := args.Get(0).(*entity.Donation)
	return donation, args.Error(1)
}

func (m *mockDonationRepo) FindLatest(ctx context.Context, db *gorm.DB, filter entity.DonationFilter) (*entity.Donation, error) {
	args := m.Called(ctx, db, filter)
	donation, _ := args.Get(0).(*entity.Donation)
	return donation, args.Error(1)
}

func (m *mockDonationRepo) CountSuccessByMonth(ctx context.Context, db *gorm.DB, since time.Time, city string) ([]entity.MonthlyCount, error) {
	args := m.Called(ctx, db, since, city)
	counts, _ := args.Get(0).([]entity.MonthlyCount)
	return counts, args.Error(1)
}

type mockPhysicalRepo struct{ mock.Mock }

func (m *mockPhysicalRepo) Create(ctx context.Context, db *gorm.DB, physical *entity.Physical) error {
	return m.Called(ctx, db, physical).Error(0)
}

func (m *mockPhysicalRepo) UpdateExam(ctx context.Context, db *gorm.DB, id uuid.UUID, exam entity.Exam) error {
	return m.Called(ctx, db, id, exam).Error(0)
}

type mockStockRepo struct{ mock.Mock }

func (m *mockStockRepo) Create(ctx context.Context, db *gorm.DB, stock *entity.BloodStock) error {
	return m.Called(ctx, db, stock).Error(0)
}

func (m *mockStockRepo) FindByCenter(ctx context.Context, db *gorm.DB, pmiCenterID uuid.UUID) ([]entity.BloodStock, error) {
	args := m.Called(ctx, db, pmiCenterID)
	stocks, _ := args.Get(0).([]entity.BloodStock)
	return stocks, args.Error(1)
}

func (m *mockStockRepo) IncrementQuantity(ctx context.Context, db *gorm.DB, pmiCenterID uuid.UUID, group entity.BloodGroup) (int64, error) {
	args := m.Called(ctx, db, pmiCenterID, group)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStockRepo) SummaryByGroup(ctx context.Context, db *gorm.DB, city string) ([]entity.StockTotal, error) {
	args := m.Called(ctx, db, city)
	totals, _ := args.Get(0).([]entity.StockTotal)
	return totals, args.Error(1)
}

type mockAuditService struct{ mock.Mock }

func (m *mockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return m.Called(ctx, tx, userID, action, entityName, entityID, newValue).Error(0)
}

func (m *mockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return m.Called(ctx, tx, userID, action, entityName, entityID, oldValue, newValue).Error(0)
}
