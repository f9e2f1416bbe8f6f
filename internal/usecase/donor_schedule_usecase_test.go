package usecase

import (
	"context"
	"testing"
	"time"

	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type scheduleFixture struct {
	sql       sqlmock.Sqlmock
	users     *mockUserRepo
	schedules *mockScheduleRepo
	donations *mockDonationRepo
	audit     *mockAuditService
	uc        *donorScheduleUsecase
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	db, sqlMock := newTestDB(t)
	f := &scheduleFixture{
		sql:       sqlMock,
		users:     &mockUserRepo{},
		schedules: &mockScheduleRepo{},
		donations: &mockDonationRepo{},
		audit:     &mockAuditService{},
	}
	f.uc = NewDonorScheduleUsecase(db, newTestLogger(), f.users, f.schedules, f.donations, f.audit, nil, time.UTC).(*donorScheduleUsecase)
	f.uc.now = func() time.Time { return testNow }
	return f
}

func TestDonorSchedule_Create(t *testing.T) {
	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}

	t.Run("normalizes time", func(t *testing.T) {
		f := newScheduleFixture(t)
		f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)
		f.sql.ExpectBegin()
		f.schedules.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(s *entity.DonorSchedule) bool {
			return s.PmiCenterID == center.ID && s.Time == "08:00:00"
		})).Return(nil)
		f.audit.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionScheduleCreate, "donor_schedule", mock.Anything, mock.Anything).Return(nil)
		f.sql.ExpectCommit()

		resp, err := f.uc.Create(context.Background(), center.UserID, &dto.CreateDonorScheduleRequest{
			Date: "2024-05-10", Time: "08:00", Location: "Balai Kota",
		})

		require.NoError(t, err)
		assert.Equal(t, "2024-05-10", resp.Date)
		assert.Equal(t, "08:00", resp.Time)
		require.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("rejects past date", func(t *testing.T) {
		f := newScheduleFixture(t)
		f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)

		_, err := f.uc.Create(context.Background(), center.UserID, &dto.CreateDonorScheduleRequest{
			Date: "2024-05-09", Time: "08:00", Location: "Balai Kota",
		})

		assert.Equal(t, ErrScheduleInPast, err)
		f.schedules.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("donor cannot create", func(t *testing.T) {
		f := newScheduleFixture(t)
		donor := &entity.Donor{ID: uuid.New(), UserID: uuid.New()}
		f.users.On("FindByID", mock.Anything, mock.Anything, donor.UserID).Return(donorUser(donor), nil)

		_, err := f.uc.Create(context.Background(), donor.UserID, &dto.CreateDonorScheduleRequest{
			Date: "2024-05-20", Time: "08:00", Location: "Balai Kota",
		})

		assert.Equal(t, ErrPmiRoleRequired, err)
	})
}

func TestDonorSchedule_UpdateRequiresOwner(t *testing.T) {
	f := newScheduleFixture(t)
	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}
	schedule := &entity.DonorSchedule{ID: uuid.New(), PmiCenterID: uuid.New(), Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	location := "Gedung Sate"

	f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)
	f.sql.ExpectBegin()
	f.schedules.On("FindByID", mock.Anything, mock.Anything, schedule.ID).Return(schedule, nil)
	f.sql.ExpectRollback()

	_, err := f.uc.Update(context.Background(), center.UserID, schedule.ID, &dto.UpdateDonorScheduleRequest{Location: &location})

	assert.Equal(t, ErrNotScheduleOwner, err)
	f.schedules.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	require.NoError(t, f.sql.ExpectationsWereMet())
}

func TestDonorSchedule_DetailForDonor(t *testing.T) {
	f := newScheduleFixture(t)
	last := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	donor := &entity.Donor{ID: uuid.New(), UserID: uuid.New(), LastDonation: &last}
	schedule := &entity.DonorSchedule{ID: uuid.New(), PmiCenterID: uuid.New(), Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), Time: "08:00:00"}

	f.users.On("FindByID", mock.Anything, mock.Anything, donor.UserID).Return(donorUser(donor), nil)
	f.schedules.On("FindByID", mock.Anything, mock.Anything, schedule.ID).Return(schedule, nil)
	f.donations.On("ExistsPending", mock.Anything, mock.Anything, donor.ID).Return(false, nil)
	f.donations.On("ExistsPendingForSchedule", mock.Anything, mock.Anything, donor.ID, schedule.ID).Return(false, nil)

	resp, err := f.uc.Detail(context.Background(), donor.UserID, schedule.ID)

	require.NoError(t, err)
	require.NotNil(t, resp.IsEligible)
	assert.True(t, *resp.IsEligible)
	assert.False(t, *resp.IsRegistered)
	assert.False(t, *resp.IsScheduleRegistered)
	assert.Equal(t, "2024-01-05", *resp.LastDonation)
}

func TestDonorSchedule_DetailForOtherCenter(t *testing.T) {
	f := newScheduleFixture(t)
	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}
	schedule := &entity.DonorSchedule{ID: uuid.New(), PmiCenterID: uuid.New()}

	f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)
	f.schedules.On("FindByID", mock.Anything, mock.Anything, schedule.ID).Return(schedule, nil)

	_, err := f.uc.Detail(context.Background(), center.UserID, schedule.ID)

	assert.Equal(t, ErrNotScheduleOwner, err)
}

func TestDonorSchedule_ListScopesPmiToOwnCenter(t *testing.T) {
	f := newScheduleFixture(t)
	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}

	f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)
	f.schedules.On("FindUpcoming", mock.Anything, mock.Anything, mock.MatchedBy(func(filter entity.ScheduleFilter) bool {
		return filter.PmiCenterID != nil && *filter.PmiCenterID == center.ID && filter.City == "Bandung"
	}), entity.Page{Page: 1, PerPage: entity.DefaultPerPage}).Return([]entity.DonorSchedule{}, int64(0), nil)

	schedules, total, err := f.uc.List(context.Background(), center.UserID, "Bandung", entity.Page{})

	require.NoError(t, err)
	assert.Empty(t, schedules)
	assert.Zero(t, total)
	f.schedules.AssertExpectations(t)
}
