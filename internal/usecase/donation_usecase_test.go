package usecase

import (
	"context"
	"testing"
	"time"

	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

type donationFixture struct {
	sql       sqlmock.Sqlmock
	users     *mockUserRepo
	donors    *mockDonorRepo
	schedules *mockScheduleRepo
	donations *mockDonationRepo
	physicals *mockPhysicalRepo
	stocks    *mockStockRepo
	audit     *mockAuditService
	uc        *donationUsecase
}

func newDonationFixture(t *testing.T) *donationFixture {
	db, sqlMock := newTestDB(t)
	f := &donationFixture{
		sql:       sqlMock,
		users:     &mockUserRepo{},
		donors:    &mockDonorRepo{},
		schedules: &mockScheduleRepo{},
		donations: &mockDonationRepo{},
		physicals: &mockPhysicalRepo{},
		stocks:    &mockStockRepo{},
		audit:     &mockAuditService{},
	}
	f.uc = NewDonationUsecase(db, newTestLogger(), f.users, f.donors, f.schedules, f.donations,
		f.physicals, f.stocks, f.audit, nil, time.UTC).(*donationUsecase)
	f.uc.now = func() time.Time { return testNow }
	return f
}

func (f *donationFixture) assertExpectations(t *testing.T) {
	require.NoError(t, f.sql.ExpectationsWereMet())
	f.users.AssertExpectations(t)
	f.donors.AssertExpectations(t)
	f.schedules.AssertExpectations(t)
	f.donations.AssertExpectations(t)
	f.physicals.AssertExpectations(t)
	f.stocks.AssertExpectations(t)
	f.audit.AssertExpectations(t)
}

func donorUser(donor *entity.Donor) *entity.User {
	return &entity.User{ID: donor.UserID, Name: "Budi", Email: "budi@example.com", Role: entity.RoleDonor, Donor: donor}
}

func pmiUser(center *entity.PmiCenter) *entity.User {
	return &entity.User{ID: center.UserID, Name: "PMI Kota Bandung", Email: "pmi@example.com", Role: entity.RolePmi, PmiCenter: center}
}

func examRequest() dto.ExamRequest {
	value := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	return dto.ExamRequest{
		Systolic:    value("120"),
		Diastolic:   value("80"),
		Pulse:       value("72"),
		Weight:      value("65.5"),
		Temperature: value("36.6"),
		Hemoglobin:  value("13.8"),
	}
}

func boolPtr(b bool) *bool { return &b }

func TestRegisterForSchedule_CreatesPendingDonation(t *testing.T) {
	f := newDonationFixture(t)
	ctx := context.Background()

	donor := &entity.Donor{ID: uuid.New(), UserID: uuid.New()}
	schedule := &entity.DonorSchedule{ID: uuid.New(), PmiCenterID: uuid.New(), Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)}

	f.users.On("FindByID", mock.Anything, mock.Anything, donor.UserID).Return(donorUser(donor), nil)
	f.sql.ExpectBegin()
	f.schedules.On("FindByID", mock.Anything, mock.Anything, schedule.ID).Return(schedule, nil)
	f.donations.On("ExistsPending", mock.Anything, mock.Anything, donor.ID).Return(false, nil)
	f.donations.On("ExistsPendingForSchedule", mock.Anything, mock.Anything, donor.ID, schedule.ID).Return(false, nil)
	f.physicals.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*entity.Physical")).Return(nil)
	f.donations.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(d *entity.Donation) bool {
		return d.Status == entity.DonationStatusPending &&
			d.DonorID == donor.ID &&
			d.PmiCenterID == schedule.PmiCenterID &&
			d.DonorScheduleID != nil && *d.DonorScheduleID == schedule.ID
	})).Return(nil)
	f.audit.On("LogCreate", mock.Anything, mock.Anything, &donor.UserID, entity.AuditActionDonationRegister, "donation", mock.Anything, mock.Anything).Return(nil)
	f.sql.ExpectCommit()

	resp, err := f.uc.RegisterForSchedule(ctx, donor.UserID, schedule.ID)

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, donor.ID, resp.DonorID)
	f.assertExpectations(t)
}

func TestRegisterForSchedule_CooldownNotElapsed(t *testing.T) {
	f := newDonationFixture(t)

	last := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	donor := &entity.Donor{ID: uuid.New(), UserID: uuid.New(), LastDonation: &last}
	schedule := &entity.DonorSchedule{ID: uuid.New(), PmiCenterID: uuid.New(), Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)}

	f.users.On("FindByID", mock.Anything, mock.Anything, donor.UserID).Return(donorUser(donor), nil)
	f.sql.ExpectBegin()
	f.schedules.On("FindByID", mock.Anything, mock.Anything, schedule.ID).Return(schedule, nil)
	f.donations.On("ExistsPending", mock.Anything, mock.Anything, donor.ID).Return(false, nil)
	f.donations.On("ExistsPendingForSchedule", mock.Anything, mock.Anything, donor.ID, schedule.ID).Return(false, nil)
	f.sql.ExpectRollback()

	_, err := f.uc.RegisterForSchedule(context.Background(), donor.UserID, schedule.ID)

	assert.ErrorIs(t, err, ErrCooldownNotElapsed)
	assert.ErrorIs(t, err, ErrIneligibleDonor)
	f.physicals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestRegisterForSchedule_AlreadyRegistered(t *testing.T) {
	f := newDonationFixture(t)

	donor := &entity.Donor{ID: uuid.New(), UserID: uuid.New()}
	schedule := &entity.DonorSchedule{ID: uuid.New(), PmiCenterID: uuid.New(), Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)}

	f.users.On("FindByID", mock.Anything, mock.Anything, donor.UserID).Return(donorUser(donor), nil)
	f.sql.ExpectBegin()
	f.schedules.On("FindByID", mock.Anything, mock.Anything, schedule.ID).Return(schedule, nil)
	f.donations.On("ExistsPending", mock.Anything, mock.Anything, donor.ID).Return(true, nil)
	f.donations.On("ExistsPendingForSchedule", mock.Anything, mock.Anything, donor.ID, schedule.ID).Return(true, nil)
	f.sql.ExpectRollback()

	_, err := f.uc.RegisterForSchedule(context.Background(), donor.UserID, schedule.ID)

	assert.Equal(t, ErrAlreadyRegistered, err)
	f.assertExpectations(t)
}

func TestRegisterForSchedule_PastSchedule(t *testing.T) {
	f := newDonationFixture(t)

	donor := &entity.Donor{ID: uuid.New(), UserID: uuid.New()}
	schedule := &entity.DonorSchedule{ID: uuid.New(), PmiCenterID: uuid.New(), Date: time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)}

	f.users.On("FindByID", mock.Anything, mock.Anything, donor.UserID).Return(donorUser(donor), nil)
	f.sql.ExpectBegin()
	f.schedules.On("FindByID", mock.Anything, mock.Anything, schedule.ID).Return(schedule, nil)
	f.sql.ExpectRollback()

	_, err := f.uc.RegisterForSchedule(context.Background(), donor.UserID, schedule.ID)

	assert.Equal(t, ErrScheduleClosed, err)
	f.assertExpectations(t)
}

func TestRegisterForSchedule_ConcurrentPendingInsert(t *testing.T) {
	f := newDonationFixture(t)

	donor := &entity.Donor{ID: uuid.New(), UserID: uuid.New()}
	schedule := &entity.DonorSchedule{ID: uuid.New(), PmiCenterID: uuid.New(), Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)}

	f.users.On("FindByID", mock.Anything, mock.Anything, donor.UserID).Return(donorUser(donor), nil)
	f.sql.ExpectBegin()
	f.schedules.On("FindByID", mock.Anything, mock.Anything, schedule.ID).Return(schedule, nil)
	f.donations.On("ExistsPending", mock.Anything, mock.Anything, donor.ID).Return(false, nil)
	f.donations.On("ExistsPendingForSchedule", mock.Anything, mock.Anything, donor.ID, schedule.ID).Return(false, nil)
	f.physicals.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.donations.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_donations_one_pending_per_donor"})
	f.sql.ExpectRollback()

	_, err := f.uc.RegisterForSchedule(context.Background(), donor.UserID, schedule.ID)

	assert.Equal(t, ErrPendingDonationExists, err)
	f.audit.AssertNotCalled(t, "LogCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestRegisterForSchedule_RequiresDonor(t *testing.T) {
	f := newDonationFixture(t)
	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}

	f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)

	_, err := f.uc.RegisterForSchedule(context.Background(), center.UserID, uuid.New())

	assert.Equal(t, ErrDonorRoleRequired, err)
	f.assertExpectations(t)
}

type finalizeCase struct {
	center   *entity.PmiCenter
	donor    *entity.Donor
	schedule uuid.UUID
	donation *entity.Donation
	group    entity.BloodGroup
}

func newFinalizeCase() finalizeCase {
	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}
	donor := &entity.Donor{ID: uuid.New(), UserID: uuid.New()}
	scheduleID := uuid.New()
	return finalizeCase{
		center:   center,
		donor:    donor,
		schedule: scheduleID,
		donation: &entity.Donation{
			ID:              uuid.New(),
			DonorID:         donor.ID,
			DonorScheduleID: &scheduleID,
			PmiCenterID:     center.ID,
			PhysicalID:      uuid.New(),
			Status:          entity.DonationStatusPending,
		},
		group: entity.BloodGroup{Type: entity.BloodTypeA, Rhesus: entity.RhesusPositive},
	}
}

func (c finalizeCase) request(worthy bool) *dto.FinalizeDonationRequest {
	return &dto.FinalizeDonationRequest{
		BloodType:   "a",
		Rhesus:      "+",
		ExamRequest: examRequest(),
		Worthy:      boolPtr(worthy),
	}
}

func (f *donationFixture) expectFinalizeUntilStatus(c finalizeCase, status entity.DonationStatus, affected int64) {
	f.users.On("FindByID", mock.Anything, mock.Anything, c.center.UserID).Return(pmiUser(c.center), nil)
	f.sql.ExpectBegin()
	f.donors.On("FindByID", mock.Anything, mock.Anything, c.donor.ID).Return(c.donor, nil)
	f.donations.On("FindForFinalize", mock.Anything, mock.Anything, c.center.ID, c.schedule, c.donor.ID).Return(c.donation, nil)
	f.donors.On("UpdateBloodGroup", mock.Anything, mock.Anything, c.donor.ID, c.group).Return(nil)
	f.physicals.On("UpdateExam", mock.Anything, mock.Anything, c.donation.PhysicalID, mock.AnythingOfType("entity.Exam")).Return(nil)
	f.donations.On("FinalizeStatus", mock.Anything, mock.Anything, c.donation.ID, status).Return(affected, nil)
}

func TestFinalize_SuccessIncrementsStockAndLastDonation(t *testing.T) {
	f := newDonationFixture(t)
	c := newFinalizeCase()

	f.expectFinalizeUntilStatus(c, entity.DonationStatusSuccess, 1)
	f.stocks.On("IncrementQuantity", mock.Anything, mock.Anything, c.center.ID, c.group).Return(int64(1), nil)
	f.donors.On("UpdateLastDonation", mock.Anything, mock.Anything, c.donor.ID, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)).Return(nil)
	f.audit.On("LogUpdate", mock.Anything, mock.Anything, &c.center.UserID, entity.AuditActionDonationFinalize, "donation", c.donation.ID.String(), mock.Anything, mock.Anything).Return(nil)
	f.sql.ExpectCommit()

	resp, err := f.uc.Finalize(context.Background(), c.center.UserID, c.schedule, c.donor.ID, c.request(true))

	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	f.assertExpectations(t)
}

func TestFinalize_FailedLeavesStockAlone(t *testing.T) {
	f := newDonationFixture(t)
	c := newFinalizeCase()

	f.expectFinalizeUntilStatus(c, entity.DonationStatusFailed, 1)
	f.audit.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionDonationFinalize, "donation", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.sql.ExpectCommit()

	resp, err := f.uc.Finalize(context.Background(), c.center.UserID, c.schedule, c.donor.ID, c.request(false))

	require.NoError(t, err)
	assert.Equal(t, "failed", resp.Status)
	f.stocks.AssertNotCalled(t, "IncrementQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.donors.AssertNotCalled(t, "UpdateLastDonation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestFinalize_MissingStockRowRollsBack(t *testing.T) {
	f := newDonationFixture(t)
	c := newFinalizeCase()

	f.expectFinalizeUntilStatus(c, entity.DonationStatusSuccess, 1)
	f.stocks.On("IncrementQuantity", mock.Anything, mock.Anything, c.center.ID, c.group).Return(int64(0), nil)
	f.sql.ExpectRollback()

	_, err := f.uc.Finalize(context.Background(), c.center.UserID, c.schedule, c.donor.ID, c.request(true))

	assert.Equal(t, ErrStockRowMissing, err)
	f.donors.AssertNotCalled(t, "UpdateLastDonation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestFinalize_LostRaceIsAlreadyFinalized(t *testing.T) {
	f := newDonationFixture(t)
	c := newFinalizeCase()

	f.expectFinalizeUntilStatus(c, entity.DonationStatusSuccess, 0)
	f.sql.ExpectRollback()

	_, err := f.uc.Finalize(context.Background(), c.center.UserID, c.schedule, c.donor.ID, c.request(true))

	assert.Equal(t, ErrAlreadyFinalized, err)
	f.stocks.AssertNotCalled(t, "IncrementQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestFinalize_TerminalDonation(t *testing.T) {
	f := newDonationFixture(t)
	c := newFinalizeCase()
	c.donation.Status = entity.DonationStatusSuccess

	f.users.On("FindByID", mock.Anything, mock.Anything, c.center.UserID).Return(pmiUser(c.center), nil)
	f.sql.ExpectBegin()
	f.donors.On("FindByID", mock.Anything, mock.Anything, c.donor.ID).Return(c.donor, nil)
	f.donations.On("FindForFinalize", mock.Anything, mock.Anything, c.center.ID, c.schedule, c.donor.ID).Return(c.donation, nil)
	f.sql.ExpectRollback()

	_, err := f.uc.Finalize(context.Background(), c.center.UserID, c.schedule, c.donor.ID, c.request(true))

	assert.Equal(t, ErrAlreadyFinalized, err)
	f.assertExpectations(t)
}

func TestFinalize_DonationNotFound(t *testing.T) {
	f := newDonationFixture(t)
	c := newFinalizeCase()

	f.users.On("FindByID", mock.Anything, mock.Anything, c.center.UserID).Return(pmiUser(c.center), nil)
	f.sql.ExpectBegin()
	f.donors.On("FindByID", mock.Anything, mock.Anything, c.donor.ID).Return(c.donor, nil)
	f.donations.On("FindForFinalize", mock.Anything, mock.Anything, c.center.ID, c.schedule, c.donor.ID).Return(nil, nil)
	f.sql.ExpectRollback()

	_, err := f.uc.Finalize(context.Background(), c.center.UserID, c.schedule, c.donor.ID, c.request(true))

	assert.Equal(t, ErrDonationNotFound, err)
	f.assertExpectations(t)
}

func walkInRequest(worthy bool) *dto.WalkInDonationRequest {
	return &dto.WalkInDonationRequest{
		Email:       " Siti@Example.com ",
		Name:        "Siti",
		Phone:       "081234567890",
		BloodType:   "o",
		Rhesus:      "-",
		ExamRequest: examRequest(),
		Worthy:      boolPtr(worthy),
	}
}

func TestWalkIn_WorthyDonorAddsStock(t *testing.T) {
	f := newDonationFixture(t)
	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}
	walkInUser := &entity.User{ID: uuid.New(), Email: "siti@example.com", Role: entity.RoleDonor}
	donor := &entity.Donor{ID: uuid.New(), UserID: walkInUser.ID}
	group := entity.BloodGroup{Type: entity.BloodTypeO, Rhesus: entity.RhesusNegative}

	f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)
	f.sql.ExpectBegin()
	f.users.On("FirstOrCreateByEmail", mock.Anything, mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "siti@example.com" && u.Role == entity.RoleDonor && !u.HasPassword()
	})).Return(walkInUser, nil)
	f.donors.On("FirstOrCreateByUserID", mock.Anything, mock.Anything, walkInUser.ID).Return(donor, nil)
	f.donors.On("UpdateBloodGroup", mock.Anything, mock.Anything, donor.ID, group).Return(nil)
	f.physicals.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(p *entity.Physical) bool {
		return p.Examined() && p.Weight.Decimal.Equal(decimal.RequireFromString("65.5"))
	})).Return(nil)
	f.donations.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(d *entity.Donation) bool {
		return d.Status == entity.DonationStatusSuccess && d.DonorScheduleID == nil && d.PmiCenterID == center.ID
	})).Return(nil)
	f.stocks.On("IncrementQuantity", mock.Anything, mock.Anything, center.ID, group).Return(int64(1), nil)
	f.donors.On("UpdateLastDonation", mock.Anything, mock.Anything, donor.ID, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)).Return(nil)
	f.audit.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionDonationWalkIn, "donation", mock.Anything, mock.Anything).Return(nil)
	f.sql.ExpectCommit()

	resp, err := f.uc.WalkIn(context.Background(), center.UserID, walkInRequest(true))

	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Nil(t, resp.DonorScheduleID)
	f.assertExpectations(t)
}

func TestWalkIn_CooldownNotElapsed(t *testing.T) {
	f := newDonationFixture(t)
	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}
	walkInUser := &entity.User{ID: uuid.New(), Email: "siti@example.com", Role: entity.RoleDonor}
	last := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	donor := &entity.Donor{ID: uuid.New(), UserID: walkInUser.ID, LastDonation: &last}

	f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)
	f.sql.ExpectBegin()
	f.users.On("FirstOrCreateByEmail", mock.Anything, mock.Anything, mock.Anything).Return(walkInUser, nil)
	f.donors.On("FirstOrCreateByUserID", mock.Anything, mock.Anything, walkInUser.ID).Return(donor, nil)
	f.sql.ExpectRollback()

	_, err := f.uc.WalkIn(context.Background(), center.UserID, walkInRequest(true))

	assert.Equal(t, ErrCooldownNotElapsed, err)
	f.donations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestWalkIn_RejectsPmiEmail(t *testing.T) {
	f := newDonationFixture(t)
	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}
	other := &entity.User{ID: uuid.New(), Email: "siti@example.com", Role: entity.RolePmi}

	f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)
	f.sql.ExpectBegin()
	f.users.On("FirstOrCreateByEmail", mock.Anything, mock.Anything, mock.Anything).Return(other, nil)
	f.sql.ExpectRollback()

	_, err := f.uc.WalkIn(context.Background(), center.UserID, walkInRequest(true))

	assert.Equal(t, ErrPmiAccountAsDonor, err)
	f.assertExpectations(t)
}

func TestWalkIn_ScheduleOfAnotherCenter(t *testing.T) {
	f := newDonationFixture(t)
	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}
	schedule := &entity.DonorSchedule{ID: uuid.New(), PmiCenterID: uuid.New()}
	req := walkInRequest(true)
	scheduleID := schedule.ID.String()
	req.DonorScheduleID = &scheduleID

	f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)
	f.sql.ExpectBegin()
	f.schedules.On("FindByID", mock.Anything, mock.Anything, schedule.ID).Return(schedule, nil)
	f.sql.ExpectRollback()

	_, err := f.uc.WalkIn(context.Background(), center.UserID, req)

	assert.Equal(t, ErrNotScheduleOwner, err)
	f.assertExpectations(t)
}

func TestWalkIn_MissingStockRowRollsBack(t *testing.T) {
	f := newDonationFixture(t)
	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}
	walkInUser := &entity.User{ID: uuid.New(), Email: "siti@example.com", Role: entity.RoleDonor}
	donor := &entity.Donor{ID: uuid.New(), UserID: walkInUser.ID}
	group := entity.BloodGroup{Type: entity.BloodTypeO, Rhesus: entity.RhesusNegative}

	f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)
	f.sql.ExpectBegin()
	f.users.On("FirstOrCreateByEmail", mock.Anything, mock.Anything, mock.Anything).Return(walkInUser, nil)
	f.donors.On("FirstOrCreateByUserID", mock.Anything, mock.Anything, walkInUser.ID).Return(donor, nil)
	f.donors.On("UpdateBloodGroup", mock.Anything, mock.Anything, donor.ID, group).Return(nil)
	f.physicals.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.donations.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.stocks.On("IncrementQuantity", mock.Anything, mock.Anything, center.ID, group).Return(int64(0), nil)
	f.sql.ExpectRollback()

	_, err := f.uc.WalkIn(context.Background(), center.UserID, walkInRequest(true))

	assert.Equal(t, ErrStockRowMissing, err)
	f.donors.AssertNotCalled(t, "UpdateLastDonation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.audit.AssertNotCalled(t, "LogCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestWalkIn_EarlyLocalMorningAfterExactCooldown(t *testing.T) {
	f := newDonationFixture(t)
	wib := time.FixedZone("WIB", 7*60*60)
	f.uc.loc = wib
	f.uc.now = func() time.Time { return time.Date(2024, 5, 10, 5, 0, 0, 0, wib) }

	center := &entity.PmiCenter{ID: uuid.New(), UserID: uuid.New()}
	walkInUser := &entity.User{ID: uuid.New(), Email: "siti@example.com", Role: entity.RoleDonor}
	last := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	donor := &entity.Donor{ID: uuid.New(), UserID: walkInUser.ID, LastDonation: &last}
	group := entity.BloodGroup{Type: entity.BloodTypeO, Rhesus: entity.RhesusNegative}

	f.users.On("FindByID", mock.Anything, mock.Anything, center.UserID).Return(pmiUser(center), nil)
	f.sql.ExpectBegin()
	f.users.On("FirstOrCreateByEmail", mock.Anything, mock.Anything, mock.Anything).Return(walkInUser, nil)
	f.donors.On("FirstOrCreateByUserID", mock.Anything, mock.Anything, walkInUser.ID).Return(donor, nil)
	f.donors.On("UpdateBloodGroup", mock.Anything, mock.Anything, donor.ID, group).Return(nil)
	f.physicals.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.donations.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.stocks.On("IncrementQuantity", mock.Anything, mock.Anything, center.ID, group).Return(int64(1), nil)
	f.donors.On("UpdateLastDonation", mock.Anything, mock.Anything, donor.ID, time.Date(2024, 5, 10, 0, 0, 0, 0, wib)).Return(nil)
	f.audit.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionDonationWalkIn, "donation", mock.Anything, mock.Anything).Return(nil)
	f.sql.ExpectCommit()

	resp, err := f.uc.WalkIn(context.Background(), center.UserID, walkInRequest(true))

	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	f.assertExpectations(t)
}
