package usecase

import (
	"context"
	"strings"
	"time"

	"blood-donation-backend/internal/converter"
	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"
	"blood-donation-backend/internal/domain/repository"
	"blood-donation-backend/internal/infrastructure/metrics"
	"blood-donation-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DonationUsecase drives a donation from registration or walk-in intake to
// its terminal status. A successful donation adds one bag to the center's
// stock and sets the donor's last donation date in the same transaction.
type DonationUsecase interface {
	RegisterForSchedule(ctx context.Context, userID, scheduleID uuid.UUID) (*dto.DonationResponse, error)
	WalkIn(ctx context.Context, userID uuid.UUID, req *dto.WalkInDonationRequest) (*dto.DonationResponse, error)
	Finalize(ctx context.Context, userID, scheduleID, donorID uuid.UUID, req *dto.FinalizeDonationRequest) (*dto.DonationResponse, error)
}

type donationUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	donorRepo    repository.DonorRepository
	scheduleRepo repository.DonorScheduleRepository
	donationRepo repository.DonationRepository
	physicalRepo repository.PhysicalRepository
	stockRepo    repository.BloodStockRepository
	auditService service.AuditService
	metrics      *metrics.Metrics
	loc          *time.Location
	now          func() time.Time
}

func NewDonationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	donorRepo repository.DonorRepository,
	scheduleRepo repository.DonorScheduleRepository,
	donationRepo repository.DonationRepository,
	physicalRepo repository.PhysicalRepository,
	stockRepo repository.BloodStockRepository,
	auditService service.AuditService,
	donationMetrics *metrics.Metrics,
	loc *time.Location,
) DonationUsecase {
	return &donationUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		donorRepo:    donorRepo,
		scheduleRepo: scheduleRepo,
		donationRepo: donationRepo,
		physicalRepo: physicalRepo,
		stockRepo:    stockRepo,
		auditService: auditService,
		metrics:      donationMetrics,
		loc:          loc,
		now:          time.Now,
	}
}

func (u *donationUsecase) RegisterForSchedule(ctx context.Context, userID, scheduleID uuid.UUID) (*dto.DonationResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	donor, err := requireDonor(user)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	schedule, err := u.scheduleRepo.FindByID(ctx, tx, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find donor schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if schedule.Date.Before(startOfDay(u.now(), u.loc)) {
		return nil, ErrScheduleClosed
	}

	eligibility, err := loadEligibility(ctx, tx, u.donationRepo, donor, &schedule.ID, schedule.Date)
	if err != nil {
		u.log.Warnf("Failed to check donor eligibility: %+v", err)
		return nil, err
	}
	if err := eligibility.Check(); err != nil {
		u.metrics.IncrementIneligible(ineligibleReason(err))
		return nil, err
	}

	physical := &entity.Physical{}
	if err := u.physicalRepo.Create(ctx, tx, physical); err != nil {
		u.log.Warnf("Failed to create physical record: %+v", err)
		return nil, err
	}

	donation := &entity.Donation{
		DonorID:         donor.ID,
		DonorScheduleID: &schedule.ID,
		PmiCenterID:     schedule.PmiCenterID,
		PhysicalID:      physical.ID,
		Status:          entity.DonationStatusPending,
	}
	if err := u.donationRepo.Create(ctx, tx, donation); err != nil {
		if isDuplicateKeyError(err, "pending") {
			return nil, ErrPendingDonationExists
		}
		u.log.Warnf("Failed to create donation: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionDonationRegister, "donation", donation.ID.String(), converter.DonationToResponse(donation)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.IncrementRegistered()

	return converter.DonationToResponse(donation), nil
}

func (u *donationUsecase) WalkIn(ctx context.Context, userID uuid.UUID, req *dto.WalkInDonationRequest) (*dto.DonationResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	center, err := requirePmiCenter(user)
	if err != nil {
		return nil, err
	}

	group, err := parseBloodGroup(req.BloodType, req.Rhesus)
	if err != nil {
		return nil, err
	}

	var scheduleID *uuid.UUID
	if req.DonorScheduleID != nil && *req.DonorScheduleID != "" {
		id, err := uuid.Parse(*req.DonorScheduleID)
		if err != nil {
			return nil, ErrInvalidScheduleID
		}
		scheduleID = &id
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if scheduleID != nil {
		schedule, err := u.scheduleRepo.FindByID(ctx, tx, *scheduleID)
		if err != nil {
			u.log.Warnf("Failed to find donor schedule: %+v", err)
			return nil, err
		}
		if schedule == nil {
			return nil, ErrScheduleNotFound
		}
		if !schedule.OwnedBy(center.ID) {
			return nil, ErrNotScheduleOwner
		}
	}

	candidate := &entity.User{
		Name:  req.Name,
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Role:  entity.RoleDonor,
	}
	if req.Phone != "" {
		candidate.Phone = &req.Phone
	}
	donorUser, err := u.userRepo.FirstOrCreateByEmail(ctx, tx, candidate)
	if err != nil {
		u.log.Warnf("Failed to resolve walk-in user: %+v", err)
		return nil, err
	}
	if donorUser.Role == entity.RolePmi {
		return nil, ErrPmiAccountAsDonor
	}

	donor, err := u.donorRepo.FirstOrCreateByUserID(ctx, tx, donorUser.ID)
	if err != nil {
		u.log.Warnf("Failed to resolve walk-in donor: %+v", err)
		return nil, err
	}

	now := u.now().In(u.loc)
	if !donor.CooldownElapsed(now) {
		u.metrics.IncrementIneligible(ineligibleReason(ErrCooldownNotElapsed))
		return nil, ErrCooldownNotElapsed
	}

	// The blood group measured at intake replaces whatever the donor had on file.
	if err := u.donorRepo.UpdateBloodGroup(ctx, tx, donor.ID, group); err != nil {
		u.log.Warnf("Failed to update donor blood group: %+v", err)
		return nil, err
	}

	physical := &entity.Physical{}
	physical.Apply(examFromRequest(req.ExamRequest))
	if err := u.physicalRepo.Create(ctx, tx, physical); err != nil {
		u.log.Warnf("Failed to create physical record: %+v", err)
		return nil, err
	}

	donation := &entity.Donation{
		DonorID:         donor.ID,
		DonorScheduleID: scheduleID,
		PmiCenterID:     center.ID,
		PhysicalID:      physical.ID,
		Status:          entity.OutcomeStatus(req.Worthy != nil && *req.Worthy),
	}
	if err := u.donationRepo.Create(ctx, tx, donation); err != nil {
		u.log.Warnf("Failed to create donation: %+v", err)
		return nil, err
	}

	if donation.IsSuccess() {
		if err := u.recordSuccess(ctx, tx, center.ID, donor.ID, group, now); err != nil {
			return nil, err
		}
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionDonationWalkIn, "donation", donation.ID.String(), converter.DonationToResponse(donation)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.IncrementWalkIn(string(donation.Status))
	if donation.IsSuccess() {
		u.metrics.IncrementStock(group.String())
	}

	return converter.DonationToResponse(donation), nil
}

func (u *donationUsecase) Finalize(ctx context.Context, userID, scheduleID, donorID uuid.UUID, req *dto.FinalizeDonationRequest) (*dto.DonationResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	center, err := requirePmiCenter(user)
	if err != nil {
		return nil, err
	}

	group, err := parseBloodGroup(req.BloodType, req.Rhesus)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	donor, err := u.donorRepo.FindByID(ctx, tx, donorID)
	if err != nil {
		u.log.Warnf("Failed to find donor: %+v", err)
		return nil, err
	}
	if donor == nil {
		return nil, ErrDonorNotFound
	}

	donation, err := u.donationRepo.FindForFinalize(ctx, tx, center.ID, scheduleID, donorID)
	if err != nil {
		u.log.Warnf("Failed to find donation: %+v", err)
		return nil, err
	}
	if donation == nil {
		return nil, ErrDonationNotFound
	}
	if !donation.IsPending() {
		return nil, ErrAlreadyFinalized
	}

	if err := u.donorRepo.UpdateBloodGroup(ctx, tx, donor.ID, group); err != nil {
		u.log.Warnf("Failed to update donor blood group: %+v", err)
		return nil, err
	}

	if err := u.physicalRepo.UpdateExam(ctx, tx, donation.PhysicalID, examFromRequest(req.ExamRequest)); err != nil {
		u.log.Warnf("Failed to update physical record: %+v", err)
		return nil, err
	}

	oldStatus := donation.Status
	status := entity.OutcomeStatus(req.Worthy != nil && *req.Worthy)
	affected, err := u.donationRepo.FinalizeStatus(ctx, tx, donation.ID, status)
	if err != nil {
		u.log.Warnf("Failed to update donation status: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAlreadyFinalized
	}
	donation.Status = status

	now := u.now().In(u.loc)
	if donation.IsSuccess() {
		if err := u.recordSuccess(ctx, tx, center.ID, donor.ID, group, now); err != nil {
			return nil, err
		}
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionDonationFinalize, "donation", donation.ID.String(),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": status, "blood_group": group.String()},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.IncrementFinalized(string(status))
	if donation.IsSuccess() {
		u.metrics.IncrementStock(group.String())
	}

	donation.UpdatedAt = now
	return converter.DonationToResponse(donation), nil
}

// recordSuccess adds one bag to the center's stock and stamps the donor's
// last donation date. It must run inside the transaction that marks the
// donation successful.
func (u *donationUsecase) recordSuccess(ctx context.Context, tx *gorm.DB, pmiCenterID, donorID uuid.UUID, group entity.BloodGroup, now time.Time) error {
	affected, err := u.stockRepo.IncrementQuantity(ctx, tx, pmiCenterID, group)
	if err != nil {
		u.log.Warnf("Failed to increment blood stock: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrStockRowMissing
	}

	if err := u.donorRepo.UpdateLastDonation(ctx, tx, donorID, startOfDay(now, u.loc)); err != nil {
		u.log.Warnf("Failed to update donor last donation: %+v", err)
		return err
	}
	return nil
}

func examFromRequest(req dto.ExamRequest) entity.Exam {
	value := func(d *decimal.Decimal) decimal.Decimal {
		if d == nil {
			return decimal.Zero
		}
		return *d
	}
	return entity.Exam{
		Systolic:    value(req.Systolic),
		Diastolic:   value(req.Diastolic),
		Pulse:       value(req.Pulse),
		Weight:      value(req.Weight),
		Temperature: value(req.Temperature),
		Hemoglobin:  value(req.Hemoglobin),
	}
}
