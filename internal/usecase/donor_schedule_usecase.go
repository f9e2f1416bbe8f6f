package usecase

import (
	"context"
	"time"

	"blood-donation-backend/internal/converter"
	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"
	"blood-donation-backend/internal/domain/repository"
	"blood-donation-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DonorScheduleUsecase interface {
	List(ctx context.Context, userID uuid.UUID, city string, page entity.Page) ([]dto.DonorScheduleResponse, int64, error)
	Detail(ctx context.Context, userID, scheduleID uuid.UUID) (*dto.DonorScheduleDetailResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateDonorScheduleRequest) (*dto.DonorScheduleResponse, error)
	Update(ctx context.Context, userID, scheduleID uuid.UUID, req *dto.UpdateDonorScheduleRequest) (*dto.DonorScheduleResponse, error)
	Participants(ctx context.Context, userID, scheduleID uuid.UUID, page entity.Page) ([]dto.HistoryResponse, int64, error)
	ParticipantDetail(ctx context.Context, userID, scheduleID, donorID uuid.UUID) (*dto.HistoryDetailResponse, error)
}

type donorScheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	scheduleRepo repository.DonorScheduleRepository
	donationRepo repository.DonationRepository
	auditService service.AuditService
	avatarURL    converter.URLResolver
	loc          *time.Location
	now          func() time.Time
}

func NewDonorScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	scheduleRepo repository.DonorScheduleRepository,
	donationRepo repository.DonationRepository,
	auditService service.AuditService,
	avatarURL converter.URLResolver,
	loc *time.Location,
) DonorScheduleUsecase {
	return &donorScheduleUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		scheduleRepo: scheduleRepo,
		donationRepo: donationRepo,
		auditService: auditService,
		avatarURL:    avatarURL,
		loc:          loc,
		now:          time.Now,
	}
}

// List returns upcoming schedules. PMI callers only see their own.
func (u *donorScheduleUsecase) List(ctx context.Context, userID uuid.UUID, city string, page entity.Page) ([]dto.DonorScheduleResponse, int64, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, 0, err
	}

	filter := entity.ScheduleFilter{
		City: city,
		Now:  u.now().In(u.loc),
	}
	if user.PmiCenter != nil {
		filter.PmiCenterID = &user.PmiCenter.ID
	}

	schedules, total, err := u.scheduleRepo.FindUpcoming(ctx, u.db, filter, page.Normalize())
	if err != nil {
		u.log.Warnf("Failed to find upcoming schedules: %+v", err)
		return nil, 0, err
	}

	return converter.DonorSchedulesToResponses(schedules), total, nil
}

// Detail adds the caller's eligibility flags when the caller is a donor.
func (u *donorScheduleUsecase) Detail(ctx context.Context, userID, scheduleID uuid.UUID) (*dto.DonorScheduleDetailResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}

	schedule, err := u.scheduleRepo.FindByID(ctx, u.db, scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find donor schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	response := &dto.DonorScheduleDetailResponse{
		DonorScheduleResponse: *converter.DonorScheduleToResponse(schedule),
	}

	if user.Role == entity.RolePmi {
		if user.PmiCenter == nil || !schedule.OwnedBy(user.PmiCenter.ID) {
			return nil, ErrNotScheduleOwner
		}
		return response, nil
	}

	donor, err := requireDonor(user)
	if err != nil {
		return nil, err
	}

	eligibility, err := loadEligibility(ctx, u.db, u.donationRepo, donor, &schedule.ID, schedule.Date)
	if err != nil {
		u.log.Warnf("Failed to check donor eligibility: %+v", err)
		return nil, err
	}

	eligible := eligibility.Check() == nil
	response.IsEligible = &eligible
	response.IsScheduleRegistered = &eligibility.HasPendingForSchedule
	response.IsRegistered = &eligibility.HasPending
	if donor.LastDonation != nil {
		date := donor.LastDonation.Format("2006-01-02")
		response.LastDonation = &date
	}

	return response, nil
}

func (u *donorScheduleUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateDonorScheduleRequest) (*dto.DonorScheduleResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	center, err := requirePmiCenter(user)
	if err != nil {
		return nil, err
	}

	date, err := u.parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	clock, err := parseClock(req.Time)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	schedule := &entity.DonorSchedule{
		PmiCenterID: center.ID,
		Date:        date,
		Time:        clock,
		Location:    req.Location,
	}
	if err := u.scheduleRepo.Create(ctx, tx, schedule); err != nil {
		u.log.Warnf("Failed to create donor schedule: %+v", err)
		return nil, err
	}

	response := converter.DonorScheduleToResponse(schedule)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionScheduleCreate, "donor_schedule", schedule.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	schedule.PmiCenter = center
	schedule.PmiCenter.User = user
	return converter.DonorScheduleToResponse(schedule), nil
}

func (u *donorScheduleUsecase) Update(ctx context.Context, userID, scheduleID uuid.UUID, req *dto.UpdateDonorScheduleRequest) (*dto.DonorScheduleResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	center, err := requirePmiCenter(user)
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
	if !schedule.OwnedBy(center.ID) {
		return nil, ErrNotScheduleOwner
	}

	oldValue := converter.DonorScheduleToResponse(schedule)

	if req.Date != nil {
		date, err := u.parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		schedule.Date = date
	}
	if req.Time != nil {
		clock, err := parseClock(*req.Time)
		if err != nil {
			return nil, err
		}
		schedule.Time = clock
	}
	if req.Location != nil {
		schedule.Location = *req.Location
	}

	if err := u.scheduleRepo.Update(ctx, tx, schedule); err != nil {
		u.log.Warnf("Failed to update donor schedule: %+v", err)
		return nil, err
	}

	newValue := converter.DonorScheduleToResponse(schedule)
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionScheduleUpdate, "donor_schedule", schedule.ID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

// Participants lists the donations registered on a schedule of the caller's center.
func (u *donorScheduleUsecase) Participants(ctx context.Context, userID, scheduleID uuid.UUID, page entity.Page) ([]dto.HistoryResponse, int64, error) {
	center, err := u.ownedSchedule(ctx, userID, scheduleID)
	if err != nil {
		return nil, 0, err
	}

	filter := entity.DonationFilter{PmiCenterID: &center.ID, DonorScheduleID: &scheduleID}
	donations, total, err := u.donationRepo.FindHistory(ctx, u.db, filter, page.Normalize())
	if err != nil {
		u.log.Warnf("Failed to find schedule participants: %+v", err)
		return nil, 0, err
	}

	return converter.DonationsToHistories(donations, entity.RolePmi, u.loc, u.avatarURL), total, nil
}

func (u *donorScheduleUsecase) ParticipantDetail(ctx context.Context, userID, scheduleID, donorID uuid.UUID) (*dto.HistoryDetailResponse, error) {
	center, err := u.ownedSchedule(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}

	filter := entity.DonationFilter{PmiCenterID: &center.ID, DonorScheduleID: &scheduleID, DonorID: &donorID}
	donation, err := u.donationRepo.FindLatest(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find schedule participant: %+v", err)
		return nil, err
	}
	if donation == nil {
		return nil, ErrDonationNotFound
	}

	return converter.DonationToHistoryDetail(donation, entity.RolePmi, u.loc, u.avatarURL), nil
}

func (u *donorScheduleUsecase) ownedSchedule(ctx context.Context, userID, scheduleID uuid.UUID) (*entity.PmiCenter, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	center, err := requirePmiCenter(user)
	if err != nil {
		return nil, err
	}

	schedule, err := u.scheduleRepo.FindByID(ctx, u.db, scheduleID)
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
	return center, nil
}

// parseDate reads a YYYY-MM-DD date in the application time zone and rejects past days.
func (u *donorScheduleUsecase) parseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", value, u.loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	if date.Before(startOfDay(u.now(), u.loc)) {
		return time.Time{}, ErrScheduleInPast
	}
	return date, nil
}

// parseClock normalizes HH:MM or HH:MM:SS to HH:MM:SS.
func parseClock(value string) (string, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", ErrInvalidTimeFormat
}
