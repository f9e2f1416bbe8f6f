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

const (
	monthlyReportMonths = 6
	topDonorsLimit      = 5
	exportRowLimit      = 10000
	statusFilterAll     = "semua"
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// ReportUsecase answers the read-only dashboard queries. Every query is
// restricted by the caller's scope.
type ReportUsecase interface {
	StockSummary(ctx context.Context, userID uuid.UUID) ([]dto.StockSummaryResponse, error)
	DonationsByMonth(ctx context.Context, userID uuid.UUID) ([]dto.MonthlyDonationResponse, error)
	TopDonors(ctx context.Context, userID uuid.UUID) ([]dto.TopDonorResponse, error)
	Histories(ctx context.Context, userID uuid.UUID, status string, page entity.Page) ([]dto.HistoryResponse, int64, error)
	HistoryDetail(ctx context.Context, userID, donationID uuid.UUID) (*dto.HistoryDetailResponse, error)
	LastDonation(ctx context.Context, userID uuid.UUID) (*dto.HistoryDetailResponse, error)
	ExportHistories(ctx context.Context, userID uuid.UUID, status string) ([]byte, error)
}

type reportUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	donorRepo     repository.DonorRepository
	donationRepo  repository.DonationRepository
	stockRepo     repository.BloodStockRepository
	exportService service.ExportService
	avatarURL     converter.URLResolver
	loc           *time.Location
	now           func() time.Time
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	donorRepo repository.DonorRepository,
	donationRepo repository.DonationRepository,
	stockRepo repository.BloodStockRepository,
	exportService service.ExportService,
	avatarURL converter.URLResolver,
	loc *time.Location,
) ReportUsecase {
	return &reportUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		donorRepo:     donorRepo,
		donationRepo:  donationRepo,
		stockRepo:     stockRepo,
		exportService: exportService,
		avatarURL:     avatarURL,
		loc:           loc,
		now:           time.Now,
	}
}

func (u *reportUsecase) scope(ctx context.Context, userID uuid.UUID) (entity.Scope, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return entity.Scope{}, err
	}
	return entity.ScopeFor(user), nil
}

// aggregateCity is the city filter for aggregate reports: PMI callers see
// their own city, donors see everything.
func aggregateCity(scope entity.Scope) string {
	if scope.IsPmi() {
		return scope.City
	}
	return ""
}

func (u *reportUsecase) StockSummary(ctx context.Context, userID uuid.UUID) ([]dto.StockSummaryResponse, error) {
	scope, err := u.scope(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals, err := u.stockRepo.SummaryByGroup(ctx, u.db, aggregateCity(scope))
	if err != nil {
		u.log.Warnf("Failed to summarize blood stocks: %+v", err)
		return nil, err
	}

	return converter.StockTotalsToSummary(totals), nil
}

func (u *reportUsecase) DonationsByMonth(ctx context.Context, userID uuid.UUID) ([]dto.MonthlyDonationResponse, error) {
	scope, err := u.scope(ctx, userID)
	if err != nil {
		return nil, err
	}

	start := firstMonthOfWindow(u.now().In(u.loc), monthlyReportMonths)
	counts, err := u.donationRepo.CountSuccessByMonth(ctx, u.db, start, aggregateCity(scope))
	if err != nil {
		u.log.Warnf("Failed to count donations by month: %+v", err)
		return nil, err
	}

	return fillMonths(start, monthlyReportMonths, counts), nil
}

// firstMonthOfWindow returns the first instant of the oldest month in a
// window of n months that ends with the month of now.
func firstMonthOfWindow(now time.Time, n int) time.Time {
	return time.Date(now.Year(), now.Month()-time.Month(n-1), 1, 0, 0, 0, 0, now.Location())
}

// fillMonths lays the counts over n consecutive months starting at start,
// in chronological order, with zero for months without donations.
func fillMonths(start time.Time, n int, counts []entity.MonthlyCount) []dto.MonthlyDonationResponse {
	byPeriod := make(map[string]int64, len(counts))
	for _, c := range counts {
		byPeriod[c.Period] += c.Total
	}

	months := make([]dto.MonthlyDonationResponse, n)
	for i := 0; i < n; i++ {
		month := start.AddDate(0, i, 0)
		period := month.Format("2006-01")
		months[i] = dto.MonthlyDonationResponse{
			Period: period,
			Month:  monthNames[month.Month()-1],
			Total:  byPeriod[period],
		}
	}
	return months
}

func (u *reportUsecase) TopDonors(ctx context.Context, userID uuid.UUID) ([]dto.TopDonorResponse, error) {
	scope, err := u.scope(ctx, userID)
	if err != nil {
		return nil, err
	}

	donors, err := u.donorRepo.FindTop(ctx, u.db, aggregateCity(scope), topDonorsLimit)
	if err != nil {
		u.log.Warnf("Failed to find top donors: %+v", err)
		return nil, err
	}

	return converter.TopDonorsToResponses(donors, u.avatarURL), nil
}

// historyFilter limits donations to the caller's own: a donor sees their
// donations, a center sees donations it collected.
func historyFilter(scope entity.Scope, status string) (entity.DonationFilter, error) {
	filter := entity.DonationFilter{}
	switch {
	case scope.IsPmi() && scope.PmiCenterID != nil:
		filter.PmiCenterID = scope.PmiCenterID
	case scope.IsDonor() && scope.DonorID != nil:
		filter.DonorID = scope.DonorID
	default:
		return filter, ErrDonorRoleRequired
	}

	if status != "" && status != statusFilterAll {
		s := entity.DonationStatus(status)
		if !s.IsValid() {
			return filter, ErrInvalidStatusFilter
		}
		filter.Status = &s
	}
	return filter, nil
}

func (u *reportUsecase) Histories(ctx context.Context, userID uuid.UUID, status string, page entity.Page) ([]dto.HistoryResponse, int64, error) {
	scope, err := u.scope(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	filter, err := historyFilter(scope, status)
	if err != nil {
		return nil, 0, err
	}

	donations, total, err := u.donationRepo.FindHistory(ctx, u.db, filter, page.Normalize())
	if err != nil {
		u.log.Warnf("Failed to find donation histories: %+v", err)
		return nil, 0, err
	}

	return converter.DonationsToHistories(donations, scope.Role, u.loc, u.avatarURL), total, nil
}

func (u *reportUsecase) HistoryDetail(ctx context.Context, userID, donationID uuid.UUID) (*dto.HistoryDetailResponse, error) {
	scope, err := u.scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter, err := historyFilter(scope, "")
	if err != nil {
		return nil, err
	}

	donation, err := u.donationRepo.FindOne(ctx, u.db, donationID, filter)
	if err != nil {
		u.log.Warnf("Failed to find donation: %+v", err)
		return nil, err
	}
	if donation == nil {
		return nil, ErrDonationNotFound
	}

	return converter.DonationToHistoryDetail(donation, scope.Role, u.loc, u.avatarURL), nil
}

// LastDonation returns nil when the donor has never donated.
func (u *reportUsecase) LastDonation(ctx context.Context, userID uuid.UUID) (*dto.HistoryDetailResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	donor, err := requireDonor(user)
	if err != nil {
		return nil, err
	}

	donation, err := u.donationRepo.FindLatest(ctx, u.db, entity.DonationFilter{DonorID: &donor.ID})
	if err != nil {
		u.log.Warnf("Failed to find latest donation: %+v", err)
		return nil, err
	}
	if donation == nil {
		return nil, nil
	}

	return converter.DonationToHistoryDetail(donation, entity.RoleDonor, u.loc, u.avatarURL), nil
}

func (u *reportUsecase) ExportHistories(ctx context.Context, userID uuid.UUID, status string) ([]byte, error) {
	scope, err := u.scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter, err := historyFilter(scope, status)
	if err != nil {
		return nil, err
	}

	donations, err := u.donationRepo.FindHistoryAll(ctx, u.db, filter, exportRowLimit)
	if err != nil {
		u.log.Warnf("Failed to find donation histories: %+v", err)
		return nil, err
	}

	histories := converter.DonationsToHistories(donations, scope.Role, u.loc, u.avatarURL)
	workbook, err := u.exportService.HistoriesWorkbook(converter.HistoriesToExportRows(histories))
	if err != nil {
		u.log.Warnf("Failed to build histories workbook: %+v", err)
		return nil, err
	}
	return workbook, nil
}
