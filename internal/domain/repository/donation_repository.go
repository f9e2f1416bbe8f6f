package repository

import (
	"context"
	"time"

	"blood-donation-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationRepository interface {
	Create(ctx context.Context, db *gorm.DB, donation *entity.Donation) error
	ExistsPending(ctx context.Context, db *gorm.DB, donorID uuid.UUID) (bool, error)
	ExistsPendingForSchedule(ctx context.Context, db *gorm.DB, donorID, scheduleID uuid.UUID) (bool, error)
	// FindForFinalize loads the donation of a donor on a schedule of a center and
	// locks the row until the transaction ends.
	FindForFinalize(ctx context.Context, db *gorm.DB, pmiCenterID, scheduleID, donorID uuid.UUID) (*entity.Donation, error)
	// FinalizeStatus moves a pending donation to a terminal status. It returns
	// the affected rows: 0 means the donation was no longer pending.
	FinalizeStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.DonationStatus) (int64, error)
	// FindHistory lists donations with donor, schedule, center and exam preloaded,
	// pending first, then success, then failed, most recently updated first.
	FindHistory(ctx context.Context, db *gorm.DB, filter entity.DonationFilter, page entity.Page) ([]entity.Donation, int64, error)
	// FindHistoryAll is FindHistory without pagination, capped at limit rows.
	FindHistoryAll(ctx context.Context, db *gorm.DB, filter entity.DonationFilter, limit int) ([]entity.Donation, error)
	FindOne(ctx context.Context, db *gorm.DB, id uuid.UUID, filter entity.DonationFilter) (*entity.Donation, error)
	FindLatest(ctx context.Context, db *gorm.DB, filter entity.DonationFilter) (*entity.Donation, error)
	// CountSuccessByMonth counts successful donations per month of updated_at
	// since the given instant. A non-empty city restricts to centers of that city.
	CountSuccessByMonth(ctx context.Context, db *gorm.DB, since time.Time, city string) ([]entity.MonthlyCount, error)
}

type PhysicalRepository interface {
	Create(ctx context.Context, db *gorm.DB, physical *entity.Physical) error
	UpdateExam(ctx context.Context, db *gorm.DB, id uuid.UUID, exam entity.Exam) error
}
