package repository

import (
	"context"
	"time"

	"blood-donation-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonorRepository interface {
	Create(ctx context.Context, db *gorm.DB, donor *entity.Donor) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Donor, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Donor, error)
	// FirstOrCreateByUserID creates the donor row for a user if it does not exist yet.
	FirstOrCreateByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Donor, error)
	UpdateBloodGroup(ctx context.Context, db *gorm.DB, id uuid.UUID, group entity.BloodGroup) error
	UpdateLastDonation(ctx context.Context, db *gorm.DB, id uuid.UUID, date time.Time) error
	// FindTop ranks donors by successful donations. A non-empty city restricts
	// to donations collected by centers of that city.
	FindTop(ctx context.Context, db *gorm.DB, city string, limit int) ([]entity.TopDonor, error)
}

type PmiCenterRepository interface {
	Create(ctx context.Context, db *gorm.DB, center *entity.PmiCenter) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.PmiCenter, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PmiCenter, error)
	Update(ctx context.Context, db *gorm.DB, center *entity.PmiCenter) error
}
