package repository

import (
	"context"

	"blood-donation-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonorScheduleRepository interface {
	Create(ctx context.Context, db *gorm.DB, schedule *entity.DonorSchedule) error
	// FindByID preloads the owning center and its user.
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.DonorSchedule, error)
	FindUpcoming(ctx context.Context, db *gorm.DB, filter entity.ScheduleFilter, page entity.Page) ([]entity.DonorSchedule, int64, error)
	Update(ctx context.Context, db *gorm.DB, schedule *entity.DonorSchedule) error
}
