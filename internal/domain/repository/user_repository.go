package repository

import (
	"context"

	"blood-donation-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	// FindByID preloads the donor and PMI center records.
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Update(ctx context.Context, db *gorm.DB, user *entity.User) error
	// FirstOrCreateByEmail inserts the user unless the email already exists and
	// returns the stored row either way.
	FirstOrCreateByEmail(ctx context.Context, db *gorm.DB, user *entity.User) (*entity.User, error)
}
