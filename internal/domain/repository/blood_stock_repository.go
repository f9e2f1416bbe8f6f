package repository

import (
	"context"

	"blood-donation-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BloodStockRepository interface {
	Create(ctx context.Context, db *gorm.DB, stock *entity.BloodStock) error
	FindByCenter(ctx context.Context, db *gorm.DB, pmiCenterID uuid.UUID) ([]entity.BloodStock, error)
	// IncrementQuantity adds one bag to the matching row in a single statement.
	// It returns the affected rows: 0 means the row does not exist.
	IncrementQuantity(ctx context.Context, db *gorm.DB, pmiCenterID uuid.UUID, group entity.BloodGroup) (int64, error)
	// SummaryByGroup totals quantities per blood group. A non-empty city
	// restricts to centers of that city.
	SummaryByGroup(ctx context.Context, db *gorm.DB, city string) ([]entity.StockTotal, error)
}
