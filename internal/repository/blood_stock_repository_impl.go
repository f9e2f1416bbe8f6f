package repository

import (
	"context"

	"blood-donation-backend/internal/domain/entity"
	domainRepo "blood-donation-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bloodStockRepository struct{}

func NewBloodStockRepository() domainRepo.BloodStockRepository {
	return &bloodStockRepository{}
}

func (r *bloodStockRepository) Create(ctx context.Context, db *gorm.DB, stock *entity.BloodStock) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(stock).Error
}

func (r *bloodStockRepository) FindByCenter(ctx context.Context, db *gorm.DB, pmiCenterID uuid.UUID) ([]entity.BloodStock, error) {
	var stocks []entity.BloodStock
	err := db.WithContext(ctx).
		Where("pmi_center_id = ?", pmiCenterID).
		Order("blood_type ASC, rhesus DESC").
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

// IncrementQuantity never reads the current quantity, so concurrent
// increments on the same row cannot lose updates.
func (r *bloodStockRepository) IncrementQuantity(ctx context.Context, db *gorm.DB, pmiCenterID uuid.UUID, group entity.BloodGroup) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.BloodStock{}).
		Where("pmi_center_id = ? AND blood_type = ? AND rhesus = ?", pmiCenterID, group.Type, group.Rhesus).
		Update("quantity", gorm.Expr("quantity + ?", 1))
	return result.RowsAffected, result.Error
}

func (r *bloodStockRepository) SummaryByGroup(ctx context.Context, db *gorm.DB, city string) ([]entity.StockTotal, error) {
	var rows []entity.StockTotal
	query := db.WithContext(ctx).Table("blood_stocks").
		Select("blood_stocks.blood_type, blood_stocks.rhesus, COALESCE(SUM(blood_stocks.quantity), 0) AS total")

	if city != "" {
		query = query.
			Joins("JOIN pmi_centers ON pmi_centers.id = blood_stocks.pmi_center_id").
			Joins("JOIN users ON users.id = pmi_centers.user_id").
			Where("users.city = ?", city)
	}

	err := query.Group("blood_stocks.blood_type, blood_stocks.rhesus").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
