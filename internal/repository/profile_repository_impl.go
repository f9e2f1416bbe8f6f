package repository

import (
	"context"
	"errors"
	"time"

	"blood-donation-backend/internal/domain/entity"
	domainRepo "blood-donation-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Donor Repository

type donorRepository struct{}

func NewDonorRepository() domainRepo.DonorRepository {
	return &donorRepository{}
}

func (r *donorRepository) Create(ctx context.Context, db *gorm.DB, donor *entity.Donor) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(donor).Error
}

func (r *donorRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Donor, error) {
	var donor entity.Donor
	err := db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&donor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donor, nil
}

func (r *donorRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Donor, error) {
	var donor entity.Donor
	err := db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&donor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donor, nil
}

func (r *donorRepository) FirstOrCreateByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Donor, error) {
	donor := &entity.Donor{UserID: userID}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Omit(clause.Associations).
		Create(donor).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUserID(ctx, db, userID)
}

func (r *donorRepository) UpdateBloodGroup(ctx context.Context, db *gorm.DB, id uuid.UUID, group entity.BloodGroup) error {
	return db.WithContext(ctx).Model(&entity.Donor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"blood_type": group.Type,
			"rhesus":     group.Rhesus,
		}).Error
}

func (r *donorRepository) UpdateLastDonation(ctx context.Context, db *gorm.DB, id uuid.UUID, date time.Time) error {
	return db.WithContext(ctx).Model(&entity.Donor{}).
		Where("id = ?", id).
		Update("last_donation", date).Error
}

func (r *donorRepository) FindTop(ctx context.Context, db *gorm.DB, city string, limit int) ([]entity.TopDonor, error) {
	var rows []entity.TopDonor
	query := db.WithContext(ctx).Table("donations").
		Select("donors.id AS donor_id, users.name, users.avatar, donors.blood_type, donors.rhesus, COUNT(donations.id) AS total").
		Joins("JOIN donors ON donors.id = donations.donor_id").
		Joins("JOIN users ON users.id = donors.user_id").
		Where("donations.status = ?", entity.DonationStatusSuccess)

	if city != "" {
		query = query.
			Joins("JOIN pmi_centers ON pmi_centers.id = donations.pmi_center_id").
			Joins("JOIN users AS center_users ON center_users.id = pmi_centers.user_id").
			Where("center_users.city = ?", city)
	}

	err := query.
		Group("donors.id, users.name, users.avatar, donors.blood_type, donors.rhesus").
		Order("total DESC, users.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PMI Center Repository

type pmiCenterRepository struct{}

func NewPmiCenterRepository() domainRepo.PmiCenterRepository {
	return &pmiCenterRepository{}
}

func (r *pmiCenterRepository) Create(ctx context.Context, db *gorm.DB, center *entity.PmiCenter) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(center).Error
}

func (r *pmiCenterRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.PmiCenter, error) {
	var center entity.PmiCenter
	err := db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&center).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &center, nil
}

func (r *pmiCenterRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PmiCenter, error) {
	var center entity.PmiCenter
	err := db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&center).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &center, nil
}

func (r *pmiCenterRepository) Update(ctx context.Context, db *gorm.DB, center *entity.PmiCenter) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(center).Error
}
