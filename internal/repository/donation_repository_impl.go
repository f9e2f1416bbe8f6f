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

const historyOrder = "CASE donations.status WHEN 'pending' THEN 0 WHEN 'success' THEN 1 ELSE 2 END, donations.updated_at DESC"

type donationRepository struct{}

func NewDonationRepository() domainRepo.DonationRepository {
	return &donationRepository{}
}

func (r *donationRepository) Create(ctx context.Context, db *gorm.DB, donation *entity.Donation) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(donation).Error
}

func (r *donationRepository) ExistsPending(ctx context.Context, db *gorm.DB, donorID uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Donation{}).
		Where("donor_id = ? AND status = ?", donorID, entity.DonationStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *donationRepository) ExistsPendingForSchedule(ctx context.Context, db *gorm.DB, donorID, scheduleID uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Donation{}).
		Where("donor_id = ? AND donor_schedule_id = ? AND status = ?", donorID, scheduleID, entity.DonationStatusPending).
		Count(&count).Error
	return count > 0, err
}

// FindForFinalize prefers the pending row when the donor has older terminal
// donations on the same schedule.
func (r *donationRepository) FindForFinalize(ctx context.Context, db *gorm.DB, pmiCenterID, scheduleID, donorID uuid.UUID) (*entity.Donation, error) {
	var donation entity.Donation
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pmi_center_id = ? AND donor_schedule_id = ? AND donor_id = ?", pmiCenterID, scheduleID, donorID).
		Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END, created_at DESC").
		Take(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

// FinalizeStatus atomically finalizes a donation ONLY if it is still pending.
// Returns affected rows: 1 = success, 0 = already finalized (prevents double-finalize race).
func (r *donationRepository) FinalizeStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status entity.DonationStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Donation{}).
		Where("id = ? AND status = ?", id, entity.DonationStatusPending).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *donationRepository) FindHistory(ctx context.Context, db *gorm.DB, filter entity.DonationFilter, page entity.Page) ([]entity.Donation, int64, error) {
	var total int64
	if err := filteredDonations(db.WithContext(ctx), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donations []entity.Donation
	err := withHistoryPreloads(filteredDonations(db.WithContext(ctx), filter)).
		Order(historyOrder).
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&donations).Error
	if err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

func (r *donationRepository) FindHistoryAll(ctx context.Context, db *gorm.DB, filter entity.DonationFilter, limit int) ([]entity.Donation, error) {
	var donations []entity.Donation
	err := withHistoryPreloads(filteredDonations(db.WithContext(ctx), filter)).
		Order(historyOrder).
		Limit(limit).
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) FindOne(ctx context.Context, db *gorm.DB, id uuid.UUID, filter entity.DonationFilter) (*entity.Donation, error) {
	var donation entity.Donation
	err := withHistoryPreloads(filteredDonations(db.WithContext(ctx), filter)).
		Preload("Physical").
		Where("donations.id = ?", id).
		Take(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) FindLatest(ctx context.Context, db *gorm.DB, filter entity.DonationFilter) (*entity.Donation, error) {
	var donation entity.Donation
	err := withHistoryPreloads(filteredDonations(db.WithContext(ctx), filter)).
		Preload("Physical").
		Order("donations.created_at DESC").
		Take(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) CountSuccessByMonth(ctx context.Context, db *gorm.DB, since time.Time, city string) ([]entity.MonthlyCount, error) {
	var rows []entity.MonthlyCount
	query := db.WithContext(ctx).Table("donations").
		Select("to_char(date_trunc('month', donations.updated_at), 'YYYY-MM') AS period, COUNT(donations.id) AS total").
		Where("donations.status = ? AND donations.updated_at >= ?", entity.DonationStatusSuccess, since)

	if city != "" {
		query = query.
			Joins("JOIN pmi_centers ON pmi_centers.id = donations.pmi_center_id").
			Joins("JOIN users ON users.id = pmi_centers.user_id").
			Where("users.city = ?", city)
	}

	err := query.Group("period").Order("period ASC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func filteredDonations(db *gorm.DB, filter entity.DonationFilter) *gorm.DB {
	query := db.Model(&entity.Donation{})
	if filter.DonorID != nil {
		query = query.Where("donations.donor_id = ?", *filter.DonorID)
	}
	if filter.PmiCenterID != nil {
		query = query.Where("donations.pmi_center_id = ?", *filter.PmiCenterID)
	}
	if filter.DonorScheduleID != nil {
		query = query.Where("donations.donor_schedule_id = ?", *filter.DonorScheduleID)
	}
	if filter.Status != nil {
		query = query.Where("donations.status = ?", *filter.Status)
	}
	return query
}

func withHistoryPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Donor.User").
		Preload("DonorSchedule").
		Preload("PmiCenter.User")
}
