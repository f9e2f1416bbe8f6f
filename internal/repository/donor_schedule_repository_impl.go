package repository

import (
	"context"
	"errors"

	"blood-donation-backend/internal/domain/entity"
	domainRepo "blood-donation-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type donorScheduleRepository struct{}

func NewDonorScheduleRepository() domainRepo.DonorScheduleRepository {
	return &donorScheduleRepository{}
}

func (r *donorScheduleRepository) Create(ctx context.Context, db *gorm.DB, schedule *entity.DonorSchedule) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(schedule).Error
}

func (r *donorScheduleRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.DonorSchedule, error) {
	var schedule entity.DonorSchedule
	err := db.WithContext(ctx).Preload("PmiCenter.User").Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// FindUpcoming returns schedules later than filter.Now ordered by date and time.
func (r *donorScheduleRepository) FindUpcoming(ctx context.Context, db *gorm.DB, filter entity.ScheduleFilter, page entity.Page) ([]entity.DonorSchedule, int64, error) {
	var total int64
	if err := upcomingSchedules(db.WithContext(ctx), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var schedules []entity.DonorSchedule
	err := upcomingSchedules(db.WithContext(ctx), filter).
		Preload("PmiCenter.User").
		Order("donor_schedules.date ASC, donor_schedules.time ASC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&schedules).Error
	if err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

func upcomingSchedules(db *gorm.DB, filter entity.ScheduleFilter) *gorm.DB {
	today := filter.Now.Format("2006-01-02")
	clock := filter.Now.Format("15:04:05")

	query := db.Model(&entity.DonorSchedule{}).
		Where("donor_schedules.date > ? OR (donor_schedules.date = ? AND donor_schedules.time > ?)", today, today, clock)

	if filter.PmiCenterID != nil {
		query = query.Where("donor_schedules.pmi_center_id = ?", *filter.PmiCenterID)
	}
	if filter.City != "" {
		query = query.
			Joins("JOIN pmi_centers ON pmi_centers.id = donor_schedules.pmi_center_id").
			Joins("JOIN users ON users.id = pmi_centers.user_id").
			Where("users.city ILIKE ?", "%"+filter.City+"%")
	}
	return query
}

func (r *donorScheduleRepository) Update(ctx context.Context, db *gorm.DB, schedule *entity.DonorSchedule) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(schedule).Error
}
