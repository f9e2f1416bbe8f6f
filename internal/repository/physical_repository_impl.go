package repository

import (
	"context"

	"blood-donation-backend/internal/domain/entity"
	domainRepo "blood-donation-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type physicalRepository struct{}

func NewPhysicalRepository() domainRepo.PhysicalRepository {
	return &physicalRepository{}
}

func (r *physicalRepository) Create(ctx context.Context, db *gorm.DB, physical *entity.Physical) error {
	return db.WithContext(ctx).Create(physical).Error
}

func (r *physicalRepository) UpdateExam(ctx context.Context, db *gorm.DB, id uuid.UUID, exam entity.Exam) error {
	return db.WithContext(ctx).Model(&entity.Physical{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"systolic":    exam.Systolic,
			"diastolic":   exam.Diastolic,
			"pulse":       exam.Pulse,
			"weight":      exam.Weight,
			"temperature": exam.Temperature,
			"hemoglobin":  exam.Hemoglobin,
		}).Error
}
