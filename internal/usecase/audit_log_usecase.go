package usecase

import (
	"context"

	"blood-donation-backend/internal/converter"
	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"
	"blood-donation-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditLogUsecase interface {
	GetMyAuditLogs(ctx context.Context, userID uuid.UUID, page entity.Page) ([]dto.AuditLogResponse, int64, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetMyAuditLogs(ctx context.Context, userID uuid.UUID, page entity.Page) ([]dto.AuditLogResponse, int64, error) {
	logs, total, err := u.auditLogRepo.FindByUserID(ctx, u.db, userID, page.Normalize())
	if err != nil {
		u.log.Warnf("Failed to get audit logs: %+v", err)
		return nil, 0, err
	}

	return converter.AuditLogsToResponses(logs), total, nil
}
