package usecase

import (
	"context"

	"blood-donation-backend/internal/converter"
	"blood-donation-backend/internal/delivery/dto"
	"blood-donation-backend/internal/domain/entity"
	"blood-donation-backend/internal/domain/repository"
	"blood-donation-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BloodStockUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]dto.BloodStockResponse, error)
	Provision(ctx context.Context, userID uuid.UUID, req *dto.ProvisionBloodStockRequest) (*dto.BloodStockResponse, error)
}

type bloodStockUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	stockRepo    repository.BloodStockRepository
	auditService service.AuditService
}

func NewBloodStockUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	stockRepo repository.BloodStockRepository,
	auditService service.AuditService,
) BloodStockUsecase {
	return &bloodStockUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		stockRepo:    stockRepo,
		auditService: auditService,
	}
}

func (u *bloodStockUsecase) List(ctx context.Context, userID uuid.UUID) ([]dto.BloodStockResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	center, err := requirePmiCenter(user)
	if err != nil {
		return nil, err
	}

	stocks, err := u.stockRepo.FindByCenter(ctx, u.db, center.ID)
	if err != nil {
		u.log.Warnf("Failed to find blood stocks: %+v", err)
		return nil, err
	}

	return converter.BloodStocksToResponses(stocks), nil
}

// Provision opens an empty stock row for a blood group. Successful donations
// only ever increment existing rows.
func (u *bloodStockUsecase) Provision(ctx context.Context, userID uuid.UUID, req *dto.ProvisionBloodStockRequest) (*dto.BloodStockResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	center, err := requirePmiCenter(user)
	if err != nil {
		return nil, err
	}
	group, err := parseBloodGroup(req.BloodType, req.Rhesus)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	stock := &entity.BloodStock{
		PmiCenterID: center.ID,
		BloodType:   group.Type,
		Rhesus:      group.Rhesus,
		Quantity:    0,
	}
	if err := u.stockRepo.Create(ctx, tx, stock); err != nil {
		if isDuplicateKeyError(err, "blood_stocks_group") {
			return nil, ErrStockAlreadyExists
		}
		u.log.Warnf("Failed to create blood stock: %+v", err)
		return nil, err
	}

	response := converter.BloodStockToResponse(stock)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionBloodStockProvision, "blood_stock", stock.ID.String(), response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}
