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

type ProfileUsecase interface {
	GetDonorProfile(ctx context.Context, userID uuid.UUID) (*dto.DonorProfileResponse, error)
	UpdateDonorProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateDonorProfileRequest) (*dto.DonorProfileResponse, error)
	GetPmiProfile(ctx context.Context, userID uuid.UUID) (*dto.PmiProfileResponse, error)
	UpdatePmiProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePmiProfileRequest) (*dto.PmiProfileResponse, error)
}

type profileUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	donorRepo     repository.DonorRepository
	pmiCenterRepo repository.PmiCenterRepository
	auditService  service.AuditService
	avatarURL     converter.URLResolver
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	donorRepo repository.DonorRepository,
	pmiCenterRepo repository.PmiCenterRepository,
	auditService service.AuditService,
	avatarURL converter.URLResolver,
) ProfileUsecase {
	return &profileUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		donorRepo:     donorRepo,
		pmiCenterRepo: pmiCenterRepo,
		auditService:  auditService,
		avatarURL:     avatarURL,
	}
}

func (u *profileUsecase) GetDonorProfile(ctx context.Context, userID uuid.UUID) (*dto.DonorProfileResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if _, err := requireDonor(user); err != nil {
		return nil, err
	}
	return converter.DonorProfileToResponse(user, u.avatarURL), nil
}

// applyUserFields copies the shared contact fields of a partial update.
func applyUserFields(user *entity.User, name, phone, city, address *string) {
	if name != nil {
		user.Name = *name
	}
	if phone != nil {
		user.Phone = optional(*phone)
	}
	if city != nil {
		user.City = optional(*city)
	}
	if address != nil {
		user.Address = optional(*address)
	}
}

func (u *profileUsecase) UpdateDonorProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateDonorProfileRequest) (*dto.DonorProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := loadCaller(ctx, tx, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	donor, err := requireDonor(user)
	if err != nil {
		return nil, err
	}

	oldValue := converter.DonorProfileToResponse(user, u.avatarURL)

	// Blood type and rhesus are stored as a pair; a half update keeps the
	// other half from the current profile.
	if req.BloodType != nil || req.Rhesus != nil {
		bloodType, rhesus := "", ""
		if donor.BloodType != nil {
			bloodType = string(*donor.BloodType)
		}
		if donor.Rhesus != nil {
			rhesus = string(*donor.Rhesus)
		}
		if req.BloodType != nil {
			bloodType = *req.BloodType
		}
		if req.Rhesus != nil {
			rhesus = *req.Rhesus
		}

		group, err := parseBloodGroup(bloodType, rhesus)
		if err != nil {
			return nil, err
		}
		if err := u.donorRepo.UpdateBloodGroup(ctx, tx, donor.ID, group); err != nil {
			u.log.Warnf("Failed to update donor blood group: %+v", err)
			return nil, err
		}
		donor.SetBloodGroup(group)
	}

	applyUserFields(user, req.Name, req.Phone, req.City, req.Address)
	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	newValue := converter.DonorProfileToResponse(user, u.avatarURL)
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "donor", donor.ID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *profileUsecase) GetPmiProfile(ctx context.Context, userID uuid.UUID) (*dto.PmiProfileResponse, error) {
	user, err := loadCaller(ctx, u.db, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if _, err := requirePmiCenter(user); err != nil {
		return nil, err
	}
	return converter.PmiProfileToResponse(user, u.avatarURL), nil
}

func (u *profileUsecase) UpdatePmiProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePmiProfileRequest) (*dto.PmiProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := loadCaller(ctx, tx, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	center, err := requirePmiCenter(user)
	if err != nil {
		return nil, err
	}

	oldValue := converter.PmiProfileToResponse(user, u.avatarURL)

	if req.Location != nil {
		center.Location = *req.Location
		if err := u.pmiCenterRepo.Update(ctx, tx, center); err != nil {
			u.log.Warnf("Failed to update pmi center: %+v", err)
			return nil, err
		}
	}

	applyUserFields(user, req.Name, req.Phone, req.City, req.Address)
	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	newValue := converter.PmiProfileToResponse(user, u.avatarURL)
	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "pmi_center", center.ID.String(), oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}
