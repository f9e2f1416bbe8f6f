package usecase

import (
	"context"
	"time"

	"blood-donation-backend/internal/domain/entity"
	"blood-donation-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// loadCaller loads the authenticated user with its donor and center records.
func loadCaller(ctx context.Context, db *gorm.DB, userRepo repository.UserRepository, userID uuid.UUID) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func requireDonor(user *entity.User) (*entity.Donor, error) {
	if user.Role != entity.RoleDonor || user.Donor == nil {
		return nil, ErrDonorRoleRequired
	}
	return user.Donor, nil
}

func requirePmiCenter(user *entity.User) (*entity.PmiCenter, error) {
	if user.Role != entity.RolePmi || user.PmiCenter == nil {
		return nil, ErrPmiRoleRequired
	}
	return user.PmiCenter, nil
}

func parseBloodGroup(bloodType, rhesus string) (entity.BloodGroup, error) {
	group := entity.BloodGroup{Type: entity.BloodType(bloodType), Rhesus: entity.Rhesus(rhesus)}
	if !group.Type.IsValid() || !group.Rhesus.IsValid() {
		return entity.BloodGroup{}, ErrInvalidBloodGroup
	}
	return group, nil
}

// startOfDay truncates t to midnight in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
