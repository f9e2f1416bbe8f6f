package usecase

import (
	"context"
	"time"

	"blood-donation-backend/internal/domain/entity"
	"blood-donation-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Eligibility is everything needed to decide whether a donor may give blood
// on a candidate date.
type Eligibility struct {
	Donor                 *entity.Donor
	CandidateDate         time.Time
	HasPending            bool
	HasPendingForSchedule bool
}

// Check returns nil when the donor is eligible, otherwise the most specific
// reason, which unwraps to ErrIneligibleDonor.
func (e Eligibility) Check() error {
	if e.HasPendingForSchedule {
		return ErrAlreadyRegistered
	}
	if e.HasPending {
		return ErrPendingDonationExists
	}
	if !e.Donor.CooldownElapsed(e.CandidateDate) {
		return ErrCooldownNotElapsed
	}
	return nil
}

// loadEligibility reads the pending-donation state of a donor. scheduleID may
// be nil when no schedule is involved.
func loadEligibility(ctx context.Context, db *gorm.DB, donationRepo repository.DonationRepository, donor *entity.Donor, scheduleID *uuid.UUID, on time.Time) (Eligibility, error) {
	eligibility := Eligibility{Donor: donor, CandidateDate: on}

	hasPending, err := donationRepo.ExistsPending(ctx, db, donor.ID)
	if err != nil {
		return eligibility, err
	}
	eligibility.HasPending = hasPending

	if scheduleID != nil {
		forSchedule, err := donationRepo.ExistsPendingForSchedule(ctx, db, donor.ID, *scheduleID)
		if err != nil {
			return eligibility, err
		}
		eligibility.HasPendingForSchedule = forSchedule
	}

	return eligibility, nil
}

func ineligibleReason(err error) string {
	switch err {
	case ErrCooldownNotElapsed:
		return "cooldown"
	case ErrPendingDonationExists:
		return "pending_donation"
	case ErrAlreadyRegistered:
		return "already_registered"
	}
	return "other"
}
