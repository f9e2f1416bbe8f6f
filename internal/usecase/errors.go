package usecase

import (
	"errors"
	"strings"

	"blood-donation-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound         = apperror.NotFound("user not found")
	ErrDonorNotFound        = apperror.NotFound("donor not found")
	ErrScheduleNotFound     = apperror.NotFound("donor schedule not found")
	ErrDonationNotFound     = apperror.NotFound("donation not found")
	ErrAccountNotRegistered = apperror.NotFound("no account is registered with this email")

	ErrEmailAlreadyExists = apperror.Duplicate("email already exists")
	ErrStockAlreadyExists = apperror.Duplicate("blood stock for this blood group already exists")

	ErrInvalidCredentials = apperror.Unauthorized("invalid email or password")
	ErrInvalidToken       = apperror.Unauthorized("invalid or expired token")
	ErrTokenRevoked       = apperror.Unauthorized("token has been revoked")
	ErrIdentityRejected   = apperror.Unauthorized("identity token could not be verified")

	ErrDonorRoleRequired = apperror.Forbidden("only donors can perform this action")
	ErrPmiRoleRequired   = apperror.Forbidden("only pmi centers can perform this action")
	ErrNotScheduleOwner  = apperror.Forbidden("schedule belongs to another pmi center")

	ErrInvalidBloodGroup   = apperror.Validation("invalid blood group")
	ErrInvalidDateFormat   = apperror.Validation("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat   = apperror.Validation("invalid time format, use HH:MM")
	ErrInvalidStatusFilter = apperror.Validation("status must be one of: semua, pending, success, failed")
	ErrInvalidScheduleID   = apperror.Validation("invalid donor schedule id")

	// ErrIneligibleDonor is the family of eligibility failures. The reason
	// errors below unwrap to it.
	ErrIneligibleDonor       = apperror.Conflict("donor is not eligible to donate")
	ErrCooldownNotElapsed    = apperror.Because(ErrIneligibleDonor, "last donation was less than 4 months ago")
	ErrPendingDonationExists = apperror.Because(ErrIneligibleDonor, "donor already has a pending donation")
	ErrAlreadyRegistered     = apperror.Because(ErrIneligibleDonor, "donor is already registered for this schedule")

	ErrAlreadyFinalized  = apperror.Conflict("donation has already been finalized")
	ErrStockRowMissing   = apperror.Conflict("blood stock for this blood group is not provisioned at this pmi center")
	ErrPmiAccountAsDonor = apperror.Conflict("email belongs to a pmi center account")
	ErrScheduleClosed    = apperror.Conflict("donor schedule has already passed")
	ErrScheduleInPast    = apperror.Validation("schedule date must not be in the past")
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
