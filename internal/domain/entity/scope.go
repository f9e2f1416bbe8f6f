package entity

import "github.com/google/uuid"

// Scope identifies who is asking so reporting queries can restrict their rows.
// Donors see their own data; PMI staff see their center, or their city for
// aggregate reports.
type Scope struct {
	UserID      uuid.UUID
	Role        Role
	City        string
	DonorID     *uuid.UUID
	PmiCenterID *uuid.UUID
}

func (s Scope) IsPmi() bool {
	return s.Role == RolePmi
}

func (s Scope) IsDonor() bool {
	return s.Role == RoleDonor
}

// ScopeFor builds the scope of a loaded user. Donor and PmiCenter must be preloaded.
func ScopeFor(user *User) Scope {
	scope := Scope{
		UserID: user.ID,
		Role:   user.Role,
		City:   user.CityName(),
	}
	if user.Donor != nil {
		id := user.Donor.ID
		scope.DonorID = &id
	}
	if user.PmiCenter != nil {
		id := user.PmiCenter.ID
		scope.PmiCenterID = &id
	}
	return scope
}
