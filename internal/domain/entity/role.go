package entity

// Role represents the kind of account a user holds
type Role string

const (
	RoleDonor Role = "donor"
	RolePmi   Role = "pmi"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleDonor || r == RolePmi
}
