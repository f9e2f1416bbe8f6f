package entity

import (
	"fmt"
	"regexp"
	"strings"
)

// BloodType is the ABO group of a donor.
type BloodType string

const (
	BloodTypeA  BloodType = "a"
	BloodTypeB  BloodType = "b"
	BloodTypeAB BloodType = "ab"
	BloodTypeO  BloodType = "o"
)

// BloodTypes lists every ABO group in reporting order.
var BloodTypes = []BloodType{BloodTypeA, BloodTypeB, BloodTypeAB, BloodTypeO}

func (b BloodType) IsValid() bool {
	switch b {
	case BloodTypeA, BloodTypeB, BloodTypeAB, BloodTypeO:
		return true
	}
	return false
}

// Rhesus is the Rh factor of a donor.
type Rhesus string

const (
	RhesusPositive Rhesus = "+"
	RhesusNegative Rhesus = "-"
)

func (r Rhesus) IsValid() bool {
	return r == RhesusPositive || r == RhesusNegative
}

// BloodGroup is a blood type together with its rhesus factor.
type BloodGroup struct {
	Type   BloodType
	Rhesus Rhesus
}

func (g BloodGroup) String() string {
	return strings.ToUpper(string(g.Type)) + string(g.Rhesus)
}

var bloodGroupPattern = regexp.MustCompile(`^(a|b|ab|o)([+-])$`)

// ParseBloodGroup parses values such as "AB+" or "o-".
func ParseBloodGroup(value string) (BloodGroup, error) {
	m := bloodGroupPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(value)))
	if m == nil {
		return BloodGroup{}, fmt.Errorf("invalid blood group %q", value)
	}
	return BloodGroup{Type: BloodType(m[1]), Rhesus: Rhesus(m[2])}, nil
}
