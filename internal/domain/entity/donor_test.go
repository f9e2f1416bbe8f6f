package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"same day", date(2024, 1, 10), date(2024, 1, 10), 0},
		{"exact four months", date(2024, 1, 10), date(2024, 5, 10), 4},
		{"one day short", date(2024, 1, 10), date(2024, 5, 9), 3},
		{"across a year", date(2023, 11, 30), date(2024, 3, 30), 4},
		{"end of month", date(2024, 1, 31), date(2024, 2, 29), 0},
		{"reversed", date(2024, 5, 10), date(2024, 1, 10), -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBetween(tt.from, tt.to))
		})
	}
}

func TestMonthsBetween_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)
	to := time.Date(2024, 5, 10, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 4, MonthsBetween(from, to))
}

func TestDonor_CooldownElapsed(t *testing.T) {
	t.Run("never donated", func(t *testing.T) {
		donor := &Donor{}
		assert.True(t, donor.CooldownElapsed(date(2024, 1, 1)))
	})

	t.Run("four months after the last donation", func(t *testing.T) {
		last := date(2024, 1, 10)
		donor := &Donor{LastDonation: &last}
		assert.True(t, donor.CooldownElapsed(date(2024, 5, 10)))
		assert.False(t, donor.CooldownElapsed(date(2024, 5, 9)))
	})
}

func TestDonor_CooldownElapsed_LocalClockAgainstStoredDate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	last := date(2024, 1, 10)
	donor := &Donor{LastDonation: &last}

	// 05:00 local is still the previous day in UTC.
	assert.True(t, donor.CooldownElapsed(time.Date(2024, 5, 10, 5, 0, 0, 0, jakarta)))
	assert.False(t, donor.CooldownElapsed(time.Date(2024, 5, 9, 23, 30, 0, 0, jakarta)))
	assert.Equal(t, 4, MonthsBetween(last, time.Date(2024, 5, 10, 0, 30, 0, 0, jakarta)))
}

func TestDonor_BloodGroup(t *testing.T) {
	donor := &Donor{}
	_, ok := donor.BloodGroup()
	assert.False(t, ok)

	donor.SetBloodGroup(BloodGroup{Type: BloodTypeAB, Rhesus: RhesusNegative})
	group, ok := donor.BloodGroup()
	require.True(t, ok)
	assert.Equal(t, "AB-", group.String())
}

func TestParseBloodGroup(t *testing.T) {
	group, err := ParseBloodGroup(" AB+ ")
	require.NoError(t, err)
	assert.Equal(t, BloodGroup{Type: BloodTypeAB, Rhesus: RhesusPositive}, group)

	group, err = ParseBloodGroup("o-")
	require.NoError(t, err)
	assert.Equal(t, BloodGroup{Type: BloodTypeO, Rhesus: RhesusNegative}, group)

	for _, value := range []string{"", "c+", "a", "ab", "a+-", "+"} {
		_, err := ParseBloodGroup(value)
		assert.Error(t, err, value)
	}
}

func TestDonationStatus(t *testing.T) {
	assert.True(t, DonationStatusPending.IsValid())
	assert.False(t, DonationStatus("semua").IsValid())

	assert.False(t, DonationStatusPending.IsTerminal())
	assert.True(t, DonationStatusSuccess.IsTerminal())
	assert.True(t, DonationStatusFailed.IsTerminal())

	assert.Equal(t, DonationStatusSuccess, OutcomeStatus(true))
	assert.Equal(t, DonationStatusFailed, OutcomeStatus(false))
}

func TestPage_Normalize(t *testing.T) {
	assert.Equal(t, Page{Page: 1, PerPage: DefaultPerPage}, Page{}.Normalize())
	assert.Equal(t, Page{Page: 3, PerPage: 100}, Page{Page: 3, PerPage: 500}.Normalize())
	assert.Equal(t, 10, Page{Page: 3, PerPage: 5}.Offset())
}

func TestScopeFor(t *testing.T) {
	city := "Bandung"
	user := &User{Role: RolePmi, City: &city, PmiCenter: &PmiCenter{}}
	scope := ScopeFor(user)

	assert.True(t, scope.IsPmi())
	assert.Equal(t, "Bandung", scope.City)
	assert.NotNil(t, scope.PmiCenterID)
	assert.Nil(t, scope.DonorID)
}
