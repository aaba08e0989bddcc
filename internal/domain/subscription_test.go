package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateServiceName(t *testing.T) {
	got, err := ValidateServiceName("  Netflix  ")
	require.NoError(t, err)
	assert.Equal(t, "Netflix", got)

	_, err = ValidateServiceName("   ")
	assert.ErrorIs(t, err, ErrValidation)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err = ValidateServiceName(string(long))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseCost(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"15.99", 15.99, true},
		{"15,99", 15.99, true},
		{" 10 ", 10, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"1000000", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseCost(c.in)
		if !c.ok {
			assert.ErrorIs(t, err, ErrValidation, "input %q", c.in)
			continue
		}
		require.NoError(t, err, "input %q", c.in)
		assert.InDelta(t, c.want, got, 1e-9)
	}
}

func TestParseBillingCycle(t *testing.T) {
	for _, s := range []string{"monthly", "yearly"} {
		got, err := ParseBillingCycle(s)
		require.NoError(t, err)
		assert.Equal(t, BillingCycle(s), got)
	}
	_, err := ParseBillingCycle("weekly")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidatePaymentDate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

	got, err := ValidatePaymentDate("2026-03-10", now)
	require.NoError(t, err, "today is not in the past")
	assert.Equal(t, "2026-03-10", got)

	_, err = ValidatePaymentDate("2026-03-09", now)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ValidatePaymentDate("15-03-2026", now)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDraftValidate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	d := Draft{
		ServiceName:     "Netflix",
		Cost:            15.99,
		Currency:        "USD",
		BillingCycle:    CycleMonthly,
		NextPaymentDate: "2026-04-01",
	}
	require.NoError(t, d.Validate(now))

	bad := d
	bad.Currency = "XXX"
	assert.ErrorIs(t, bad.Validate(now), ErrValidation)

	bad = d
	bad.Cost = -1
	assert.ErrorIs(t, bad.Validate(now), ErrValidation)

	bad = d
	bad.NextPaymentDate = "2020-01-01"
	assert.ErrorIs(t, bad.Validate(now), ErrValidation)
}

func TestNextCycleDate(t *testing.T) {
	got, err := NextCycleDate("2026-03-05", CycleMonthly)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-04", got)

	got, err = NextCycleDate("2026-03-05", CycleYearly)
	require.NoError(t, err)
	assert.Equal(t, "2027-03-05", got)
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)

	d, err := DaysUntil(now, "2026-03-13")
	require.NoError(t, err)
	assert.Equal(t, 3, d)

	d, err = DaysUntil(now, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	d, err = DaysUntil(now, "2026-03-08")
	require.NoError(t, err)
	assert.Equal(t, -2, d)
}
