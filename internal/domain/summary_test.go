package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Count)
	assert.Empty(t, s.Currencies)
	assert.Nil(t, s.Nearest)
}

func TestSummarizePerCurrency(t *testing.T) {
	subs := []Subscription{
		{ServiceName: "Netflix", Cost: 10, Currency: "USD", BillingCycle: CycleMonthly, NextPaymentDate: "2026-03-13"},
		{ServiceName: "Domain", Cost: 120, Currency: "USD", BillingCycle: CycleYearly, NextPaymentDate: "2026-03-13"},
		{ServiceName: "Anghami", Cost: 20, Currency: "SAR", BillingCycle: CycleMonthly, NextPaymentDate: "2026-05-01"},
	}
	s := Summarize(subs)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, []string{"USD", "SAR"}, s.Currencies)

	usd := s.Totals["USD"]
	assert.InDelta(t, 20, usd.Monthly, 1e-9)
	assert.InDelta(t, 240, usd.Yearly, 1e-9)

	sar := s.Totals["SAR"]
	assert.InDelta(t, 20, sar.Monthly, 1e-9)
	assert.InDelta(t, 240, sar.Yearly, 1e-9)

	// Tie on 2026-03-13: the first in input order wins.
	require.NotNil(t, s.Nearest)
	assert.Equal(t, "Netflix", s.Nearest.ServiceName)
}

func TestSummarizeMonthlyYearlyRelation(t *testing.T) {
	onlyMonthly := []Subscription{
		{Cost: 9.99, Currency: "EUR", BillingCycle: CycleMonthly, NextPaymentDate: "2026-04-01"},
		{Cost: 4.5, Currency: "EUR", BillingCycle: CycleMonthly, NextPaymentDate: "2026-04-02"},
	}
	s := Summarize(onlyMonthly)
	eur := s.Totals["EUR"]
	assert.InDelta(t, eur.Monthly*12, eur.Yearly, 1e-6)

	onlyYearly := []Subscription{
		{Cost: 99, Currency: "GBP", BillingCycle: CycleYearly, NextPaymentDate: "2026-04-01"},
	}
	s = Summarize(onlyYearly)
	gbp := s.Totals["GBP"]
	assert.InDelta(t, gbp.Yearly/12, gbp.Monthly, 1e-6)
}

func TestMonthlyEquivalent(t *testing.T) {
	assert.InDelta(t, 10, MonthlyEquivalent(Subscription{Cost: 10, BillingCycle: CycleMonthly}), 1e-9)
	assert.InDelta(t, 10, MonthlyEquivalent(Subscription{Cost: 120, BillingCycle: CycleYearly}), 1e-9)
}
