package domain

// CurrencyTotal accumulates monthly- and yearly-equivalent spend for one
// currency. A monthly subscription contributes cost and cost*12, a yearly
// one cost/12 and cost. Currencies are never combined or converted.
type CurrencyTotal struct {
	Monthly float64
	Yearly  float64
}

// Summary is the result of totalling one user's active subscriptions.
type Summary struct {
	Count      int
	Totals     map[string]CurrencyTotal
	Currencies []string // first-seen order, for stable rendering
	Nearest    *Subscription
}

// Summarize totals the given subscriptions per currency and locates the one
// with the earliest next payment date. Ties keep the first in input order,
// so a list sorted by due date yields a deterministic pick. An empty input
// returns an empty summary, not an error.
func Summarize(subs []Subscription) Summary {
	s := Summary{
		Count:  len(subs),
		Totals: make(map[string]CurrencyTotal, 4),
	}
	for i := range subs {
		sub := &subs[i]
		tot, seen := s.Totals[sub.Currency]
		if !seen {
			s.Currencies = append(s.Currencies, sub.Currency)
		}
		switch sub.BillingCycle {
		case CycleYearly:
			tot.Monthly += sub.Cost / 12
			tot.Yearly += sub.Cost
		default:
			tot.Monthly += sub.Cost
			tot.Yearly += sub.Cost * 12
		}
		s.Totals[sub.Currency] = tot

		if s.Nearest == nil || sub.NextPaymentDate < s.Nearest.NextPaymentDate {
			s.Nearest = sub
		}
	}
	return s
}

// MonthlyEquivalent is the per-month cost of one subscription, used for
// chart slice sizing as well as totals.
func MonthlyEquivalent(sub Subscription) float64 {
	if sub.BillingCycle == CycleYearly {
		return sub.Cost / 12
	}
	return sub.Cost
}
