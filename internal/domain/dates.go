package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage form for payment dates. Dates are kept
// as ISO text so string comparison in SQL is equivalent to date comparison.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrValidation, s)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidatePaymentDate parses s and rejects dates strictly before today.
// It returns the canonical YYYY-MM-DD form.
func ValidatePaymentDate(s string, now time.Time) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	if FormatDate(t) < FormatDate(now) {
		return "", fmt.Errorf("%w: payment date %s is in the past", ErrValidation, s)
	}
	return FormatDate(t), nil
}

// DaysUntil returns the whole calendar days from now's date to the given
// payment date. Negative means overdue.
func DaysUntil(now time.Time, date string) (int, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	today, _ := ParseDate(FormatDate(now))
	return int(t.Sub(today).Hours() / 24), nil
}

// NextCycleDate rolls a due date forward by exactly one billing cycle,
// counted from the old date, not from today. Monthly adds 30 days and yearly
// adds 365; a record several cycles overdue catches up over several job runs.
func NextCycleDate(old string, cycle BillingCycle) (string, error) {
	t, err := ParseDate(old)
	if err != nil {
		return "", err
	}
	switch cycle {
	case CycleYearly:
		t = t.AddDate(0, 0, 365)
	default:
		t = t.AddDate(0, 0, 30)
	}
	return FormatDate(t), nil
}
