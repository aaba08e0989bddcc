package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrValidation marks any user-correctable input error. Handlers re-prompt
// the current step without touching the store when they see it.
var ErrValidation = errors.New("validation")

// BillingCycle is the recurrence period of a subscription.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// ParseBillingCycle validates a raw cycle string.
func ParseBillingCycle(s string) (BillingCycle, error) {
	switch BillingCycle(s) {
	case CycleMonthly, CycleYearly:
		return BillingCycle(s), nil
	}
	return "", fmt.Errorf("%w: unknown billing cycle %q", ErrValidation, s)
}

// Currencies is the fixed set of supported currency codes, in keyboard order.
var Currencies = []string{
	"USD", "SAR", "EGP", "AED", "KWD", "QAR", "BHD", "OMR", "JOD", "EUR", "GBP",
}

// ValidCurrency reports whether code is one of the supported currencies.
func ValidCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}

const (
	maxServiceNameLen = 100
	maxCost           = 999999
)

// Subscription is one tracked recurring payment.
type Subscription struct {
	ID              int64
	UserID          int64
	ServiceName     string
	Cost            float64
	Currency        string
	BillingCycle    BillingCycle
	NextPaymentDate string // YYYY-MM-DD
	Active          bool
	CreatedAt       time.Time
}

// Draft accumulates the fields of a subscription being entered, either through
// the step-by-step add flow or the mini-app form. It carries no identity until
// the store commits it.
type Draft struct {
	ServiceName     string
	Cost            float64
	Currency        string
	BillingCycle    BillingCycle
	NextPaymentDate string
}

// Validate checks every field against the creation constraints. The webapp
// and the store both run it so a record can never be committed half-checked.
func (d Draft) Validate(now time.Time) error {
	if _, err := ValidateServiceName(d.ServiceName); err != nil {
		return err
	}
	if err := ValidateCost(d.Cost); err != nil {
		return err
	}
	if !ValidCurrency(d.Currency) {
		return fmt.Errorf("%w: unknown currency %q", ErrValidation, d.Currency)
	}
	if _, err := ParseBillingCycle(string(d.BillingCycle)); err != nil {
		return err
	}
	if _, err := ValidatePaymentDate(d.NextPaymentDate, now); err != nil {
		return err
	}
	return nil
}

// ValidateServiceName trims the name and checks the 1..100 length bound.
func ValidateServiceName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxServiceNameLen {
		return "", fmt.Errorf("%w: service name must be 1-%d characters", ErrValidation, maxServiceNameLen)
	}
	return s, nil
}

// ParseCost parses a user-typed amount. Comma and dot are both accepted as
// the fractional separator.
func ParseCost(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: not a number: %q", ErrValidation, s)
	}
	if err := ValidateCost(v); err != nil {
		return 0, err
	}
	return v, nil
}

// ValidateCost checks the positive-and-bounded constraint.
func ValidateCost(v float64) error {
	if v <= 0 || v > maxCost {
		return fmt.Errorf("%w: cost must be positive and at most %d", ErrValidation, maxCost)
	}
	return nil
}
