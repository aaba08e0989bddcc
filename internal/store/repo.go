package store

import (
	"context"
	"time"

	"github.com/akrram0/Subscription-managerr-bot/internal/domain"
)

// Repo defines storage operations for users and subscriptions.
//
// Reads used for mutation are always scoped by (id, userID); a miss is a
// nil/false result, not an error. Operations return an error only on invalid
// input (wrapping domain.ErrValidation) or when the storage itself fails.
type Repo interface {
	// EnsureUser creates the user row with unset language if absent.
	EnsureUser(ctx context.Context, userID int64) error
	// GetLanguage returns the user's locale code, or "" when unset or unknown.
	GetLanguage(ctx context.Context, userID int64) (string, error)
	SetLanguage(ctx context.Context, userID int64, lang string) error

	// CreateSubscription validates the draft and inserts an active row,
	// returning the assigned id.
	CreateSubscription(ctx context.Context, userID int64, d domain.Draft) (int64, error)
	// ListActive returns the user's active subscriptions ordered by
	// next payment date ascending.
	ListActive(ctx context.Context, userID int64) ([]domain.Subscription, error)
	// GetByID returns the subscription only if it belongs to userID.
	GetByID(ctx context.Context, id, userID int64) (*domain.Subscription, error)
	// Deactivate soft-deletes and reports whether a matching active row existed.
	Deactivate(ctx context.Context, id, userID int64) (bool, error)

	// ListDueIn returns active subscriptions across all users whose payment
	// date is exactly now+days.
	ListDueIn(ctx context.Context, now time.Time, days int) ([]domain.Subscription, error)
	// ListPastDue returns active subscriptions dated strictly before today.
	ListPastDue(ctx context.Context, now time.Time) ([]domain.Subscription, error)
	// AdvanceNextPayment overwrites the payment date; the caller computes it.
	AdvanceNextPayment(ctx context.Context, id int64, newDate string) error

	Close() error
}
