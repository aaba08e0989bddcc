package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akrram0/Subscription-managerr-bot/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func draft(date string) domain.Draft {
	return domain.Draft{
		ServiceName:     "Netflix",
		Cost:            15.99,
		Currency:        "USD",
		BillingCycle:    domain.CycleMonthly,
		NextPaymentDate: date,
	}
}

func tomorrow() string {
	return domain.FormatDate(time.Now().AddDate(0, 0, 1))
}

func TestUserLanguage(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	lang, err := repo.GetLanguage(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, lang, "unknown user has no language")

	require.NoError(t, repo.EnsureUser(ctx, 42))
	lang, err = repo.GetLanguage(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, lang, "fresh user has no language until chosen")

	require.NoError(t, repo.SetLanguage(ctx, 42, "ar"))
	lang, err = repo.GetLanguage(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "ar", lang)

	// EnsureUser must not clobber an existing choice.
	require.NoError(t, repo.EnsureUser(ctx, 42))
	lang, err = repo.GetLanguage(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "ar", lang)
}

func TestCreateAndGetSubscription(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	require.NoError(t, repo.EnsureUser(ctx, 1))

	d := draft(tomorrow())
	id, err := repo.CreateSubscription(ctx, 1, d)
	require.NoError(t, err)
	require.Positive(t, id)

	sub, err := repo.GetByID(ctx, id, 1)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, d.ServiceName, sub.ServiceName)
	assert.InDelta(t, d.Cost, sub.Cost, 1e-9)
	assert.Equal(t, d.Currency, sub.Currency)
	assert.Equal(t, d.BillingCycle, sub.BillingCycle)
	assert.Equal(t, d.NextPaymentDate, sub.NextPaymentDate)
	assert.True(t, sub.Active)

	// Ownership check: another user sees nothing, and that is not an error.
	other, err := repo.GetByID(ctx, id, 2)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestCreateSubscriptionValidation(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	require.NoError(t, repo.EnsureUser(ctx, 1))

	bad := draft(tomorrow())
	bad.Cost = 0
	_, err := repo.CreateSubscription(ctx, 1, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad = draft("2020-01-01")
	_, err = repo.CreateSubscription(ctx, 1, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	subs, err := repo.ListActive(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, subs, "rejected drafts must not be committed")
}

func TestListActiveOrdering(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	require.NoError(t, repo.EnsureUser(ctx, 1))

	later := draft(domain.FormatDate(time.Now().AddDate(0, 0, 20)))
	later.ServiceName = "Later"
	sooner := draft(domain.FormatDate(time.Now().AddDate(0, 0, 5)))
	sooner.ServiceName = "Sooner"

	_, err := repo.CreateSubscription(ctx, 1, later)
	require.NoError(t, err)
	_, err = repo.CreateSubscription(ctx, 1, sooner)
	require.NoError(t, err)

	subs, err := repo.ListActive(ctx, 1)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Sooner", subs[0].ServiceName)
	assert.Equal(t, "Later", subs[1].ServiceName)
}

func TestDeactivate(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	require.NoError(t, repo.EnsureUser(ctx, 1))

	id, err := repo.CreateSubscription(ctx, 1, draft(tomorrow()))
	require.NoError(t, err)

	// Wrong owner: no-op, false.
	ok, err := repo.Deactivate(ctx, id, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Deactivate(ctx, id, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	subs, err := repo.ListActive(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, subs, "soft-deleted rows never reappear in listings")

	// Second delete reports nothing to do.
	ok, err = repo.Deactivate(ctx, id, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDueQueries(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	require.NoError(t, repo.EnsureUser(ctx, 1))
	require.NoError(t, repo.EnsureUser(ctx, 2))

	now := time.Now()
	in3 := draft(domain.FormatDate(now.AddDate(0, 0, 3)))
	in3.ServiceName = "DueIn3"
	in7 := draft(domain.FormatDate(now.AddDate(0, 0, 7)))
	in7.ServiceName = "DueIn7"

	id3, err := repo.CreateSubscription(ctx, 1, in3)
	require.NoError(t, err)
	_, err = repo.CreateSubscription(ctx, 2, in7)
	require.NoError(t, err)

	due, err := repo.ListDueIn(ctx, now, 3)
	require.NoError(t, err)
	require.Len(t, due, 1, "exact-day match, not a range")
	assert.Equal(t, "DueIn3", due[0].ServiceName)

	due, err = repo.ListDueIn(ctx, now, 5)
	require.NoError(t, err)
	assert.Empty(t, due)

	past, err := repo.ListPastDue(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, past)

	// Roll one record behind today and it becomes past due; deactivated
	// records stay invisible to the scheduler queries.
	yesterday := domain.FormatDate(now.AddDate(0, 0, -1))
	require.NoError(t, repo.AdvanceNextPayment(ctx, id3, yesterday))

	past, err = repo.ListPastDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, past, 1)
	assert.Equal(t, yesterday, past[0].NextPaymentDate)

	ok, err := repo.Deactivate(ctx, id3, 1)
	require.NoError(t, err)
	require.True(t, ok)

	past, err = repo.ListPastDue(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestAdvanceNextPayment(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	require.NoError(t, repo.EnsureUser(ctx, 1))

	id, err := repo.CreateSubscription(ctx, 1, draft(tomorrow()))
	require.NoError(t, err)

	require.ErrorIs(t, repo.AdvanceNextPayment(ctx, id, "31-12-2026"), domain.ErrValidation)

	require.NoError(t, repo.AdvanceNextPayment(ctx, id, "2030-01-15"))
	sub, err := repo.GetByID(ctx, id, 1)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "2030-01-15", sub.NextPaymentDate)
}
