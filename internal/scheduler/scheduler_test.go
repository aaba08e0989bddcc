package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akrram0/Subscription-managerr-bot/internal/domain"
	"github.com/akrram0/Subscription-managerr-bot/internal/store"
)

type fakeSender struct {
	sent    map[int64][]string
	failFor map[int64]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(map[int64][]string), failFor: make(map[int64]bool)}
}

func (f *fakeSender) SendMessage(chatID int64, text string) error {
	if f.failFor[chatID] {
		return errors.New("blocked by user")
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}

func openRepo(t *testing.T) *store.SQLiteRepo {
	t.Helper()
	repo, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "sched.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func seed(t *testing.T, repo *store.SQLiteRepo, userID int64, name, date string, cycle domain.BillingCycle, cost float64) int64 {
	t.Helper()
	require.NoError(t, repo.EnsureUser(context.Background(), userID))
	id, err := repo.CreateSubscription(context.Background(), userID, domain.Draft{
		ServiceName:     name,
		Cost:            cost,
		Currency:        "USD",
		BillingCycle:    cycle,
		NextPaymentDate: date,
	})
	require.NoError(t, err)
	return id
}

func fixedScheduler(repo *store.SQLiteRepo, sender Sender, now time.Time) *Scheduler {
	s := New(repo, zap.NewNop(), sender, []int{7, 3, 1})
	s.now = func() time.Time { return now }
	return s
}

func TestRemindersExactLeadMatch(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	sender := newFakeSender()

	now := time.Now()
	in3 := domain.FormatDate(now.AddDate(0, 0, 3))
	in5 := domain.FormatDate(now.AddDate(0, 0, 5))

	seed(t, repo, 10, "Netflix", in3, domain.CycleMonthly, 10)
	seed(t, repo, 10, "Domain", in3, domain.CycleYearly, 120)
	seed(t, repo, 11, "Spotify", in5, domain.CycleMonthly, 5)

	fixedScheduler(repo, sender, now).RunReminders(ctx)

	require.Len(t, sender.sent[10], 2, "both 3-day subscriptions notified")
	assert.Empty(t, sender.sent[11], "a 5-day due date matches no lead tier")
	assert.Contains(t, sender.sent[10][0], "Netflix")
	assert.Contains(t, sender.sent[10][0], in3)
	assert.Contains(t, sender.sent[10][1], "Domain")
}

func TestReminderIsLocalized(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	sender := newFakeSender()

	now := time.Now()
	due := domain.FormatDate(now.AddDate(0, 0, 1))
	seed(t, repo, 20, "Shahid", due, domain.CycleMonthly, 35)
	require.NoError(t, repo.SetLanguage(ctx, 20, "ar"))

	fixedScheduler(repo, sender, now).RunReminders(ctx)

	require.Len(t, sender.sent[20], 1)
	assert.True(t, strings.Contains(sender.sent[20][0], "تذكير"), "arabic reminder body")
}

func TestReminderFailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	sender := newFakeSender()
	sender.failFor[30] = true

	now := time.Now()
	due := domain.FormatDate(now.AddDate(0, 0, 7))
	seed(t, repo, 30, "Blocked", due, domain.CycleMonthly, 9)
	seed(t, repo, 31, "Reachable", due, domain.CycleMonthly, 9)

	fixedScheduler(repo, sender, now).RunReminders(ctx)

	assert.Empty(t, sender.sent[30])
	require.Len(t, sender.sent[31], 1, "one failed recipient must not abort the batch")
}

func TestAutoAdvanceFromOldDate(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	sender := newFakeSender()

	now := time.Now()
	// Create in the future, then roll behind today the way the store allows.
	monthlyID := seed(t, repo, 40, "Netflix", domain.FormatDate(now.AddDate(0, 0, 1)), domain.CycleMonthly, 10)
	yearlyID := seed(t, repo, 40, "Domain", domain.FormatDate(now.AddDate(0, 0, 1)), domain.CycleYearly, 120)

	overdueMonthly := domain.FormatDate(now.AddDate(0, 0, -5))
	overdueYearly := domain.FormatDate(now.AddDate(0, 0, -40))
	require.NoError(t, repo.AdvanceNextPayment(ctx, monthlyID, overdueMonthly))
	require.NoError(t, repo.AdvanceNextPayment(ctx, yearlyID, overdueYearly))

	fixedScheduler(repo, sender, now).RunAutoAdvance(ctx)

	sub, err := repo.GetByID(ctx, monthlyID, 40)
	require.NoError(t, err)
	wantMonthly, _ := domain.NextCycleDate(overdueMonthly, domain.CycleMonthly)
	assert.Equal(t, wantMonthly, sub.NextPaymentDate, "+30 days from the old date, not from today")

	sub, err = repo.GetByID(ctx, yearlyID, 40)
	require.NoError(t, err)
	wantYearly, _ := domain.NextCycleDate(overdueYearly, domain.CycleYearly)
	assert.Equal(t, wantYearly, sub.NextPaymentDate, "+365 days from the old date")
}

func TestAutoAdvanceSingleCyclePerRun(t *testing.T) {
	ctx := context.Background()
	repo := openRepo(t)
	sender := newFakeSender()

	now := time.Now()
	id := seed(t, repo, 50, "LongOverdue", domain.FormatDate(now.AddDate(0, 0, 1)), domain.CycleMonthly, 5)
	start := domain.FormatDate(now.AddDate(0, 0, -90))
	require.NoError(t, repo.AdvanceNextPayment(ctx, id, start))

	sched := fixedScheduler(repo, sender, now)
	sched.RunAutoAdvance(ctx)

	sub, err := repo.GetByID(ctx, id, 50)
	require.NoError(t, err)
	after1, _ := domain.NextCycleDate(start, domain.CycleMonthly)
	assert.Equal(t, after1, sub.NextPaymentDate, "only one cycle per run, even 90 days overdue")

	// Still past due, so the next run advances again.
	sched.RunAutoAdvance(ctx)
	sub, err = repo.GetByID(ctx, id, 50)
	require.NoError(t, err)
	after2, _ := domain.NextCycleDate(after1, domain.CycleMonthly)
	assert.Equal(t, after2, sub.NextPaymentDate)
}

func TestJobsOrderIndependent(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	due := domain.FormatDate(now.AddDate(0, 0, 3))

	run := func(reminderFirst bool) (reminders int, advancedTo string) {
		repo := openRepo(t)
		sender := newFakeSender()

		seed(t, repo, 60, "DueSoon", due, domain.CycleMonthly, 12)
		overdueID := seed(t, repo, 60, "Overdue", domain.FormatDate(now.AddDate(0, 0, 1)), domain.CycleMonthly, 7)
		overdue := domain.FormatDate(now.AddDate(0, 0, -2))
		require.NoError(t, repo.AdvanceNextPayment(ctx, overdueID, overdue))

		sched := fixedScheduler(repo, sender, now)
		if reminderFirst {
			sched.RunReminders(ctx)
			sched.RunAutoAdvance(ctx)
		} else {
			sched.RunAutoAdvance(ctx)
			sched.RunReminders(ctx)
		}
		sub, err := repo.GetByID(ctx, overdueID, 60)
		require.NoError(t, err)
		return len(sender.sent[60]), sub.NextPaymentDate
	}

	n1, d1 := run(true)
	n2, d2 := run(false)
	assert.Equal(t, n1, n2, "reminder count does not depend on job order")
	assert.Equal(t, d1, d2, "advanced date does not depend on job order")
}
