package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/akrram0/Subscription-managerr-bot/internal/domain"
	"github.com/akrram0/Subscription-managerr-bot/internal/i18n"
	"github.com/akrram0/Subscription-managerr-bot/internal/store"
)

// Sender is a minimal interface the scheduler needs to send a text message.
// telegram.Router implements this (method: SendMessage).
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Scheduler runs the two periodic jobs: payment reminders ahead of due dates
// and auto-advance of overdue due dates. Both read wall-clock time through
// the injected now func so tests can pin the day.
type Scheduler struct {
	repo   store.Repo
	log    *zap.Logger
	sender Sender
	leads  []int // reminder lead times in days, e.g. 7, 3, 1
	now    func() time.Time
}

// New creates a Scheduler with the configured reminder lead days.
func New(repo store.Repo, log *zap.Logger, sender Sender, leads []int) *Scheduler {
	return &Scheduler{
		repo:   repo,
		log:    log,
		sender: sender,
		leads:  leads,
		now:    time.Now,
	}
}

// Register adds both jobs to the cron runner under the given spec. They run
// back to back within a tick but touch disjoint date ranges (today+lead vs.
// strictly before today), so their relative order does not matter.
func (s *Scheduler) Register(c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.RunReminders(ctx)
		s.RunAutoAdvance(ctx)
	})
	return err
}

// RunReminders sends one localized notification per subscription due in
// exactly lead days, for each configured lead. A failed send (user blocked
// the bot, network hiccup) is logged and does not abort the batch.
func (s *Scheduler) RunReminders(ctx context.Context) {
	now := s.now()
	s.log.Info("reminder job started", zap.Ints("leads", s.leads))

	for _, lead := range s.leads {
		subs, err := s.repo.ListDueIn(ctx, now, lead)
		if err != nil {
			s.log.Error("due query failed", zap.Int("lead", lead), zap.Error(err))
			continue
		}
		for _, sub := range subs {
			lang, err := s.repo.GetLanguage(ctx, sub.UserID)
			if err != nil {
				s.log.Error("language lookup failed", zap.Int64("userID", sub.UserID), zap.Error(err))
				lang = ""
			}
			if lang == "" {
				lang = i18n.DefaultLang
			}

			if err := s.sender.SendMessage(sub.UserID, reminderText(lang, lead, sub)); err != nil {
				s.log.Error("reminder send failed",
					zap.Int64("userID", sub.UserID),
					zap.Int64("subID", sub.ID),
					zap.Error(err))
				continue
			}
			s.log.Info("reminder sent",
				zap.Int64("userID", sub.UserID),
				zap.String("service", sub.ServiceName),
				zap.Int("lead", lead))
		}
	}
}

// RunAutoAdvance rolls every past-due subscription forward by one billing
// cycle, counted from the old due date. A record overdue by several cycles
// is advanced by one cycle per run and picked up again next time.
func (s *Scheduler) RunAutoAdvance(ctx context.Context) {
	now := s.now()

	subs, err := s.repo.ListPastDue(ctx, now)
	if err != nil {
		s.log.Error("past-due query failed", zap.Error(err))
		return
	}
	for _, sub := range subs {
		newDate, err := domain.NextCycleDate(sub.NextPaymentDate, sub.BillingCycle)
		if err != nil {
			s.log.Error("next cycle date failed", zap.Int64("subID", sub.ID), zap.Error(err))
			continue
		}
		if err := s.repo.AdvanceNextPayment(ctx, sub.ID, newDate); err != nil {
			s.log.Error("advance failed", zap.Int64("subID", sub.ID), zap.Error(err))
			continue
		}
		s.log.Info("auto-advanced subscription",
			zap.Int64("subID", sub.ID),
			zap.String("from", sub.NextPaymentDate),
			zap.String("to", newDate))
	}
}

// reminderText builds the localized reminder with an urgency tier matching
// the lead time.
func reminderText(lang string, lead int, sub domain.Subscription) string {
	var timeKey, urgencyKey string
	switch lead {
	case 1:
		timeKey, urgencyKey = "reminder_1day", "urgency_1"
	case 3:
		timeKey, urgencyKey = "reminder_3days", "urgency_3"
	case 7:
		timeKey, urgencyKey = "reminder_7days", "urgency_7"
	}

	var timeText string
	if timeKey != "" {
		timeText = i18n.T(lang, timeKey)
	} else {
		// Non-standard lead from config: fall back to a plain day count.
		timeText = fmt.Sprintf(i18n.T(lang, "days_later"), lead)
		urgencyKey = "urgency_7"
	}

	title := fmt.Sprintf(i18n.T(lang, "reminder_title"), i18n.T(lang, urgencyKey))
	body := fmt.Sprintf(i18n.T(lang, "reminder_body"),
		sub.ServiceName,
		i18n.FormatAmount(sub.Cost),
		sub.Currency,
		sub.NextPaymentDate,
		timeText,
	)
	return title + "\n\n" + body
}
