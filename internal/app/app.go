package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/akrram0/Subscription-managerr-bot/internal/config"
	"github.com/akrram0/Subscription-managerr-bot/internal/form"
	"github.com/akrram0/Subscription-managerr-bot/internal/scheduler"
	"github.com/akrram0/Subscription-managerr-bot/internal/store"
	"github.com/akrram0/Subscription-managerr-bot/internal/telegram"
	"github.com/akrram0/Subscription-managerr-bot/internal/webapp"
)

type App struct {
	cfg config.Config
	log *zap.Logger
	bot *tgbotapi.BotAPI

	repo   store.Repo
	router *telegram.Router
	web    *webapp.Server
	cron   *cron.Cron
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	return &App{cfg: cfg, log: log, bot: bot}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting subscription-manager-bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("reminderCron", a.cfg.ReminderCron),
		zap.Ints("reminderLeads", a.cfg.ReminderLeadDays),
	)

	// Open SQLite and run migrations.
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready", zap.String("path", a.cfg.DBPath))

	forms := form.NewStore(a.cfg.FormTTL)
	a.router = telegram.NewRouter(a.bot, a.log, a.repo, forms)

	if err := telegram.SetCommands(a.bot); err != nil {
		a.log.Warn("set bot commands failed", zap.Error(err))
	}

	a.web = webapp.New(a.cfg.HTTPAddr, a.repo, a.log)
	go func() {
		if err := a.web.Start(); err != nil {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	sched := scheduler.New(a.repo, a.log, a.router, a.cfg.ReminderLeadDays)
	a.cron = cron.New()
	if err := sched.Register(a.cron, a.cfg.ReminderCron); err != nil {
		a.log.Error("invalid reminder cron spec", zap.Error(err))
		return err
	}
	a.cron.Start()

	// Catch up immediately on start so a restart around the scheduled hour
	// does not skip a day.
	go func() {
		runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()
		sched.RunReminders(runCtx)
		sched.RunAutoAdvance(runCtx)
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.shutdown()
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}

func (a *App) shutdown() {
	cronCtx := a.cron.Stop()
	select {
	case <-cronCtx.Done():
	case <-time.After(10 * time.Second):
		a.log.Warn("cron jobs did not finish before shutdown deadline")
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.web.Shutdown(shCtx); err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}

	if a.repo != nil {
		_ = a.repo.Close()
	}
}
