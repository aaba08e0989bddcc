package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	DBPath   string `envconfig:"DB_PATH" default:"./data/subscriptions.db"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"` // healthz + mini-app form endpoint
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error

	// ReminderCron is the wall-clock schedule for the reminder and
	// auto-advance jobs. The exact hour is a deployment choice; the jobs
	// assume they run about once a day.
	ReminderCron     string        `envconfig:"REMINDER_CRON" default:"0 9 * * *"`
	ReminderLeadDays []int         `envconfig:"REMINDER_LEAD_DAYS" default:"7,3,1"`
	FormTTL          time.Duration `envconfig:"FORM_TTL" default:"30m"` // idle timeout for the add flow
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
