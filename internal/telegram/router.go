package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/akrram0/Subscription-managerr-bot/internal/form"
	"github.com/akrram0/Subscription-managerr-bot/internal/i18n"
	"github.com/akrram0/Subscription-managerr-bot/internal/store"
)

// Router wires Telegram updates to handlers. Conversation state for the add
// flow lives in the injected form store, keyed per chat.
type Router struct {
	bot   *tgbotapi.BotAPI
	log   *zap.Logger
	repo  store.Repo
	forms *form.Store
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo, forms *form.Store) *Router {
	return &Router{bot: bot, log: log, repo: repo, forms: forms}
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		r.handleMessage(ctx, upd.Message)
		return
	}
	if upd.CallbackQuery != nil {
		r.handleCallback(ctx, upd.CallbackQuery)
		return
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		r.handleStart(ctx, chatID)
	case strings.HasPrefix(text, "/help"):
		r.handleHelp(ctx, chatID)
	case strings.HasPrefix(text, "/cancel"):
		r.handleCancel(ctx, chatID)
	case strings.HasPrefix(text, "/language"):
		r.handleLanguage(ctx, chatID)
	case strings.HasPrefix(text, "/add"):
		r.handleAdd(ctx, chatID)
	case strings.HasPrefix(text, "/list"):
		r.handleList(ctx, chatID)
	case strings.HasPrefix(text, "/total"):
		r.handleTotal(ctx, chatID)
	case strings.HasPrefix(text, "/chart"):
		r.handleChart(ctx, chatID)
	case strings.HasPrefix(text, "/delete"):
		r.handleDeleteMenu(ctx, chatID)
	case isButton(text, "btn_add"):
		r.handleAdd(ctx, chatID)
	case isButton(text, "btn_list"):
		r.handleList(ctx, chatID)
	case isButton(text, "btn_total"):
		r.handleTotal(ctx, chatID)
	case isButton(text, "btn_settings"):
		r.handleLanguage(ctx, chatID)
	default:
		// Free text only matters inside an in-flight add conversation.
		r.handleFormText(ctx, chatID, text)
	}
}

func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data

	switch {
	case strings.HasPrefix(data, "set_lang_"):
		r.cbSetLanguage(ctx, chatID, cb, strings.TrimPrefix(data, "set_lang_"))
	case data == "action_add":
		r.cbAdd(ctx, chatID, cb)
	case data == "action_list":
		r.answer(cb.ID)
		r.handleList(ctx, chatID)
	case data == "action_total":
		r.answer(cb.ID)
		r.handleTotal(ctx, chatID)
	case data == "action_chart":
		r.answer(cb.ID)
		r.handleChart(ctx, chatID)
	case data == "action_delete":
		r.answer(cb.ID)
		r.cbDeleteMenu(ctx, chatID, cb)
	case data == "action_help":
		r.cbHelp(ctx, chatID, cb)
	case data == "action_back":
		r.cbBack(ctx, chatID, cb)
	case data == "action_cancel":
		r.cbCancel(ctx, chatID, cb)
	case strings.HasPrefix(data, "currency_"):
		r.cbCurrency(ctx, chatID, cb, strings.TrimPrefix(data, "currency_"))
	case strings.HasPrefix(data, "cycle_"):
		r.cbCycle(ctx, chatID, cb, strings.TrimPrefix(data, "cycle_"))
	case strings.HasPrefix(data, "confirm_del_"):
		r.cbDeleteExecute(ctx, chatID, cb, strings.TrimPrefix(data, "confirm_del_"))
	case strings.HasPrefix(data, "del_"):
		r.cbDeleteConfirm(ctx, chatID, cb, strings.TrimPrefix(data, "del_"))
	default:
		// Unknown callback, just dismiss the spinner.
		r.answer(cb.ID)
	}
}

// isButton matches a reply-keyboard button label in any supported language;
// the persistent keyboard keeps its old labels after a language switch.
func isButton(text, key string) bool {
	for _, lang := range i18n.Languages {
		if text == i18n.T(lang, key) {
			return true
		}
	}
	return false
}

// SendMessage sends an HTML-formatted message to the given chat.
// This makes Router satisfy scheduler.Sender.
func (r *Router) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := r.bot.Send(msg)
	return err
}

// SetCommands registers the bot command menu shown when users type "/".
func SetCommands(bot *tgbotapi.BotAPI) error {
	lang := i18n.DefaultLang
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: i18n.T(lang, "cmd_start")},
		tgbotapi.BotCommand{Command: "add", Description: i18n.T(lang, "cmd_add")},
		tgbotapi.BotCommand{Command: "list", Description: i18n.T(lang, "cmd_list")},
		tgbotapi.BotCommand{Command: "total", Description: i18n.T(lang, "cmd_total")},
		tgbotapi.BotCommand{Command: "chart", Description: i18n.T(lang, "cmd_chart")},
		tgbotapi.BotCommand{Command: "delete", Description: i18n.T(lang, "cmd_delete")},
		tgbotapi.BotCommand{Command: "language", Description: i18n.T(lang, "cmd_language")},
		tgbotapi.BotCommand{Command: "help", Description: i18n.T(lang, "cmd_help")},
		tgbotapi.BotCommand{Command: "cancel", Description: i18n.T(lang, "cmd_cancel")},
	)
	_, err := bot.Request(cmds)
	return err
}
