package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/akrram0/Subscription-managerr-bot/internal/chart"
	"github.com/akrram0/Subscription-managerr-bot/internal/domain"
	"github.com/akrram0/Subscription-managerr-bot/internal/form"
	"github.com/akrram0/Subscription-managerr-bot/internal/i18n"
)

// --- Generic helpers ---

func (r *Router) send(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (r *Router) edit(chatID int64, msgID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = markup
	if _, err := r.bot.Send(edit); err != nil {
		r.log.Error("edit failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (r *Router) answer(cbID string) {
	if _, err := r.bot.Request(tgbotapi.NewCallback(cbID, "")); err != nil {
		r.log.Debug("callback answer failed", zap.Error(err))
	}
}

func (r *Router) answerAlert(cbID, text string) {
	if _, err := r.bot.Request(tgbotapi.NewCallbackWithAlert(cbID, text)); err != nil {
		r.log.Debug("callback alert failed", zap.Error(err))
	}
}

// ensureLang makes sure the user row exists and returns their language.
// For first-time users it sends the language picker and reports not-ready;
// nothing localized may be shown before a language is chosen.
func (r *Router) ensureLang(ctx context.Context, chatID int64) (string, bool) {
	if err := r.repo.EnsureUser(ctx, chatID); err != nil {
		r.log.Error("ensure user failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.send(chatID, i18n.T(i18n.DefaultLang, "error_generic"), nil)
		return "", false
	}
	lang, err := r.repo.GetLanguage(ctx, chatID)
	if err != nil {
		r.log.Error("get language failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.send(chatID, i18n.T(i18n.DefaultLang, "error_generic"), nil)
		return "", false
	}
	if lang == "" {
		r.send(chatID, i18n.T(i18n.DefaultLang, "choose_language"), languageKeyboard())
		return "", false
	}
	return lang, true
}

// langOr is the callback-path variant: buttons only exist on messages the
// bot already localized, so fall back to the default instead of prompting.
func (r *Router) langOr(ctx context.Context, chatID int64) string {
	lang, err := r.repo.GetLanguage(ctx, chatID)
	if err != nil || lang == "" {
		return i18n.DefaultLang
	}
	return lang
}

// --- Core commands ---

func (r *Router) handleStart(ctx context.Context, chatID int64) {
	r.forms.Cancel(chatID)
	lang, ok := r.ensureLang(ctx, chatID)
	if !ok {
		return
	}
	r.send(chatID, i18n.T(lang, "welcome"), mainMenuKeyboard(lang))
	r.send(chatID, "👇", mainInlineKeyboard(lang))
}

func (r *Router) cbSetLanguage(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery, lang string) {
	if !i18n.Known(lang) {
		r.answer(cb.ID)
		return
	}
	if err := r.repo.SetLanguage(ctx, chatID, lang); err != nil {
		r.log.Error("set language failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.answerAlert(cb.ID, i18n.T(i18n.DefaultLang, "error_generic"))
		return
	}
	r.forms.Cancel(chatID)
	r.edit(chatID, cb.Message.MessageID, i18n.T(lang, "language_set"), nil)
	r.send(chatID, i18n.T(lang, "welcome"), mainMenuKeyboard(lang))
	r.send(chatID, "👇", mainInlineKeyboard(lang))
	r.answer(cb.ID)
}

func (r *Router) handleHelp(ctx context.Context, chatID int64) {
	lang, ok := r.ensureLang(ctx, chatID)
	if !ok {
		return
	}
	r.send(chatID, i18n.T(lang, "help"), mainInlineKeyboard(lang))
}

func (r *Router) handleCancel(ctx context.Context, chatID int64) {
	lang, ok := r.ensureLang(ctx, chatID)
	if !ok {
		return
	}
	if !r.forms.Cancel(chatID) {
		r.send(chatID, i18n.T(lang, "cancel_none"), mainMenuKeyboard(lang))
		return
	}
	r.send(chatID, i18n.T(lang, "cancel_ok"), mainMenuKeyboard(lang))
}

func (r *Router) handleLanguage(ctx context.Context, chatID int64) {
	lang, ok := r.ensureLang(ctx, chatID)
	if !ok {
		return
	}
	r.send(chatID, i18n.T(lang, "settings_title"), settingsKeyboard(lang))
}

// --- Add flow ---

func (r *Router) handleAdd(ctx context.Context, chatID int64) {
	lang, ok := r.ensureLang(ctx, chatID)
	if !ok {
		return
	}
	r.forms.Begin(chatID)
	r.send(chatID, i18n.T(lang, "add_title")+"\n\n"+i18n.T(lang, "add_step1"), cancelKeyboard(lang))
}

func (r *Router) cbAdd(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery) {
	lang := r.langOr(ctx, chatID)
	r.forms.Begin(chatID)
	kb := cancelKeyboard(lang)
	r.edit(chatID, cb.Message.MessageID, i18n.T(lang, "add_title")+"\n\n"+i18n.T(lang, "add_step1"), &kb)
	r.answer(cb.ID)
}

// handleFormText feeds free text into whichever step is awaiting it.
// Invalid input re-prompts the same step; text outside a conversation is
// ignored so stray messages stay silent, as the source bot behaves.
func (r *Router) handleFormText(ctx context.Context, chatID int64, text string) {
	state := r.forms.State(chatID)
	if state == form.StateIdle {
		return
	}
	lang := r.langOr(ctx, chatID)

	switch state {
	case form.StateServiceName:
		if err := r.forms.SetServiceName(chatID, text); err != nil {
			r.send(chatID, i18n.T(lang, "add_error_name"), cancelKeyboard(lang))
			return
		}
		d, _ := r.forms.Draft(chatID)
		r.send(chatID, fmt.Sprintf(i18n.T(lang, "add_step2_ok"), d.ServiceName), cancelKeyboard(lang))

	case form.StateCost:
		if err := r.forms.SetCost(chatID, text); err != nil {
			r.send(chatID, i18n.T(lang, "add_error_cost"), cancelKeyboard(lang))
			return
		}
		d, _ := r.forms.Draft(chatID)
		r.send(chatID, fmt.Sprintf(i18n.T(lang, "add_step3_ok"), i18n.FormatAmount(d.Cost)), currencyKeyboard())

	case form.StatePaymentDate:
		r.commitForm(ctx, chatID, lang, text)

	default:
		// Currency and cycle steps take button presses, not text.
	}
}

// commitForm runs the final step: validate the date, then perform the single
// store write of the whole flow.
func (r *Router) commitForm(ctx context.Context, chatID int64, lang, text string) {
	draft, err := r.forms.SetPaymentDate(chatID, text)
	if errors.Is(err, form.ErrNoConversation) {
		return
	}
	if err != nil {
		// Distinguish unparseable from past-dated for the right hint.
		if _, perr := domain.ParseDate(strings.TrimSpace(text)); perr != nil {
			r.send(chatID, i18n.T(lang, "add_error_date_format"), cancelKeyboard(lang))
		} else {
			r.send(chatID, i18n.T(lang, "add_error_date_past"), cancelKeyboard(lang))
		}
		return
	}

	id, err := r.repo.CreateSubscription(ctx, chatID, draft)
	if err != nil {
		// The conversation is already cleared: no partial commit survives,
		// the user re-enters from the top.
		r.log.Error("create subscription failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.send(chatID, i18n.T(lang, "add_error_save"), mainMenuKeyboard(lang))
		return
	}

	r.send(chatID, fmt.Sprintf(i18n.T(lang, "add_success"),
		draft.ServiceName,
		i18n.FormatAmount(draft.Cost),
		draft.Currency,
		i18n.T(lang, string(draft.BillingCycle)),
		draft.NextPaymentDate,
		id,
	), mainMenuKeyboard(lang))
}

func (r *Router) cbCurrency(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery, code string) {
	lang := r.langOr(ctx, chatID)
	if err := r.forms.SetCurrency(chatID, code); err != nil {
		// Stale button or out-of-order press; nothing to re-prompt.
		r.answer(cb.ID)
		return
	}
	kb := cycleKeyboard(lang)
	r.edit(chatID, cb.Message.MessageID, fmt.Sprintf(i18n.T(lang, "add_step4_ok"), code), &kb)
	r.answer(cb.ID)
}

func (r *Router) cbCycle(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery, raw string) {
	lang := r.langOr(ctx, chatID)
	if err := r.forms.SetBillingCycle(chatID, raw); err != nil {
		r.answer(cb.ID)
		return
	}
	suggested := domain.FormatDate(time.Now().AddDate(0, 0, 30))
	r.edit(chatID, cb.Message.MessageID,
		fmt.Sprintf(i18n.T(lang, "add_step5_ok"), i18n.T(lang, raw), suggested), nil)
	r.answer(cb.ID)
}

// --- List ---

func (r *Router) handleList(ctx context.Context, chatID int64) {
	lang, ok := r.ensureLang(ctx, chatID)
	if !ok {
		return
	}
	subs, err := r.repo.ListActive(ctx, chatID)
	if err != nil {
		r.log.Error("list failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.send(chatID, i18n.T(lang, "error_generic"), nil)
		return
	}
	if len(subs) == 0 {
		r.send(chatID, i18n.T(lang, "list_empty"), mainInlineKeyboard(lang))
		return
	}

	now := time.Now()
	var b strings.Builder
	b.WriteString(fmt.Sprintf(i18n.T(lang, "list_title"), len(subs)))
	for i, sub := range subs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(formatCard(sub, i+1, lang, now))
	}
	r.send(chatID, b.String(), mainInlineKeyboard(lang))
}

// formatCard renders one subscription as a card with a days-remaining badge.
func formatCard(sub domain.Subscription, index int, lang string, now time.Time) string {
	daysText := "—"
	if days, err := domain.DaysUntil(now, sub.NextPaymentDate); err == nil {
		daysText = daysBadge(lang, days)
	}
	return fmt.Sprintf(
		"┌─────────────────────\n"+
			"│ <b>%d. %s</b>\n"+
			"│ %s: <b>%s %s</b>\n"+
			"│ %s: %s\n"+
			"│ %s: <code>%s</code>\n"+
			"│ %s: %s\n"+
			"└─────────────────────",
		index, sub.ServiceName,
		i18n.T(lang, "card_cost"), i18n.FormatAmount(sub.Cost), sub.Currency,
		i18n.T(lang, "card_cycle"), i18n.T(lang, string(sub.BillingCycle)),
		i18n.T(lang, "card_date"), sub.NextPaymentDate,
		i18n.T(lang, "card_remaining"), daysText,
	)
}

func daysBadge(lang string, days int) string {
	switch {
	case days < 0:
		return i18n.T(lang, "days_overdue")
	case days == 0:
		return i18n.T(lang, "days_today")
	case days == 1:
		return i18n.T(lang, "days_tomorrow")
	case days <= 3:
		return fmt.Sprintf(i18n.T(lang, "days_soon"), days)
	case days <= 7:
		return fmt.Sprintf(i18n.T(lang, "days_week"), days)
	default:
		return fmt.Sprintf(i18n.T(lang, "days_later"), days)
	}
}

// --- Totals ---

func (r *Router) handleTotal(ctx context.Context, chatID int64) {
	lang, ok := r.ensureLang(ctx, chatID)
	if !ok {
		return
	}
	subs, err := r.repo.ListActive(ctx, chatID)
	if err != nil {
		r.log.Error("total failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.send(chatID, i18n.T(lang, "error_generic"), nil)
		return
	}
	if len(subs) == 0 {
		r.send(chatID, i18n.T(lang, "total_empty"), mainInlineKeyboard(lang))
		return
	}

	sum := domain.Summarize(subs)

	var b strings.Builder
	b.WriteString(i18n.T(lang, "total_title") + "\n")
	b.WriteString(fmt.Sprintf(i18n.T(lang, "total_count"), sum.Count) + "\n")
	for _, code := range sum.Currencies {
		tot := sum.Totals[code]
		b.WriteString(fmt.Sprintf(
			"┌─── <b>%s</b> ───\n"+
				"│ %s: <b>%.2f %s</b>\n"+
				"│ %s: <b>%.2f %s</b>\n"+
				"└─────────────────\n\n",
			code,
			i18n.T(lang, "total_monthly"), tot.Monthly, code,
			i18n.T(lang, "total_yearly"), tot.Yearly, code,
		))
	}
	if sum.Nearest != nil {
		if days, err := domain.DaysUntil(time.Now(), sum.Nearest.NextPaymentDate); err == nil {
			if days < 0 {
				days = 0
			}
			b.WriteString(fmt.Sprintf(i18n.T(lang, "total_nearest"),
				sum.Nearest.ServiceName, sum.Nearest.NextPaymentDate, days))
		}
	}
	r.send(chatID, b.String(), mainInlineKeyboard(lang))
}

// --- Chart ---

func (r *Router) handleChart(ctx context.Context, chatID int64) {
	lang, ok := r.ensureLang(ctx, chatID)
	if !ok {
		return
	}
	subs, err := r.repo.ListActive(ctx, chatID)
	if err != nil {
		r.log.Error("chart list failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.send(chatID, i18n.T(lang, "error_generic"), nil)
		return
	}
	png, err := chart.Pie(subs)
	if errors.Is(err, chart.ErrNoData) {
		r.send(chatID, i18n.T(lang, "chart_empty"), mainInlineKeyboard(lang))
		return
	}
	if err != nil {
		r.log.Error("chart render failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.send(chatID, i18n.T(lang, "error_generic"), nil)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "spending.png", Bytes: png})
	photo.Caption = i18n.T(lang, "chart_caption")
	if _, err := r.bot.Send(photo); err != nil {
		r.log.Error("chart send failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.send(chatID, i18n.T(lang, "error_generic"), nil)
	}
}

// --- Delete flow ---

func (r *Router) handleDeleteMenu(ctx context.Context, chatID int64) {
	lang, ok := r.ensureLang(ctx, chatID)
	if !ok {
		return
	}
	subs, err := r.repo.ListActive(ctx, chatID)
	if err != nil {
		r.log.Error("delete menu failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.send(chatID, i18n.T(lang, "error_generic"), nil)
		return
	}
	if len(subs) == 0 {
		r.send(chatID, i18n.T(lang, "delete_empty"), mainInlineKeyboard(lang))
		return
	}
	r.send(chatID, i18n.T(lang, "delete_title"), deleteKeyboard(subs, lang))
}

func (r *Router) cbDeleteMenu(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery) {
	lang := r.langOr(ctx, chatID)
	subs, err := r.repo.ListActive(ctx, chatID)
	if err != nil {
		r.log.Error("delete menu failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.send(chatID, i18n.T(lang, "error_generic"), nil)
		return
	}
	if len(subs) == 0 {
		kb := mainInlineKeyboard(lang)
		r.edit(chatID, cb.Message.MessageID, i18n.T(lang, "delete_empty"), &kb)
		return
	}
	kb := deleteKeyboard(subs, lang)
	r.edit(chatID, cb.Message.MessageID, i18n.T(lang, "delete_title"), &kb)
}

func (r *Router) cbDeleteConfirm(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery, rawID string) {
	lang := r.langOr(ctx, chatID)
	subID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		r.answer(cb.ID)
		return
	}

	sub, err := r.repo.GetByID(ctx, subID, chatID)
	if err != nil {
		r.log.Error("get subscription failed", zap.Int64("subID", subID), zap.Error(err))
		r.answerAlert(cb.ID, i18n.T(lang, "error_generic"))
		return
	}
	if sub == nil || !sub.Active {
		r.answerAlert(cb.ID, i18n.T(lang, "delete_not_found"))
		return
	}

	kb := confirmDeleteKeyboard(subID, lang)
	r.edit(chatID, cb.Message.MessageID,
		fmt.Sprintf(i18n.T(lang, "delete_confirm"),
			sub.ServiceName, i18n.FormatAmount(sub.Cost), sub.Currency),
		&kb)
	r.answer(cb.ID)
}

func (r *Router) cbDeleteExecute(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery, rawID string) {
	lang := r.langOr(ctx, chatID)
	subID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		r.answer(cb.ID)
		return
	}

	ok, err := r.repo.Deactivate(ctx, subID, chatID)
	if err != nil {
		r.log.Error("deactivate failed", zap.Int64("subID", subID), zap.Error(err))
		r.answerAlert(cb.ID, i18n.T(lang, "error_generic"))
		return
	}
	kb := mainInlineKeyboard(lang)
	if ok {
		r.edit(chatID, cb.Message.MessageID, i18n.T(lang, "delete_success"), &kb)
	} else {
		r.edit(chatID, cb.Message.MessageID, i18n.T(lang, "delete_error"), &kb)
	}
	r.answer(cb.ID)
}

// --- Misc callbacks ---

func (r *Router) cbHelp(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery) {
	lang := r.langOr(ctx, chatID)
	kb := mainInlineKeyboard(lang)
	r.edit(chatID, cb.Message.MessageID, i18n.T(lang, "help"), &kb)
	r.answer(cb.ID)
}

func (r *Router) cbBack(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery) {
	lang := r.langOr(ctx, chatID)
	r.forms.Cancel(chatID)
	kb := mainInlineKeyboard(lang)
	r.edit(chatID, cb.Message.MessageID, i18n.T(lang, "welcome"), &kb)
	r.answer(cb.ID)
}

func (r *Router) cbCancel(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery) {
	lang := r.langOr(ctx, chatID)
	r.forms.Cancel(chatID)
	kb := mainInlineKeyboard(lang)
	r.edit(chatID, cb.Message.MessageID, i18n.T(lang, "cancel_ok"), &kb)
	r.answer(cb.ID)
}
