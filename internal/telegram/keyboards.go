package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akrram0/Subscription-managerr-bot/internal/domain"
	"github.com/akrram0/Subscription-managerr-bot/internal/i18n"
)

// mainMenuKeyboard is the persistent reply keyboard shown under the input box.
func mainMenuKeyboard(lang string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_add")),
			tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_list")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_total")),
			tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_settings")),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// languageKeyboard is shown to first-time users before anything localized.
func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", "set_lang_en"),
			tgbotapi.NewInlineKeyboardButtonData("🇸🇦 العربية", "set_lang_ar"),
		),
	)
}

func mainInlineKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_add_inline"), "action_add"),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_list_inline"), "action_list"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_total_inline"), "action_total"),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_delete_inline"), "action_delete"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_chart_inline"), "action_chart"),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_help_inline"), "action_help"),
		),
	)
}

// currencyKeyboard lays the fixed currency set out three per row.
func currencyKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, code := range domain.Currencies {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(code, "currency_"+code))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func cycleKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "cycle_monthly"), "cycle_monthly"),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "cycle_yearly"), "cycle_yearly"),
		),
	)
}

func cancelKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_cancel"), "action_cancel"),
		),
	)
}

func deleteKeyboard(subs []domain.Subscription, lang string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, sub := range subs {
		label := fmt.Sprintf("🗑 %s — %s %s", sub.ServiceName, i18n.FormatAmount(sub.Cost), sub.Currency)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("del_%d", sub.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_back"), "action_back"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmDeleteKeyboard(subID int64, lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "delete_yes"), fmt.Sprintf("confirm_del_%d", subID)),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "delete_no"), "action_delete"),
		),
	)
}

// settingsKeyboard marks the active language with a check.
func settingsKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	en, ar := "🇬🇧 English", "🇸🇦 العربية"
	if lang == "ar" {
		ar += " ✓"
	} else {
		en += " ✓"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(en, "set_lang_en"),
			tgbotapi.NewInlineKeyboardButtonData(ar, "set_lang_ar"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_back"), "action_back"),
		),
	)
}
