// Package matching — keyboards.go: инлайн-клавиатуры ленты и матчей.
package matching

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func browseKeyboard(candidateID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❤️ Подобається", fmt.Sprintf("browse:like:%d", candidateID)),
			tgbotapi.NewInlineKeyboardButtonData("💤 Пропустити", fmt.Sprintf("browse:skip:%d", candidateID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚠️ Поскаржитись", fmt.Sprintf("complaint:start:%d", candidateID)),
		),
	)
}

// LikeNotificationKeyboard — кнопки под уведомлением «вас лайкнули».
func LikeNotificationKeyboard(fromID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❤️ Лайкнути у відповідь", fmt.Sprintf("inlike:like:%d", fromID)),
			tgbotapi.NewInlineKeyboardButtonData("🙈 Не цікаво", fmt.Sprintf("inlike:skip:%d", fromID)),
		),
	)
}

// MatchContactKeyboard — кнопка «написать» под карточкой матча.
func MatchContactKeyboard(url string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("✉️ Написати", url)),
	)
}

// matchesPagerKeyboard — карточка из списка матчей с навигацией.
func matchesPagerKeyboard(url string, page, total int) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonURL("✉️ Написати", url)},
	}

	if total > 1 {
		var nav []tgbotapi.InlineKeyboardButton
		if page > 1 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("matches:page:%d", page-1)))
		}
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", page, total), "noop:page"))
		if page < total {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("matches:page:%d", page+1)))
		}
		rows = append(rows, nav)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
