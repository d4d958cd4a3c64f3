// Package middleware содержит промежуточные обработчики: логирование
// входящих апдейтов и восстановление после паники.
package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// LogMessage логирует входящее сообщение (текст обрезается до 50 символов).
func LogMessage(message *tgbotapi.Message) {
	if message == nil || message.From == nil {
		return
	}

	text := message.Text
	if runes := []rune(text); len(runes) > 50 {
		text = string(runes[:50]) + "..."
	}

	log.WithFields(log.Fields{
		"user_id":  message.From.ID,
		"chat_id":  message.Chat.ID,
		"username": message.From.UserName,
		"text":     text,
	}).Debug("Входящее сообщение")
}

// LogCallback логирует нажатие инлайн-кнопки.
func LogCallback(call *tgbotapi.CallbackQuery) {
	if call == nil || call.From == nil {
		return
	}

	log.WithFields(log.Fields{
		"user_id":  call.From.ID,
		"username": call.From.UserName,
		"data":     call.Data,
	}).Debug("Входящий callback")
}
