// Package bot — notify.go: доставка уведомлений о симпатиях и матчах.
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"dating-bot/internal/features/matching"
	"dating-bot/internal/features/profiles"
)

// notifier отправляет уведомления через Telegram. Реализует
// matching.Notifier: ошибки доставки только логируются — запись
// о лайке/матче к этому моменту уже в БД.
type notifier struct {
	api *tgbotapi.BotAPI
}

// NewNotifier создаёт доставщик уведомлений.
func NewNotifier(api *tgbotapi.BotAPI) matching.Notifier {
	return &notifier{api: api}
}

// NotifyLiked — «вас лайкнули». Контакты не раскрываем, только кнопки
// ответной реакции.
func (n *notifier) NotifyLiked(from, to *profiles.Profile) {
	msg := tgbotapi.NewMessage(to.TgID, "Ти комусь сподобався! 👀")
	msg.ReplyMarkup = matching.LikeNotificationKeyboard(from.ID)
	if _, err := n.api.Send(msg); err != nil {
		// Обычное дело: пользователь заблокировал бота
		log.WithError(err).WithField("tg_id", to.TgID).Debug("Не удалось доставить уведомление о лайке")
	}
}

// NotifyMatch — карточка матча с контактом второй стороны.
func (n *notifier) NotifyMatch(recipient, other *profiles.Profile) {
	caption := "<b>💞 Це взаємно!</b>\n\n" + profiles.RenderCaption(other)
	kb := matching.MatchContactKeyboard(other.ContactURL())

	fileID := other.MainPhotoFileID()
	if fileID != "" {
		photo := tgbotapi.NewPhoto(recipient.TgID, tgbotapi.FileID(fileID))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = kb
		if _, err := n.api.Send(photo); err != nil {
			log.WithError(err).WithField("tg_id", recipient.TgID).Debug("Не удалось доставить карточку матча")
		}
		return
	}

	msg := tgbotapi.NewMessage(recipient.TgID, caption)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	if _, err := n.api.Send(msg); err != nil {
		log.WithError(err).WithField("tg_id", recipient.TgID).Debug("Не удалось доставить карточку матча")
	}
}
