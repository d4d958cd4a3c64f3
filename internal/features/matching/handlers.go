// Package matching — handlers.go: лента просмотра анкет, реакции
// и список взаимных лайков.
package matching

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"dating-bot/internal/features/antiflood"
	"dating-bot/internal/features/profiles"
)

// Handler обрабатывает ленту и матчи.
type Handler struct {
	service  *Service
	profiles *profiles.Service
	flood    *antiflood.Service
	bot      *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик ленты.
func NewHandler(service *Service, profileService *profiles.Service, flood *antiflood.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, profiles: profileService, flood: flood, bot: bot}
}

// HandleBrowse обрабатывает кнопку «Перегляд анкет».
func (h *Handler) HandleBrowse(ctx context.Context, chatID, tgID int64) {
	cur, ok := h.currentProfile(ctx, chatID, tgID)
	if !ok {
		return
	}
	if !cur.Active {
		h.sendWithMarkup(chatID,
			"Ваша анкета на паузі. Увімкніть її в налаштуваннях.",
			profiles.OpenSettingsKeyboard())
		return
	}
	h.sendNext(ctx, chatID, cur)
}

// sendNext показывает следующую анкету с учётом лимита просмотров.
func (h *Handler) sendNext(ctx context.Context, chatID int64, cur *profiles.Profile) {
	if !h.flood.AllowView(ctx, cur.ID) {
		h.sendText(chatID, "Занадто швидко гортаєте. Зачекайте хвилину і спробуйте знову.")
		return
	}

	candidate, err := h.service.NextCandidate(ctx, cur)
	if err != nil {
		log.WithError(err).WithField("user_id", cur.ID).Error("Ошибка подбора кандидата")
		h.sendText(chatID, "Сталася помилка. Спробуйте ще раз.")
		return
	}
	if candidate == nil {
		h.sendWithMarkup(chatID,
			"Поки немає підходящих анкет.\n\n"+
				"Що можна зробити:\n"+
				"• розширити 🔎 рівень пошуку в налаштуваннях\n"+
				"• зайти пізніше",
			profiles.OpenSettingsKeyboard())
		return
	}

	// Показ зафиксирован — идёт в счётчик лимита
	if err := h.flood.Record(ctx, cur.ID, antiflood.ActionView); err != nil {
		log.WithError(err).Warn("Не удалось записать просмотр в журнал")
	}

	profiles.SendProfileCard(h.bot, chatID, candidate, browseKeyboard(candidate.ID))
}

// HandleBrowseCallback обрабатывает кнопки browse:* и inlike:*.
// Возвращает false для чужих callback.
func (h *Handler) HandleBrowseCallback(ctx context.Context, call *tgbotapi.CallbackQuery) bool {
	data := call.Data
	var incoming bool
	switch {
	case strings.HasPrefix(data, "browse:"):
		incoming = false
	case strings.HasPrefix(data, "inlike:"):
		incoming = true
	default:
		return false
	}

	chatID := call.Message.Chat.ID
	cur, ok := h.currentProfileCallback(ctx, call)
	if !ok {
		return true
	}

	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 {
		h.answerCallback(call.ID, "Помилка кнопки", true)
		return true
	}
	action := parts[1]
	targetID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		h.answerCallback(call.ID, "Помилка кнопки", true)
		return true
	}
	if action != "like" && action != "skip" {
		h.answerCallback(call.ID, "", false)
		return true
	}

	// Общий лимит действий
	if !h.flood.AllowAction(ctx, cur.ID) {
		h.answerCallback(call.ID, "Занадто часто", true)
		return true
	}

	// Лимит лайков — общий для ленты и ответных лайков
	if action == "like" && !h.flood.AllowLike(ctx, cur.ID) {
		h.answerCallback(call.ID, "Ліміт лайків", true)
		h.sendText(chatID, "Ліміт лайків вичерпано. Спробуйте пізніше.")
		return true
	}

	if action == "like" {
		h.answerCallback(call.ID, "❤️ Надіслано", false)
	} else {
		h.answerCallback(call.ID, "➡️ Далі", false)
	}

	// Журнал: общее действие + конкретное
	logged := action
	if incoming {
		logged = "inlike_" + action
	}
	if err := h.flood.Record(ctx, cur.ID, antiflood.ActionGeneric); err != nil {
		log.WithError(err).Warn("Не удалось записать действие в журнал")
	}
	if err := h.flood.Record(ctx, cur.ID, logged); err != nil {
		log.WithError(err).Warn("Не удалось записать реакцию в журнал")
	}

	matched, other, err := h.service.PutReaction(ctx, cur, targetID, action == "like")
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"from_id": cur.ID,
			"to_id":   targetID,
		}).Error("Ошибка обработки реакции")
		h.sendText(chatID, "Сталася помилка. Спробуйте ще раз.")
		return true
	}
	if matched && other != nil {
		log.WithFields(log.Fields{
			"from_id": cur.ID,
			"to_id":   other.ID,
		}).Info("Взаимная симпатия")
	}

	// Ответный лайк из уведомления не продолжает ленту
	if !incoming {
		h.sendNext(ctx, chatID, cur)
	}
	return true
}

// HandleMatches показывает первую страницу взаимных лайков.
func (h *Handler) HandleMatches(ctx context.Context, chatID, tgID int64) {
	cur, ok := h.currentProfile(ctx, chatID, tgID)
	if !ok {
		return
	}

	others, err := h.service.MatchedProfiles(ctx, cur.ID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения матчей")
		h.sendText(chatID, "Сталася помилка. Спробуйте пізніше.")
		return
	}
	if len(others) == 0 {
		h.sendText(chatID, "Поки немає взаємних лайків.")
		return
	}

	h.sendMatchPage(chatID, others, 1)
}

// HandleMatchesPage обрабатывает навигацию matches:page:N.
func (h *Handler) HandleMatchesPage(ctx context.Context, call *tgbotapi.CallbackQuery) {
	h.answerCallback(call.ID, "", false)
	chatID := call.Message.Chat.ID
	cur, ok := h.currentProfileCallback(ctx, call)
	if !ok {
		return
	}

	others, err := h.service.MatchedProfiles(ctx, cur.ID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения матчей")
		return
	}
	if len(others) == 0 {
		h.sendText(chatID, "Поки немає взаємних лайків.")
		return
	}

	page, err := strconv.Atoi(call.Data[strings.LastIndex(call.Data, ":")+1:])
	if err != nil {
		page = 1
	}
	h.sendMatchPage(chatID, others, page)
}

func (h *Handler) sendMatchPage(chatID int64, others []*profiles.Profile, page int) {
	total := len(others)
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	other := others[page-1]

	caption := "<b>💞 Взаємна симпатія</b>\n\n" + profiles.RenderCaption(other)
	kb := matchesPagerKeyboard(other.ContactURL(), page, total)

	fileID := other.MainPhotoFileID()
	if fileID != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = kb
		if _, err := h.bot.Send(photo); err != nil {
			log.WithError(err).Error("Ошибка отправки карточки матча")
		}
		return
	}
	msg := tgbotapi.NewMessage(chatID, caption)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки карточки матча")
	}
}

// currentProfile возвращает анкету пользователя либо подсказку про /start.
func (h *Handler) currentProfile(ctx context.Context, chatID, tgID int64) (*profiles.Profile, bool) {
	cur, err := h.profiles.GetByTgID(ctx, tgID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения анкеты")
		h.sendText(chatID, "Сталася помилка. Спробуйте пізніше.")
		return nil, false
	}
	if cur == nil {
		h.sendText(chatID, "Спочатку створіть анкету: /start")
		return nil, false
	}
	return cur, true
}

func (h *Handler) currentProfileCallback(ctx context.Context, call *tgbotapi.CallbackQuery) (*profiles.Profile, bool) {
	cur, err := h.profiles.GetByTgID(ctx, call.From.ID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения анкеты")
		h.answerCallback(call.ID, "Помилка", true)
		return nil, false
	}
	if cur == nil {
		h.answerCallback(call.ID, "Спочатку анкета", true)
		h.sendText(call.Message.Chat.ID, "Спочатку створіть анкету: /start")
		return nil, false
	}
	return cur, true
}

func (h *Handler) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

func (h *Handler) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

func (h *Handler) answerCallback(id, text string, alert bool) {
	cb := tgbotapi.NewCallback(id, text)
	cb.ShowAlert = alert
	if _, err := h.bot.Request(cb); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
}
