// Package complaints — handlers.go: кнопка «Поскаржитись» и выбор причины.
package complaints

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"dating-bot/internal/bot/fsm"
	"dating-bot/internal/common"
	"dating-bot/internal/features/profiles"
)

const stateWaitingReason = "complaint_reason"

// Handler обрабатывает callback-и complaint:* и свободный текст причины.
type Handler struct {
	service  *Service
	profiles *profiles.Service
	states   *fsm.Store
	bot      *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик жалоб.
func NewHandler(service *Service, profileService *profiles.Service, states *fsm.Store, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, profiles: profileService, states: states, bot: bot}
}

func reasonsKeyboard(targetID int64) tgbotapi.InlineKeyboardMarkup {
	btn := func(text, code string) tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardButtonData(text,
			fmt.Sprintf("complaint:reason:%s:%d", code, targetID))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn("📢 Спам", ReasonSpam), btn("🎭 Фейк", ReasonFake)),
		tgbotapi.NewInlineKeyboardRow(btn("🔞 Непристойність", ReasonObscene), btn("✏️ Інше", ReasonOther)),
	)
}

// HandleCallback обрабатывает complaint:start:* и complaint:reason:*.
// Возвращает false для чужих callback.
func (h *Handler) HandleCallback(ctx context.Context, call *tgbotapi.CallbackQuery) bool {
	data := call.Data
	switch {
	case strings.HasPrefix(data, "complaint:start:"):
		h.answerCallback(call.ID)
		h.handleStart(ctx, call)
	case strings.HasPrefix(data, "complaint:reason:"):
		h.answerCallback(call.ID)
		h.handleReason(ctx, call)
	default:
		return false
	}
	return true
}

func (h *Handler) handleStart(ctx context.Context, call *tgbotapi.CallbackQuery) {
	chatID := call.Message.Chat.ID
	if _, ok := h.reporter(ctx, chatID, call.From.ID); !ok {
		return
	}

	raw := call.Data[strings.LastIndex(call.Data, ":")+1:]
	targetID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.sendText(chatID, "Некоректна скарга.")
		return
	}

	target, err := h.profiles.GetByID(ctx, targetID)
	if err != nil || target == nil {
		h.sendText(chatID, "Анкета не знайдена.")
		return
	}

	h.sendWithMarkup(chatID, "Оберіть причину скарги:", reasonsKeyboard(targetID))
}

func (h *Handler) handleReason(ctx context.Context, call *tgbotapi.CallbackQuery) {
	chatID := call.Message.Chat.ID
	cur, ok := h.reporter(ctx, chatID, call.From.ID)
	if !ok {
		return
	}

	parts := strings.SplitN(call.Data, ":", 4)
	if len(parts) != 4 {
		h.sendText(chatID, "Некоректна скарга.")
		return
	}
	code := parts[2]
	targetID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		h.sendText(chatID, "Некоректна скарга.")
		return
	}

	if code == ReasonOther {
		h.states.Set(call.From.ID, stateWaitingReason, targetID)
		h.sendText(chatID, "Опишіть причину скарги одним повідомленням:")
		return
	}

	h.submit(ctx, chatID, cur, targetID, ReasonText(code))
}

// HandleDialog принимает свободный текст причины. Возвращает false,
// если пользователь не в диалоге жалобы.
func (h *Handler) HandleDialog(ctx context.Context, message *tgbotapi.Message) bool {
	tgID := message.From.ID
	state := h.states.Get(tgID)
	if state == nil || state.Name != stateWaitingReason {
		return false
	}

	chatID := message.Chat.ID
	targetID, ok := state.Data.(int64)
	if !ok {
		h.states.Clear(tgID)
		h.sendText(chatID, "Не вдалося визначити анкету для скарги.")
		return true
	}

	cur, okP := h.reporter(ctx, chatID, tgID)
	if !okP {
		h.states.Clear(tgID)
		return true
	}

	reason := strings.TrimSpace(message.Text)
	if reason == "" {
		h.sendText(chatID, "Будь ласка, опишіть причину текстом.")
		return true
	}

	h.submit(ctx, chatID, cur, targetID, reason)
	h.states.Clear(tgID)
	return true
}

func (h *Handler) submit(ctx context.Context, chatID int64, reporter *profiles.Profile, targetID int64, reason string) {
	err := h.service.Submit(ctx, reporter, targetID, reason)
	switch {
	case err == nil:
		h.sendText(chatID, "Скаргу відправлено.")
	case errors.Is(err, common.ErrComplaintDuplicate):
		h.sendText(chatID, "Ви вже скаржилися на цю анкету.")
	case errors.Is(err, common.ErrProfileNotFound):
		h.sendText(chatID, "Анкета не знайдена.")
	default:
		log.WithError(err).Error("Ошибка сохранения жалобы")
		h.sendText(chatID, "Не вдалося зберегти скаргу. Спробуйте пізніше.")
	}
}

func (h *Handler) reporter(ctx context.Context, chatID, tgID int64) (*profiles.Profile, bool) {
	cur, err := h.profiles.GetByTgID(ctx, tgID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения анкеты")
		h.sendText(chatID, "Сталася помилка. Спробуйте пізніше.")
		return nil, false
	}
	if cur == nil {
		h.sendText(chatID, "Спочатку заповніть профіль: /start")
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

func (h *Handler) answerCallback(id string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, "")); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
}
