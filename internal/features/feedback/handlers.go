// Package feedback — handlers.go: диалог /feedback.
package feedback

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"dating-bot/internal/bot/fsm"
	"dating-bot/internal/common"
	"dating-bot/internal/features/profiles"
)

const stateWaitingText = "feedback_text"

// Handler обрабатывает команду /feedback и диалог отзыва.
type Handler struct {
	service  *Service
	profiles *profiles.Service
	states   *fsm.Store
	bot      *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик отзывов.
func NewHandler(service *Service, profileService *profiles.Service, states *fsm.Store, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, profiles: profileService, states: states, bot: bot}
}

func categoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛠️ Проблема", "feedback:cat:issue"),
			tgbotapi.NewInlineKeyboardButtonData("💡 Ідея", "feedback:cat:idea"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✨ Інше", "feedback:cat:other"),
		),
	)
}

// HandleCommand обрабатывает /feedback.
func (h *Handler) HandleCommand(ctx context.Context, chatID, tgID int64) {
	user, err := h.profiles.GetByTgID(ctx, tgID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения анкеты")
		h.sendText(chatID, "Сталася помилка. Спробуйте пізніше.")
		return
	}
	if user == nil {
		h.states.Clear(tgID)
		h.sendText(chatID, "Здається, ви ще не зареєстровані. Натисніть /start, щоб створити анкету 🙂")
		return
	}

	if !h.service.Allowed(ctx, user.ID) {
		h.sendText(chatID, "Можна надіслати до 3 відгуків на добу. Спробуйте пізніше ⏳")
		return
	}

	h.states.Set(tgID, stateWaitingText, CategoryGeneral)
	msg := tgbotapi.NewMessage(chatID,
		"Поділіться, що покращити або що пішло не так. "+
			"Можете додати контакти для зворотного зв'язку. Оберіть тип або просто напишіть повідомлення:")
	msg.ReplyMarkup = categoryKeyboard()
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}

// HandleCallback обрабатывает выбор категории feedback:cat:*.
func (h *Handler) HandleCallback(ctx context.Context, call *tgbotapi.CallbackQuery) bool {
	if !strings.HasPrefix(call.Data, "feedback:cat:") {
		return false
	}
	h.answerCallback(call.ID)
	chatID := call.Message.Chat.ID
	tgID := call.From.ID

	user, err := h.profiles.GetByTgID(ctx, tgID)
	if err != nil || user == nil {
		h.states.Clear(tgID)
		h.sendText(chatID, "Потрібно зареєструватися. Натисніть /start 🙂")
		return true
	}
	if !h.service.Allowed(ctx, user.ID) {
		h.states.Clear(tgID)
		h.sendText(chatID, "Ліміт вичерпано: не більше 3 повідомлень на добу ⏳")
		return true
	}

	category := call.Data[strings.LastIndex(call.Data, ":")+1:]
	h.states.Set(tgID, stateWaitingText, category)
	h.sendText(chatID, "Прийнято! Опишіть проблему чи ідею одним повідомленням 📝")
	return true
}

// HandleDialog принимает текст отзыва. Возвращает false, если
// пользователь не в диалоге отзыва.
func (h *Handler) HandleDialog(ctx context.Context, message *tgbotapi.Message) bool {
	tgID := message.From.ID
	state := h.states.Get(tgID)
	if state == nil || state.Name != stateWaitingText {
		return false
	}

	chatID := message.Chat.ID
	user, err := h.profiles.GetByTgID(ctx, tgID)
	if err != nil || user == nil {
		h.states.Clear(tgID)
		h.sendText(chatID, "Потрібно зареєструватися. Натисніть /start 🙂")
		return true
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		text = strings.TrimSpace(message.Caption)
	}
	if text == "" {
		h.sendText(chatID, "Будь ласка, напишіть текст відгуку 🙂")
		return true
	}

	category, _ := state.Data.(string)
	if err := h.service.Submit(ctx, user, category, text); err != nil {
		if errors.Is(err, common.ErrRateLimited) {
			h.sendText(chatID, "Можна надіслати до 3 відгуків на добу. Спробуйте пізніше ⏳")
		} else {
			log.WithError(err).Error("Ошибка сохранения отзыва")
			h.sendText(chatID, "Не вдалося зберегти повідомлення. Спробуйте ще раз пізніше 🙁")
		}
		h.states.Clear(tgID)
		return true
	}

	h.states.Clear(tgID)
	h.sendText(chatID, "Дякуємо! Отримали ваш відгук і повернемося з відповіддю за потреби 🙌")
	return true
}

func (h *Handler) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

func (h *Handler) answerCallback(id string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, "")); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
}
