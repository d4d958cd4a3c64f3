// Package admin — handlers.go: админ-команды в личке бота.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"dating-bot/internal/common"
)

// Handler обрабатывает админ-команды. Все команды требуют tg_id из
// списка админов; /reset_db дополнительно требует активной сессии.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик админ-команд.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

func confirmResetDBKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Так, очистити базу", "admin_resetdb:yes")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Ні", "admin_resetdb:no")),
	)
}

// HandleCommand обрабатывает админ-команду. Возвращает false, если
// команда не админская или отправитель не админ.
func (h *Handler) HandleCommand(ctx context.Context, chatID, userID int64, cmd string, args []string) bool {
	switch cmd {
	case "admin", "login", "logout", "stats", "ban", "unban", "reset_swipes", "reset_feed", "reset_db":
	default:
		return false
	}
	if !h.service.IsAdmin(userID) {
		// Не выдаём существование команд посторонним
		return false
	}

	switch cmd {
	case "admin":
		h.sendHTML(chatID,
			"<b>Адмін-команди</b>\n"+
				"• /stats — статистика\n"+
				"• /ban &lt;tg_id&gt; — забанити анкету\n"+
				"• /unban &lt;tg_id&gt; — розбанити\n"+
				"• /reset_swipes — скинути лайки/скіпи\n"+
				"• /reset_feed — скинути стрічки (лайки і матчі)\n"+
				"• /login &lt;пароль&gt; — сесія для небезпечних команд\n"+
				"• /reset_db — повне очищення бази (потрібен /login)")

	case "login":
		h.handleLogin(ctx, chatID, userID, args)

	case "logout":
		if err := h.service.Logout(ctx, userID); err != nil {
			log.WithError(err).Error("Ошибка выхода из сессии")
			h.sendText(chatID, "Помилка. Спробуйте ще раз.")
			return true
		}
		h.sendText(chatID, "Сесію завершено.")

	case "stats":
		report, err := h.service.StatsReport(ctx)
		if err != nil {
			log.WithError(err).Error("Ошибка сбора статистики")
			h.sendText(chatID, "Не вдалося зібрати статистику.")
			return true
		}
		h.sendHTML(chatID, report)

	case "ban":
		h.handleBan(ctx, chatID, args, true)

	case "unban":
		h.handleBan(ctx, chatID, args, false)

	case "reset_swipes":
		deleted, err := h.service.ResetSwipes(ctx)
		if err != nil {
			log.WithError(err).Error("Ошибка сброса свайпов")
			h.sendText(chatID, "Помилка. Спробуйте ще раз.")
			return true
		}
		h.sendText(chatID, fmt.Sprintf("Готово. Лайки/скіпи очищено. Видалено записів: %d", deleted))

	case "reset_feed":
		likes, matches, err := h.service.ResetFeed(ctx)
		if err != nil {
			log.WithError(err).Error("Ошибка сброса лент")
			h.sendText(chatID, "Помилка. Спробуйте ще раз.")
			return true
		}
		h.sendText(chatID, fmt.Sprintf(
			"Готово. Стрічки очищено.\nВилучено лайків/скіпів: %d\nВилучено матчів: %d",
			likes, matches))

	case "reset_db":
		if !h.service.HasActiveSession(ctx, userID) {
			h.sendText(chatID, "Потрібна сесія: /login <пароль>")
			return true
		}
		h.sendWithMarkup(chatID,
			"Увага: буде видалено всі анкети, фото, лайки, матчі, відгуки, скарги і логи. Продовжити?",
			confirmResetDBKeyboard())
	}
	return true
}

func (h *Handler) handleLogin(ctx context.Context, chatID, userID int64, args []string) {
	if len(args) == 0 {
		h.sendText(chatID, "Використання: /login <пароль>")
		return
	}
	err := h.service.Login(ctx, userID, strings.Join(args, " "))
	switch {
	case err == nil:
		h.sendText(chatID, "Вхід виконано. Сесія діє 24 години.")
	case errors.Is(err, common.ErrTooManyAttempts):
		h.sendText(chatID, "Забагато спроб. Зачекайте годину.")
	case errors.Is(err, common.ErrWrongPassword):
		h.sendText(chatID, "Невірний пароль.")
	default:
		log.WithError(err).Error("Ошибка входа администратора")
		h.sendText(chatID, "Помилка. Спробуйте ще раз.")
	}
}

func (h *Handler) handleBan(ctx context.Context, chatID int64, args []string, ban bool) {
	if len(args) == 0 {
		h.sendText(chatID, "Вкажіть tg_id: /ban 123456789")
		return
	}
	tgID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendText(chatID, "tg_id має бути числом.")
		return
	}

	var found bool
	if ban {
		found, err = h.service.Ban(ctx, tgID)
	} else {
		found, err = h.service.Unban(ctx, tgID)
	}
	if err != nil {
		log.WithError(err).WithField("tg_id", tgID).Error("Ошибка бана/разбана")
		h.sendText(chatID, "Помилка. Спробуйте ще раз.")
		return
	}
	if !found {
		h.sendText(chatID, "Анкету не знайдено.")
		return
	}
	if ban {
		h.sendText(chatID, fmt.Sprintf("Анкету %d забанено.", tgID))
	} else {
		h.sendText(chatID, fmt.Sprintf("Анкету %d розбанено.", tgID))
	}
}

// HandleCallback обрабатывает подтверждение admin_resetdb:*.
// Возвращает false для чужих callback.
func (h *Handler) HandleCallback(ctx context.Context, call *tgbotapi.CallbackQuery) bool {
	if !strings.HasPrefix(call.Data, "admin_resetdb:") {
		return false
	}
	chatID := call.Message.Chat.ID
	userID := call.From.ID

	if !h.service.IsAdmin(userID) || !h.service.HasActiveSession(ctx, userID) {
		h.answerCallback(call.ID, "Немає доступу", true)
		return true
	}

	decision := strings.TrimPrefix(call.Data, "admin_resetdb:")
	if decision != "yes" {
		h.answerCallback(call.ID, "Скасовано", false)
		h.sendText(chatID, "Скасовано.")
		return true
	}

	h.answerCallback(call.ID, "Очищення...", true)
	stats, err := h.service.ResetDatabase(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка очистки базы")
		h.sendText(chatID, "Не вдалося очистити базу.")
		return true
	}

	h.sendHTML(chatID, fmt.Sprintf(
		"<b>Базу очищено</b>\n"+
			"Анкет: %d\n"+
			"Фото: %d\n"+
			"Лайки/скіпи: %d\n"+
			"Match: %d\n"+
			"Відгуки: %d\n"+
			"Скарги: %d\n"+
			"Логи дій: %d",
		stats.Users, stats.Photos, stats.Likes, stats.Matches,
		stats.Feedbacks, stats.Complaints, stats.ActionLogs))
	return true
}

func (h *Handler) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

func (h *Handler) sendHTML(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
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
