// Package bot содержит главный модуль бота — запуск long-polling
// и маршрутизацию апдейтов по обработчикам фич.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"dating-bot/internal/bot/middleware"
	"dating-bot/internal/config"
	"dating-bot/internal/features/admin"
	"dating-bot/internal/features/complaints"
	"dating-bot/internal/features/feedback"
	"dating-bot/internal/features/matching"
	"dating-bot/internal/features/profiles"
)

// Bot — главная структура, объединяющая все обработчики.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	profileHandler   *profiles.Handler
	matchingHandler  *matching.Handler
	feedbackHandler  *feedback.Handler
	complaintHandler *complaints.Handler
	adminHandler     *admin.Handler

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт бота со всеми обработчиками.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	profileHandler *profiles.Handler,
	matchingHandler *matching.Handler,
	feedbackHandler *feedback.Handler,
	complaintHandler *complaints.Handler,
	adminHandler *admin.Handler,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:              api,
		cfg:              cfg,
		profileHandler:   profileHandler,
		matchingHandler:  matchingHandler,
		feedbackHandler:  feedbackHandler,
		complaintHandler: complaintHandler,
		adminHandler:     adminHandler,
		inflight:         make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}
	// Бот знакомств работает только в личке
	if !message.Chat.IsPrivate() {
		return
	}

	middleware.LogMessage(message)

	chatID := message.Chat.ID
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)

	if cmd, args, ok := parseCommand(text); ok {
		b.routeCommand(ctx, chatID, userID, message, cmd, args)
		return
	}

	// Активные диалоги имеют приоритет над кнопками меню
	if b.feedbackHandler.HandleDialog(ctx, message) {
		return
	}
	if b.complaintHandler.HandleDialog(ctx, message) {
		return
	}
	if b.profileHandler.HandleDialog(ctx, message) {
		return
	}

	switch text {
	case profiles.BtnBrowse:
		b.matchingHandler.HandleBrowse(ctx, chatID, userID)
	case profiles.BtnProfile:
		b.profileHandler.HandleMyProfile(ctx, chatID, userID)
	case profiles.BtnMatches:
		b.matchingHandler.HandleMatches(ctx, chatID, userID)
	case profiles.BtnSettings:
		b.profileHandler.HandleSettings(ctx, chatID, userID)
	default:
		b.sendMessage(chatID, "Оберіть дію з меню або натисніть /start.")
	}
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, chatID, userID int64, message *tgbotapi.Message, cmd string, args []string) {
	log.WithFields(log.Fields{
		"cmd":  cmd,
		"args": len(args),
	}).Debug("routing command")

	switch cmd {
	case "start":
		b.profileHandler.HandleStart(ctx, chatID, message.From)

	case "help":
		b.sendMessage(chatID,
			"Команди:\n"+
				"/start — створити анкету\n"+
				"/feedback — надіслати відгук\n\n"+
				"Решта — кнопками меню 🙂")

	case "feedback":
		b.feedbackHandler.HandleCommand(ctx, chatID, userID)

	default:
		if b.adminHandler.HandleCommand(ctx, chatID, userID, cmd, args) {
			return
		}
		b.sendMessage(chatID, "Невідома команда. Спробуйте /help.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, call *tgbotapi.CallbackQuery) {
	if call.From == nil || call.Message == nil {
		return
	}
	middleware.LogCallback(call)

	data := call.Data
	switch {
	case strings.HasPrefix(data, "browse:") || strings.HasPrefix(data, "inlike:"):
		b.matchingHandler.HandleBrowseCallback(ctx, call)

	case strings.HasPrefix(data, "matches:page:"):
		b.matchingHandler.HandleMatchesPage(ctx, call)

	case strings.HasPrefix(data, "feedback:"):
		b.feedbackHandler.HandleCallback(ctx, call)

	case strings.HasPrefix(data, "complaint:"):
		b.complaintHandler.HandleCallback(ctx, call)

	case strings.HasPrefix(data, "admin_resetdb:"):
		b.adminHandler.HandleCallback(ctx, call)

	default:
		// Анкета, адреса, настройки, noop
		if !b.profileHandler.HandleCallback(ctx, call) {
			log.WithField("data", data).Debug("Необработанный callback")
		}
	}
}

// parseCommand разбирает "/cmd@bot arg1 arg2".
func parseCommand(text string) (cmd string, args []string, ok bool) {
	if !strings.HasPrefix(text, "/") {
		return "", nil, false
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil, false
	}
	cmd = strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	if cmd == "" {
		return "", nil, false
	}
	return strings.ToLower(cmd), fields[1:], true
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendMessageToUser отправляет сообщение пользователю (для отчётов по cron).
func (b *Bot) SendMessageToUser(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("Не удалось отправить сообщение")
	}
}
