// Package antiflood — service.go содержит логику скользящего окна.
//
// Схема использования: вызвать Allowed перед действием, затем Record после.
// Между проверкой и записью есть гонка при одновременных запросах одного
// пользователя — одно лишнее действие может проскочить. Это осознанный
// компромисс: лимит тут мягкая UX-гарантия, а не инвариант безопасности.
package antiflood

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"dating-bot/internal/config"
)

// LogStore — интерфейс хранилища лога действий (реализует Repository).
type LogStore interface {
	CountSince(ctx context.Context, userID int64, actions []string, since time.Time) (int, error)
	Insert(ctx context.Context, userID int64, action string) error
	PruneOlder(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service считает лимиты по скользящему окну.
type Service struct {
	store LogStore
	cfg   *config.Config
	now   func() time.Time // подменяется в тестах
}

// NewService создаёт сервис антифлуда.
func NewService(store LogStore, cfg *config.Config) *Service {
	return &Service{store: store, cfg: cfg, now: time.Now}
}

// Allowed проверяет, не исчерпан ли лимит: count < limit по окну
// [now-window, now]. limit <= 0 — лимит отключён, всегда true.
func (s *Service) Allowed(ctx context.Context, userID int64, actions []string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	count, err := s.store.CountSince(ctx, userID, actions, s.now().Add(-window))
	if err != nil {
		return false, err
	}
	return count < limit, nil
}

// Record добавляет запись в лог. Лимит НЕ проверяет — это задача
// вызывающего кода (Allowed перед действием).
func (s *Service) Record(ctx context.Context, userID int64, action string) error {
	return s.store.Insert(ctx, userID, action)
}

// AllowView — лимит показов анкет (в минуту).
// Ошибка БД трактуется как "разрешено": просмотр не критичен,
// блокировать живого пользователя из-за сбоя счётчика не стоит.
func (s *Service) AllowView(ctx context.Context, userID int64) bool {
	ok, err := s.Allowed(ctx, userID, []string{ActionView}, s.cfg.ViewLimitPerMin, time.Minute)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Антифлуд: ошибка проверки показов, пропускаем")
		return true
	}
	return ok
}

// AllowAction — общий лимит действий (в минуту). При ошибке — разрешаем.
func (s *Service) AllowAction(ctx context.Context, userID int64) bool {
	ok, err := s.Allowed(ctx, userID, []string{ActionGeneric}, s.cfg.ActionLimitPerMin, time.Minute)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Антифлуд: ошибка проверки действий, пропускаем")
		return true
	}
	return ok
}

// AllowLike — лимит лайков (в час), общий для лайков из ленты и ответных
// лайков из уведомлений. При ошибке БД — ЗАПРЕЩАЕМ: сломанный счётчик
// лайков иначе превращается в окно для спама симпатиями.
func (s *Service) AllowLike(ctx context.Context, userID int64) bool {
	ok, err := s.Allowed(ctx, userID,
		[]string{ActionLike, ActionInlikeLike}, s.cfg.LikeLimitPerHour, time.Hour)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Антифлуд: ошибка проверки лайков, запрещаем")
		return false
	}
	return ok
}

// AllowFeedback — лимит фидбека (в сутки). При ошибке — разрешаем.
func (s *Service) AllowFeedback(ctx context.Context, userID int64) bool {
	ok, err := s.Allowed(ctx, userID, []string{ActionFeedback}, s.cfg.FeedbackLimitPerDay, 24*time.Hour)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Антифлуд: ошибка проверки фидбека, пропускаем")
		return true
	}
	return ok
}

// Prune удаляет записи старше retention из конфига.
// Вызывается планировщиком раз в час.
func (s *Service) Prune(ctx context.Context) (int64, error) {
	return s.store.PruneOlder(ctx, s.now().Add(-s.cfg.ActionLogRetention))
}
