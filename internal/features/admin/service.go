// Package admin — service.go: аутентификация по паролю (Argon2id),
// сессии и сводная статистика.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"dating-bot/internal/common"
	"dating-bot/internal/config"
	"dating-bot/internal/features/matching"
	"dating-bot/internal/features/profiles"
)

// FeedbackCounter — число необработанных отзывов (реализует feedback.Service).
type FeedbackCounter interface {
	CountNew(ctx context.Context) (int64, error)
}

// ComplaintCounter — общее число жалоб (реализует complaints.Service).
type ComplaintCounter interface {
	TotalCount(ctx context.Context) (int64, error)
}

// Service управляет админ-доступом.
type Service struct {
	repo       *Repository
	profiles   *profiles.Service
	matches    *matching.Repository
	feedbacks  FeedbackCounter
	complaints ComplaintCounter
	cfg        *config.Config
}

// NewService создаёт сервис админ-команд.
func NewService(repo *Repository, profileService *profiles.Service, matchRepo *matching.Repository, feedbacks FeedbackCounter, complaints ComplaintCounter, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		profiles:   profileService,
		matches:    matchRepo,
		feedbacks:  feedbacks,
		complaints: complaints,
		cfg:        cfg,
	}
}

// IsAdmin проверяет tg_id по списку из конфигурации.
func (s *Service) IsAdmin(tgID int64) bool {
	return s.cfg.IsAdmin(tgID)
}

// Login проверяет пароль и создаёт сессию на 24 часа.
// 3 неудачные попытки за час — блокировка на час.
func (s *Service) Login(ctx context.Context, userID int64, password string) error {
	attempts, err := s.repo.GetRecentFailedAttempts(ctx, userID, time.Hour)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if attempts >= 3 {
		return common.ErrTooManyAttempts
	}

	match := verifyArgon2id(password, s.cfg.AdminPasswordHash)

	if err := s.repo.LogAttempt(ctx, userID, match); err != nil {
		log.WithError(err).Warn("Не удалось записать попытку входа")
	}
	if !match {
		return common.ErrWrongPassword
	}

	session := &Session{
		UserID:       userID,
		SessionToken: generateSecureToken(),
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
	return s.repo.CreateSession(ctx, session)
}

// HasActiveSession проверяет, залогинен ли администратор.
func (s *Service) HasActiveSession(ctx context.Context, userID int64) bool {
	session, err := s.repo.GetActiveSession(ctx, userID)
	if err != nil || session == nil {
		return false
	}
	if err := s.repo.UpdateActivity(ctx, userID); err != nil {
		log.WithError(err).Debug("Не удалось обновить активность сессии")
	}
	return true
}

// Logout деактивирует сессии администратора.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.repo.DeactivateSessions(ctx, userID)
}

// StatsReport собирает сводку для /stats.
func (s *Service) StatsReport(ctx context.Context) (string, error) {
	ps, err := s.profiles.CountStats(ctx)
	if err != nil {
		return "", err
	}
	likes, err := s.matches.CountInteractions(ctx)
	if err != nil {
		return "", err
	}
	matches, err := s.matches.CountMatches(ctx)
	if err != nil {
		return "", err
	}
	feedbacks, err := s.feedbacks.CountNew(ctx)
	if err != nil {
		return "", err
	}
	complaints, err := s.complaints.TotalCount(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"<b>Статистика</b>\n"+
			"Усього анкет: %d\n"+
			"Активні: %d\n"+
			"Забанені: %d\n"+
			"Лайки/скіпи: %d\n"+
			"Match: %d\n"+
			"Нові відгуки: %d\n"+
			"Скарги: %d",
		ps.Total, ps.Active, ps.Banned, likes, matches, feedbacks, complaints,
	), nil
}

// Ban банит анкету по tg_id. false — анкета не найдена.
func (s *Service) Ban(ctx context.Context, tgID int64) (bool, error) {
	return s.profiles.Ban(ctx, tgID)
}

// Unban снимает бан. false — анкета не найдена.
func (s *Service) Unban(ctx context.Context, tgID int64) (bool, error) {
	return s.profiles.Unban(ctx, tgID)
}

// ResetSwipes очищает лайки/скипы (матчи остаются).
func (s *Service) ResetSwipes(ctx context.Context) (int64, error) {
	return s.matches.ResetInteractions(ctx)
}

// ResetFeed очищает лайки/скипы и матчи.
func (s *Service) ResetFeed(ctx context.Context) (likes, matches int64, err error) {
	return s.matches.ResetFeed(ctx)
}

// ResetDatabase полностью очищает пользовательские данные.
// Требует активной сессии (проверяет вызывающий код).
func (s *Service) ResetDatabase(ctx context.Context) (*ResetStats, error) {
	stats, err := s.repo.ResetUserData(ctx)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"users":   stats.Users,
		"likes":   stats.Likes,
		"matches": stats.Matches,
	}).Warn("База пользовательских данных очищена")
	return stats, nil
}

// --- Криптографические утилиты ---

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Сравнение в постоянном времени
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}

func generateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return base64.URLEncoding.EncodeToString(b)
}
