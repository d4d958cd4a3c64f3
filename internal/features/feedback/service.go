// Package feedback — service.go: бизнес-логика приёма отзывов.
package feedback

import (
	"context"
	"fmt"

	"dating-bot/internal/common"
	"dating-bot/internal/features/antiflood"
	"dating-bot/internal/features/profiles"
)

// Store — хранилище отзывов (реализует Repository).
type Store interface {
	Insert(ctx context.Context, f *Feedback) error
	CountNew(ctx context.Context) (int64, error)
}

// Service принимает и сохраняет отзывы с суточным лимитом.
type Service struct {
	store Store
	flood *antiflood.Service
}

// NewService создаёт сервис отзывов.
func NewService(store Store, flood *antiflood.Service) *Service {
	return &Service{store: store, flood: flood}
}

// Allowed проверяет суточный лимит отзывов пользователя.
func (s *Service) Allowed(ctx context.Context, userID int64) bool {
	return s.flood.AllowFeedback(ctx, userID)
}

// Submit сохраняет отзыв и фиксирует его в журнале лимитов.
// Возвращает common.ErrRateLimited при исчерпанном лимите.
func (s *Service) Submit(ctx context.Context, author *profiles.Profile, category, text string) error {
	if !s.flood.AllowFeedback(ctx, author.ID) {
		return common.ErrRateLimited
	}

	switch category {
	case CategoryIssue, CategoryIdea, CategoryOther, CategoryGeneral:
	default:
		category = CategoryGeneral
	}

	f := &Feedback{
		UserID:      author.ID,
		TgID:        author.TgID,
		Username:    author.Username,
		Category:    category,
		Status:      StatusNew,
		Description: common.TruncateRunes(text, MaxTextLen),
	}
	if err := s.store.Insert(ctx, f); err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}

	// Записываем в журнал после успешного сохранения: неудавшийся
	// отзыв не должен съедать лимит
	return s.flood.Record(ctx, author.ID, antiflood.ActionFeedback)
}

// CountNew — число необработанных отзывов.
func (s *Service) CountNew(ctx context.Context) (int64, error) {
	return s.store.CountNew(ctx)
}
