// Package complaints — service.go: логика подачи жалоб.
package complaints

import (
	"context"
	"fmt"
	"strings"

	"dating-bot/internal/common"
	"dating-bot/internal/features/profiles"
)

// Store — хранилище жалоб (реализует Repository).
type Store interface {
	Insert(ctx context.Context, reporterID, targetID int64, reason string) (bool, error)
	CountForTarget(ctx context.Context, targetID int64) (int64, error)
	TotalCount(ctx context.Context) (int64, error)
}

// ProfileStore — чтение анкет (реализует profiles.Service).
type ProfileStore interface {
	GetByID(ctx context.Context, id int64) (*profiles.Profile, error)
}

// Service принимает жалобы.
type Service struct {
	store    Store
	profiles ProfileStore
}

// NewService создаёт сервис жалоб.
func NewService(store Store, profileStore ProfileStore) *Service {
	return &Service{store: store, profiles: profileStore}
}

// Submit подаёт жалобу на анкету. Ошибки:
// common.ErrProfileNotFound — анкета-цель не существует,
// common.ErrComplaintDuplicate — повторная жалоба той же пары.
func (s *Service) Submit(ctx context.Context, reporter *profiles.Profile, targetID int64, reason string) error {
	target, err := s.profiles.GetByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("submit complaint: %w", err)
	}
	if target == nil {
		return common.ErrProfileNotFound
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Без причини"
	}

	created, err := s.store.Insert(ctx, reporter.ID, targetID, reason)
	if err != nil {
		return fmt.Errorf("submit complaint: %w", err)
	}
	if !created {
		return common.ErrComplaintDuplicate
	}
	return nil
}

// TotalCount — общее число жалоб.
func (s *Service) TotalCount(ctx context.Context) (int64, error) {
	return s.store.TotalCount(ctx)
}
