// Package profiles — service.go содержит бизнес-логику работы с анкетами.
package profiles

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"dating-bot/internal/common"
	"dating-bot/internal/config"
)

// Service управляет анкетами.
type Service struct {
	repo *Repository
	cfg  *config.Config
}

// NewService создаёт сервис анкет.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// GetByTgID возвращает анкету по Telegram ID (nil — анкеты нет).
func (s *Service) GetByTgID(ctx context.Context, tgID int64) (*Profile, error) {
	return s.repo.GetByTgID(ctx, tgID)
}

// GetByID возвращает анкету по внутреннему ID (nil — анкеты нет).
func (s *Service) GetByID(ctx context.Context, id int64) (*Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// Save валидирует и сохраняет анкету (создание или полное обновление).
// Фото сохраняются отдельно, если переданы.
func (s *Service) Save(ctx context.Context, p *Profile, photoFileIDs []string) error {
	if p.Age < 16 || p.Age > 99 {
		return fmt.Errorf("возраст %d вне диапазона 16..99", p.Age)
	}
	if p.Gender != GenderMale && p.Gender != GenderFemale {
		return fmt.Errorf("некорректный пол %q", p.Gender)
	}
	if p.LookingFor != GenderMale && p.LookingFor != GenderFemale && p.LookingFor != LookingAny {
		return fmt.Errorf("некорректное значение looking_for %q", p.LookingFor)
	}
	if p.SearchScope == "" {
		p.SearchScope = ScopeSettlement
	}
	if len(photoFileIDs) > s.cfg.MaxPhotos {
		return common.ErrTooManyPhotos
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return err
	}
	if len(photoFileIDs) > 0 {
		if err := s.repo.ReplacePhotos(ctx, p.ID, photoFileIDs); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{
		"tg_id": p.TgID,
		"id":    p.ID,
	}).Info("Анкета сохранена")
	return nil
}

// ToggleActive переключает паузу анкеты, возвращает новое состояние.
func (s *Service) ToggleActive(ctx context.Context, p *Profile) (bool, error) {
	next := !p.Active
	if err := s.repo.SetActive(ctx, p.ID, next); err != nil {
		return p.Active, err
	}
	p.Active = next
	return next, nil
}

// ToggleAgeFilter переключает возрастной фильтр, возвращает новое состояние.
func (s *Service) ToggleAgeFilter(ctx context.Context, p *Profile) (bool, error) {
	next := !p.AgeFilterEnabled
	if err := s.repo.SetAgeFilter(ctx, p.ID, next); err != nil {
		return p.AgeFilterEnabled, err
	}
	p.AgeFilterEnabled = next
	return next, nil
}

// SetSearchScope задаёт уровень географии поиска.
func (s *Service) SetSearchScope(ctx context.Context, p *Profile, scope string) error {
	switch scope {
	case ScopeSettlement, ScopeHromada, ScopeDistrict, ScopeRegion, ScopeCountry:
	default:
		return fmt.Errorf("неизвестный уровень поиска %q", scope)
	}
	if err := s.repo.SetSearchScope(ctx, p.ID, scope); err != nil {
		return err
	}
	p.SearchScope = scope
	p.SearchGlobal = scope == ScopeCountry
	return nil
}

// Ban блокирует анкету по tg_id.
func (s *Service) Ban(ctx context.Context, tgID int64) (bool, error) {
	return s.repo.SetBanned(ctx, tgID, true)
}

// Unban снимает блокировку.
func (s *Service) Unban(ctx context.Context, tgID int64) (bool, error) {
	return s.repo.SetBanned(ctx, tgID, false)
}

// DeleteAccount удаляет анкету вместе с лайками, матчами, фото и логами.
func (s *Service) DeleteAccount(ctx context.Context, tgID int64) error {
	p, err := s.repo.GetByTgID(ctx, tgID)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}
	log.WithField("tg_id", tgID).Info("Анкета удалена по запросу пользователя")
	return nil
}

// CountStats возвращает статистику анкет для админки.
func (s *Service) CountStats(ctx context.Context) (*Stats, error) {
	return s.repo.CountStats(ctx)
}
