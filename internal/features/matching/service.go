// Package matching — service.go содержит протокол реакции:
// запись в журнал, проверку взаимности и создание матча.
package matching

import (
	"context"

	log "github.com/sirupsen/logrus"

	"dating-bot/internal/features/profiles"
)

// Ledger — журнал реакций и матчей (реализует Repository).
type Ledger interface {
	InsertInteraction(ctx context.Context, fromID, toID int64, isLike bool) (bool, error)
	HasLike(ctx context.Context, fromID, toID int64) (bool, error)
	InsertMatch(ctx context.Context, user1ID, user2ID int64) (bool, error)
}

// CandidateSource выдаёт следующую анкету для показа (реализует Repository).
type CandidateSource interface {
	NextCandidate(ctx context.Context, viewer *profiles.Profile) (*profiles.Profile, error)
}

// ProfileStore — чтение анкет (реализует profiles.Service).
type ProfileStore interface {
	GetByID(ctx context.Context, id int64) (*profiles.Profile, error)
}

// Notifier доставляет уведомления о симпатиях. Доставка best-effort:
// ошибки логируются внутри реализации и никогда не доходят сюда —
// записанный лайк/матч уже зафиксирован и не может быть откатан
// из-за недоставленного сообщения.
type Notifier interface {
	// NotifyLiked — "вам поставили лайк" (без контактов)
	NotifyLiked(from, to *profiles.Profile)
	// NotifyMatch — карточка матча с контактом собеседника
	NotifyMatch(recipient, other *profiles.Profile)
}

// MatchLister — список матчей пользователя (реализует Repository).
type MatchLister interface {
	MatchedOtherIDs(ctx context.Context, userID int64) ([]int64, error)
}

// Service — ядро знакомств.
type Service struct {
	ledger     Ledger
	candidates CandidateSource
	matches    MatchLister
	store      ProfileStore
	notifier   Notifier
}

// NewService создаёт сервис подбора и матчей.
func NewService(repo *Repository, store ProfileStore, notifier Notifier) *Service {
	return &Service{
		ledger:     repo,
		candidates: repo,
		matches:    repo,
		store:      store,
		notifier:   notifier,
	}
}

// NextCandidate возвращает следующую подходящую анкету или nil.
// Пустая лента — обычное состояние, не ошибка.
func (s *Service) NextCandidate(ctx context.Context, viewer *profiles.Profile) (*profiles.Profile, error) {
	return s.candidates.NextCandidate(ctx, viewer)
}

// PutReaction записывает реакцию и при взаимности создаёт матч.
//
// Возвращает (matched, other): matched=true только когда матч создан
// именно этим вызовом; other — анкета второй стороны (nil при no-op).
//
// Тихие no-op (false, nil): реакция на себя, на несуществующую анкету,
// повторная реакция на ту же анкету. Это частые и безобидные случаи
// (двойной тап по кнопке) — пользователю не о чем сообщать.
func (s *Service) PutReaction(ctx context.Context, from *profiles.Profile, toID int64, isLike bool) (bool, *profiles.Profile, error) {
	if toID == from.ID {
		return false, nil, nil
	}
	// Защитная проверка: действия скрытой/забаненной анкеты отклоняет
	// вызывающий код, но ядро перепроверяет само.
	if !from.Visible() {
		return false, nil, nil
	}

	target, err := s.store.GetByID(ctx, toID)
	if err != nil {
		return false, nil, err
	}
	if target == nil || target.IsBanned {
		return false, nil, nil
	}

	inserted, err := s.ledger.InsertInteraction(ctx, from.ID, toID, isLike)
	if err != nil {
		return false, nil, err
	}
	if !inserted {
		// Уже реагировали — идемпотентный no-op
		return false, nil, nil
	}

	if !isLike {
		return false, nil, nil
	}

	// Реакция зафиксирована в БД — с этого момента уведомление можно
	// отправлять в фоне: упавшая доставка означает лишь пропущенное
	// уведомление, а не лайк "из ниоткуда". Не ждём отправку, чтобы
	// медленный Telegram одного пользователя не тормозил ленту.
	go s.notifier.NotifyLiked(from, target)

	reciprocal, err := s.ledger.HasLike(ctx, toID, from.ID)
	if err != nil {
		return false, nil, err
	}
	if !reciprocal {
		return false, nil, nil
	}

	u1, u2 := CanonicalPair(from.ID, toID)
	created, err := s.ledger.InsertMatch(ctx, u1, u2)
	if err != nil {
		return false, nil, err
	}
	if !created {
		// Матч уже есть (повторный лайк или конкурентная вставка
		// со второй стороны) — не спамим уведомлениями ещё раз
		return false, target, nil
	}

	log.WithFields(log.Fields{
		"user1_id": u1,
		"user2_id": u2,
	}).Info("Создан новый матч")

	// Карточки матча — завершающее действие запроса, шлём синхронно.
	// Доставки независимы: сбой одной не мешает другой.
	s.notifier.NotifyMatch(from, target)
	s.notifier.NotifyMatch(target, from)

	return true, target, nil
}

// MatchedProfiles возвращает анкеты всех матчей пользователя,
// свежие первыми. Удалённые анкеты пропускаются.
func (s *Service) MatchedProfiles(ctx context.Context, userID int64) ([]*profiles.Profile, error) {
	ids, err := s.matches.MatchedOtherIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*profiles.Profile, 0, len(ids))
	for _, id := range ids {
		p, err := s.store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}
