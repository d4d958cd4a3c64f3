// Package fsm — in-memory конечный автомат диалогов.
// Каждому пользователю соответствует не больше одного состояния
// (шаг анкеты, ожидание текста отзыва и т.п.) с TTL.
package fsm

import (
	"sync"
	"time"
)

// State — текущее состояние диалога пользователя.
type State struct {
	Name      string      // Имя шага ("reg_name", "feedback_text", ...)
	Data      interface{} // Контекст шага (черновик анкеты, id цели скарги)
	ExpiresAt time.Time
}

// Store хранит состояния диалогов в памяти. Потеря состояний при
// рестарте допустима: пользователь просто начнёт шаг заново.
type Store struct {
	mu     sync.RWMutex
	states map[int64]*State
	ttl    time.Duration
}

// NewStore создаёт хранилище с заданным TTL состояния.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		states: make(map[int64]*State),
		ttl:    ttl,
	}
}

// Get возвращает состояние пользователя или nil, если его нет
// или оно истекло.
func (s *Store) Get(userID int64) *State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil
	}
	if time.Now().After(state.ExpiresAt) {
		return nil
	}
	return state
}

// Set устанавливает состояние, продлевая TTL. Данные предыдущего
// шага сохраняются, если data == nil.
func (s *Store) Set(userID int64, name string, data interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data == nil {
		if prev, ok := s.states[userID]; ok {
			data = prev.Data
		}
	}
	s.states[userID] = &State{
		Name:      name,
		Data:      data,
		ExpiresAt: time.Now().Add(s.ttl),
	}
}

// Clear сбрасывает состояние пользователя.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

// Sweep удаляет истёкшие состояния и возвращает число удалённых.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, st := range s.states {
		if now.After(st.ExpiresAt) {
			delete(s.states, id)
			removed++
		}
	}
	return removed
}
