// Package antiflood реализует лимиты скорости действий пользователя
// по скользящему окну поверх таблицы action_logs.
// Счётчик живёт в БД, а не в памяти, поэтому остаётся консистентным
// при нескольких экземплярах бота.
// models.go описывает запись лога действий и виды действий.
package antiflood

import "time"

// Виды действий, которые учитывают лимиты.
const (
	ActionView       = "view"        // показ анкеты в ленте
	ActionGeneric    = "action"      // любое действие (лайк/скип/ответ)
	ActionLike       = "like"        // лайк из ленты
	ActionSkip       = "skip"        // скип из ленты
	ActionInlikeLike = "inlike_like" // ответный лайк из уведомления
	ActionInlikeSkip = "inlike_skip" // ответный скип из уведомления
	ActionFeedback   = "feedback"    // отправка фидбека
)

// ActionLogEntry — одна запись лога действий (append-only).
type ActionLogEntry struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"` // внутренний id анкеты, не tg_id
	Action    string    `db:"action"`
	CreatedAt time.Time `db:"created_at"`
}
