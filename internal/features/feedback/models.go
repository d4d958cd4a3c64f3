// Package feedback принимает отзывы пользователей (/feedback).
// models.go описывает структуру отзыва.
package feedback

import "time"

// Категории отзывов.
const (
	CategoryIssue   = "issue"
	CategoryIdea    = "idea"
	CategoryOther   = "other"
	CategoryGeneral = "general"
)

// Статусы обработки (проставляются вручную админами в БД).
const (
	StatusNew  = "new"
	StatusDone = "done"
)

// MaxTextLen — предел длины текста отзыва.
const MaxTextLen = 2000

// Feedback — отзыв пользователя.
type Feedback struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	TgID        int64     `db:"tg_id"`
	Username    string    `db:"username"`
	Category    string    `db:"category"`
	Status      string    `db:"status"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}
