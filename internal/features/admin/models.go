// Package admin реализует админ-команды с парольной аутентификацией
// для опасных операций. models.go описывает сессии и попытки входа.
package admin

import "time"

// Session — активная сессия администратора. Выдаётся после /login
// и требуется для разрушительных команд (/reset_db).
type Session struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	SessionToken    string    `db:"session_token"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
	IsActive        bool      `db:"is_active"`
}

// LoginAttempt — попытка входа (для защиты от brute-force).
type LoginAttempt struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	AttemptTime time.Time `db:"attempt_time"`
	Success     bool      `db:"success"`
}

// ResetStats — сколько строк удалило полное очищение базы.
type ResetStats struct {
	Users      int64
	Photos     int64
	Likes      int64
	Matches    int64
	Feedbacks  int64
	Complaints int64
	ActionLogs int64
}
