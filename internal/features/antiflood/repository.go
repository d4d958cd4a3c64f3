// Package antiflood — repository.go выполняет операции с таблицей action_logs.
package antiflood

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository работает с таблицей action_logs.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий лога действий.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CountSince считает действия пользователя заданных видов начиная с since.
func (r *Repository) CountSince(ctx context.Context, userID int64, actions []string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM action_logs
		WHERE user_id = $1 AND action = ANY($2) AND created_at >= $3
	`
	var count int
	if err := r.db.QueryRow(ctx, query, userID, actions, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта действий: %w", err)
	}
	return count, nil
}

// Insert добавляет одну запись в лог действий.
func (r *Repository) Insert(ctx context.Context, userID int64, action string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO action_logs (user_id, action) VALUES ($1, $2)`,
		userID, action,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи лога действий: %w", err)
	}
	return nil
}

// PruneOlder удаляет записи старше cutoff, возвращает число удалённых.
// Чистка не влияет на корректность окон, пока retention >= самого
// длинного настроенного окна.
func (r *Repository) PruneOlder(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM action_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("ошибка чистки лога действий: %w", err)
	}
	return tag.RowsAffected(), nil
}
