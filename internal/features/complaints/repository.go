// Package complaints — repository.go работает с таблицей complaints.
package complaints

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"dating-bot/internal/db/postgres"
)

// Repository хранит жалобы.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий жалоб.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет жалобу. Возвращает false без ошибки, если этот
// пользователь уже жаловался на эту анкету: уникальный индекс —
// арбитр повторов, в том числе конкурентных.
func (r *Repository) Insert(ctx context.Context, reporterID, targetID int64, reason string) (bool, error) {
	query := `
		INSERT INTO complaints (reporter_user_id, target_user_id, reason)
		VALUES ($1, $2, $3)
		ON CONFLICT (reporter_user_id, target_user_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, reporterID, targetID, reason)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка сохранения жалобы: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountForTarget возвращает число жалоб на анкету.
func (r *Repository) CountForTarget(ctx context.Context, targetID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM complaints WHERE target_user_id = $1`, targetID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта жалоб: %w", err)
	}
	return count, nil
}

// TotalCount — общее число жалоб (для /stats).
func (r *Repository) TotalCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM complaints`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта жалоб: %w", err)
	}
	return count, nil
}
