// Package feedback — repository.go работает с таблицей feedbacks.
package feedback

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository хранит отзывы.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий отзывов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет отзыв.
func (r *Repository) Insert(ctx context.Context, f *Feedback) error {
	query := `
		INSERT INTO feedbacks (user_id, tg_id, username, category, status, description)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, f.UserID, f.TgID, f.Username, f.Category, f.Status, f.Description)
	if err != nil {
		return fmt.Errorf("ошибка сохранения отзыва: %w", err)
	}
	return nil
}

// CountNew возвращает число необработанных отзывов (для отчёта админам).
func (r *Repository) CountNew(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM feedbacks WHERE status = $1`, StatusNew).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта отзывов: %w", err)
	}
	return count, nil
}
