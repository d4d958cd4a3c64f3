// Package matching — repository.go выполняет операции с таблицами
// likes и matches. Уникальные ограничения БД здесь — последний арбитр
// конкурентных дубликатов: нарушение уникальности трактуется как
// "уже существует", а не как ошибка.
package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dating-bot/internal/db/postgres"
	"dating-bot/internal/features/profiles"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InsertInteraction записывает реакцию. Возвращает false, если пара
// (from, to) уже есть — повторная реакция не ошибка, а no-op.
func (r *Repository) InsertInteraction(ctx context.Context, fromID, toID int64, isLike bool) (bool, error) {
	query := `
		INSERT INTO likes (from_user_id, to_user_id, is_like)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_user_id, to_user_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, fromID, toID, isLike)
	if err != nil {
		return false, fmt.Errorf("ошибка записи реакции: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// HasLike проверяет наличие лайка (именно лайка, не скипа) from → to.
func (r *Repository) HasLike(ctx context.Context, fromID, toID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM likes
			WHERE from_user_id = $1 AND to_user_id = $2 AND is_like = TRUE
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, fromID, toID).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки встречного лайка: %w", err)
	}
	return exists, nil
}

// InsertMatch создаёт матч для канонической пары. Возвращает false,
// если матч уже существует — в том числе при конкурентной вставке
// с двух сторон, которую ловит уникальное ограничение.
func (r *Repository) InsertMatch(ctx context.Context, user1ID, user2ID int64) (bool, error) {
	query := `INSERT INTO matches (user1_id, user2_id) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, user1ID, user2ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка создания матча: %w", err)
	}
	return true, nil
}

// NextCandidate возвращает следующую подходящую анкету для зрителя
// или nil, если лента пуста. Побочных эффектов нет — лог показа
// пишет вызывающий код.
func (r *Repository) NextCandidate(ctx context.Context, viewer *profiles.Profile) (*profiles.Profile, error) {
	query, args := BuildCandidateQuery(viewer)

	var p profiles.Profile
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.TgID, &p.Username, &p.Name, &p.Age, &p.Gender, &p.LookingFor,
		&p.About, &p.Region, &p.District, &p.Hromada, &p.Settlement,
		&p.SearchScope, &p.SearchGlobal, &p.AgeFilterEnabled, &p.Active, &p.IsBanned, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка подбора кандидата: %w", err)
	}

	if err := r.loadPhotos(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) loadPhotos(ctx context.Context, p *profiles.Profile) error {
	query := `
		SELECT id, user_id, file_id, is_main
		FROM photos
		WHERE user_id = $1
		ORDER BY is_main DESC, id
	`
	rows, err := r.db.Query(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("ошибка чтения фото кандидата: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ph profiles.Photo
		if err := rows.Scan(&ph.ID, &ph.UserID, &ph.FileID, &ph.IsMain); err != nil {
			return fmt.Errorf("ошибка сканирования фото: %w", err)
		}
		p.Photos = append(p.Photos, ph)
	}
	return rows.Err()
}

// MatchedOtherIDs возвращает id вторых половинок всех матчей пользователя,
// свежие матчи первыми.
func (r *Repository) MatchedOtherIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT CASE WHEN user1_id = $1 THEN user2_id ELSE user1_id END
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения матчей: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования матча: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// CountInteractions возвращает число записей в журнале реакций.
func (r *Repository) CountInteractions(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта реакций: %w", err)
	}
	return n, nil
}

// CountMatches возвращает число матчей.
func (r *Repository) CountMatches(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта матчей: %w", err)
	}
	return n, nil
}

// ResetInteractions очищает историю лайков/скипов (матчи не трогаем).
// Используется ежедневным сбросом и /reset_swipes: анкеты начинают
// показываться заново.
func (r *Repository) ResetInteractions(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM likes`)
	if err != nil {
		return 0, fmt.Errorf("ошибка сброса реакций: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ResetFeed очищает и реакции, и матчи (анкеты остаются).
func (r *Repository) ResetFeed(ctx context.Context) (likes, matches int64, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM likes`)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка очистки реакций: %w", err)
	}
	likes = tag.RowsAffected()

	tag, err = tx.Exec(ctx, `DELETE FROM matches`)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка очистки матчей: %w", err)
	}
	matches = tag.RowsAffected()

	return likes, matches, tx.Commit(ctx)
}
