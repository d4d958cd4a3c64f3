// Package profiles — repository.go отвечает за все операции с таблицами
// users и photos в БД. Каждая функция выполняет один SQL-запрос
// и возвращает результат или ошибку.
package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const profileColumns = `
	id, tg_id, COALESCE(username, ''), name, age, gender, looking_for,
	COALESCE(about, ''), COALESCE(region, ''), COALESCE(district, ''),
	COALESCE(hromada, ''), COALESCE(settlement, ''),
	search_scope, search_global, age_filter_enabled, active, is_banned, created_at
`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.TgID, &p.Username, &p.Name, &p.Age, &p.Gender, &p.LookingFor,
		&p.About, &p.Region, &p.District, &p.Hromada, &p.Settlement,
		&p.SearchScope, &p.SearchGlobal, &p.AgeFilterEnabled, &p.Active, &p.IsBanned, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert создаёт или обновляет анкету по tg_id.
// Флаги active/is_banned на конфликте не трогаем — ими управляют
// настройки и админка.
func (r *Repository) Upsert(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO users (tg_id, username, name, age, gender, looking_for, about,
		                   region, district, hromada, settlement,
		                   search_scope, search_global, age_filter_enabled, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, TRUE)
		ON CONFLICT (tg_id) DO UPDATE
		SET username = EXCLUDED.username,
		    name = EXCLUDED.name,
		    age = EXCLUDED.age,
		    gender = EXCLUDED.gender,
		    looking_for = EXCLUDED.looking_for,
		    about = EXCLUDED.about,
		    region = EXCLUDED.region,
		    district = EXCLUDED.district,
		    hromada = EXCLUDED.hromada,
		    settlement = EXCLUDED.settlement,
		    search_scope = EXCLUDED.search_scope,
		    search_global = EXCLUDED.search_global,
		    age_filter_enabled = EXCLUDED.age_filter_enabled
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		p.TgID, p.Username, p.Name, p.Age, p.Gender, p.LookingFor, p.About,
		p.Region, p.District, p.Hromada, p.Settlement,
		p.SearchScope, p.SearchGlobal, p.AgeFilterEnabled,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("ошибка создания/обновления анкеты: %w", err)
	}
	return nil
}

// GetByTgID возвращает анкету по Telegram ID вместе с фото.
// Если анкеты нет — (nil, nil): отсутствие анкеты не ошибка.
func (r *Repository) GetByTgID(ctx context.Context, tgID int64) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE tg_id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, tgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения анкеты (tg_id=%d): %w", tgID, err)
	}
	if err := r.loadPhotos(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID возвращает анкету по внутреннему ID вместе с фото.
// Если анкеты нет — (nil, nil).
func (r *Repository) GetByID(ctx context.Context, id int64) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения анкеты (id=%d): %w", id, err)
	}
	if err := r.loadPhotos(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) loadPhotos(ctx context.Context, p *Profile) error {
	query := `
		SELECT id, user_id, file_id, is_main
		FROM photos
		WHERE user_id = $1
		ORDER BY is_main DESC, id
	`
	rows, err := r.db.Query(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("ошибка чтения фото (user_id=%d): %w", p.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ph Photo
		if err := rows.Scan(&ph.ID, &ph.UserID, &ph.FileID, &ph.IsMain); err != nil {
			return fmt.Errorf("ошибка сканирования фото: %w", err)
		}
		p.Photos = append(p.Photos, ph)
	}
	return rows.Err()
}

// ReplacePhotos заменяет все фото анкеты. Первая фотография — главная.
func (r *Repository) ReplacePhotos(ctx context.Context, userID int64, fileIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM photos WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("ошибка удаления старых фото: %w", err)
	}
	for i, fileID := range fileIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO photos (user_id, file_id, is_main) VALUES ($1, $2, $3)`,
			userID, fileID, i == 0,
		)
		if err != nil {
			return fmt.Errorf("ошибка добавления фото: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// SetActive включает/выключает видимость анкеты (пауза).
func (r *Repository) SetActive(ctx context.Context, userID int64, active bool) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET active = $2 WHERE id = $1`, userID, active)
	if err != nil {
		return fmt.Errorf("ошибка обновления видимости: %w", err)
	}
	return nil
}

// SetAgeFilter включает/выключает возрастной фильтр.
func (r *Repository) SetAgeFilter(ctx context.Context, userID int64, enabled bool) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET age_filter_enabled = $2 WHERE id = $1`, userID, enabled)
	if err != nil {
		return fmt.Errorf("ошибка обновления возрастного фильтра: %w", err)
	}
	return nil
}

// SetSearchScope задаёт уровень географии поиска.
// Сбрасываем и легаси-флаг, чтобы новые записи были консистентны.
func (r *Repository) SetSearchScope(ctx context.Context, userID int64, scope string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET search_scope = $2, search_global = ($2 = 'country') WHERE id = $1`,
		userID, scope,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления уровня поиска: %w", err)
	}
	return nil
}

// SetBanned ставит/снимает бан по tg_id. Возвращает false, если анкеты нет.
func (r *Repository) SetBanned(ctx context.Context, tgID int64, banned bool) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE users SET is_banned = $2 WHERE tg_id = $1`, tgID, banned)
	if err != nil {
		return false, fmt.Errorf("ошибка обновления бана: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete удаляет анкету и все связанные данные одной транзакцией.
// Лайки в обе стороны, матчи с обеих сторон, фото и жалобы уходят по
// ON DELETE CASCADE; у action_logs внешнего ключа нет, чистим явно.
func (r *Repository) Delete(ctx context.Context, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка удаления анкеты: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM action_logs WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("ошибка удаления логов действий: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("ошибка удаления анкеты: %w", err)
	}
	return tx.Commit(ctx)
}

// Stats — агрегаты для админской статистики.
type Stats struct {
	Total  int64
	Active int64
	Banned int64
}

// CountStats возвращает количество анкет по статусам.
func (r *Repository) CountStats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE active AND NOT is_banned),
		       COUNT(*) FILTER (WHERE is_banned)
		FROM users
	`
	var s Stats
	if err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.Active, &s.Banned); err != nil {
		return nil, fmt.Errorf("ошибка подсчёта статистики анкет: %w", err)
	}
	return &s, nil
}
