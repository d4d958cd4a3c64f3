// Package locations — repository.go: чтение справочника ua_locations.
package locations

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository — read-only доступ к таблице ua_locations.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository создаёт репозиторий справочника.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// collectItems вычитывает строки (code, name, category), отбрасывает
// пустые и дубли по коду и сортирует по имени.
func collectItems(rows pgx.Rows) ([]Item, error) {
	defer rows.Close()

	var items []Item
	seen := make(map[string]struct{})
	for rows.Next() {
		var code, name, category *string
		if err := rows.Scan(&code, &name, &category); err != nil {
			return nil, fmt.Errorf("scan ua_locations: %w", err)
		}
		if code == nil || *code == "" || name == nil || *name == "" {
			continue
		}
		if _, dup := seen[*code]; dup {
			continue
		}
		seen[*code] = struct{}{}
		item := Item{Code: *code, Name: strings.TrimSpace(*name)}
		if category != nil {
			item.Category = *category
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read ua_locations: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// ListRegions возвращает все области.
func (r *Repository) ListRegions(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT level1, name, category FROM ua_locations WHERE category = $1`,
		CategoryRegion)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	return collectItems(rows)
}

// ListDistricts возвращает районы области.
func (r *Repository) ListDistricts(ctx context.Context, regionCode string) ([]Item, error) {
	if regionCode == "" {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT level2, name, category FROM ua_locations
		 WHERE level1 = $1 AND category = $2`,
		regionCode, CategoryDistrict)
	if err != nil {
		return nil, fmt.Errorf("query districts: %w", err)
	}
	return collectItems(rows)
}

// ListHromadas возвращает громады района.
func (r *Repository) ListHromadas(ctx context.Context, regionCode, districtCode string) ([]Item, error) {
	if regionCode == "" || districtCode == "" {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT level3, name, category FROM ua_locations
		 WHERE level1 = $1 AND level2 = $2 AND category = $3`,
		regionCode, districtCode, CategoryHromada)
	if err != nil {
		return nil, fmt.Errorf("query hromadas: %w", err)
	}
	return collectItems(rows)
}

// ListSettlements возвращает населённые пункты. Коды района и громады
// опциональны: пустой код просто не сужает выборку (fallback для
// районов без громад в справочнике).
func (r *Repository) ListSettlements(ctx context.Context, regionCode, districtCode, hromadaCode string) ([]Item, error) {
	if regionCode == "" {
		return nil, nil
	}

	conds := []string{"level1 = $1", "category = ANY($2)"}
	args := []any{regionCode, SettlementCategories}
	if districtCode != "" {
		args = append(args, districtCode)
		conds = append(conds, fmt.Sprintf("level2 = $%d", len(args)))
	}
	if hromadaCode != "" {
		args = append(args, hromadaCode)
		conds = append(conds, fmt.Sprintf("level3 = $%d", len(args)))
	}

	query := "SELECT level4, name, category FROM ua_locations WHERE " + strings.Join(conds, " AND ")
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query settlements: %w", err)
	}
	return collectItems(rows)
}
