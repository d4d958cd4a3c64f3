//go:build ignore

// import_ua_locations.go — загрузка справочника КАТОТТГ в таблицу ua_locations.
// Запуск: go run scripts/import_ua_locations.go [путь к UA.csv]
//
// Подключение берёт те же DB_* переменные окружения, что и бот.
// Таблица перезаписывается целиком: сначала DELETE, потом COPY.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kelseyhightower/envconfig"
)

type dbConfig struct {
	Host     string `envconfig:"DB_HOST" default:"postgres"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"botuser"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	Name     string `envconfig:"DB_NAME" default:"dating_bot"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

func main() {
	path := "UA.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	rows, err := readCSV(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка чтения %s: %v\n", path, err)
		os.Exit(1)
	}

	var cfg dbConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode)

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка подключения к БД: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	n, err := replaceAll(ctx, conn, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка импорта: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Импортировано %d строк ua_locations из %s\n", n, path)
}

// readCSV разбирает файл КАТОТТГ: id, level1..level4, level_extra,
// category, name. Мусорные строки (комментарии, не-UA коды) пропускаются.
func readCSV(path string) ([][]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// заголовок
	if _, err := r.Read(); err != nil && err != io.EOF {
		return nil, err
	}

	var rows [][]any
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 8 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			continue
		}
		if rec[1] != "" && !strings.HasPrefix(rec[1], "UA") {
			continue
		}
		rows = append(rows, []any{
			id,
			short(rec[1]), short(rec[2]), short(rec[3]), short(rec[4]),
			short(rec[5]), short(rec[6]),
			strings.TrimSpace(rec[7]),
		})
	}
	return rows, nil
}

// short нормализует код уровня: пусто или длиннее 32 символов → NULL.
func short(v string) any {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > 32 {
		return nil
	}
	return v
}

func replaceAll(ctx context.Context, conn *pgx.Conn, rows [][]any) (int64, error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ua_locations`); err != nil {
		return 0, err
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"ua_locations"},
		[]string{"id", "level1", "level2", "level3", "level4", "level_extra", "category", "name"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, err
	}
	return n, tx.Commit(ctx)
}
