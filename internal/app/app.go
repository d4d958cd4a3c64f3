// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы,
// обработчики и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"dating-bot/internal/bot"
	"dating-bot/internal/bot/fsm"
	"dating-bot/internal/config"
	"dating-bot/internal/db/postgres"
	"dating-bot/internal/features/admin"
	"dating-bot/internal/features/antiflood"
	"dating-bot/internal/features/complaints"
	"dating-bot/internal/features/feedback"
	"dating-bot/internal/features/locations"
	"dating-bot/internal/features/matching"
	"dating-bot/internal/features/profiles"
	"dating-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	profileRepo := profiles.NewRepository(pool)
	matchRepo := matching.NewRepository(pool)
	floodRepo := antiflood.NewRepository(pool)
	feedbackRepo := feedback.NewRepository(pool)
	complaintRepo := complaints.NewRepository(pool)
	locationRepo := locations.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 4. Сервисы ===
	profileService := profiles.NewService(profileRepo, cfg)
	floodService := antiflood.NewService(floodRepo, cfg)
	matchingService := matching.NewService(matchRepo, profileService, bot.NewNotifier(botAPI))
	feedbackService := feedback.NewService(feedbackRepo, floodService)
	complaintService := complaints.NewService(complaintRepo, profileService)
	adminService := admin.NewService(adminRepo, profileService, matchRepo, feedbackService, complaintService, cfg)

	// === 5. Обработчики ===
	states := fsm.NewStore(30 * time.Minute)
	profileHandler := profiles.NewHandler(profileService, locationRepo, states, botAPI, cfg)
	matchingHandler := matching.NewHandler(matchingService, profileService, floodService, botAPI)
	feedbackHandler := feedback.NewHandler(feedbackService, profileService, states, botAPI)
	complaintHandler := complaints.NewHandler(complaintService, profileService, states, botAPI)
	adminHandler := admin.NewHandler(adminService, botAPI)

	// === 6. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		profileHandler,
		matchingHandler,
		feedbackHandler,
		complaintHandler,
		adminHandler,
	)

	// === 7. Планировщик задач ===
	scheduler := jobs.NewScheduler(adminService, floodService, states, cfg, b.SendMessageToUser)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Users},
		{2, migration002Likes},
		{3, migration003ActionLogs},
		{4, migration004Feedbacks},
		{5, migration005Complaints},
		{6, migration006Locations},
		{7, migration007Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Users = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    tg_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    name VARCHAR(128) NOT NULL,
    age INTEGER NOT NULL,
    gender VARCHAR(1) NOT NULL,
    looking_for VARCHAR(1) NOT NULL,
    about TEXT,
    region VARCHAR(128),
    district VARCHAR(128),
    hromada VARCHAR(128),
    settlement VARCHAR(128),
    search_scope VARCHAR(16) NOT NULL DEFAULT 'settlement',
    search_global BOOLEAN NOT NULL DEFAULT FALSE,
    age_filter_enabled BOOLEAN NOT NULL DEFAULT TRUE,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    is_banned BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_tg_id ON users(tg_id);
CREATE INDEX IF NOT EXISTS idx_users_region_district_hromada ON users(region, district, hromada);
CREATE INDEX IF NOT EXISTS idx_users_active ON users(active) WHERE active = TRUE;

CREATE TABLE IF NOT EXISTS photos (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    file_id VARCHAR(255) NOT NULL,
    is_main BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_photos_user_id ON photos(user_id);
`

var migration002Likes = `
CREATE TABLE IF NOT EXISTS likes (
    id BIGSERIAL PRIMARY KEY,
    from_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    to_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    is_like BOOLEAN NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT uq_likes_pair UNIQUE (from_user_id, to_user_id)
);
CREATE INDEX IF NOT EXISTS idx_likes_to_user ON likes(to_user_id) WHERE is_like = TRUE;

CREATE TABLE IF NOT EXISTS matches (
    id BIGSERIAL PRIMARY KEY,
    user1_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    user2_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT uq_matches_pair UNIQUE (user1_id, user2_id),
    CONSTRAINT chk_matches_order CHECK (user1_id < user2_id)
);
CREATE INDEX IF NOT EXISTS idx_matches_user1 ON matches(user1_id);
CREATE INDEX IF NOT EXISTS idx_matches_user2 ON matches(user2_id);
`

var migration003ActionLogs = `
CREATE TABLE IF NOT EXISTS action_logs (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    action VARCHAR(32) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_action_logs_user_action_time
    ON action_logs(user_id, action, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_action_logs_created_at ON action_logs(created_at);
`

var migration004Feedbacks = `
CREATE TABLE IF NOT EXISTS feedbacks (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    tg_id BIGINT NOT NULL,
    username VARCHAR(255),
    category VARCHAR(32) NOT NULL DEFAULT 'general',
    status VARCHAR(32) NOT NULL DEFAULT 'new',
    description TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_feedbacks_status ON feedbacks(status);
`

var migration005Complaints = `
CREATE TABLE IF NOT EXISTS complaints (
    id BIGSERIAL PRIMARY KEY,
    reporter_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    target_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    reason VARCHAR(512) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT uq_complaints_pair UNIQUE (reporter_user_id, target_user_id)
);
CREATE INDEX IF NOT EXISTS idx_complaints_target ON complaints(target_user_id);
`

var migration006Locations = `
CREATE TABLE IF NOT EXISTS ua_locations (
    id INTEGER PRIMARY KEY,
    level1 VARCHAR(32),
    level2 VARCHAR(32),
    level3 VARCHAR(32),
    level4 VARCHAR(32),
    level_extra VARCHAR(32),
    category VARCHAR(2),
    name VARCHAR(256) NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ua_locations_category ON ua_locations(category);
CREATE INDEX IF NOT EXISTS idx_ua_locations_l1 ON ua_locations(level1);
CREATE INDEX IF NOT EXISTS idx_ua_locations_l1_l2 ON ua_locations(level1, level2);
CREATE INDEX IF NOT EXISTS idx_ua_locations_l1_l2_l3_cat ON ua_locations(level1, level2, level3, category);
`

var migration007Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    session_token VARCHAR(255) UNIQUE,
    authenticated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMPTZ,
    last_activity TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_user_id ON admin_sessions(user_id);

CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    attempt_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    success BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_admin_login_attempts_user ON admin_login_attempts(user_id, attempt_time);
`
