package antiflood

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dating-bot/internal/config"
)

// fakeLogStore — in-memory реализация LogStore для тестов.
type fakeLogStore struct {
	entries []ActionLogEntry
	failing bool
	now     func() time.Time
}

func (f *fakeLogStore) CountSince(_ context.Context, userID int64, actions []string, since time.Time) (int, error) {
	if f.failing {
		return 0, errors.New("db down")
	}
	count := 0
	for _, e := range f.entries {
		if e.UserID != userID || e.CreatedAt.Before(since) {
			continue
		}
		for _, a := range actions {
			if e.Action == a {
				count++
				break
			}
		}
	}
	return count, nil
}

func (f *fakeLogStore) Insert(_ context.Context, userID int64, action string) error {
	if f.failing {
		return errors.New("db down")
	}
	f.entries = append(f.entries, ActionLogEntry{UserID: userID, Action: action, CreatedAt: f.now()})
	return nil
}

func (f *fakeLogStore) PruneOlder(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []ActionLogEntry
	var deleted int64
	for _, e := range f.entries {
		if e.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
	return deleted, nil
}

func newTestService(t *testing.T) (*Service, *fakeLogStore, *time.Time) {
	t.Helper()

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := start
	clock := func() time.Time { return now }

	store := &fakeLogStore{now: clock}
	cfg := &config.Config{
		LikeLimitPerHour:    20,
		ViewLimitPerMin:     40,
		ActionLimitPerMin:   60,
		FeedbackLimitPerDay: 3,
		ActionLogRetention:  72 * time.Hour,
	}
	svc := NewService(store, cfg)
	svc.now = clock

	// возвращаем указатель на now, чтобы тест мог "мотать" часы
	return svc, store, &now
}

func TestAllowedBoundary(t *testing.T) {
	ctx := context.Background()
	svc, _, now := newTestService(t)

	actions := []string{"like"}

	// limit=3, window=60s: три действия проходят, четвёртое — нет
	for i := 0; i < 3; i++ {
		ok, err := svc.Allowed(ctx, 1, actions, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "действие %d должно пройти", i+1)
		require.NoError(t, svc.Record(ctx, 1, "like"))
	}

	ok, err := svc.Allowed(ctx, 1, actions, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "четвёртая проверка должна упереться в лимит")

	// по истечении окна — снова можно
	*now = now.Add(61 * time.Second)
	ok, err = svc.Allowed(ctx, 1, actions, 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllowedZeroLimitUnrestricted(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	for i := 0; i < 100; i++ {
		require.NoError(t, svc.Record(ctx, 1, "view"))
	}

	// limit <= 0 — лимит отключён конфигурацией
	ok, err := svc.Allowed(ctx, 1, []string{"view"}, 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Allowed(ctx, 1, []string{"view"}, -5, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllowedCountsOnlyListedActions(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	require.NoError(t, svc.Record(ctx, 1, ActionLike))
	require.NoError(t, svc.Record(ctx, 1, ActionInlikeLike))
	require.NoError(t, svc.Record(ctx, 1, ActionSkip))
	require.NoError(t, svc.Record(ctx, 2, ActionLike)) // другой пользователь

	ok, err := svc.Allowed(ctx, 1, []string{ActionLike, ActionInlikeLike}, 2, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "лайк из ленты и ответный лайк делят один лимит")

	ok, err = svc.Allowed(ctx, 1, []string{ActionSkip}, 2, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "скипы не должны учитываться в лимите лайков")
}

func TestLikeLimiterFailsClosed(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	store.failing = true

	// лайки: при ошибке БД запрещаем
	assert.False(t, svc.AllowLike(ctx, 1))
	// просмотры и действия: при ошибке БД пропускаем
	assert.True(t, svc.AllowView(ctx, 1))
	assert.True(t, svc.AllowAction(ctx, 1))
	assert.True(t, svc.AllowFeedback(ctx, 1))
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	svc, store, now := newTestService(t)

	require.NoError(t, svc.Record(ctx, 1, ActionView))
	*now = now.Add(73 * time.Hour)
	require.NoError(t, svc.Record(ctx, 1, ActionView))

	deleted, err := svc.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Len(t, store.entries, 1)

	// свежая запись по-прежнему учитывается
	count, err := store.CountSince(ctx, 1, []string{ActionView}, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
