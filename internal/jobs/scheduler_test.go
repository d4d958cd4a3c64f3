package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dating-bot/internal/bot/fsm"
	"dating-bot/internal/config"
	"dating-bot/internal/features/antiflood"
)

// fakeLogStore — заглушка журнала действий, считающая вызовы чистки.
type fakeLogStore struct {
	pruneCalls int
	pruned     int64
}

func (f *fakeLogStore) CountSince(context.Context, int64, []string, time.Time) (int, error) {
	return 0, nil
}

func (f *fakeLogStore) Insert(context.Context, int64, string) error { return nil }

func (f *fakeLogStore) PruneOlder(context.Context, time.Time) (int64, error) {
	f.pruneCalls++
	return f.pruned, nil
}

func TestHourlyCleanup(t *testing.T) {
	store := &fakeLogStore{pruned: 7}
	cfg := &config.Config{ActionLogRetention: 72 * time.Hour}
	states := fsm.NewStore(10 * time.Millisecond)

	states.Set(1, "reg_name", nil)
	states.Set(2, "feedback_text", nil)
	time.Sleep(20 * time.Millisecond)
	states.Set(3, "reg_age", nil) // живое состояние переживает уборку

	s := &Scheduler{
		flood:  antiflood.NewService(store, cfg),
		states: states,
		cfg:    cfg,
	}
	s.hourlyCleanup(context.Background())

	assert.Equal(t, 1, store.pruneCalls)
	assert.Nil(t, states.Get(1))
	assert.Nil(t, states.Get(2))
	assert.NotNil(t, states.Get(3))
}
