package fsm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetGetClear(t *testing.T) {
	store := NewStore(time.Minute)

	assert.Nil(t, store.Get(1))

	store.Set(1, "reg_name", "draft")
	st := store.Get(1)
	require.NotNil(t, st)
	assert.Equal(t, "reg_name", st.Name)
	assert.Equal(t, "draft", st.Data)

	store.Clear(1)
	assert.Nil(t, store.Get(1))
}

func TestStoreSetPreservesData(t *testing.T) {
	store := NewStore(time.Minute)

	store.Set(7, "step1", map[string]string{"name": "Оля"})
	// переход на следующий шаг без новых данных
	store.Set(7, "step2", nil)

	st := store.Get(7)
	require.NotNil(t, st)
	assert.Equal(t, "step2", st.Name)
	assert.Equal(t, map[string]string{"name": "Оля"}, st.Data)

	// новые данные заменяют старые
	store.Set(7, "step3", 42)
	assert.Equal(t, 42, store.Get(7).Data)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	store.Set(1, "reg_name", nil)
	store.Set(2, "reg_age", nil)
	require.NotNil(t, store.Get(1))

	time.Sleep(20 * time.Millisecond)

	assert.Nil(t, store.Get(1))
	assert.Equal(t, 2, store.Sweep())
	assert.Equal(t, 0, store.Sweep())
}

func TestStoreDefaultTTL(t *testing.T) {
	store := NewStore(0)
	store.Set(1, "x", nil)
	assert.NotNil(t, store.Get(1))
}
