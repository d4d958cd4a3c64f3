package matching

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dating-bot/internal/features/profiles"
)

//
// In-memory фейки журнала, хранилища анкет и нотификатора.
// Фейковый журнал повторяет контракт БД: уникальная пара (from, to)
// в likes, уникальная каноническая пара в matches.
//

type fakeLedger struct {
	mu           sync.Mutex
	interactions map[[2]int64]bool // (from,to) -> is_like
	matchPairs   map[[2]int64]bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		interactions: make(map[[2]int64]bool),
		matchPairs:   make(map[[2]int64]bool),
	}
}

func (f *fakeLedger) InsertInteraction(_ context.Context, fromID, toID int64, isLike bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{fromID, toID}
	if _, exists := f.interactions[key]; exists {
		return false, nil
	}
	f.interactions[key] = isLike
	return true, nil
}

func (f *fakeLedger) HasLike(_ context.Context, fromID, toID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	isLike, exists := f.interactions[[2]int64{fromID, toID}]
	return exists && isLike, nil
}

func (f *fakeLedger) InsertMatch(_ context.Context, user1ID, user2ID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]int64{user1ID, user2ID}
	if f.matchPairs[key] {
		return false, nil
	}
	f.matchPairs[key] = true
	return true, nil
}

func (f *fakeLedger) MatchedOtherIDs(_ context.Context, userID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for pair := range f.matchPairs {
		switch userID {
		case pair[0]:
			out = append(out, pair[1])
		case pair[1]:
			out = append(out, pair[0])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (f *fakeLedger) interactionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.interactions)
}

func (f *fakeLedger) matchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.matchPairs)
}

type fakeProfileStore struct {
	byID map[int64]*profiles.Profile
}

func (f *fakeProfileStore) GetByID(_ context.Context, id int64) (*profiles.Profile, error) {
	return f.byID[id], nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	liked  [][2]int64 // (from, to)
	matchs [][2]int64 // (recipient, other)
}

func (f *fakeNotifier) NotifyLiked(from, to *profiles.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.liked = append(f.liked, [2]int64{from.ID, to.ID})
}

func (f *fakeNotifier) NotifyMatch(recipient, other *profiles.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matchs = append(f.matchs, [2]int64{recipient.ID, other.ID})
}

func (f *fakeNotifier) likedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.liked)
}

func (f *fakeNotifier) matchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.matchs)
}

func activeProfile(id int64) *profiles.Profile {
	return &profiles.Profile{
		ID:     id,
		TgID:   1000 + id,
		Name:   "user",
		Age:    25,
		Active: true,
	}
}

func newMatchService(people ...*profiles.Profile) (*Service, *fakeLedger, *fakeNotifier) {
	store := &fakeProfileStore{byID: make(map[int64]*profiles.Profile)}
	for _, p := range people {
		store.byID[p.ID] = p
	}
	ledger := newFakeLedger()
	notifier := &fakeNotifier{}
	svc := &Service{
		ledger:   ledger,
		matches:  ledger,
		store:    store,
		notifier: notifier,
	}
	return svc, ledger, notifier
}

func TestPutReactionNoSelfMatch(t *testing.T) {
	ctx := context.Background()
	a := activeProfile(1)
	svc, ledger, _ := newMatchService(a)

	matched, other, err := svc.PutReaction(ctx, a, a.ID, true)
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Nil(t, other)
	assert.Zero(t, ledger.interactionCount())
}

func TestPutReactionUnknownTarget(t *testing.T) {
	ctx := context.Background()
	a := activeProfile(1)
	svc, ledger, _ := newMatchService(a)

	matched, other, err := svc.PutReaction(ctx, a, 999, true)
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Nil(t, other)
	assert.Zero(t, ledger.interactionCount())
}

func TestPutReactionIdempotent(t *testing.T) {
	ctx := context.Background()
	a, b := activeProfile(1), activeProfile(2)
	svc, ledger, notifier := newMatchService(a, b)

	matched, _, err := svc.PutReaction(ctx, a, b.ID, true)
	require.NoError(t, err)
	assert.False(t, matched)

	// повторный лайк — тихий no-op: одна запись, без второго уведомления
	matched, other, err := svc.PutReaction(ctx, a, b.ID, true)
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Nil(t, other)
	assert.Equal(t, 1, ledger.interactionCount())

	assert.Eventually(t, func() bool { return notifier.likedCount() == 1 },
		time.Second, 10*time.Millisecond, "уведомление о лайке ровно одно")
}

func TestPutReactionSkipIsSilent(t *testing.T) {
	ctx := context.Background()
	a, b := activeProfile(1), activeProfile(2)
	svc, ledger, notifier := newMatchService(a, b)

	matched, other, err := svc.PutReaction(ctx, a, b.ID, false)
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Nil(t, other)
	assert.Equal(t, 1, ledger.interactionCount(), "скип тоже попадает в журнал (история показов)")

	// скип не рождает ни уведомлений, ни матчей
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, notifier.likedCount())
	assert.Zero(t, ledger.matchCount())
}

func TestReciprocityCreatesSingleMatch(t *testing.T) {
	ctx := context.Background()
	a, b := activeProfile(1), activeProfile(2)
	svc, ledger, notifier := newMatchService(a, b)

	matched, _, err := svc.PutReaction(ctx, a, b.ID, true)
	require.NoError(t, err)
	assert.False(t, matched, "первый лайк — ещё не матч")

	matched, other, err := svc.PutReaction(ctx, b, a.ID, true)
	require.NoError(t, err)
	assert.True(t, matched)
	require.NotNil(t, other)
	assert.Equal(t, a.ID, other.ID)

	assert.Equal(t, 1, ledger.matchCount())
	assert.True(t, ledger.matchPairs[[2]int64{1, 2}], "пара хранится канонически: меньший id первым")

	// обе стороны получили карточку матча
	assert.Equal(t, 2, notifier.matchCount())
}

func TestMatchSymmetry(t *testing.T) {
	ctx := context.Background()

	// какой бы стороной ни начали, строка матча одна и та же
	for _, firstFromA := range []bool{true, false} {
		a, b := activeProfile(1), activeProfile(2)
		svc, ledger, _ := newMatchService(a, b)

		if firstFromA {
			_, _, err := svc.PutReaction(ctx, a, b.ID, true)
			require.NoError(t, err)
			_, _, err = svc.PutReaction(ctx, b, a.ID, true)
			require.NoError(t, err)
		} else {
			_, _, err := svc.PutReaction(ctx, b, a.ID, true)
			require.NoError(t, err)
			_, _, err = svc.PutReaction(ctx, a, b.ID, true)
			require.NoError(t, err)
		}

		assert.Equal(t, 1, ledger.matchCount())
		assert.True(t, ledger.matchPairs[[2]int64{1, 2}])
	}
}

func TestExistingMatchNoDuplicateNotifications(t *testing.T) {
	ctx := context.Background()
	a, b := activeProfile(1), activeProfile(2)
	svc, ledger, notifier := newMatchService(a, b)

	// матч уже существует (конкурентная вставка со второй стороны)
	_, err := ledger.InsertMatch(ctx, 1, 2)
	require.NoError(t, err)
	_, err = ledger.InsertInteraction(ctx, b.ID, a.ID, true)
	require.NoError(t, err)

	matched, other, err := svc.PutReaction(ctx, a, b.ID, true)
	require.NoError(t, err)
	assert.False(t, matched, "существующий матч не считается созданным заново")
	require.NotNil(t, other, "но вторая сторона возвращается")
	assert.Equal(t, b.ID, other.ID)
	assert.Zero(t, notifier.matchCount(), "без повторных карточек матча")
}

func TestPutReactionInactiveActorRejected(t *testing.T) {
	ctx := context.Background()
	a, b := activeProfile(1), activeProfile(2)
	a.Active = false
	svc, ledger, _ := newMatchService(a, b)

	matched, other, err := svc.PutReaction(ctx, a, b.ID, true)
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Nil(t, other)
	assert.Zero(t, ledger.interactionCount(), "действия скрытой анкеты отклоняются защитной проверкой")
}

func TestPutReactionBannedTargetIgnored(t *testing.T) {
	ctx := context.Background()
	a, b := activeProfile(1), activeProfile(2)
	b.IsBanned = true
	svc, ledger, notifier := newMatchService(a, b)

	matched, other, err := svc.PutReaction(ctx, a, b.ID, true)
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Nil(t, other)
	assert.Zero(t, ledger.interactionCount())

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, notifier.likedCount(), "забаненная анкета не получает уведомлений")
}

func TestMatchedProfilesSkipsDeleted(t *testing.T) {
	ctx := context.Background()
	a, b := activeProfile(1), activeProfile(2)
	svc, ledger, _ := newMatchService(a, b)

	_, err := ledger.InsertMatch(ctx, 1, 2)
	require.NoError(t, err)
	_, err = ledger.InsertMatch(ctx, 1, 3) // анкета 3 уже удалена
	require.NoError(t, err)

	got, err := svc.MatchedProfiles(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
}
