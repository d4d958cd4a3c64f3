package matching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dating-bot/internal/features/profiles"
)

func TestBuildCandidateQueryBase(t *testing.T) {
	v := &profiles.Profile{ID: 10, LookingFor: profiles.LookingAny}
	query, args := BuildCandidateQuery(v)

	assert.Equal(t, []any{int64(10)}, args)

	// базовые условия присутствуют всегда
	assert.Contains(t, query, "u.active = TRUE")
	assert.Contains(t, query, "u.is_banned = FALSE")
	assert.Contains(t, query, "u.id <> $1")
	assert.Contains(t, query, "l.from_user_id = $1 AND l.to_user_id = u.id")
	assert.Contains(t, query, "m.user1_id = $1 AND m.user2_id = u.id")
	assert.Contains(t, query, "ORDER BY u.created_at DESC, u.id DESC")
	assert.Contains(t, query, "LIMIT 1")

	// "будь-хто" не добавляет фильтр по полу (колонка в SELECT остаётся)
	assert.NotContains(t, query, "u.gender = $")
	// фильтр возраста выключен
	assert.NotContains(t, query, "u.age BETWEEN $")
}

func TestBuildCandidateQueryGenderFilter(t *testing.T) {
	v := &profiles.Profile{ID: 10, LookingFor: profiles.GenderFemale}
	query, args := BuildCandidateQuery(v)

	assert.Contains(t, query, "u.gender = $2")
	assert.Equal(t, []any{int64(10), "F"}, args)
}

func TestBuildCandidateQueryScenario(t *testing.T) {
	// сценарий из продуктовых требований: Одеська область, scope=region,
	// шукає дівчат, 25 лет, возрастной фильтр включён
	v := &profiles.Profile{
		ID:               42,
		Age:              25,
		LookingFor:       profiles.GenderFemale,
		Region:           "Одеська",
		SearchScope:      profiles.ScopeRegion,
		AgeFilterEnabled: true,
	}
	query, args := BuildCandidateQuery(v)

	assert.Equal(t, []any{int64(42), "F", "Одеська", 22, 27}, args)
	assert.Contains(t, query, "u.gender = $2")
	assert.Contains(t, query, "u.region = $3")
	assert.Contains(t, query, "u.age BETWEEN $4 AND $5")
}

func TestBuildCandidateQuerySettlementNarrowing(t *testing.T) {
	v := fullAddressViewer(profiles.ScopeSettlement)
	query, args := BuildCandidateQuery(v)

	// все четыре поля адреса участвуют в запросе
	assert.Contains(t, query, "u.region = $2")
	assert.Contains(t, query, "u.district = $3")
	assert.Contains(t, query, "u.hromada = $4")
	assert.Contains(t, query, "u.settlement = $5")
	assert.Equal(t, []any{int64(1), "Одеська", "Одеський", "Одеська міська", "Одеса"}, args)
}

func TestBuildCandidateQueryPlaceholdersSequential(t *testing.T) {
	v := fullAddressViewer(profiles.ScopeSettlement)
	v.LookingFor = profiles.GenderMale
	v.Age = 30
	v.AgeFilterEnabled = true

	query, args := BuildCandidateQuery(v)

	// число плейсхолдеров совпадает с числом аргументов
	last := "$" + string(rune('0'+len(args)))
	assert.Contains(t, query, last)
	assert.NotContains(t, query, "$"+string(rune('0'+len(args)+1)))
	assert.Equal(t, 8, len(args))
	assert.Equal(t, strings.Count(query, "$1"), 4, "id зрителя используется в четырёх условиях")
}
