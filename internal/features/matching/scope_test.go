package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dating-bot/internal/features/profiles"
)

func fullAddressViewer(scope string) *profiles.Profile {
	return &profiles.Profile{
		ID:          1,
		Region:      "Одеська",
		District:    "Одеський",
		Hromada:     "Одеська міська",
		Settlement:  "Одеса",
		SearchScope: scope,
	}
}

func TestScopeFiltersCountry(t *testing.T) {
	v := fullAddressViewer(profiles.ScopeCountry)
	assert.Empty(t, ScopeFilters(v), "вся страна — без фильтров")
}

func TestScopeFiltersRegion(t *testing.T) {
	v := fullAddressViewer(profiles.ScopeRegion)
	assert.Equal(t, []ScopeCondition{
		{Field: "region", Value: "Одеська"},
	}, ScopeFilters(v))
}

func TestScopeFiltersDistrict(t *testing.T) {
	v := fullAddressViewer(profiles.ScopeDistrict)
	assert.Equal(t, []ScopeCondition{
		{Field: "region", Value: "Одеська"},
		{Field: "district", Value: "Одеський"},
	}, ScopeFilters(v))

	// без района сужаем только по области
	v.District = ""
	assert.Equal(t, []ScopeCondition{
		{Field: "region", Value: "Одеська"},
	}, ScopeFilters(v))
}

func TestScopeFiltersHromada(t *testing.T) {
	v := fullAddressViewer(profiles.ScopeHromada)
	assert.Equal(t, []ScopeCondition{
		{Field: "region", Value: "Одеська"},
		{Field: "district", Value: "Одеський"},
		{Field: "hromada", Value: "Одеська міська"},
	}, ScopeFilters(v))

	// пустой район опускается, а не превращается в "любой район"
	v.District = ""
	assert.Equal(t, []ScopeCondition{
		{Field: "region", Value: "Одеська"},
		{Field: "hromada", Value: "Одеська міська"},
	}, ScopeFilters(v))
}

func TestScopeFiltersSettlement(t *testing.T) {
	v := fullAddressViewer(profiles.ScopeSettlement)
	assert.Equal(t, []ScopeCondition{
		{Field: "region", Value: "Одеська"},
		{Field: "district", Value: "Одеський"},
		{Field: "hromada", Value: "Одеська міська"},
		{Field: "settlement", Value: "Одеса"},
	}, ScopeFilters(v))
}

func TestScopeFiltersEmptyAddress(t *testing.T) {
	// анкета без адреса не должна получать пустую ленту
	v := &profiles.Profile{ID: 1, SearchScope: profiles.ScopeSettlement}
	assert.Empty(t, ScopeFilters(v))
}

func TestNormalizeScopeLegacyFlag(t *testing.T) {
	// старые анкеты: только search_global
	v := &profiles.Profile{ID: 1, SearchGlobal: true}
	assert.Equal(t, profiles.ScopeCountry, NormalizeScope(v))

	v.SearchGlobal = false
	assert.Equal(t, profiles.ScopeSettlement, NormalizeScope(v))

	// легаси-флаг главнее search_scope: у старых строк колонка
	// заполнена дефолтом 'settlement', реальный выбор хранит флаг
	v.SearchScope = profiles.ScopeSettlement
	v.SearchGlobal = true
	assert.Equal(t, profiles.ScopeCountry, NormalizeScope(v))

	v.SearchScope = profiles.ScopeRegion
	assert.Equal(t, profiles.ScopeCountry, NormalizeScope(v))

	// явный уровень действует, когда флаг снят
	v.SearchGlobal = false
	assert.Equal(t, profiles.ScopeRegion, NormalizeScope(v))

	// мусор в search_scope трактуем как самый узкий уровень
	v.SearchScope = "galaxy"
	assert.Equal(t, profiles.ScopeSettlement, NormalizeScope(v))
}

func TestAgeWindowAsymmetry(t *testing.T) {
	// окно смещено к младшим: [age-3, age+2]
	minAge, maxAge := AgeWindow(30)
	assert.Equal(t, 27, minAge)
	assert.Equal(t, 32, maxAge)
}

func TestAgeWindowClamped(t *testing.T) {
	minAge, maxAge := AgeWindow(16)
	assert.Equal(t, 16, minAge, "нижняя граница не опускается ниже 16")
	assert.Equal(t, 18, maxAge)

	minAge, maxAge = AgeWindow(99)
	assert.Equal(t, 96, minAge)
	assert.Equal(t, 99, maxAge, "верхняя граница не поднимается выше 99")
}

func TestCanonicalPair(t *testing.T) {
	a, b := CanonicalPair(7, 3)
	assert.Equal(t, int64(3), a)
	assert.Equal(t, int64(7), b)

	a, b = CanonicalPair(3, 7)
	assert.Equal(t, int64(3), a)
	assert.Equal(t, int64(7), b)
}
