// Package matching — scope.go: чистые функции подбора.
// Здесь нет ни БД, ни Telegram — только правила, какие анкеты
// подходят зрителю по географии и возрасту.
package matching

import "dating-bot/internal/features/profiles"

// ScopeCondition — условие равенства по полю адреса кандидата.
type ScopeCondition struct {
	Field string // имя колонки users: region/district/hromada/settlement
	Value string
}

// NormalizeScope приводит уровень поиска анкеты к одному из пяти значений.
// Легаси-флаг search_global главнее search_scope: у старых анкет колонка
// search_scope заполнена дефолтом 'settlement', и только флаг хранит
// реальный выбор пользователя «шукаю по всій країні». При явной смене
// уровня в настройках флаг синхронизируется (см. profiles.SetSearchScope),
// поэтому search_global=true всегда означает «вся страна».
func NormalizeScope(v *profiles.Profile) string {
	if v.SearchGlobal {
		return profiles.ScopeCountry
	}
	switch v.SearchScope {
	case profiles.ScopeSettlement, profiles.ScopeHromada, profiles.ScopeDistrict,
		profiles.ScopeRegion, profiles.ScopeCountry:
		return v.SearchScope
	}
	return profiles.ScopeSettlement
}

// ScopeFilters возвращает условия по адресу для выбранного уровня поиска.
// Пустые поля зрителя просто опускаются: анкета без полного адреса
// не должна получать пустую ленту из-за недозаполненного онбординга.
func ScopeFilters(v *profiles.Profile) []ScopeCondition {
	var out []ScopeCondition
	add := func(field, value string) {
		if value != "" {
			out = append(out, ScopeCondition{Field: field, Value: value})
		}
	}

	switch NormalizeScope(v) {
	case profiles.ScopeCountry:
		return nil

	case profiles.ScopeRegion:
		add("region", v.Region)

	case profiles.ScopeDistrict:
		// Район без области не имеет смысла — сужаем только оба сразу
		if v.Region != "" && v.District != "" {
			add("region", v.Region)
			add("district", v.District)
		} else {
			add("region", v.Region)
		}

	case profiles.ScopeHromada:
		add("region", v.Region)
		add("district", v.District)
		add("hromada", v.Hromada)

	default: // settlement — самый узкий уровень
		add("region", v.Region)
		add("district", v.District)
		add("hromada", v.Hromada)
		add("settlement", v.Settlement)
	}
	return out
}

// AgeWindow возвращает границы возрастного фильтра для зрителя
// возраста age: [max(16, age-3), min(99, age+2)].
// Окно сознательно несимметрично (смещено в сторону чуть младших) —
// это продуктовое решение, не ошибка.
func AgeWindow(age int) (int, int) {
	minAge := age - 3
	if minAge < 16 {
		minAge = 16
	}
	maxAge := age + 2
	if maxAge > 99 {
		maxAge = 99
	}
	return minAge, maxAge
}
