// Package matching — query.go собирает SQL подбора кандидата.
// Конструктор чистый (строка + аргументы), чтобы условия можно было
// проверить тестами без базы.
package matching

import (
	"fmt"
	"strings"

	"dating-bot/internal/features/profiles"
)

const candidateColumns = `
	u.id, u.tg_id, COALESCE(u.username, ''), u.name, u.age, u.gender, u.looking_for,
	COALESCE(u.about, ''), COALESCE(u.region, ''), COALESCE(u.district, ''),
	COALESCE(u.hromada, ''), COALESCE(u.settlement, ''),
	u.search_scope, u.search_global, u.age_filter_enabled, u.active, u.is_banned, u.created_at
`

// BuildCandidateQuery возвращает запрос следующего кандидата для зрителя.
// Все условия конъюнктивны:
//  1. анкета активна и не забанена, не сам зритель;
//  2. зритель ещё не реагировал на неё (лайк ИЛИ скип = "уже видел");
//  3. нет существующего матча (защитная проверка: матч подразумевает
//     прошлый лайк, но храним условие на случай внешних правок данных);
//  4. пол по looking_for (если не "будь-хто");
//  5. география по уровню поиска;
//  6. возраст в окне, если фильтр включён.
//
// Порядок: новые анкеты первыми, при равном created_at — больший id
// (детерминированный tie-break).
func BuildCandidateQuery(v *profiles.Profile) (string, []any) {
	args := []any{v.ID}
	var sb strings.Builder

	sb.WriteString(`SELECT ` + candidateColumns + `
		FROM users u
		WHERE u.active = TRUE
		  AND u.is_banned = FALSE
		  AND u.id <> $1
		  AND NOT EXISTS (
		      SELECT 1 FROM likes l
		      WHERE l.from_user_id = $1 AND l.to_user_id = u.id
		  )
		  AND NOT EXISTS (
		      SELECT 1 FROM matches m
		      WHERE (m.user1_id = $1 AND m.user2_id = u.id)
		         OR (m.user2_id = $1 AND m.user1_id = u.id)
		  )`)

	if v.LookingFor == profiles.GenderMale || v.LookingFor == profiles.GenderFemale {
		args = append(args, v.LookingFor)
		fmt.Fprintf(&sb, "\n\t\t  AND u.gender = $%d", len(args))
	}

	for _, cond := range ScopeFilters(v) {
		args = append(args, cond.Value)
		fmt.Fprintf(&sb, "\n\t\t  AND u.%s = $%d", cond.Field, len(args))
	}

	if v.AgeFilterEnabled {
		minAge, maxAge := AgeWindow(v.Age)
		args = append(args, minAge, maxAge)
		fmt.Fprintf(&sb, "\n\t\t  AND u.age BETWEEN $%d AND $%d", len(args)-1, len(args))
	}

	sb.WriteString("\n\t\tORDER BY u.created_at DESC, u.id DESC\n\t\tLIMIT 1")
	return sb.String(), args
}
