// Package matching — ядро знакомств: подбор следующей анкеты,
// журнал реакций (лайк/скип) и создание матчей при взаимной симпатии.
// models.go описывает структуры таблиц likes и matches.
package matching

import "time"

// Interaction — одна реакция пользователя на анкету.
// Таблица likes хранит и лайки, и скипы: любая запись означает
// "эту анкету уже показывали", и она исключается из ленты
// до внешнего сброса истории.
type Interaction struct {
	ID         int64     `db:"id"`
	FromUserID int64     `db:"from_user_id"`
	ToUserID   int64     `db:"to_user_id"`
	IsLike     bool      `db:"is_like"` // true = лайк, false = скип
	CreatedAt  time.Time `db:"created_at"`
}

// Match — подтверждённая взаимная симпатия.
// Пара нормализована: user1_id < user2_id, уникальна.
type Match struct {
	ID        int64     `db:"id"`
	User1ID   int64     `db:"user1_id"`
	User2ID   int64     `db:"user2_id"`
	CreatedAt time.Time `db:"created_at"`
}

// CanonicalPair возвращает пару в каноническом порядке (меньший id первым).
// Благодаря этому матч A↔B хранится одной строкой независимо от того,
// кто лайкнул первым.
func CanonicalPair(a, b int64) (int64, int64) {
	if a < b {
		return a, b
	}
	return b, a
}
