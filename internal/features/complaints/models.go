// Package complaints — жалобы на анкеты.
// models.go описывает структуру жалобы.
package complaints

import "time"

// Коды причин из клавиатуры.
const (
	ReasonSpam    = "spam"
	ReasonFake    = "fake"
	ReasonObscene = "obscene"
	ReasonOther   = "other"
)

// ReasonText переводит код причины в текст. Свободный текст
// возвращается как есть.
func ReasonText(code string) string {
	switch code {
	case ReasonSpam:
		return "Спам/реклама"
	case ReasonFake:
		return "Фейкова анкета"
	case ReasonObscene:
		return "Непристойний контент"
	case ReasonOther:
		return "Інше"
	}
	return code
}

// Complaint — жалоба одного пользователя на анкету другого.
// Пара (reporter, target) уникальна.
type Complaint struct {
	ID             int64     `db:"id"`
	ReporterUserID int64     `db:"reporter_user_id"`
	TargetUserID   int64     `db:"target_user_id"`
	Reason         string    `db:"reason"`
	CreatedAt      time.Time `db:"created_at"`
}
