// Package profiles управляет анкетами пользователей: создание, просмотр,
// настройки поиска, фото, бан и удаление.
// models.go описывает структуры данных для таблиц users и photos.
package profiles

import (
	"fmt"
	"time"
)

// Коды пола и предпочтений поиска (хранятся в БД одной буквой).
const (
	GenderMale   = "M"
	GenderFemale = "F"
	LookingAny   = "A"
)

// Уровни географии поиска, от самого узкого к самому широкому.
const (
	ScopeSettlement = "settlement"
	ScopeHromada    = "hromada"
	ScopeDistrict   = "district"
	ScopeRegion     = "region"
	ScopeCountry    = "country"
)

// Profile — анкета пользователя.
type Profile struct {
	ID       int64  `db:"id"`       // Внутренний ID (используется в лайках/матчах)
	TgID     int64  `db:"tg_id"`    // Telegram user ID (уникальный)
	Username string `db:"username"` // @username (может быть пустым)

	Name       string `db:"name"`        // Имя в анкете
	Age        int    `db:"age"`         // 16..99
	Gender     string `db:"gender"`      // 'M' / 'F'
	LookingFor string `db:"looking_for"` // 'M' / 'F' / 'A'
	About      string `db:"about"`       // Текст "о себе" (может быть пустым)

	// Адрес свободным текстом; сравнивается с другими анкетами посимвольно.
	// Пустое поле означает "не указано" и не участвует в фильтрах поиска.
	Region     string `db:"region"`
	District   string `db:"district"`
	Hromada    string `db:"hromada"`
	Settlement string `db:"settlement"`

	SearchScope      string `db:"search_scope"`       // Уровень географии поиска
	SearchGlobal     bool   `db:"search_global"`      // Легаси-флаг: true = вся страна
	AgeFilterEnabled bool   `db:"age_filter_enabled"` // Фильтр по возрасту включён

	Active   bool `db:"active"`    // false = анкета на паузе, скрыта из поиска
	IsBanned bool `db:"is_banned"` // true = полностью исключена из всех операций

	CreatedAt time.Time `db:"created_at"`

	Photos []Photo `db:"-"` // Загружаются отдельным запросом
}

// Photo — фотография анкеты (Telegram file_id).
type Photo struct {
	ID     int64  `db:"id"`
	UserID int64  `db:"user_id"`
	FileID string `db:"file_id"`
	IsMain bool   `db:"is_main"`
}

// MainPhotoFileID возвращает file_id главной фотографии.
// Если главная не помечена — берём первую. Пустая строка = фото нет.
func (p *Profile) MainPhotoFileID() string {
	for _, ph := range p.Photos {
		if ph.IsMain {
			return ph.FileID
		}
	}
	if len(p.Photos) > 0 {
		return p.Photos[0].FileID
	}
	return ""
}

// ValidScope проверяет, что строка — известный уровень поиска.
func ValidScope(scope string) bool {
	switch scope {
	case ScopeSettlement, ScopeHromada, ScopeDistrict, ScopeRegion, ScopeCountry:
		return true
	}
	return false
}

// Visible сообщает, участвует ли анкета в подборе кандидатов.
func (p *Profile) Visible() bool {
	return p.Active && !p.IsBanned
}

// ContactURL возвращает ссылку для связи с владельцем анкеты.
func (p *Profile) ContactURL() string {
	if p.Username != "" {
		return "https://t.me/" + p.Username
	}
	return fmt.Sprintf("tg://user?id=%d", p.TgID)
}
