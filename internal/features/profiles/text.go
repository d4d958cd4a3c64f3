// Package profiles — text.go: рендер карточки анкеты и разбор
// пользовательского ввода (пол, предпочтения).
package profiles

import (
	"fmt"
	"regexp"
	"strings"
)

var spacesRe = regexp.MustCompile(`\s+`)

func normInput(text string) string {
	return spacesRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}

// ParseGender распознаёт пол из свободного ввода (укр/рус/англ).
// Возвращает "M"/"F" или пустую строку, если не распознали.
func ParseGender(text string) string {
	switch normInput(text) {
	case "ч", "ч.", "чол", "чоловік", "м", "м.", "муж", "мужчина", "мужской",
		"хлопець", "парень", "m", "male", "man":
		return GenderMale
	case "ж", "ж.", "жін", "жінка", "жен", "женщина", "женский",
		"дівчина", "девушка", "f", "female", "woman":
		return GenderFemale
	}
	return ""
}

// ParseLookingFor распознаёт предпочтение поиска ("M"/"F"/"A").
func ParseLookingFor(text string) string {
	switch normInput(text) {
	case "ч", "чол", "чоловік", "хлопець", "хлопця", "хлопці", "парень", "парня", "парни", "m", "male", "man":
		return GenderMale
	case "ж", "жін", "жінка", "дівчина", "дівчата", "дівчат", "девушка", "девушки", "f", "female", "woman":
		return GenderFemale
	case "усі", "всі", "будь-хто", "будь який", "будь-який", "будь-яка стать", "any", "all":
		return LookingAny
	}
	return ""
}

func genderHuman(code string) string {
	switch code {
	case GenderMale:
		return "Ч"
	case GenderFemale:
		return "Ж"
	}
	return code
}

func lookingForHuman(code string) string {
	switch code {
	case GenderMale:
		return "Хлопці"
	case GenderFemale:
		return "Дівчата"
	case LookingAny:
		return "Усі"
	}
	return code
}

// FormatLocation собирает читабельный адрес анкеты из заполненных полей.
func FormatLocation(p *Profile) string {
	var parts []string
	if p.Settlement != "" {
		parts = append(parts, p.Settlement)
	}
	if p.Hromada != "" {
		parts = append(parts, p.Hromada)
	}
	if p.District != "" {
		parts = append(parts, p.District)
	}
	if p.Region != "" {
		parts = append(parts, p.Region)
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, ", ")
}

// ScopeHuman — подпись уровня поиска для меню настроек.
func ScopeHuman(scope string) string {
	switch scope {
	case ScopeSettlement:
		return "мій населений пункт"
	case ScopeHromada:
		return "моя громада"
	case ScopeDistrict:
		return "мій район"
	case ScopeRegion:
		return "моя область"
	case ScopeCountry:
		return "уся країна"
	}
	return scope
}

// RenderCaption рендерит HTML-подпись карточки анкеты.
func RenderCaption(p *Profile) string {
	title := fmt.Sprintf("<b>%s, %d</b> • %s", p.Name, p.Age, FormatLocation(p))
	meta := fmt.Sprintf("Стать: %s • Шукаю: %s", genderHuman(p.Gender), lookingForHuman(p.LookingFor))
	parts := []string{title, meta}
	if p.About != "" {
		parts = append(parts, "", fmt.Sprintf("<i>%s</i>", p.About))
	}
	return strings.Join(parts, "\n")
}
