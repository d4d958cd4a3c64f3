// Package profiles — keyboards.go: главное меню и клавиатуры анкеты.
package profiles

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Тексты кнопок главного меню. Константы, чтобы роутер и хендлеры
// сверяли один и тот же текст.
const (
	BtnBrowse   = "👀 Перегляд анкет"
	BtnProfile  = "👤 Моя анкета"
	BtnMatches  = "❤️ Взаємні лайки"
	BtnSettings = "⚙️ Налаштування"
	BtnSkip     = "⏭️ Пропустити"
)

// MainMenuKeyboard — постоянная reply-клавиатура главного меню.
func MainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(BtnBrowse)),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnProfile),
			tgbotapi.NewKeyboardButton(BtnMatches),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(BtnSettings)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// GenderKeyboard — выбор пола при регистрации.
func GenderKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("👨 Чоловік"),
			tgbotapi.NewKeyboardButton("👩 Жінка"),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// LookingForKeyboard — выбор «кого шукаю».
func LookingForKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("👨 Хлопців"),
			tgbotapi.NewKeyboardButton("👩 Дівчат"),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("🌍 Усіх")),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// SkipAboutKeyboard — кнопка пропуска шага «о себе».
func SkipAboutKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(BtnSkip)),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// optionsKeyboard раскладывает варианты по две кнопки в ряд и
// добавляет служебный хвост (Назад / Без району).
func optionsKeyboard(prefix string, names []string, tail ...tgbotapi.InlineKeyboardButton) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for idx, name := range names {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(name, fmt.Sprintf("%s:%d", prefix, idx)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	for _, btn := range tail {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{btn})
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func regionsKeyboard(names []string) tgbotapi.InlineKeyboardMarkup {
	return optionsKeyboard("loc:r", names,
		tgbotapi.NewInlineKeyboardButtonData("Назад ↩️", "loc:r:back"))
}

func districtsKeyboard(names []string) tgbotapi.InlineKeyboardMarkup {
	return optionsKeyboard("loc:d", names,
		tgbotapi.NewInlineKeyboardButtonData("Без району", "loc:d:none"),
		tgbotapi.NewInlineKeyboardButtonData("Назад ↩️", "loc:d:back"))
}

func hromadasKeyboard(names []string) tgbotapi.InlineKeyboardMarkup {
	return optionsKeyboard("loc:h", names,
		tgbotapi.NewInlineKeyboardButtonData("Назад ↩️", "loc:h:back"))
}

func settlementsKeyboard(names []string) tgbotapi.InlineKeyboardMarkup {
	return optionsKeyboard("loc:s", names,
		tgbotapi.NewInlineKeyboardButtonData("Назад ↩️", "loc:s:back"))
}

// ScopeKeyboard — выбор уровня поиска. Текущий уровень помечен галочкой.
func ScopeKeyboard(current string) tgbotapi.InlineKeyboardMarkup {
	order := []string{ScopeSettlement, ScopeHromada, ScopeDistrict, ScopeRegion, ScopeCountry}
	labels := map[string]string{
		ScopeSettlement: "Тільки в цьому населеному пункті",
		ScopeHromada:    "У громаді",
		ScopeDistrict:   "У районі",
		ScopeRegion:     "У області",
		ScopeCountry:    "По всій країні",
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, scope := range order {
		label := labels[scope]
		if scope == current {
			label = "✓ " + label
		}
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, "loc:scope:"+scope),
		})
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// SettingsKeyboard — меню настроек анкеты.
func SettingsKeyboard(p *Profile) tgbotapi.InlineKeyboardMarkup {
	activeMode := "🟢 Анкета видима"
	if !p.Active {
		activeMode = "⏸️ Анкета на паузі"
	}
	ageMode := "✅ Увімкнений"
	if !p.AgeFilterEnabled {
		ageMode = "❌ Вимкнений"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"🔎 Пошук: "+ScopeHuman(p.SearchScope), "settings:scope")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"🧾 Статус: "+activeMode, "settings:toggle_active")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"🎂 Віковий фільтр: "+ageMode, "settings:toggle_age_filter")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Видалити анкету", "profile:delete")),
	)
}

// ProfileManageKeyboard — инлайн-кнопки редактирования под карточкой
// собственной анкеты.
func ProfileManageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Ім'я", "profile:edit_name"),
			tgbotapi.NewInlineKeyboardButtonData("🎂 Вік", "profile:edit_age"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚻 Стать", "profile:edit_gender"),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Кого шукаю", "profile:edit_looking"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗺️ Адреса", "profile:edit_location"),
			tgbotapi.NewInlineKeyboardButtonData("📝 Про себе", "profile:edit_about"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🖼️ Фото", "profile:edit_photo"),
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Видалити", "profile:delete"),
		),
	)
}

// OpenSettingsKeyboard — кнопка перехода в настройки из подсказок.
func OpenSettingsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Відкрити налаштування", "settings:open")),
	)
}

func confirmDeleteKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Так, видалити", "profile_delete:yes"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Ні", "profile_delete:no"),
		),
	)
}
