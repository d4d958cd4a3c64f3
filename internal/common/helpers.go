// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: плюрализация, форматирование дат, разбор пользовательского ввода.
package common

import (
	"math"
	"time"
)

// PluralizeUA возвращает правильную форму украинского/русского
// существительного для числа n.
//
// Правила:
//   - n%10==1 И n%100!=11 → one (1, 21, 31, 101, ...)
//   - n%10 в [2,4] И n%100 НЕ в [12,14] → few (2, 3, 4, 22, ...)
//   - остальные случаи → many (0, 5-20, 25-30, ...)
//
// Примеры:
//
//	PluralizeUA(1, "анкета", "анкети", "анкет")  → "анкета"
//	PluralizeUA(3, "анкета", "анкети", "анкет")  → "анкети"
//	PluralizeUA(11, "анкета", "анкети", "анкет") → "анкет"
func PluralizeUA(n int64, one, few, many string) string {
	absN := int64(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return one
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return few
	}
	return many
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04" в заданном поясе.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01.2006 15:04")
}

// TruncateRunes обрезает строку до max рун (для текстов фидбека/скарг).
func TruncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
