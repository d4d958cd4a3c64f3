package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGender(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Ч", GenderMale},
		{"чоловік", GenderMale},
		{"  Хлопець  ", GenderMale},
		{"M", GenderMale},
		{"ж", GenderFemale},
		{"Дівчина", GenderFemale},
		{"female", GenderFemale},
		{"кіт", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseGender(tc.input), "input=%q", tc.input)
	}
}

func TestParseLookingFor(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"хлопця", GenderMale},
		{"Дівчат", GenderFemale},
		{"усі", LookingAny},
		{"будь-хто", LookingAny},
		{"any", LookingAny},
		{"щось", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseLookingFor(tc.input), "input=%q", tc.input)
	}
}

func TestFormatLocation(t *testing.T) {
	p := &Profile{
		Region:     "Львівська",
		District:   "Львівський",
		Hromada:    "Львівська",
		Settlement: "Львів",
	}
	assert.Equal(t, "Львів, Львівська, Львівський, Львівська", FormatLocation(p))

	// частично заполненная анкета
	p = &Profile{Region: "Київська", District: "Бучанський"}
	assert.Equal(t, "Бучанський, Київська", FormatLocation(p))

	// пустая локация
	assert.Equal(t, "—", FormatLocation(&Profile{}))
}

func TestScopeHuman(t *testing.T) {
	assert.Equal(t, "мій населений пункт", ScopeHuman(ScopeSettlement))
	assert.Equal(t, "уся країна", ScopeHuman(ScopeCountry))
	// неизвестный код возвращается как есть
	assert.Equal(t, "planet", ScopeHuman("planet"))
}

func TestRenderCaption(t *testing.T) {
	p := &Profile{
		Name:       "Оля",
		Age:        24,
		Gender:     GenderFemale,
		LookingFor: GenderMale,
		Settlement: "Ірпінь",
		Region:     "Київська",
		About:      "Люблю гори",
	}
	got := RenderCaption(p)
	assert.Contains(t, got, "<b>Оля, 24</b>")
	assert.Contains(t, got, "Ірпінь, Київська")
	assert.Contains(t, got, "Стать: Ж")
	assert.Contains(t, got, "Шукаю: Хлопці")
	assert.Contains(t, got, "<i>Люблю гори</i>")
}

func TestRenderCaptionNoAbout(t *testing.T) {
	p := &Profile{Name: "Тарас", Age: 30, Gender: GenderMale, LookingFor: LookingAny}
	got := RenderCaption(p)
	assert.NotContains(t, got, "<i>")
	assert.Contains(t, got, "Шукаю: Усі")
}

func TestValidScope(t *testing.T) {
	for _, s := range []string{ScopeSettlement, ScopeHromada, ScopeDistrict, ScopeRegion, ScopeCountry} {
		assert.True(t, ValidScope(s), s)
	}
	assert.False(t, ValidScope(""))
	assert.False(t, ValidScope("galaxy"))
}
