package profiles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileManageKeyboardActions(t *testing.T) {
	kb := ProfileManageKeyboard()

	var data []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			require.NotNil(t, btn.CallbackData)
			data = append(data, *btn.CallbackData)
		}
	}

	// карточка своей анкеты даёт изменить каждое поле и удалить анкету
	assert.ElementsMatch(t, []string{
		"profile:edit_name",
		"profile:edit_age",
		"profile:edit_gender",
		"profile:edit_looking",
		"profile:edit_location",
		"profile:edit_about",
		"profile:edit_photo",
		"profile:delete",
	}, data)
}

func TestScopeKeyboardMarksCurrent(t *testing.T) {
	kb := ScopeKeyboard(ScopeRegion)

	marked := 0
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if strings.HasPrefix(btn.Text, "✓ ") {
				marked++
				require.NotNil(t, btn.CallbackData)
				assert.Equal(t, "loc:scope:"+ScopeRegion, *btn.CallbackData)
			}
		}
	}
	assert.Equal(t, 1, marked, "отмечен ровно текущий уровень")
}
