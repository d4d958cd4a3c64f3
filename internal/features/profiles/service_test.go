package profiles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"dating-bot/internal/common"
	"dating-bot/internal/config"
)

// Валидация в Save срабатывает до обращений к БД, поэтому
// репозиторий здесь не нужен.
func TestSaveValidation(t *testing.T) {
	svc := NewService(nil, &config.Config{MaxPhotos: 3})
	ctx := context.Background()

	valid := func() *Profile {
		return &Profile{TgID: 1, Name: "Оля", Age: 24, Gender: GenderFemale, LookingFor: GenderMale}
	}

	p := valid()
	p.Age = 15
	assert.Error(t, svc.Save(ctx, p, nil))

	p = valid()
	p.Age = 100
	assert.Error(t, svc.Save(ctx, p, nil))

	p = valid()
	p.Gender = "X"
	assert.Error(t, svc.Save(ctx, p, nil))

	p = valid()
	p.LookingFor = ""
	assert.Error(t, svc.Save(ctx, p, nil))
}

func TestSaveRejectsTooManyPhotos(t *testing.T) {
	svc := NewService(nil, &config.Config{MaxPhotos: 3})

	p := &Profile{TgID: 1, Name: "Оля", Age: 24, Gender: GenderFemale, LookingFor: GenderMale}
	err := svc.Save(context.Background(), p, []string{"f1", "f2", "f3", "f4"})
	assert.ErrorIs(t, err, common.ErrTooManyPhotos)
}
