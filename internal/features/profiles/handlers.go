// Package profiles — handlers.go: регистрация анкеты (пошаговый диалог),
// просмотр своей анкеты, настройки и удаление.
package profiles

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"dating-bot/internal/bot/fsm"
	"dating-bot/internal/config"
	"dating-bot/internal/features/locations"
)

// Шаги диалога регистрации.
const (
	stateRegName       = "reg_name"
	stateRegAge        = "reg_age"
	stateRegGender     = "reg_gender"
	stateRegLooking    = "reg_looking"
	stateRegRegion     = "reg_region"
	stateRegDistrict   = "reg_district"
	stateRegHromada    = "reg_hromada"
	stateRegSettlement = "reg_settlement"
	stateRegScope      = "reg_scope"
	stateRegAbout      = "reg_about"
	stateRegPhoto      = "reg_photo"
)

// Шаги редактирования отдельных полей готовой анкеты.
const (
	stateEditName    = "edit_name"
	stateEditAge     = "edit_age"
	stateEditGender  = "edit_gender"
	stateEditLooking = "edit_looking"
	stateEditAbout   = "edit_about"
	stateEditPhoto   = "edit_photo"
)

// draft — черновик анкеты, живёт в FSM между шагами регистрации.
type draft struct {
	Name       string
	Age        int
	Gender     string
	LookingFor string

	Region     string
	RegionCode string
	District   string
	DistrictCd string
	Hromada    string
	HromadaCd  string
	Settlement string

	SearchScope string
	About       string
	PhotoIDs    []string

	// EditLocation: шаги выбора адреса переиспользуются для смены
	// адреса готовой анкеты — после населённого пункта сразу сохраняем
	EditLocation bool

	// Варианты последней показанной клавиатуры выбора адреса
	RegionOpts     []locations.Item
	DistrictOpts   []locations.Item
	HromadaOpts    []locations.Item
	SettlementOpts []locations.Item
}

// Handler обрабатывает команды и диалоги анкеты.
type Handler struct {
	service   *Service
	locations *locations.Repository
	states    *fsm.Store
	bot       *tgbotapi.BotAPI
	cfg       *config.Config
}

// NewHandler создаёт обработчик анкет.
func NewHandler(service *Service, locRepo *locations.Repository, states *fsm.Store, bot *tgbotapi.BotAPI, cfg *config.Config) *Handler {
	return &Handler{service: service, locations: locRepo, states: states, bot: bot, cfg: cfg}
}

// HandleStart обрабатывает /start: либо приветствие с меню,
// либо начало регистрации.
func (h *Handler) HandleStart(ctx context.Context, chatID int64, from *tgbotapi.User) {
	p, err := h.service.GetByTgID(ctx, from.ID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения анкеты при /start")
		h.sendText(chatID, "Сталася помилка. Спробуйте ще раз.")
		return
	}
	if p != nil {
		h.states.Clear(from.ID)
		h.sendWithMarkup(chatID, "У вас вже є анкета.", MainMenuKeyboard())
		return
	}

	h.states.Set(from.ID, stateRegName, &draft{})
	msg := tgbotapi.NewMessage(chatID,
		"Привіт! Давай швидко заповнимо анкету.\n\n<b>Крок 1/11</b> — як тебе звати?")
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	h.send(msg)
}

func isBack(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	return t == "назад" || t == "back"
}

// HandleDialog обрабатывает сообщение в рамках диалога регистрации
// или редактирования поля анкеты.
// Возвращает false, если у пользователя нет активного шага анкеты.
func (h *Handler) HandleDialog(ctx context.Context, message *tgbotapi.Message) bool {
	userID := message.From.ID
	state := h.states.Get(userID)
	if state == nil {
		return false
	}
	if strings.HasPrefix(state.Name, "edit_") {
		return h.handleEditDialog(ctx, message, state.Name)
	}
	if !strings.HasPrefix(state.Name, "reg_") {
		return false
	}
	d, ok := state.Data.(*draft)
	if !ok {
		h.states.Clear(userID)
		return false
	}

	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch state.Name {
	case stateRegName:
		if len([]rune(text)) < 2 {
			h.sendText(chatID, "Закоротко. Напишіть ім'я (мінімум 2 символи).")
			return true
		}
		d.Name = text
		h.states.Set(userID, stateRegAge, d)
		h.sendHTML(chatID, "<b>Крок 2/11</b> — скільки тобі років? (16–99)")

	case stateRegAge:
		if isBack(text) {
			h.states.Set(userID, stateRegName, d)
			h.sendText(chatID, "Повернулись. Як тебе звати?")
			return true
		}
		age, err := strconv.Atoi(text)
		if err != nil {
			h.sendText(chatID, "Введіть вік числом (16–99).")
			return true
		}
		if age < 16 || age > 99 {
			h.sendText(chatID, "Вік має бути від 16 до 99.")
			return true
		}
		d.Age = age
		h.states.Set(userID, stateRegGender, d)
		h.sendHTMLWithMarkup(chatID, "<b>Крок 3/11</b> — обери стать:", GenderKeyboard())

	case stateRegGender:
		if isBack(text) {
			h.states.Set(userID, stateRegAge, d)
			h.sendHTML(chatID, "<b>Крок 2/11</b> — скільки тобі років? (16–99)")
			return true
		}
		code := ParseGender(text)
		if code == "" {
			h.sendWithMarkup(chatID, "Оберіть стать кнопкою нижче:", GenderKeyboard())
			return true
		}
		d.Gender = code
		h.states.Set(userID, stateRegLooking, d)
		h.sendHTMLWithMarkup(chatID, "<b>Крок 4/11</b> — кого шукаєш?", LookingForKeyboard())

	case stateRegLooking:
		if isBack(text) {
			h.states.Set(userID, stateRegGender, d)
			h.sendHTMLWithMarkup(chatID, "<b>Крок 3/11</b> — обери стать:", GenderKeyboard())
			return true
		}
		code := ParseLookingFor(text)
		if code == "" {
			h.sendWithMarkup(chatID, "Оберіть варіант кнопкою нижче:", LookingForKeyboard())
			return true
		}
		d.LookingFor = code
		h.promptRegion(ctx, chatID, userID, d)

	case stateRegRegion, stateRegDistrict, stateRegHromada, stateRegSettlement, stateRegScope:
		// Эти шаги управляются инлайн-кнопками
		h.sendText(chatID, "Оберіть варіант кнопкою вище 🙂")

	case stateRegAbout:
		if isBack(text) {
			h.promptScope(chatID, userID, d)
			return true
		}
		lower := strings.ToLower(text)
		if lower == "пропустити" || lower == strings.ToLower(BtnSkip) || text == "-" {
			d.About = ""
		} else {
			if len([]rune(text)) < h.cfg.AboutMinLen {
				h.sendWithMarkup(chatID,
					fmt.Sprintf("Закоротко. Мінімум %d символів або натисніть «Пропустити».", h.cfg.AboutMinLen),
					SkipAboutKeyboard())
				return true
			}
			d.About = text
		}
		h.states.Set(userID, stateRegPhoto, d)
		msg := tgbotapi.NewMessage(chatID, "<b>Крок 11/11</b> — надішли фото (мінімум 1).")
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
		h.send(msg)

	case stateRegPhoto:
		if message.Photo == nil || len(message.Photo) == 0 {
			if isBack(text) {
				h.states.Set(userID, stateRegAbout, d)
				h.sendHTMLWithMarkup(chatID,
					"<b>Крок 10/11</b> — кілька слів про себе (можна пропустити).", SkipAboutKeyboard())
				return true
			}
			h.sendText(chatID, "Потрібне фото (повідомлення з фотографією). Надішли фото.")
			return true
		}
		// Последний элемент — самое большое разрешение
		fileID := message.Photo[len(message.Photo)-1].FileID
		d.PhotoIDs = append(d.PhotoIDs, fileID)
		h.finishRegistration(ctx, message, d)
	}

	return true
}

func (h *Handler) promptRegion(ctx context.Context, chatID, userID int64, d *draft) {
	regions, err := h.locations.ListRegions(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения областей")
		h.sendText(chatID, "Не вдалося завантажити список областей. Спробуйте пізніше.")
		return
	}
	if len(regions) == 0 {
		// Справочник не загружен (scripts/import_ua_locations.go)
		log.Error("Справочник ua_locations пуст")
		h.sendText(chatID, "Довідник адрес тимчасово недоступний. Спробуйте пізніше.")
		return
	}
	d.RegionOpts = regions
	h.states.Set(userID, stateRegRegion, d)
	title := "<b>Крок 5/11</b> — обери область:"
	if d.EditLocation {
		title = "Оберіть нову область:"
	}
	h.sendHTMLWithMarkup(chatID, title, regionsKeyboard(itemNames(regions)))
}

func (h *Handler) promptDistrict(ctx context.Context, chatID, userID int64, d *draft) {
	districts, err := h.locations.ListDistricts(ctx, d.RegionCode)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения районов")
		h.sendText(chatID, "Не вдалося завантажити райони. Спробуйте пізніше.")
		return
	}
	d.DistrictOpts = districts
	h.states.Set(userID, stateRegDistrict, d)
	h.sendHTMLWithMarkup(chatID,
		"<b>Крок 6/11</b> — обери район (або «Без району»):",
		districtsKeyboard(itemNames(districts)))
}

func (h *Handler) promptHromada(ctx context.Context, chatID, userID int64, d *draft) {
	hromadas, err := h.locations.ListHromadas(ctx, d.RegionCode, d.DistrictCd)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения громад")
		h.sendText(chatID, "Не вдалося завантажити громади. Спробуйте пізніше.")
		return
	}
	d.HromadaOpts = hromadas
	h.states.Set(userID, stateRegHromada, d)
	if len(hromadas) == 0 {
		// В справочнике нет громад для района — пропускаем уровень
		d.Hromada, d.HromadaCd = "", ""
		h.promptSettlement(ctx, chatID, userID, d)
		return
	}
	h.sendHTMLWithMarkup(chatID, "<b>Крок 7/11</b> — обери громаду:", hromadasKeyboard(itemNames(hromadas)))
}

func (h *Handler) promptSettlement(ctx context.Context, chatID, userID int64, d *draft) {
	settlements, err := h.locations.ListSettlements(ctx, d.RegionCode, d.DistrictCd, d.HromadaCd)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения населённых пунктов")
		h.sendText(chatID, "Не вдалося завантажити населені пункти. Спробуйте пізніше.")
		return
	}
	if len(settlements) == 0 && d.DistrictCd != "" {
		// Fallback: весь район без фильтра по громаде
		settlements, err = h.locations.ListSettlements(ctx, d.RegionCode, d.DistrictCd, "")
		if err != nil {
			log.WithError(err).Error("Ошибка чтения населённых пунктов (fallback)")
		}
	}
	d.SettlementOpts = settlements
	h.states.Set(userID, stateRegSettlement, d)
	if len(settlements) == 0 {
		h.sendWithMarkup(chatID,
			"Немає населених пунктів у вибраному фільтрі. Натисніть «Назад».",
			settlementsKeyboard(nil))
		return
	}
	h.sendHTMLWithMarkup(chatID,
		"<b>Крок 8/11</b> — обери населений пункт:",
		settlementsKeyboard(itemNames(settlements)))
}

func (h *Handler) promptScope(chatID, userID int64, d *draft) {
	h.states.Set(userID, stateRegScope, d)
	h.sendHTMLWithMarkup(chatID, "<b>Крок 9/11</b> — де шукаємо людей?", ScopeKeyboard(d.SearchScope))
}

func itemNames(items []locations.Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

// HandleCallback обрабатывает инлайн-кнопки анкеты и настроек.
// Возвращает false, если callback не относится к этому обработчику.
func (h *Handler) HandleCallback(ctx context.Context, call *tgbotapi.CallbackQuery) bool {
	data := call.Data
	switch {
	case strings.HasPrefix(data, "loc:"):
		h.answerCallback(call.ID, "")
		h.handleLocationCallback(ctx, call)
	case strings.HasPrefix(data, "settings:"):
		h.answerCallback(call.ID, "")
		h.handleSettingsCallback(ctx, call)
	case strings.HasPrefix(data, "profile:edit_"):
		h.answerCallback(call.ID, "")
		h.handleEditCallback(ctx, call)
	case data == "profile:delete":
		h.answerCallback(call.ID, "")
		h.sendWithMarkup(call.Message.Chat.ID,
			"Точно видалити анкету? Це незворотно: зникнуть фото, лайки і матчі.",
			confirmDeleteKeyboard())
	case strings.HasPrefix(data, "profile_delete:"):
		h.handleDeleteConfirm(ctx, call)
	case strings.HasPrefix(data, "noop:"):
		h.answerCallback(call.ID, "")
	default:
		return false
	}
	return true
}

func (h *Handler) handleLocationCallback(ctx context.Context, call *tgbotapi.CallbackQuery) {
	userID := call.From.ID
	chatID := call.Message.Chat.ID

	parts := strings.SplitN(call.Data, ":", 3)
	if len(parts) != 3 {
		return
	}
	level, action := parts[1], parts[2]

	// Смена уровня поиска из настроек — без активного диалога
	if level == "scope" {
		h.applyScope(ctx, call, action)
		return
	}

	state := h.states.Get(userID)
	if state == nil {
		h.sendText(chatID, "Цей крок вже не активний. Натисніть /start.")
		return
	}
	d, ok := state.Data.(*draft)
	if !ok {
		h.states.Clear(userID)
		return
	}

	pick := func(items []locations.Item) (locations.Item, bool) {
		idx, err := strconv.Atoi(action)
		if err != nil || idx < 0 || idx >= len(items) {
			return locations.Item{}, false
		}
		return items[idx], true
	}

	switch level {
	case "r":
		if action == "back" {
			if d.EditLocation {
				h.states.Clear(userID)
				h.sendWithMarkup(chatID, "Добре, адреса без змін.", MainMenuKeyboard())
				return
			}
			h.states.Set(userID, stateRegLooking, d)
			h.sendHTMLWithMarkup(chatID, "<b>Крок 4/11</b> — кого шукаєш?", LookingForKeyboard())
			return
		}
		item, ok := pick(d.RegionOpts)
		if !ok {
			h.sendText(chatID, "Помилка вибору області. Спробуйте ще раз.")
			return
		}
		d.Region, d.RegionCode = item.Name, item.Code
		h.promptDistrict(ctx, chatID, userID, d)

	case "d":
		switch action {
		case "back":
			h.promptRegion(ctx, chatID, userID, d)
			return
		case "none":
			d.District, d.DistrictCd = "", ""
			d.Hromada, d.HromadaCd = "", ""
			h.promptSettlement(ctx, chatID, userID, d)
			return
		}
		item, ok := pick(d.DistrictOpts)
		if !ok {
			h.sendText(chatID, "Помилка вибору району. Спробуйте ще раз або натисніть «Назад».")
			return
		}
		d.District, d.DistrictCd = item.Name, item.Code
		h.promptHromada(ctx, chatID, userID, d)

	case "h":
		if action == "back" {
			h.promptDistrict(ctx, chatID, userID, d)
			return
		}
		item, ok := pick(d.HromadaOpts)
		if !ok {
			h.sendText(chatID, "Помилка вибору громади. Спробуйте ще раз.")
			return
		}
		d.Hromada, d.HromadaCd = item.Name, item.Code
		h.promptSettlement(ctx, chatID, userID, d)

	case "s":
		if action == "back" {
			h.promptHromada(ctx, chatID, userID, d)
			return
		}
		item, ok := pick(d.SettlementOpts)
		if !ok {
			h.sendText(chatID, "Помилка вибору. Спробуйте ще раз.")
			return
		}
		d.Settlement = item.Name
		if d.EditLocation {
			h.finishLocationEdit(ctx, chatID, userID, d)
			return
		}
		h.promptScope(chatID, userID, d)
	}
}

// finishLocationEdit сохраняет новый адрес готовой анкеты.
func (h *Handler) finishLocationEdit(ctx context.Context, chatID, userID int64, d *draft) {
	p, err := h.service.GetByTgID(ctx, userID)
	if err != nil || p == nil {
		h.states.Clear(userID)
		h.sendText(chatID, "Спочатку створіть анкету: /start")
		return
	}
	p.Region, p.District = d.Region, d.District
	p.Hromada, p.Settlement = d.Hromada, d.Settlement
	if err := h.service.Save(ctx, p, nil); err != nil {
		log.WithError(err).WithField("tg_id", userID).Error("Ошибка смены адреса")
		h.sendText(chatID, "Не вдалося зберегти. Спробуйте пізніше.")
		return
	}
	h.states.Clear(userID)
	h.sendWithMarkup(chatID, "✅ Адресу оновлено: "+FormatLocation(p)+".", MainMenuKeyboard())
}

// applyScope обрабатывает loc:scope:* и в диалоге регистрации,
// и из меню настроек.
func (h *Handler) applyScope(ctx context.Context, call *tgbotapi.CallbackQuery, scope string) {
	userID := call.From.ID
	chatID := call.Message.Chat.ID

	if !ValidScope(scope) {
		h.sendText(chatID, "Оберіть варіант із кнопок.")
		return
	}

	if state := h.states.Get(userID); state != nil && state.Name == stateRegScope {
		d, ok := state.Data.(*draft)
		if ok {
			d.SearchScope = scope
			h.states.Set(userID, stateRegAbout, d)
			h.sendHTMLWithMarkup(chatID,
				"<b>Крок 10/11</b> — кілька слів про себе (можна пропустити).", SkipAboutKeyboard())
			return
		}
	}

	// Вне диалога — смена уровня в существующей анкете
	p, err := h.service.GetByTgID(ctx, userID)
	if err != nil || p == nil {
		h.sendText(chatID, "Спочатку створіть анкету: /start")
		return
	}
	if err := h.service.SetSearchScope(ctx, p, scope); err != nil {
		log.WithError(err).Error("Ошибка смены уровня поиска")
		h.sendText(chatID, "Не вдалося зберегти. Спробуйте пізніше.")
		return
	}
	h.sendWithMarkup(chatID, "Готово! Рівень пошуку: "+ScopeHuman(scope)+".", SettingsKeyboard(p))
}

func (h *Handler) finishRegistration(ctx context.Context, message *tgbotapi.Message, d *draft) {
	chatID := message.Chat.ID
	from := message.From

	p := &Profile{
		TgID:        from.ID,
		Username:    from.UserName,
		Name:        d.Name,
		Age:         d.Age,
		Gender:      d.Gender,
		LookingFor:  d.LookingFor,
		About:       d.About,
		Region:      d.Region,
		District:    d.District,
		Hromada:     d.Hromada,
		Settlement:  d.Settlement,
		SearchScope: d.SearchScope,
		Active:      true,
	}

	if err := h.service.Save(ctx, p, d.PhotoIDs); err != nil {
		log.WithError(err).WithField("tg_id", from.ID).Error("Ошибка сохранения анкеты")
		h.sendText(chatID, "Не вдалося зберегти анкету. Спробуйте ще раз.")
		return
	}
	h.states.Clear(from.ID)

	log.WithFields(log.Fields{
		"tg_id": from.ID,
		"scope": p.SearchScope,
	}).Info("Зарегистрирована новая анкета")

	SendProfileCard(h.bot, chatID, p, nil)
	h.sendWithMarkup(chatID, "Готово. Ласкаво просимо!", MainMenuKeyboard())
}

// HandleMyProfile показывает собственную анкету.
func (h *Handler) HandleMyProfile(ctx context.Context, chatID, tgID int64) {
	p, err := h.service.GetByTgID(ctx, tgID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения анкеты")
		h.sendText(chatID, "Сталася помилка. Спробуйте пізніше.")
		return
	}
	if p == nil {
		h.sendText(chatID, "Спочатку створіть анкету: /start")
		return
	}
	SendProfileCard(h.bot, chatID, p, ProfileManageKeyboard())
}

// handleEditCallback запускает диалог смены одного поля анкеты.
func (h *Handler) handleEditCallback(ctx context.Context, call *tgbotapi.CallbackQuery) {
	userID := call.From.ID
	chatID := call.Message.Chat.ID

	p, err := h.service.GetByTgID(ctx, userID)
	if err != nil || p == nil {
		h.sendText(chatID, "Спочатку створіть анкету: /start")
		return
	}

	prompt := func(state, text string) {
		h.states.Set(userID, state, nil)
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
		h.send(msg)
	}

	switch strings.TrimPrefix(call.Data, "profile:edit_") {
	case "name":
		prompt(stateEditName, "Введіть нове ім'я (мінімум 2 символи):")
	case "age":
		prompt(stateEditAge, "Введіть вік (16–99):")
	case "gender":
		h.states.Set(userID, stateEditGender, nil)
		h.sendWithMarkup(chatID, "Оберіть стать:", GenderKeyboard())
	case "looking":
		h.states.Set(userID, stateEditLooking, nil)
		h.sendWithMarkup(chatID, "Кого шукаєте?", LookingForKeyboard())
	case "about":
		prompt(stateEditAbout, fmt.Sprintf(
			"Введіть новий текст «Про себе» (мінімум %d символів) або «-», щоб очистити:",
			h.cfg.AboutMinLen))
	case "photo":
		prompt(stateEditPhoto, "Надішліть нове фото — воно замінить поточне:")
	case "location":
		// Переиспользуем шаги выбора адреса из регистрации
		d := &draft{EditLocation: true}
		h.promptRegion(ctx, chatID, userID, d)
	}
}

// handleEditDialog сохраняет новое значение поля анкеты.
func (h *Handler) handleEditDialog(ctx context.Context, message *tgbotapi.Message, state string) bool {
	userID := message.From.ID
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	p, err := h.service.GetByTgID(ctx, userID)
	if err != nil || p == nil {
		h.states.Clear(userID)
		h.sendText(chatID, "Спочатку створіть анкету: /start")
		return true
	}

	var photos []string
	done := "✅ Збережено."

	switch state {
	case stateEditName:
		if len([]rune(text)) < 2 {
			h.sendText(chatID, "Закоротко. Введіть ім'я (мінімум 2 символи).")
			return true
		}
		p.Name = text
		done = "✅ Ім'я оновлено."

	case stateEditAge:
		age, err := strconv.Atoi(text)
		if err != nil {
			h.sendText(chatID, "Введіть вік числом (16–99).")
			return true
		}
		if age < 16 || age > 99 {
			h.sendText(chatID, "Вік має бути від 16 до 99.")
			return true
		}
		p.Age = age
		done = "✅ Вік оновлено."

	case stateEditGender:
		code := ParseGender(text)
		if code == "" {
			h.sendWithMarkup(chatID, "Оберіть стать кнопкою нижче:", GenderKeyboard())
			return true
		}
		p.Gender = code
		done = "✅ Стать оновлено."

	case stateEditLooking:
		code := ParseLookingFor(text)
		if code == "" {
			h.sendWithMarkup(chatID, "Оберіть варіант кнопкою нижче:", LookingForKeyboard())
			return true
		}
		p.LookingFor = code
		done = "✅ Налаштування оновлено."

	case stateEditAbout:
		if text == "-" {
			text = ""
		}
		if text != "" && len([]rune(text)) < h.cfg.AboutMinLen {
			h.sendText(chatID, fmt.Sprintf(
				"Закоротко. Мінімум %d символів або «-», щоб очистити.", h.cfg.AboutMinLen))
			return true
		}
		p.About = text
		done = "✅ Текст оновлено."

	case stateEditPhoto:
		if len(message.Photo) == 0 {
			h.sendText(chatID, "Потрібне фото. Надішліть фотографію.")
			return true
		}
		photos = []string{message.Photo[len(message.Photo)-1].FileID}
		done = "✅ Фото оновлено."

	default:
		h.states.Clear(userID)
		return false
	}

	if err := h.service.Save(ctx, p, photos); err != nil {
		log.WithError(err).WithField("tg_id", userID).Error("Ошибка редактирования анкеты")
		h.sendText(chatID, "Не вдалося зберегти. Спробуйте пізніше.")
		return true
	}
	h.states.Clear(userID)
	h.sendWithMarkup(chatID, done, MainMenuKeyboard())
	return true
}

// HandleSettings показывает меню настроек.
func (h *Handler) HandleSettings(ctx context.Context, chatID, tgID int64) {
	p, err := h.service.GetByTgID(ctx, tgID)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения анкеты")
		h.sendText(chatID, "Сталася помилка. Спробуйте пізніше.")
		return
	}
	if p == nil {
		h.sendText(chatID, "Спочатку створіть анкету: /start")
		return
	}
	h.sendWithMarkup(chatID, "⚙️ Налаштування анкети:", SettingsKeyboard(p))
}

func (h *Handler) handleSettingsCallback(ctx context.Context, call *tgbotapi.CallbackQuery) {
	chatID := call.Message.Chat.ID
	p, err := h.service.GetByTgID(ctx, call.From.ID)
	if err != nil || p == nil {
		h.sendText(chatID, "Спочатку створіть анкету: /start")
		return
	}

	action := strings.TrimPrefix(call.Data, "settings:")
	switch action {
	case "open":
		h.sendWithMarkup(chatID, "⚙️ Налаштування анкети:", SettingsKeyboard(p))

	case "toggle_active":
		active, err := h.service.ToggleActive(ctx, p)
		if err != nil {
			log.WithError(err).Error("Ошибка переключения видимости")
			h.sendText(chatID, "Не вдалося зберегти. Спробуйте пізніше.")
			return
		}
		text := "⏸️ Анкету поставлено на паузу."
		if active {
			text = "🟢 Анкета знову видима."
		}
		h.sendWithMarkup(chatID, text, SettingsKeyboard(p))

	case "toggle_age_filter":
		enabled, err := h.service.ToggleAgeFilter(ctx, p)
		if err != nil {
			log.WithError(err).Error("Ошибка переключения возрастного фильтра")
			h.sendText(chatID, "Не вдалося зберегти. Спробуйте пізніше.")
			return
		}
		text := "❌ Віковий фільтр вимкнено."
		if enabled {
			text = "✅ Віковий фільтр увімкнено."
		}
		h.sendWithMarkup(chatID, text, SettingsKeyboard(p))

	case "scope":
		h.sendWithMarkup(chatID, "Де шукаємо людей?", ScopeKeyboard(p.SearchScope))
	}
}

func (h *Handler) handleDeleteConfirm(ctx context.Context, call *tgbotapi.CallbackQuery) {
	chatID := call.Message.Chat.ID
	decision := strings.TrimPrefix(call.Data, "profile_delete:")
	if decision != "yes" {
		h.answerCallback(call.ID, "Скасовано")
		h.sendText(chatID, "Добре, анкета залишається.")
		return
	}

	if err := h.service.DeleteAccount(ctx, call.From.ID); err != nil {
		log.WithError(err).WithField("tg_id", call.From.ID).Error("Ошибка удаления анкеты")
		h.answerCallback(call.ID, "Помилка")
		h.sendText(chatID, "Не вдалося видалити анкету. Спробуйте пізніше.")
		return
	}
	h.answerCallback(call.ID, "Видалено")
	msg := tgbotapi.NewMessage(chatID, "Анкету видалено. Якщо передумаєте — /start.")
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	h.send(msg)
}

// SendProfileCard отправляет карточку анкеты: фото с HTML-подписью,
// либо текст, если фото нет.
func SendProfileCard(api *tgbotapi.BotAPI, chatID int64, p *Profile, markup interface{}) {
	caption := RenderCaption(p)
	fileID := p.MainPhotoFileID()

	if fileID != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		if markup != nil {
			photo.ReplyMarkup = markup
		}
		if _, err := api.Send(photo); err != nil {
			log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки карточки анкеты")
		}
		return
	}

	msg := tgbotapi.NewMessage(chatID, caption)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки карточки анкеты")
	}
}

// --- Утилиты отправки ---

func (h *Handler) send(msg tgbotapi.MessageConfig) {
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", msg.ChatID).Error("Ошибка отправки сообщения")
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) sendHTML(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	h.send(msg)
}

func (h *Handler) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	h.send(msg)
}

func (h *Handler) sendHTMLWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	h.send(msg)
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
}
