// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежедневный сброс лайков
// с отчётом админам и ежечасную чистку журнала действий.
package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"dating-bot/internal/bot/fsm"
	"dating-bot/internal/common"
	"dating-bot/internal/config"
	"dating-bot/internal/features/admin"
	"dating-bot/internal/features/antiflood"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron     *cron.Cron
	admin    *admin.Service
	flood    *antiflood.Service
	states   *fsm.Store
	cfg      *config.Config
	sendFunc func(userID int64, text string)
}

// NewScheduler создаёт планировщик в часовом поясе приложения
// (по умолчанию Europe/Kyiv).
func NewScheduler(adminService *admin.Service, flood *antiflood.Service, states *fsm.Store, cfg *config.Config, sendFunc func(userID int64, text string)) *Scheduler {
	c := cron.New(cron.WithLocation(cfg.Location()))

	return &Scheduler{
		cron:     c,
		admin:    adminService,
		flood:    flood,
		states:   states,
		cfg:      cfg,
		sendFunc: sendFunc,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Ежедневный сброс лайков/скипов — лента начинается заново
	if s.cfg.ResetEnabled {
		spec := fmt.Sprintf("0 %d * * *", s.cfg.ResetHour)
		s.cron.AddFunc(spec, func() {
			log.Info("[CRON] Ежедневный сброс лайков/скипов")
			deleted, err := s.admin.ResetSwipes(ctx)
			if err != nil {
				log.WithError(err).Error("[CRON] Ошибка ежедневного сброса")
				return
			}
			s.notifyAdmins(fmt.Sprintf(
				"🔄 Щоденне скидання виконано. Вилучено %d %s.",
				deleted, common.PluralizeUA(deleted, "запис", "записи", "записів")))
		})
	}

	// Ежечасная уборка: журнал действий и протухшие диалоги
	s.cron.AddFunc("30 * * * *", func() { s.hourlyCleanup(ctx) })

	s.cron.Start()
	log.WithField("tz", s.cfg.Location().String()).Info("Планировщик задач запущен")
}

// hourlyCleanup чистит журнал действий (скользящим окнам нужна только
// свежая история) и выметает истёкшие состояния диалогов — без этого
// карта состояний растёт бесконечно.
func (s *Scheduler) hourlyCleanup(ctx context.Context) {
	pruned, err := s.flood.Prune(ctx)
	if err != nil {
		log.WithError(err).Error("[CRON] Ошибка чистки журнала действий")
	} else if pruned > 0 {
		log.WithField("pruned", pruned).Info("[CRON] Журнал действий почищен")
	}

	if removed := s.states.Sweep(); removed > 0 {
		log.WithField("removed", removed).Debug("[CRON] Истёкшие диалоги удалены")
	}
}

// Stop останавливает планировщик, дождавшись текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

func (s *Scheduler) notifyAdmins(text string) {
	for _, id := range s.cfg.AdminIDs {
		s.sendFunc(id, text)
	}
}
