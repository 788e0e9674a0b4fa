package app

import (
	"github.com/Astemirdum/rental-service/availability/config"
	"github.com/Astemirdum/rental-service/availability/internal/calendar"
	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// newMaintenancePolicy builds the recurring rule and, when an ICS feed is
// configured, a composite with the feed plus a cron job reloading it.
func newMaintenancePolicy(cfg config.Maintenance, log *zap.Logger) (calendar.MaintenancePolicy, *cron.Cron, error) {
	anchor, err := domain.ParseDate(cfg.Anchor)
	if err != nil {
		return nil, nil, errors.Wrap(err, "maintenance anchor")
	}
	recurring, err := calendar.NewRecurringPolicy(calendar.RecurringConfig{
		RRule:       cfg.RRule,
		WindowStart: cfg.WindowStart,
		Duration:    cfg.WindowDuration,
		Anchor:      anchor,
	})
	if err != nil {
		return nil, nil, err
	}
	if cfg.ICSPath == "" {
		return recurring, nil, nil
	}

	feed, err := calendar.NewICSPolicy(cfg.ICSPath, log)
	if err != nil {
		return nil, nil, err
	}
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ICSReload, func() {
		if err := feed.Reload(); err != nil {
			log.Warn("maintenance calendar reload", zap.String("path", cfg.ICSPath), zap.Error(err))
		}
	}); err != nil {
		return nil, nil, errors.Wrap(err, "maintenance reload schedule")
	}
	return calendar.Composite{recurring, feed}, scheduler, nil
}
