package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Astemirdum/rental-service/availability/config"
	"github.com/Astemirdum/rental-service/availability/internal/calendar"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const feed = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//rental//maintenance//EN\r\n" +
	"BEGIN:VEVENT\r\nUID:crane-inspection\r\nDTSTAMP:20240101T000000Z\r\n" +
	"DTSTART:20240220T140000Z\r\nDTEND:20240220T160000Z\r\nSUMMARY:Inspection\r\nEND:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func maintenanceConfig() config.Maintenance {
	return config.Maintenance{
		RRule:          calendar.DefaultMaintenanceRule,
		WindowStart:    9 * time.Hour,
		WindowDuration: 2 * time.Hour,
		Anchor:         "2024-01-01",
		ICSReload:      "@every 15m",
	}
}

func TestNewMaintenancePolicy(t *testing.T) {
	t.Parallel()
	day := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)

	policy, scheduler, err := newMaintenancePolicy(maintenanceConfig(), zap.NewNop())
	require.NoError(t, err)
	require.Nil(t, scheduler)
	require.Empty(t, policy.WindowsFor("eq-1", day))
	require.Len(t, policy.WindowsFor("eq-1", day.AddDate(0, 0, -5)), 1)

	cfg := maintenanceConfig()
	cfg.ICSPath = filepath.Join(t.TempDir(), "maintenance.ics")
	require.NoError(t, os.WriteFile(cfg.ICSPath, []byte(feed), 0o600))
	policy, scheduler, err = newMaintenancePolicy(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, scheduler)
	require.Len(t, scheduler.Entries(), 1)
	require.Len(t, policy.WindowsFor("eq-1", day), 1)
}

func TestNewMaintenancePolicy_Invalid(t *testing.T) {
	t.Parallel()
	cfg := maintenanceConfig()
	cfg.Anchor = "soon"
	_, _, err := newMaintenancePolicy(cfg, zap.NewNop())
	require.Error(t, err)

	cfg = maintenanceConfig()
	cfg.ICSPath = filepath.Join(t.TempDir(), "maintenance.ics")
	require.NoError(t, os.WriteFile(cfg.ICSPath, []byte(feed), 0o600))
	cfg.ICSReload = "every now and then"
	_, _, err = newMaintenancePolicy(cfg, zap.NewNop())
	require.Error(t, err)
}
