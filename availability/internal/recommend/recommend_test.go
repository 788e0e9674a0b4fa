package recommend_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/calendar"
	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/Astemirdum/rental-service/availability/internal/recommend"
	"github.com/stretchr/testify/require"
)

func TestSuggestedDates(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	statuses := []calendar.DayStatus{
		calendar.DayRented, calendar.DayAvailable, calendar.DayReserved, calendar.DayAvailable,
		calendar.DayMaintenance, calendar.DayAvailable, calendar.DayAvailable, calendar.DayAvailable,
		calendar.DayAvailable,
	}
	days := make([]calendar.DayOccupancy, 0, len(statuses))
	for i, st := range statuses {
		days = append(days, calendar.DayOccupancy{Date: domain.NewDate(start.AddDate(0, 0, i)), Status: st})
	}

	got := recommend.SuggestedDates(days, recommend.SuggestedDatesLimit)
	want := []string{"2024-02-02", "2024-02-04", "2024-02-06", "2024-02-07", "2024-02-08"}
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i], got[i].String())
	}

	require.Empty(t, recommend.SuggestedDates(days[:1], recommend.SuggestedDatesLimit))
}

func TestAlternativeEquipment(t *testing.T) {
	t.Parallel()
	target := domain.EquipmentState{ID: "eq-1", Category: "excavators", CurrentStatus: domain.EquipmentRented}
	catalog := []domain.EquipmentState{
		{ID: "eq-1", Category: "excavators", CurrentStatus: domain.EquipmentAvailable},
		{ID: "eq-2", Category: "excavators", CurrentStatus: domain.EquipmentAvailable},
		{ID: "eq-3", Category: "cranes", CurrentStatus: domain.EquipmentAvailable},
		{ID: "eq-4", Category: "excavators", CurrentStatus: domain.EquipmentMaintenance},
		{ID: "eq-5", Category: "excavators", CurrentStatus: domain.EquipmentAvailable},
		{ID: "eq-6", Category: "excavators", CurrentStatus: domain.EquipmentAvailable},
		{ID: "eq-7", Category: "excavators", CurrentStatus: domain.EquipmentAvailable},
	}

	got := recommend.AlternativeEquipment(target, catalog, recommend.AlternativesLimit)
	ids := make([]string, 0, len(got))
	for _, eq := range got {
		ids = append(ids, eq.ID)
	}
	require.Equal(t, []string{"eq-2", "eq-5", "eq-6"}, ids)
}
