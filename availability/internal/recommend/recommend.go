package recommend

import (
	"github.com/Astemirdum/rental-service/availability/internal/calendar"
	"github.com/Astemirdum/rental-service/availability/internal/domain"
)

const (
	SuggestedDatesLimit = 5
	AlternativesLimit   = 3
)

// SuggestedDates returns the first limit available days, in calendar order.
func SuggestedDates(days []calendar.DayOccupancy, limit int) []domain.Date {
	out := make([]domain.Date, 0, limit)
	for _, d := range days {
		if len(out) == limit {
			break
		}
		if d.Status == calendar.DayAvailable {
			out = append(out, d.Date)
		}
	}
	return out
}

// AlternativeEquipment keeps the catalog order and returns up to limit other
// AVAILABLE items of the target's category.
func AlternativeEquipment(target domain.EquipmentState, catalog []domain.EquipmentState, limit int) []domain.EquipmentState {
	out := make([]domain.EquipmentState, 0, limit)
	for _, eq := range catalog {
		if len(out) == limit {
			break
		}
		if eq.ID == target.ID || eq.Category != target.Category || eq.CurrentStatus != domain.EquipmentAvailable {
			continue
		}
		out = append(out, eq)
	}
	return out
}
