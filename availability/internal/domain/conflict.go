package domain

import (
	"fmt"
	"sort"
	"time"
)

type ConflictResult struct {
	IsAvailable          bool              `json:"isAvailable"`
	ConflictingIntervals []BookingInterval `json:"conflictingIntervals"`
	Message              string            `json:"message"`
}

// DetectConflicts checks candidate against the existing intervals of
// equipmentID. Cancelled intervals and intervals of other equipment are
// ignored; every other overlap is a conflict. Conflicts are returned in
// chronological order.
func DetectConflicts(equipmentID string, candidate Span, existing []BookingInterval) ConflictResult {
	conflicts := make([]BookingInterval, 0)
	for _, b := range existing {
		if b.EquipmentID != equipmentID || !b.Status.BlocksBooking() {
			continue
		}
		if candidate.Overlaps(b.Span) {
			conflicts = append(conflicts, b)
		}
	}
	SortChronologically(conflicts)

	return ConflictResult{
		IsAvailable:          len(conflicts) == 0,
		ConflictingIntervals: conflicts,
		Message:              conflictMessage(conflicts),
	}
}

func conflictMessage(conflicts []BookingInterval) string {
	switch len(conflicts) {
	case 0:
		return "equipment is available for the requested dates"
	case 1:
		return fmt.Sprintf("date range already booked, conflicts with a booking from %s to %s",
			conflicts[0].Start.Format(time.DateOnly), conflicts[0].End.Format(time.DateOnly))
	default:
		return fmt.Sprintf("date range already booked, conflicts with %d existing bookings", len(conflicts))
	}
}

// SortChronologically orders by start, then end, then id.
func SortChronologically(items []BookingInterval) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if !a.End.Equal(b.End) {
			return a.End.Before(b.End)
		}
		return a.ID < b.ID
	})
}
