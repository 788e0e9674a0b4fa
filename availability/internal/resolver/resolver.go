// Package resolver decides whether a booking may be made and when equipment
// becomes free again. Every function is pure: reservations and the current
// time are supplied by the caller.
//
// The verdict only holds for the snapshot it was computed from. To be
// authoritative, ValidateBooking has to run again inside the transaction
// that persists the booking.
package resolver

import (
	"math"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/domain"
)

const (
	MaxBookingDays = 30
	// BufferDays are kept free after a rental for turnaround and cleaning.
	BufferDays = 1
)

type Candidate struct {
	EquipmentID string
	Start       time.Time
	End         time.Time
}

type Quote struct {
	TotalDays    int                   `json:"totalDays"`
	PricePerDay  float64               `json:"pricePerDay"`
	TotalPrice   float64               `json:"totalPrice"`
	Span         domain.Span           `json:"period"`
	Availability domain.ConflictResult `json:"availability"`
}

// NextAvailableDate is the day after the latest end among ACTIVE and
// CONFIRMED intervals, never earlier than today. Equipment in maintenance or
// out of order has no computable date and yields domain.ErrNoAvailableDate.
func NextAvailableDate(eq domain.EquipmentState, intervals []domain.BookingInterval, now time.Time) (time.Time, error) {
	if eq.CurrentStatus.OutOfService() {
		return time.Time{}, domain.ErrNoAvailableDate
	}
	today := domain.StartOfDay(now)
	var (
		latest time.Time
		found  bool
	)
	for _, b := range intervals {
		if b.EquipmentID != eq.ID || !b.Status.HoldsEquipment() {
			continue
		}
		if !found || b.End.After(latest) {
			latest, found = b.End, true
		}
	}
	if !found {
		return today, nil
	}
	next := domain.StartOfDay(latest).AddDate(0, 0, BufferDays)
	return domain.MaxTime(today, next), nil
}

// ValidateBooking checks a candidate booking of whole days [Start, End]
// and prices it. Failures are *domain.ValidationError, checked in this order:
// END_BEFORE_START, EQUIPMENT_UNAVAILABLE, PAST_START, MAX_DURATION_EXCEEDED,
// CONFLICT.
func ValidateBooking(c Candidate, eq domain.EquipmentState, intervals []domain.BookingInterval, now time.Time) (Quote, error) {
	start, end := domain.StartOfDay(c.Start), domain.StartOfDay(c.End)
	if end.Before(start) {
		return Quote{}, domain.NewEndBeforeStartError(start, end)
	}
	if eq.CurrentStatus.OutOfService() {
		return Quote{}, domain.NewUnavailableError(eq.CurrentStatus)
	}

	bound := domain.StartOfDay(now)
	rented := false
	if eq.CurrentStatus == domain.EquipmentRented {
		next, err := NextAvailableDate(eq, intervals, now)
		if err != nil {
			return Quote{}, err
		}
		if next.After(bound) {
			bound, rented = next, true
		}
	}
	if start.Before(bound) {
		return Quote{}, domain.NewPastStartError(bound, rented)
	}

	span := domain.Span{Start: start, End: domain.EndOfDay(end)}
	days := span.DurationInDays()
	if days > MaxBookingDays {
		return Quote{}, domain.NewMaxDurationError(days, MaxBookingDays)
	}

	res := domain.DetectConflicts(eq.ID, span, intervals)
	if !res.IsAvailable {
		return Quote{}, domain.NewConflictError(res)
	}

	return Quote{
		TotalDays:    days,
		PricePerDay:  eq.PricePerDay,
		TotalPrice:   math.Round(float64(days)*eq.PricePerDay*100) / 100,
		Span:         span,
		Availability: res,
	}, nil
}
