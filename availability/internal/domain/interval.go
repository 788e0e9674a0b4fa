package domain

import (
	"math"
	"time"
)

const Day = 24 * time.Hour

// Span is a closed time range [Start, End].
type Span struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewSpan(start, end time.Time) (Span, error) {
	if start.After(end) {
		return Span{}, &InvalidIntervalError{Start: start, End: end}
	}
	return Span{Start: start, End: end}, nil
}

// Overlaps uses closed-interval semantics: spans sharing only an endpoint
// overlap.
func (s Span) Overlaps(other Span) bool {
	return !s.Start.After(other.End) && !s.End.Before(other.Start)
}

// DurationInDays is ceil((End-Start) / 1 day) with a minimum of 1.
func (s Span) DurationInDays() int {
	d := s.End.Sub(s.Start)
	days := int(math.Ceil(float64(d) / float64(Day)))
	if days < 1 {
		return 1
	}
	return days
}

type BookingInterval struct {
	ID          string        `json:"id"`
	EquipmentID string        `json:"equipmentId"`
	Status      BookingStatus `json:"status"`
	Span
}

func NewBookingInterval(id, equipmentID string, start, end time.Time, status BookingStatus) (BookingInterval, error) {
	span, err := NewSpan(start, end)
	if err != nil {
		return BookingInterval{}, err
	}
	return BookingInterval{
		ID:          id,
		EquipmentID: equipmentID,
		Span:        span,
		Status:      status,
	}, nil
}

func (b BookingInterval) Overlaps(other BookingInterval) bool {
	return b.Span.Overlaps(other.Span)
}

type EquipmentState struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	CurrentStatus EquipmentStatus `json:"currentStatus"`
	PricePerDay   float64         `json:"pricePerDay"`
}
