package calendar

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/domain"
)

type DayStatus string

const (
	DayAvailable   DayStatus = "available"
	DayReserved    DayStatus = "reserved"
	DayRented      DayStatus = "rented"
	DayMaintenance DayStatus = "maintenance"
)

// precedence: maintenance > rented > reserved > available.
func (s DayStatus) precedence() int {
	switch s {
	case DayMaintenance:
		return 3
	case DayRented:
		return 2
	case DayReserved:
		return 1
	case DayAvailable:
		return 0
	}
	return 0
}

func (s DayStatus) promote(to DayStatus) DayStatus {
	if to.precedence() > s.precedence() {
		return to
	}
	return s
}

type EventType string

const (
	EventLocation    EventType = "location"
	EventMaintenance EventType = "maintenance"
)

type Event struct {
	ID     string               `json:"id"`
	Type   EventType            `json:"type"`
	Status domain.BookingStatus `json:"status,omitempty"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
}

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotOccupied  SlotStatus = "occupied"
)

type TimeSlots struct {
	Morning   SlotStatus `json:"morning"`
	Afternoon SlotStatus `json:"afternoon"`
	FullDay   SlotStatus `json:"fullDay"`
}

type DayOccupancy struct {
	Date      domain.Date `json:"date"`
	Status    DayStatus   `json:"status"`
	Events    []Event     `json:"events"`
	TimeSlots *TimeSlots  `json:"timeSlots,omitempty"`
}

type Options struct {
	IncludeMaintenance bool
	ShowTimeSlots      bool
}

// Slot windows, as hours of the day.
const (
	morningStart   = 8
	afternoonStart = 12
	afternoonEnd   = 18
)

type Projector struct {
	policy MaintenancePolicy
}

func NewProjector(policy MaintenancePolicy) *Projector {
	if policy == nil {
		policy = NoMaintenance{}
	}
	return &Projector{policy: policy}
}

// Project returns one DayOccupancy per day of period, in order. It is a pure
// function of its arguments.
func (p *Projector) Project(eq domain.EquipmentState, intervals []domain.BookingInterval, period Period, opts Options) []DayOccupancy {
	bookings := make([]domain.BookingInterval, 0, len(intervals))
	periodSpan := period.Span()
	for _, b := range intervals {
		if b.EquipmentID != eq.ID || !b.Status.BlocksBooking() || !b.Span.Overlaps(periodSpan) {
			continue
		}
		bookings = append(bookings, b)
	}
	domain.SortChronologically(bookings)

	days := make([]DayOccupancy, 0, period.Days())
	for d := period.Start; !d.After(period.End); d = d.AddDate(0, 0, 1) {
		days = append(days, p.projectDay(eq, bookings, d, opts))
	}
	return days
}

func (p *Projector) projectDay(eq domain.EquipmentState, bookings []domain.BookingInterval, d time.Time, opts Options) DayOccupancy {
	daySpan := domain.Span{Start: d, End: domain.EndOfDay(d)}
	status := DayAvailable
	if eq.CurrentStatus.OutOfService() {
		status = DayMaintenance
	}

	events := make([]Event, 0)
	for _, b := range bookings {
		if !b.Span.Overlaps(daySpan) {
			continue
		}
		events = append(events, Event{ID: b.ID, Type: EventLocation, Status: b.Status, Start: b.Start, End: b.End})
		if b.Status == domain.BookingActive {
			status = status.promote(DayRented)
		} else {
			status = status.promote(DayReserved)
		}
	}
	if opts.IncludeMaintenance {
		for _, w := range p.policy.WindowsFor(eq.ID, d) {
			if !w.Overlaps(daySpan) {
				continue
			}
			events = append(events, Event{
				ID:    fmt.Sprintf("maintenance-%s-%s", eq.ID, w.Start.Format("20060102T1504")),
				Type:  EventMaintenance,
				Start: w.Start,
				End:   w.End,
			})
			status = status.promote(DayMaintenance)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].ID < events[j].ID
	})

	occ := DayOccupancy{Date: domain.NewDate(d), Status: status, Events: events}
	if opts.ShowTimeSlots {
		occ.TimeSlots = timeSlots(d, events)
	}
	return occ
}

func timeSlots(d time.Time, events []Event) *TimeSlots {
	at := func(hour int) time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
	}
	morning := slotStatus(at(morningStart), at(afternoonStart), events)
	afternoon := slotStatus(at(afternoonStart), at(afternoonEnd), events)
	full := SlotAvailable
	if morning == SlotOccupied && afternoon == SlotOccupied {
		full = SlotOccupied
	}
	return &TimeSlots{Morning: morning, Afternoon: afternoon, FullDay: full}
}

// slotStatus treats the slot as [from, to).
func slotStatus(from, to time.Time, events []Event) SlotStatus {
	for _, e := range events {
		if e.Type != EventLocation && e.Type != EventMaintenance {
			continue
		}
		if e.Start.Before(to) && e.End.After(from) {
			return SlotOccupied
		}
	}
	return SlotAvailable
}

type Summary struct {
	TotalDays       int     `json:"totalDays"`
	AvailableDays   int     `json:"availableDays"`
	RentedDays      int     `json:"rentedDays"`
	ReservedDays    int     `json:"reservedDays"`
	MaintenanceDays int     `json:"maintenanceDays"`
	OccupancyRate   float64 `json:"occupancyRate"`
}

func Summarize(days []DayOccupancy) Summary {
	s := Summary{TotalDays: len(days)}
	for _, d := range days {
		switch d.Status {
		case DayAvailable:
			s.AvailableDays++
		case DayRented:
			s.RentedDays++
		case DayReserved:
			s.ReservedDays++
		case DayMaintenance:
			s.MaintenanceDays++
		}
	}
	if s.TotalDays > 0 {
		rate := float64(s.RentedDays+s.ReservedDays) / float64(s.TotalDays) * 100
		s.OccupancyRate = math.Round(rate*100) / 100
	}
	return s
}
