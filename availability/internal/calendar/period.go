package calendar

import (
	"strings"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/pkg/errors"
)

type PeriodName string

const (
	PeriodWeek    PeriodName = "week"
	PeriodMonth   PeriodName = "month"
	PeriodQuarter PeriodName = "quarter"
)

// MaxPeriodDays bounds a single calendar projection.
const MaxPeriodDays = 366

var (
	ErrUnknownPeriod = errors.New("unknown period, expected week, month or quarter")
	ErrPeriodTooLong = errors.Errorf("period is longer than %d days", MaxPeriodDays)
)

func ParsePeriodName(s string) (PeriodName, error) {
	switch p := PeriodName(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodMonth, nil
	case PeriodWeek, PeriodMonth, PeriodQuarter:
		return p, nil
	}
	return "", ErrUnknownPeriod
}

// Period is an inclusive range of calendar days; Start and End are both
// midnights.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Days() int {
	a := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(p.End.Year(), p.End.Month(), p.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a)/domain.Day) + 1
}

// Span covers the whole of the last day.
func (p Period) Span() domain.Span {
	return domain.Span{Start: p.Start, End: domain.EndOfDay(p.End)}
}

// NamedPeriod returns the week (Sunday first), month or quarter containing
// anchor.
func NamedPeriod(name PeriodName, anchor time.Time) (Period, error) {
	d := domain.StartOfDay(anchor)
	switch name {
	case PeriodWeek:
		start := d.AddDate(0, 0, -int(d.Weekday()))
		return Period{Start: start, End: start.AddDate(0, 0, 6)}, nil
	case PeriodMonth:
		start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
		return Period{Start: start, End: start.AddDate(0, 1, -1)}, nil
	case PeriodQuarter:
		first := time.Month((int(d.Month())-1)/3*3 + 1)
		start := time.Date(d.Year(), first, 1, 0, 0, 0, 0, d.Location())
		return Period{Start: start, End: start.AddDate(0, 3, -1)}, nil
	}
	return Period{}, ErrUnknownPeriod
}

// ResolvePeriod picks the projected range. Explicit bounds win; a lone start
// anchors the named period, a lone end runs from today. With no bounds the
// named period (month by default) around now is used.
func ResolvePeriod(now time.Time, name PeriodName, start, end *time.Time) (Period, error) {
	if name == "" {
		name = PeriodMonth
	}
	var (
		p   Period
		err error
	)
	switch {
	case start != nil && end != nil:
		p = Period{Start: domain.StartOfDay(*start), End: domain.StartOfDay(*end)}
	case start != nil:
		p, err = NamedPeriod(name, *start)
		if err != nil {
			return Period{}, err
		}
		p.Start = domain.StartOfDay(*start)
	case end != nil:
		p = Period{Start: domain.StartOfDay(now), End: domain.StartOfDay(*end)}
	default:
		return NamedPeriod(name, now)
	}
	if p.End.Before(p.Start) {
		return Period{}, &domain.InvalidIntervalError{Start: p.Start, End: p.End}
	}
	if p.Days() > MaxPeriodDays {
		return Period{}, ErrPeriodTooLong
	}
	return p, nil
}
