package calendar

import (
	"sort"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/pkg/errors"
	"github.com/teambition/rrule-go"
)

// MaintenancePolicy yields the maintenance windows of one equipment on one
// calendar day.
type MaintenancePolicy interface {
	WindowsFor(equipmentID string, day time.Time) []domain.Span
}

type NoMaintenance struct{}

func (NoMaintenance) WindowsFor(string, time.Time) []domain.Span { return nil }

// Composite merges the windows of several policies.
type Composite []MaintenancePolicy

func (c Composite) WindowsFor(equipmentID string, day time.Time) []domain.Span {
	var out []domain.Span
	for _, p := range c {
		if p == nil {
			continue
		}
		out = append(out, p.WindowsFor(equipmentID, day)...)
	}
	sortSpans(out)
	return out
}

const DefaultMaintenanceRule = "FREQ=MONTHLY;BYMONTHDAY=15"

type RecurringConfig struct {
	// RRule is an RFC 5545 recurrence rule without DTSTART.
	RRule string
	// WindowStart is the offset of the window from midnight.
	WindowStart time.Duration
	Duration    time.Duration
	// Anchor is the first day the rule applies from. Its location is the
	// wall clock of the windows.
	Anchor time.Time
}

func DefaultRecurringConfig() RecurringConfig {
	return RecurringConfig{
		RRule:       DefaultMaintenanceRule,
		WindowStart: 9 * time.Hour,
		Duration:    2 * time.Hour,
		Anchor:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// RecurringPolicy applies the same window to every equipment on the days
// selected by a recurrence rule. The default rule is a placeholder schedule
// (09:00-11:00 on the 15th of each month), not service history.
type RecurringPolicy struct {
	rule     *rrule.RRule
	duration time.Duration
}

func NewRecurringPolicy(cfg RecurringConfig) (*RecurringPolicy, error) {
	if cfg.Duration <= 0 {
		return nil, errors.New("maintenance window duration must be positive")
	}
	if cfg.WindowStart < 0 || cfg.WindowStart >= domain.Day {
		return nil, errors.New("maintenance window start must be within a day")
	}
	r, err := rrule.StrToRRule(cfg.RRule)
	if err != nil {
		return nil, errors.Wrapf(err, "parse maintenance rule %q", cfg.RRule)
	}
	anchor := cfg.Anchor
	if anchor.IsZero() {
		anchor = DefaultRecurringConfig().Anchor
	}
	r.DTStart(domain.StartOfDay(anchor).Add(cfg.WindowStart))
	return &RecurringPolicy{rule: r, duration: cfg.Duration}, nil
}

func (p *RecurringPolicy) WindowsFor(_ string, day time.Time) []domain.Span {
	from := domain.StartOfDay(day)
	occ := p.rule.Between(from, domain.EndOfDay(day), true)
	out := make([]domain.Span, 0, len(occ))
	for _, start := range occ {
		out = append(out, domain.Span{Start: start, End: start.Add(p.duration)})
	}
	return out
}

func sortSpans(spans []domain.Span) {
	sort.Slice(spans, func(i, j int) bool {
		if !spans[i].Start.Equal(spans[j].Start) {
			return spans[i].Start.Before(spans[j].Start)
		}
		return spans[i].End.Before(spans[j].End)
	})
}
