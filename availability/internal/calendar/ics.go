package calendar

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/domain"
	ical "github.com/arran4/golang-ical"
	"github.com/pkg/errors"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"
)

// equipmentProperty scopes a VEVENT to one equipment; events without it
// apply to the whole fleet.
const equipmentProperty = ical.ComponentProperty("X-EQUIPMENT-ID")

type icsWindow struct {
	uid         string
	equipmentID string
	span        domain.Span
	rule        *rrule.RRule
}

// ICSPolicy serves maintenance windows read from an iCalendar feed. It can be
// reloaded while the service is running.
type ICSPolicy struct {
	path string
	log  *zap.Logger

	mu      sync.RWMutex
	windows []icsWindow
}

func NewICSPolicy(path string, log *zap.Logger) (*ICSPolicy, error) {
	p := &ICSPolicy{path: path, log: log.Named("ics")}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the feed file. On failure the previous windows are kept.
func (p *ICSPolicy) Reload() error {
	body, err := os.ReadFile(p.path)
	if err != nil {
		return errors.Wrap(err, "read maintenance calendar")
	}
	if err := p.Load(bytes.NewReader(body)); err != nil {
		return err
	}
	p.log.Debug("maintenance calendar loaded", zap.String("path", p.path))
	return nil
}

func (p *ICSPolicy) Load(r io.Reader) error {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return errors.Wrap(err, "parse maintenance calendar")
	}
	windows := make([]icsWindow, 0)
	for _, ev := range cal.Events() {
		w, err := parseMaintenanceEvent(ev)
		if err != nil {
			p.log.Warn("skip maintenance event", zap.Error(err))
			continue
		}
		windows = append(windows, w)
	}

	p.mu.Lock()
	p.windows = windows
	p.mu.Unlock()
	return nil
}

func (p *ICSPolicy) WindowsFor(equipmentID string, day time.Time) []domain.Span {
	dayStart, dayEnd := domain.StartOfDay(day), domain.EndOfDay(day)
	daySpan := domain.Span{Start: dayStart, End: dayEnd}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []domain.Span
	for _, w := range p.windows {
		if w.equipmentID != "" && w.equipmentID != equipmentID {
			continue
		}
		if w.rule == nil {
			if w.span.Overlaps(daySpan) {
				out = append(out, w.span)
			}
			continue
		}
		length := w.span.End.Sub(w.span.Start)
		// occurrences starting up to one window length earlier can still reach into the day
		for _, start := range w.rule.Between(dayStart.Add(-length), dayEnd, true) {
			occ := domain.Span{Start: start, End: start.Add(length)}
			if occ.Overlaps(daySpan) {
				out = append(out, occ)
			}
		}
	}
	sortSpans(out)
	return out
}

func parseMaintenanceEvent(ev *ical.VEvent) (icsWindow, error) {
	var w icsWindow
	if p := ev.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		w.uid = p.Value
	}
	start, err := ev.GetStartAt()
	if err != nil {
		return w, errors.Wrapf(err, "event %q: DTSTART", w.uid)
	}
	allDay := isAllDay(ev.GetProperty(ical.ComponentPropertyDtStart))
	end, err := ev.GetEndAt()
	switch {
	case err != nil && allDay:
		end = start.AddDate(0, 0, 1)
	case err != nil:
		end = start
	}
	if allDay {
		// date values are floating, read them as UTC calendar days
		start, end = utcDay(start), utcDay(end)
	}
	// DTEND is exclusive, spans are closed
	if end.After(start) {
		end = end.Add(-time.Nanosecond)
	}
	span, err := domain.NewSpan(start, end)
	if err != nil {
		return w, errors.Wrapf(err, "event %q", w.uid)
	}
	w.span = span
	if p := ev.GetProperty(equipmentProperty); p != nil {
		w.equipmentID = p.Value
	}
	if p := ev.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
		r, err := rrule.StrToRRule(p.Value)
		if err != nil {
			return w, errors.Wrapf(err, "event %q: RRULE", w.uid)
		}
		r.DTStart(start)
		w.rule = r
	}
	return w, nil
}

// isAllDay reports a DATE-valued DTSTART, either by VALUE=DATE or by a value
// without a time part.
func isAllDay(p *ical.IANAProperty) bool {
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters[string(ical.ParameterValue)]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
