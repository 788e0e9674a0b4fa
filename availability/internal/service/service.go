package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/calendar"
	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/Astemirdum/rental-service/availability/internal/errs"
	"github.com/Astemirdum/rental-service/availability/internal/model"
	"github.com/Astemirdum/rental-service/availability/internal/recommend"
	"github.com/Astemirdum/rental-service/availability/internal/repository"
	"github.com/Astemirdum/rental-service/availability/internal/resolver"
	"github.com/Astemirdum/rental-service/pkg/circuit_breaker"
	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDegradedDays = 7
	degradedIntervalID  = "degraded-placeholder"
)

var holdingStatuses = []domain.BookingStatus{domain.BookingActive, domain.BookingConfirmed}

type Service struct {
	log          *zap.Logger
	repo         repository.Repository
	projector    *calendar.Projector
	enqueuer     Enqueuer
	cb           circuit_breaker.CircuitBreaker
	degradedDays int
}

func NewService(repo repository.Repository, projector *calendar.Projector, enqueuer Enqueuer, log *zap.Logger, degradedDays int) *Service {
	if degradedDays <= 0 {
		degradedDays = defaultDegradedDays
	}
	return &Service{
		log:       log.Named("service"),
		repo:      repo,
		projector: projector,
		enqueuer:  enqueuer,
		cb: circuit_breaker.New(circuit_breaker.Config{
			RecordLength:     20,
			Timeout:          5 * time.Second,
			Percentile:       0.5,
			RecoveryRequests: 2,
		}),
		degradedDays: degradedDays,
	}
}

func (s *Service) Calendar(ctx context.Context, req model.CalendarRequest) (model.CalendarResponse, error) {
	period, err := calendar.ResolvePeriod(req.Now, req.Period, req.StartDate, req.EndDate)
	if err != nil {
		return model.CalendarResponse{}, err
	}
	eq, err := s.equipment(ctx, req.EquipmentID)
	if err != nil {
		return model.CalendarResponse{}, err
	}

	span, today := period.Span(), domain.StartOfDay(req.Now)
	var (
		inPeriod, holding     []domain.BookingInterval
		periodErr, holdingErr error
		catalog               []model.Equipment
	)
	var g errgroup.Group
	g.Go(func() error {
		inPeriod, periodErr = s.reservations(ctx, model.BookingFilter{EquipmentID: eq.ID, From: span.Start, To: span.End})
		return nil
	})
	g.Go(func() error {
		holding, holdingErr = s.reservations(ctx, model.BookingFilter{EquipmentID: eq.ID, From: today, Statuses: holdingStatuses})
		return nil
	})
	g.Go(func() error {
		var err error
		if catalog, err = s.repo.ListEquipmentByCategory(ctx, eq.Category); err != nil {
			s.log.Warn("alternatives unavailable", zap.String("category", eq.Category), zap.Error(err))
			catalog = nil
		}
		return nil
	})
	_ = g.Wait()

	degraded := periodErr != nil || holdingErr != nil
	if degraded {
		s.log.Warn("reservations unavailable, serving placeholder",
			zap.String("equipmentId", eq.ID),
			zap.NamedError("periodErr", periodErr),
			zap.NamedError("holdingErr", holdingErr))
		inPeriod = s.placeholder(eq.ID, req.Now)
		holding = inPeriod
	}

	days := s.projector.Project(eq, inPeriod, period, calendar.Options{
		IncludeMaintenance: req.IncludeMaintenance,
		ShowTimeSlots:      req.ShowTimeSlots,
	})
	data := model.CalendarData{
		MaterielID:   eq.ID,
		MaterielName: eq.Name,
		Category:     eq.Category,
		Status:       eq.CurrentStatus,
		Availability: days,
		Summary:      calendar.Summarize(days),
		Period:       model.Period{Start: domain.NewDate(period.Start), End: domain.NewDate(period.End)},
		Degraded:     degraded,
	}

	bookableFrom := today
	next, err := resolver.NextAvailableDate(eq, holding, req.Now)
	switch {
	case errors.Is(err, domain.ErrNoAvailableDate):
		data.ContactSupport = true
	case err != nil:
		return model.CalendarResponse{}, err
	default:
		d := domain.NewDate(next)
		data.NextAvailableDate = &d
		// only a running rental moves the earliest accepted start
		if eq.CurrentStatus == domain.EquipmentRented {
			bookableFrom = next
		}
	}

	data.Recommendations = model.Recommendations{
		SuggestedDates:       recommend.SuggestedDates(daysFrom(days, bookableFrom), recommend.SuggestedDatesLimit),
		AlternativeMaterials: s.alternatives(eq, catalog),
	}
	if data.ContactSupport {
		data.Recommendations.SuggestedDates = []domain.Date{}
	}
	return model.CalendarResponse{Success: true, Data: data}, nil
}

func (s *Service) CheckBooking(ctx context.Context, req model.CheckRequest) (model.Quote, error) {
	eq, err := s.equipment(ctx, req.EquipmentID)
	if err != nil {
		return model.Quote{}, err
	}
	intervals, err := s.reservations(ctx, model.BookingFilter{EquipmentID: eq.ID, From: domain.StartOfDay(req.Now)})
	if err != nil {
		s.log.Error("CheckBooking reservations", zap.String("equipmentId", eq.ID), zap.Error(err))
		return model.Quote{}, fmt.Errorf("%w: %v", errs.ErrUnavailable, err)
	}
	q, err := resolver.ValidateBooking(resolver.Candidate{
		EquipmentID: eq.ID,
		Start:       req.StartDate.Time,
		End:         req.EndDate.Time,
	}, eq, intervals, req.Now)
	if err != nil {
		return model.Quote{}, err
	}
	return newQuote(eq.ID, q), nil
}

// CreateBooking validates the request again inside the transaction that
// persists it and publishes a booking event on success.
func (s *Service) CreateBooking(ctx context.Context, req model.BookingRequest) (model.Booking, error) {
	id := uuid.NewString()
	created, err := s.repo.CreateBooking(ctx, req.EquipmentID, func(row model.Equipment, existing []model.Booking) (model.Booking, error) {
		eq, err := row.State()
		if err != nil {
			return model.Booking{}, errors.Wrapf(err, "equipment %s", row.ID)
		}
		intervals, err := toIntervals(existing)
		if err != nil {
			return model.Booking{}, err
		}
		q, err := resolver.ValidateBooking(resolver.Candidate{
			EquipmentID: eq.ID,
			Start:       req.StartDate.Time,
			End:         req.EndDate.Time,
		}, eq, intervals, req.Now)
		if err != nil {
			return model.Booking{}, err
		}
		return model.Booking{
			ID:          id,
			EquipmentID: eq.ID,
			UserID:      req.UserID,
			StartDate:   q.Span.Start,
			EndDate:     q.Span.End,
			Status:      string(domain.BookingPending),
			TotalPrice:  q.TotalPrice,
		}, nil
	})
	if err != nil {
		return model.Booking{}, err
	}

	event := kafka.BookingEvent{
		BookingID:   created.ID,
		EquipmentID: created.EquipmentID,
		UserID:      created.UserID,
		StartDate:   created.StartDate,
		EndDate:     created.EndDate,
		Status:      created.Status,
		TotalPrice:  created.TotalPrice,
		CreatedAt:   created.CreatedAt,
	}
	if err := s.enqueuer.Enqueue(kafka.BookingTopic, created.EquipmentID, event); err != nil {
		s.log.Warn("enqueue booking event", zap.String("bookingId", created.ID), zap.Error(err))
	}
	return created, nil
}

func (s *Service) NextAvailable(ctx context.Context, equipmentID string, now time.Time) (model.NextAvailableResponse, error) {
	eq, err := s.equipment(ctx, equipmentID)
	if err != nil {
		return model.NextAvailableResponse{}, err
	}
	resp := model.NextAvailableResponse{EquipmentID: eq.ID, Status: eq.CurrentStatus}
	if eq.CurrentStatus.OutOfService() {
		resp.ContactSupport = true
		resp.Message = domain.ErrNoAvailableDate.Error()
		return resp, nil
	}

	holding, err := s.reservations(ctx, model.BookingFilter{EquipmentID: eq.ID, From: domain.StartOfDay(now), Statuses: holdingStatuses})
	if err != nil {
		s.log.Error("NextAvailable reservations", zap.String("equipmentId", eq.ID), zap.Error(err))
		return model.NextAvailableResponse{}, fmt.Errorf("%w: %v", errs.ErrUnavailable, err)
	}
	next, err := resolver.NextAvailableDate(eq, holding, now)
	if err != nil {
		return model.NextAvailableResponse{}, err
	}
	d := domain.NewDate(next)
	resp.NextAvailableDate = &d
	return resp, nil
}

func (s *Service) UpdateEquipmentStatus(ctx context.Context, equipmentID, status string) error {
	st, err := domain.ParseEquipmentStatus(status)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateEquipmentStatus(ctx, equipmentID, st); err != nil {
		return err
	}
	s.log.Info("equipment status updated", zap.String("equipmentId", equipmentID), zap.String("status", string(st)))
	return nil
}

func (s *Service) equipment(ctx context.Context, id string) (domain.EquipmentState, error) {
	row, err := s.repo.GetEquipment(ctx, id)
	if err != nil {
		return domain.EquipmentState{}, err
	}
	eq, err := row.State()
	if err != nil {
		return domain.EquipmentState{}, errors.Wrapf(err, "equipment %s", id)
	}
	return eq, nil
}

func (s *Service) reservations(ctx context.Context, filter model.BookingFilter) ([]domain.BookingInterval, error) {
	var rows []model.Booking
	err := s.cb.Call(func() error {
		var err error
		rows, err = s.repo.ListBookings(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toIntervals(rows)
}

// placeholder stands in for unreadable reservations: the next degradedDays
// days are shown as reserved.
func (s *Service) placeholder(equipmentID string, now time.Time) []domain.BookingInterval {
	start := domain.StartOfDay(now)
	return []domain.BookingInterval{{
		ID:          degradedIntervalID,
		EquipmentID: equipmentID,
		Span:        domain.Span{Start: start, End: domain.EndOfDay(start.AddDate(0, 0, s.degradedDays-1))},
		Status:      domain.BookingConfirmed,
	}}
}

func (s *Service) alternatives(target domain.EquipmentState, catalog []model.Equipment) []model.Alternative {
	states := make([]domain.EquipmentState, 0, len(catalog))
	for _, row := range catalog {
		st, err := row.State()
		if err != nil {
			s.log.Warn("skip equipment with unknown status", zap.String("equipmentId", row.ID), zap.Error(err))
			continue
		}
		states = append(states, st)
	}
	picked := recommend.AlternativeEquipment(target, states, recommend.AlternativesLimit)
	out := make([]model.Alternative, 0, len(picked))
	for _, eq := range picked {
		out = append(out, model.Alternative{
			ID:          eq.ID,
			Name:        eq.Name,
			Category:    eq.Category,
			PricePerDay: eq.PricePerDay,
		})
	}
	return out
}

func toIntervals(rows []model.Booking) ([]domain.BookingInterval, error) {
	out := make([]domain.BookingInterval, 0, len(rows))
	for _, b := range rows {
		iv, err := b.Interval()
		if err != nil {
			return nil, errors.Wrapf(err, "booking %s", b.ID)
		}
		out = append(out, iv)
	}
	return out, nil
}

func daysFrom(days []calendar.DayOccupancy, from time.Time) []calendar.DayOccupancy {
	for i, d := range days {
		if !d.Date.Before(from) {
			return days[i:]
		}
	}
	return nil
}

func newQuote(equipmentID string, q resolver.Quote) model.Quote {
	return model.Quote{
		EquipmentID:  equipmentID,
		StartDate:    domain.NewDate(q.Span.Start),
		EndDate:      domain.NewDate(q.Span.End),
		TotalDays:    q.TotalDays,
		PricePerDay:  q.PricePerDay,
		TotalPrice:   q.TotalPrice,
		Availability: q.Availability,
	}
}
