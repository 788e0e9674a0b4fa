package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/calendar"
	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/Astemirdum/rental-service/availability/internal/errs"
	"github.com/Astemirdum/rental-service/availability/internal/model"
	"github.com/Astemirdum/rental-service/availability/internal/repository"
	"github.com/Astemirdum/rental-service/availability/internal/service"
	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	excavatorID = "4c8a7f2e-1d3b-4a9e-8f60-2b7c5d1e9a01"
	komatsuID   = "4c8a7f2e-1d3b-4a9e-8f60-2b7c5d1e9a02"
	kubotaID    = "4c8a7f2e-1d3b-4a9e-8f60-2b7c5d1e9a03"
	craneID     = "4c8a7f2e-1d3b-4a9e-8f60-2b7c5d1e9a04"
)

// memRepo keeps rows in memory; its mutex plays the role of the equipment
// row lock taken by CreateBooking.
type memRepo struct {
	mu          sync.Mutex
	equipment   map[string]model.Equipment
	bookings    []model.Booking
	bookingsErr error
	catalogErr  error
}

var _ repository.Repository = (*memRepo)(nil)

func newMemRepo(eqs ...model.Equipment) *memRepo {
	r := &memRepo{equipment: make(map[string]model.Equipment)}
	for _, eq := range eqs {
		r.equipment[eq.ID] = eq
	}
	return r
}

func (r *memRepo) GetEquipment(_ context.Context, id string) (model.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	eq, ok := r.equipment[id]
	if !ok {
		return model.Equipment{}, errs.ErrNotFound
	}
	return eq, nil
}

func (r *memRepo) ListEquipmentByCategory(_ context.Context, category string) ([]model.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.catalogErr != nil {
		return nil, r.catalogErr
	}
	out := make([]model.Equipment, 0)
	for _, eq := range r.equipment {
		if eq.Category == category {
			out = append(out, eq)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) UpdateEquipmentStatus(_ context.Context, id string, status domain.EquipmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	eq, ok := r.equipment[id]
	if !ok {
		return errs.ErrNotFound
	}
	eq.Status = string(status)
	r.equipment[id] = eq
	return nil
}

func (r *memRepo) ListBookings(_ context.Context, f model.BookingFilter) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bookingsErr != nil {
		return nil, r.bookingsErr
	}
	out := make([]model.Booking, 0)
	for _, b := range r.bookings {
		if b.EquipmentID != f.EquipmentID {
			continue
		}
		if !f.From.IsZero() && b.EndDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && b.StartDate.After(f.To) {
			continue
		}
		if len(f.Statuses) > 0 && !hasStatus(f.Statuses, b.Status) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func hasStatus(statuses []domain.BookingStatus, s string) bool {
	for _, st := range statuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

func (r *memRepo) CreateBooking(_ context.Context, equipmentID string, check repository.BookingCheck) (model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	eq, ok := r.equipment[equipmentID]
	if !ok {
		return model.Booking{}, errs.ErrNotFound
	}
	existing := make([]model.Booking, 0)
	for _, b := range r.bookings {
		if b.EquipmentID == equipmentID && b.Status != string(domain.BookingCancelled) {
			existing = append(existing, b)
		}
	}
	b, err := check(eq, existing)
	if err != nil {
		return model.Booking{}, err
	}
	b.CreatedAt = time.Date(2024, 2, 16, 12, 0, 0, 0, time.UTC)
	r.bookings = append(r.bookings, b)
	return b, nil
}

type recordingEnqueuer struct {
	mu     sync.Mutex
	err    error
	topics []string
	events []any
}

func (q *recordingEnqueuer) Enqueue(topic, _ string, v any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.topics = append(q.topics, topic)
	q.events = append(q.events, v)
	return nil
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func date(s string) domain.Date {
	return domain.NewDate(day(s))
}

func activeRental(id, equipmentID, start, end string, status domain.BookingStatus) model.Booking {
	return model.Booking{
		ID:          id,
		EquipmentID: equipmentID,
		UserID:      "user-1",
		StartDate:   day(start),
		EndDate:     domain.EndOfDay(day(end)),
		Status:      string(status),
	}
}

func fleet() *memRepo {
	return newMemRepo(
		model.Equipment{ID: excavatorID, Name: "Excavator CAT 320", Category: "excavators", Status: "RENTED", PricePerDay: 450},
		model.Equipment{ID: komatsuID, Name: "Excavator Komatsu PC210", Category: "excavators", Status: "AVAILABLE", PricePerDay: 420},
		model.Equipment{ID: kubotaID, Name: "Mini excavator Kubota U27", Category: "excavators", Status: "MAINTENANCE", PricePerDay: 180},
		model.Equipment{ID: craneID, Name: "Tower crane Liebherr 150", Category: "cranes", Status: "AVAILABLE", PricePerDay: 900},
	)
}

func newService(t *testing.T, repo repository.Repository, enq service.Enqueuer) *service.Service {
	t.Helper()
	policy, err := calendar.NewRecurringPolicy(calendar.DefaultRecurringConfig())
	require.NoError(t, err)
	return service.NewService(repo, calendar.NewProjector(policy), enq, zap.NewNop(), 7)
}

var now = day("2024-02-16").Add(10 * time.Hour)

func TestService_Calendar(t *testing.T) {
	t.Parallel()
	repo := fleet()
	repo.bookings = []model.Booking{activeRental("b1", excavatorID, "2024-02-15", "2024-02-20", domain.BookingActive)}
	svc := newService(t, repo, &recordingEnqueuer{})

	resp, err := svc.Calendar(context.Background(), model.CalendarRequest{
		EquipmentID:        excavatorID,
		Period:             calendar.PeriodMonth,
		IncludeMaintenance: true,
		Now:                now,
	})
	require.NoError(t, err)
	require.True(t, resp.Success)

	data := resp.Data
	require.Equal(t, excavatorID, data.MaterielID)
	require.Equal(t, "Excavator CAT 320", data.MaterielName)
	require.False(t, data.Degraded)
	require.Len(t, data.Availability, 29)
	require.Equal(t, model.Period{Start: date("2024-02-01"), End: date("2024-02-29")}, data.Period)

	require.Equal(t, calendar.DayMaintenance, data.Availability[14].Status) // 15th
	for i := 15; i <= 19; i++ {
		require.Equal(t, calendar.DayRented, data.Availability[i].Status, data.Availability[i].Date.String())
	}
	require.Equal(t, calendar.DayAvailable, data.Availability[20].Status)
	require.Equal(t, calendar.Summary{
		TotalDays:       29,
		AvailableDays:   23,
		RentedDays:      5,
		MaintenanceDays: 1,
		OccupancyRate:   17.24,
	}, data.Summary)

	require.NotNil(t, data.NextAvailableDate)
	require.Equal(t, "2024-02-21", data.NextAvailableDate.String())
	require.False(t, data.ContactSupport)

	suggested := make([]string, 0, len(data.Recommendations.SuggestedDates))
	for _, d := range data.Recommendations.SuggestedDates {
		suggested = append(suggested, d.String())
	}
	require.Equal(t, []string{"2024-02-21", "2024-02-22", "2024-02-23", "2024-02-24", "2024-02-25"}, suggested)
	require.Equal(t, []model.Alternative{
		{ID: komatsuID, Name: "Excavator Komatsu PC210", Category: "excavators", PricePerDay: 420},
	}, data.Recommendations.AlternativeMaterials)
}

func TestService_Calendar_SuggestsGapsBetweenBookings(t *testing.T) {
	t.Parallel()
	repo := fleet()
	repo.bookings = []model.Booking{
		activeRental("b1", craneID, "2024-02-17", "2024-02-18", domain.BookingConfirmed),
		activeRental("b2", craneID, "2024-02-26", "2024-02-28", domain.BookingConfirmed),
	}
	svc := newService(t, repo, &recordingEnqueuer{})
	ctx := context.Background()

	resp, err := svc.Calendar(ctx, model.CalendarRequest{EquipmentID: craneID, Now: now})
	require.NoError(t, err)
	require.Equal(t, "2024-02-29", resp.Data.NextAvailableDate.String())

	suggested := make([]string, 0, len(resp.Data.Recommendations.SuggestedDates))
	for _, d := range resp.Data.Recommendations.SuggestedDates {
		suggested = append(suggested, d.String())
	}
	require.Equal(t, []string{"2024-02-16", "2024-02-19", "2024-02-20", "2024-02-21", "2024-02-22"}, suggested)

	q, err := svc.CheckBooking(ctx, model.CheckRequest{
		EquipmentID: craneID, StartDate: date("2024-02-19"), EndDate: date("2024-02-22"), Now: now,
	})
	require.NoError(t, err)
	require.Equal(t, 4, q.TotalDays)
}

func TestService_Calendar_AlternativesUnavailable(t *testing.T) {
	t.Parallel()
	repo := fleet()
	repo.catalogErr = errors.New("statement timeout")
	svc := newService(t, repo, &recordingEnqueuer{})

	resp, err := svc.Calendar(context.Background(), model.CalendarRequest{EquipmentID: craneID, Now: now})
	require.NoError(t, err)
	require.False(t, resp.Data.Degraded)
	require.Empty(t, resp.Data.Recommendations.AlternativeMaterials)
	require.NotNil(t, resp.Data.Recommendations.AlternativeMaterials)
	require.Len(t, resp.Data.Recommendations.SuggestedDates, 5)
}

func TestService_Calendar_Degraded(t *testing.T) {
	t.Parallel()
	repo := fleet()
	repo.bookingsErr = errors.New("connection refused")
	svc := newService(t, repo, &recordingEnqueuer{})

	resp, err := svc.Calendar(context.Background(), model.CalendarRequest{EquipmentID: craneID, Now: now})
	require.NoError(t, err)
	require.True(t, resp.Data.Degraded)
	require.Equal(t, 7, resp.Data.Summary.ReservedDays)
	require.Equal(t, calendar.DayAvailable, resp.Data.Availability[14].Status)
	require.Equal(t, calendar.DayReserved, resp.Data.Availability[15].Status)
	require.Equal(t, calendar.DayReserved, resp.Data.Availability[21].Status)
	require.Equal(t, calendar.DayAvailable, resp.Data.Availability[22].Status)
	require.Equal(t, "2024-02-23", resp.Data.NextAvailableDate.String())
}

func TestService_Calendar_OutOfService(t *testing.T) {
	t.Parallel()
	svc := newService(t, fleet(), &recordingEnqueuer{})

	resp, err := svc.Calendar(context.Background(), model.CalendarRequest{EquipmentID: kubotaID, Period: calendar.PeriodWeek, Now: now})
	require.NoError(t, err)
	require.True(t, resp.Data.ContactSupport)
	require.Nil(t, resp.Data.NextAvailableDate)
	require.Empty(t, resp.Data.Recommendations.SuggestedDates)
	require.Len(t, resp.Data.Recommendations.AlternativeMaterials, 1)
	for _, d := range resp.Data.Availability {
		require.Equal(t, calendar.DayMaintenance, d.Status)
	}
}

func TestService_Calendar_Errors(t *testing.T) {
	t.Parallel()
	svc := newService(t, fleet(), &recordingEnqueuer{})

	_, err := svc.Calendar(context.Background(), model.CalendarRequest{EquipmentID: "missing", Now: now})
	require.ErrorIs(t, err, errs.ErrNotFound)

	start, end := day("2024-03-01"), day("2024-02-01")
	_, err = svc.Calendar(context.Background(), model.CalendarRequest{EquipmentID: craneID, StartDate: &start, EndDate: &end, Now: now})
	var invalid *domain.InvalidIntervalError
	require.ErrorAs(t, err, &invalid)
}

func TestService_CheckBooking(t *testing.T) {
	t.Parallel()
	repo := fleet()
	repo.bookings = []model.Booking{activeRental("b1", komatsuID, "2024-02-18", "2024-02-20", domain.BookingConfirmed)}
	svc := newService(t, repo, &recordingEnqueuer{})
	ctx := context.Background()

	q, err := svc.CheckBooking(ctx, model.CheckRequest{
		EquipmentID: komatsuID, StartDate: date("2024-02-21"), EndDate: date("2024-02-25"), Now: now,
	})
	require.NoError(t, err)
	require.Equal(t, 5, q.TotalDays)
	require.Equal(t, 2100.0, q.TotalPrice)
	require.Equal(t, "2024-02-25", q.EndDate.String())
	require.True(t, q.Availability.IsAvailable)

	_, err = svc.CheckBooking(ctx, model.CheckRequest{
		EquipmentID: komatsuID, StartDate: date("2024-02-17"), EndDate: date("2024-02-18"), Now: now,
	})
	require.True(t, domain.IsValidationKind(err, domain.KindConflict), "got %v", err)

	_, err = svc.CheckBooking(ctx, model.CheckRequest{
		EquipmentID: komatsuID, StartDate: date("2024-03-01"), EndDate: date("2024-01-01"), Now: now,
	})
	require.True(t, domain.IsValidationKind(err, domain.KindEndBeforeStart), "got %v", err)

	repo.mu.Lock()
	repo.bookingsErr = errors.New("timeout")
	repo.mu.Unlock()
	_, err = svc.CheckBooking(ctx, model.CheckRequest{
		EquipmentID: komatsuID, StartDate: date("2024-02-21"), EndDate: date("2024-02-25"), Now: now,
	})
	require.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestService_CheckBooking_OffsetDates(t *testing.T) {
	t.Parallel()
	svc := newService(t, fleet(), &recordingEnqueuer{})

	var req model.CheckRequest
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2024-02-16T00:00:00+05:00","endDate":"2024-02-17T00:00:00+05:00"}`), &req))
	req.EquipmentID, req.Now = craneID, now

	q, err := svc.CheckBooking(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "2024-02-16", q.StartDate.String())
	require.Equal(t, "2024-02-17", q.EndDate.String())
	require.Equal(t, 2, q.TotalDays)
	require.Equal(t, 1800.0, q.TotalPrice)
}

func TestService_CreateBooking(t *testing.T) {
	t.Parallel()
	repo := fleet()
	enq := &recordingEnqueuer{}
	svc := newService(t, repo, enq)
	ctx := context.Background()

	req := model.BookingRequest{
		EquipmentID: craneID,
		UserID:      "user-7",
		StartDate:   date("2024-02-16"),
		EndDate:     date("2024-02-21"),
		Now:         now,
	}
	b, err := svc.CreateBooking(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, b.ID)
	require.Equal(t, string(domain.BookingPending), b.Status)
	require.Equal(t, 5400.0, b.TotalPrice)
	require.Equal(t, domain.EndOfDay(day("2024-02-21")), b.EndDate)

	require.Equal(t, []string{kafka.BookingTopic}, enq.topics)
	event, ok := enq.events[0].(kafka.BookingEvent)
	require.True(t, ok)
	require.Equal(t, b.ID, event.BookingID)
	require.Equal(t, "user-7", event.UserID)

	// the end day of the first booking is still taken
	req.StartDate, req.EndDate = date("2024-02-21"), date("2024-02-23")
	_, err = svc.CreateBooking(ctx, req)
	require.True(t, domain.IsValidationKind(err, domain.KindConflict), "got %v", err)

	req.StartDate, req.EndDate = date("2024-02-22"), date("2024-02-23")
	_, err = svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	req.EquipmentID = "missing"
	_, err = svc.CreateBooking(ctx, req)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_CreateBooking_EnqueueFailure(t *testing.T) {
	t.Parallel()
	svc := newService(t, fleet(), &recordingEnqueuer{err: errors.New("broker down")})

	b, err := svc.CreateBooking(context.Background(), model.BookingRequest{
		EquipmentID: craneID, UserID: "user-1", StartDate: date("2024-03-01"), EndDate: date("2024-03-02"), Now: now,
	})
	require.NoError(t, err)
	require.Equal(t, 1800.0, b.TotalPrice)
}

func TestService_CreateBooking_Concurrent(t *testing.T) {
	t.Parallel()
	repo := fleet()
	svc := newService(t, repo, &recordingEnqueuer{})

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), model.BookingRequest{
				EquipmentID: craneID, UserID: "user-1", StartDate: date("2024-03-01"), EndDate: date("2024-03-05"), Now: now,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case domain.IsValidationKind(err, domain.KindConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, succeeded)
	require.Equal(t, n-1, conflicts)
	require.Len(t, repo.bookings, 1)
}

func TestService_NextAvailable(t *testing.T) {
	t.Parallel()
	repo := fleet()
	repo.bookings = []model.Booking{
		activeRental("b1", excavatorID, "2024-02-15", "2024-02-20", domain.BookingActive),
		activeRental("b2", excavatorID, "2024-02-22", "2024-02-24", domain.BookingPending),
	}
	svc := newService(t, repo, &recordingEnqueuer{})
	ctx := context.Background()

	resp, err := svc.NextAvailable(ctx, excavatorID, now)
	require.NoError(t, err)
	require.Equal(t, "2024-02-21", resp.NextAvailableDate.String())
	require.Equal(t, domain.EquipmentRented, resp.Status)

	resp, err = svc.NextAvailable(ctx, kubotaID, now)
	require.NoError(t, err)
	require.True(t, resp.ContactSupport)
	require.Nil(t, resp.NextAvailableDate)

	_, err = svc.NextAvailable(ctx, "missing", now)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_UpdateEquipmentStatus(t *testing.T) {
	t.Parallel()
	repo := fleet()
	svc := newService(t, repo, &recordingEnqueuer{})
	ctx := context.Background()

	require.NoError(t, svc.UpdateEquipmentStatus(ctx, kubotaID, "available"))
	eq, err := repo.GetEquipment(ctx, kubotaID)
	require.NoError(t, err)
	require.Equal(t, "AVAILABLE", eq.Status)

	require.Error(t, svc.UpdateEquipmentStatus(ctx, kubotaID, "BROKEN"))
	require.ErrorIs(t, svc.UpdateEquipmentStatus(ctx, "missing", "RENTED"), errs.ErrNotFound)
}
