package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func interval(t *testing.T, id, start, end string, status domain.BookingStatus) domain.BookingInterval {
	t.Helper()
	b, err := domain.NewBookingInterval(id, "eq-1", day(start), day(end), status)
	require.NoError(t, err)
	return b
}

func TestNewSpan_Invalid(t *testing.T) {
	t.Parallel()
	_, err := domain.NewSpan(day("2024-03-01"), day("2024-01-01"))
	var iErr *domain.InvalidIntervalError
	require.True(t, errors.As(err, &iErr))
	require.Equal(t, day("2024-03-01"), iErr.Start)
}

func TestSpan_Overlaps(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		a, b       [2]string
		wantResult bool
	}{
		{name: "touching endpoints", a: [2]string{"2024-01-10", "2024-01-15"}, b: [2]string{"2024-01-15", "2024-01-20"}, wantResult: true},
		{name: "contained", a: [2]string{"2024-01-10", "2024-01-20"}, b: [2]string{"2024-01-12", "2024-01-13"}, wantResult: true},
		{name: "disjoint", a: [2]string{"2024-01-10", "2024-01-14"}, b: [2]string{"2024-01-15", "2024-01-20"}, wantResult: false},
		{name: "same day", a: [2]string{"2024-01-10", "2024-01-10"}, b: [2]string{"2024-01-10", "2024-01-10"}, wantResult: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := domain.NewSpan(day(tt.a[0]), day(tt.a[1]))
			require.NoError(t, err)
			b, err := domain.NewSpan(day(tt.b[0]), day(tt.b[1]))
			require.NoError(t, err)
			require.Equal(t, tt.wantResult, a.Overlaps(b))
			require.Equal(t, a.Overlaps(b), b.Overlaps(a))
		})
	}
}

func TestSpan_DurationInDays(t *testing.T) {
	t.Parallel()
	start := day("2024-02-15")
	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{name: "same instant", end: start, want: 1},
		{name: "few hours", end: start.Add(5 * time.Hour), want: 1},
		{name: "exact days", end: start.AddDate(0, 0, 5), want: 5},
		{name: "partial day rounds up", end: start.AddDate(0, 0, 5).Add(time.Minute), want: 6},
		{name: "end of last day", end: domain.EndOfDay(start.AddDate(0, 0, 5)), want: 6},
	}
	for _, tt := range tests {
		s, err := domain.NewSpan(start, tt.end)
		require.NoError(t, err)
		require.Equal(t, tt.want, s.DurationInDays(), tt.name)
	}
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()
	candidate, err := domain.NewSpan(day("2024-02-18"), day("2024-02-22"))
	require.NoError(t, err)

	t.Run("single active conflict", func(t *testing.T) {
		existing := []domain.BookingInterval{interval(t, "b1", "2024-02-15", "2024-02-20", domain.BookingActive)}
		res := domain.DetectConflicts("eq-1", candidate, existing)
		require.False(t, res.IsAvailable)
		require.Len(t, res.ConflictingIntervals, 1)
		require.Contains(t, res.Message, "2024-02-15")
		require.Contains(t, res.Message, "2024-02-20")
	})

	t.Run("cancelled never conflicts", func(t *testing.T) {
		existing := []domain.BookingInterval{interval(t, "b1", "2024-02-15", "2024-02-25", domain.BookingCancelled)}
		res := domain.DetectConflicts("eq-1", candidate, existing)
		require.True(t, res.IsAvailable)
		require.Empty(t, res.ConflictingIntervals)
	})

	t.Run("other equipment ignored", func(t *testing.T) {
		b := interval(t, "b1", "2024-02-15", "2024-02-25", domain.BookingActive)
		b.EquipmentID = "eq-2"
		res := domain.DetectConflicts("eq-1", candidate, []domain.BookingInterval{b})
		require.True(t, res.IsAvailable)
	})

	t.Run("multiple conflicts sorted with count", func(t *testing.T) {
		existing := []domain.BookingInterval{
			interval(t, "b3", "2024-02-21", "2024-02-23", domain.BookingCompleted),
			interval(t, "b1", "2024-02-10", "2024-02-18", domain.BookingPending),
			interval(t, "b2", "2024-02-19", "2024-02-19", domain.BookingConfirmed),
			interval(t, "b4", "2024-02-23", "2024-02-28", domain.BookingActive),
		}
		res := domain.DetectConflicts("eq-1", candidate, existing)
		require.False(t, res.IsAvailable)
		ids := make([]string, 0, len(res.ConflictingIntervals))
		for _, c := range res.ConflictingIntervals {
			ids = append(ids, c.ID)
		}
		require.Equal(t, []string{"b1", "b2", "b3"}, ids)
		require.Contains(t, res.Message, "3 existing bookings")
	})
}

func TestParseDate(t *testing.T) {
	t.Parallel()
	d, err := domain.ParseDate("2024-02-20")
	require.NoError(t, err)
	require.Equal(t, day("2024-02-20"), d)

	for _, v := range []string{
		"2024-02-20T15:04:05Z",
		"2024-02-20T00:00:00+05:00",
		"2024-02-20T23:30:00-08:00",
	} {
		d, err = domain.ParseDate(v)
		require.NoError(t, err, v)
		require.Equal(t, day("2024-02-20"), d, v)
		require.Equal(t, time.UTC, d.Location(), v)
	}

	_, err = domain.ParseDate("2024-13-45")
	var dErr *domain.InvalidDateError
	require.True(t, errors.As(err, &dErr))
	require.Equal(t, "2024-13-45", dErr.Value)
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()
	var v struct {
		D domain.Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-02-21"}`), &v))
	require.Equal(t, day("2024-02-21"), v.D.Time)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `{"d":"2024-02-21"}`, string(b))

	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-02-16T00:00:00+05:00"}`), &v))
	require.Equal(t, day("2024-02-16"), v.D.Time)

	require.Error(t, json.Unmarshal([]byte(`{"d":"not-a-date"}`), &v))
}

func TestStatuses(t *testing.T) {
	t.Parallel()
	st, err := domain.ParseBookingStatus("active")
	require.NoError(t, err)
	require.Equal(t, domain.BookingActive, st)
	_, err = domain.ParseBookingStatus("LOST")
	require.ErrorIs(t, err, domain.ErrUnknownStatus)
	_, err = domain.ParseEquipmentStatus("BROKEN")
	require.ErrorIs(t, err, domain.ErrUnknownStatus)

	require.True(t, domain.EquipmentMaintenance.OutOfService())
	require.True(t, domain.EquipmentOutOfOrder.OutOfService())
	require.False(t, domain.EquipmentRented.OutOfService())
	require.True(t, domain.BookingConfirmed.HoldsEquipment())
	require.False(t, domain.BookingPending.HoldsEquipment())
}
