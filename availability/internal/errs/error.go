package errs

import (
	"errors"

	"github.com/Astemirdum/rental-service/availability/internal/domain"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a concurrent booking won the race for the
	// same dates.
	ErrConflict = errors.New("booking conflicts with an existing reservation")
	// ErrUnavailable means reservation data could not be read and no
	// decision can be made.
	ErrUnavailable = errors.New("reservation data is temporarily unavailable")
)

type ValidationErrorResponse struct {
	Message       string                   `json:"message"`
	Kind          domain.ValidationKind    `json:"kind"`
	AvailableFrom *domain.Date             `json:"availableFrom,omitempty"`
	MaxDays       int                      `json:"maxDays,omitempty"`
	Days          int                      `json:"days,omitempty"`
	Conflicts     []domain.BookingInterval `json:"conflicts,omitempty"`
}

func NewValidationErrorResponse(err *domain.ValidationError) ValidationErrorResponse {
	resp := ValidationErrorResponse{
		Message:   err.Message,
		Kind:      err.Kind,
		MaxDays:   err.MaxDays,
		Days:      err.Days,
		Conflicts: err.Conflicts,
	}
	if !err.AvailableFrom.IsZero() {
		d := domain.NewDate(err.AvailableFrom)
		resp.AvailableFrom = &d
	}
	return resp
}
