package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoAvailableDate means no date can be computed for equipment that is in
// maintenance or out of order; callers render a "contact support" state.
var ErrNoAvailableDate = errors.New("equipment is out of service, no available date can be computed")

type InvalidIntervalError struct {
	Start, End time.Time
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval: start %s is after end %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

type InvalidDateError struct {
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	if e.Value == "" {
		return "invalid date: empty value"
	}
	return fmt.Sprintf("invalid date %q", e.Value)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

type ValidationKind string

const (
	KindPastStart           ValidationKind = "PAST_START"
	KindEndBeforeStart      ValidationKind = "END_BEFORE_START"
	KindMaxDurationExceeded ValidationKind = "MAX_DURATION_EXCEEDED"
	KindConflict            ValidationKind = "CONFLICT"
	KindUnavailable         ValidationKind = "EQUIPMENT_UNAVAILABLE"
)

type ValidationError struct {
	Kind ValidationKind
	// AvailableFrom is the earliest accepted start for PAST_START.
	AvailableFrom time.Time
	// Rented is set for PAST_START when the bound comes from a running rental.
	Rented    bool
	MaxDays   int
	Days      int
	Conflicts []BookingInterval
	Status    EquipmentStatus
	Message   string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationKind(err error, kind ValidationKind) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr) && vErr.Kind == kind
}

func NewPastStartError(bound time.Time, rented bool) *ValidationError {
	msg := "start date cannot be in the past"
	if rented {
		msg = fmt.Sprintf("equipment is currently rented, available only from %s", bound.Format(time.DateOnly))
	}
	return &ValidationError{Kind: KindPastStart, AvailableFrom: bound, Rented: rented, Message: msg}
}

func NewEndBeforeStartError(start, end time.Time) *ValidationError {
	return &ValidationError{
		Kind: KindEndBeforeStart,
		Message: fmt.Sprintf("end date %s is before start date %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly)),
	}
}

func NewMaxDurationError(days, maxDays int) *ValidationError {
	return &ValidationError{
		Kind:    KindMaxDurationExceeded,
		Days:    days,
		MaxDays: maxDays,
		Message: fmt.Sprintf("booking of %d days exceeds the maximum of %d days", days, maxDays),
	}
}

func NewConflictError(res ConflictResult) *ValidationError {
	return &ValidationError{
		Kind:      KindConflict,
		Conflicts: res.ConflictingIntervals,
		Message:   res.Message,
	}
}

func NewUnavailableError(status EquipmentStatus) *ValidationError {
	return &ValidationError{
		Kind:    KindUnavailable,
		Status:  status,
		Message: fmt.Sprintf("equipment is %s, contact support", status),
	}
}
