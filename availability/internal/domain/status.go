package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStatus = errors.New("unknown status")

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case BookingPending, BookingConfirmed, BookingActive, BookingCompleted, BookingCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: booking status %q", ErrUnknownStatus, s)
}

// BlocksBooking reports whether an interval with this status takes part in
// conflict detection. Unknown statuses block.
func (s BookingStatus) BlocksBooking() bool {
	switch s {
	case BookingCancelled:
		return false
	case BookingPending, BookingConfirmed, BookingActive, BookingCompleted:
		return true
	}
	return true
}

// HoldsEquipment reports whether the status keeps the equipment away until
// the interval ends; only these count for the next available date.
func (s BookingStatus) HoldsEquipment() bool {
	switch s {
	case BookingActive, BookingConfirmed:
		return true
	case BookingPending, BookingCompleted, BookingCancelled:
		return false
	}
	return false
}

type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentRented      EquipmentStatus = "RENTED"
	EquipmentMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentOutOfOrder  EquipmentStatus = "OUT_OF_ORDER"
)

func ParseEquipmentStatus(s string) (EquipmentStatus, error) {
	st := EquipmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case EquipmentAvailable, EquipmentRented, EquipmentMaintenance, EquipmentOutOfOrder:
		return st, nil
	}
	return "", fmt.Errorf("%w: equipment status %q", ErrUnknownStatus, s)
}

// OutOfService is true for equipment that cannot be booked for any period,
// whatever its reservations look like.
func (s EquipmentStatus) OutOfService() bool {
	switch s {
	case EquipmentMaintenance, EquipmentOutOfOrder:
		return true
	case EquipmentAvailable, EquipmentRented:
		return false
	}
	return true
}
