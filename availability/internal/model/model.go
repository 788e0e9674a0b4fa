package model

import (
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/calendar"
	"github.com/Astemirdum/rental-service/availability/internal/domain"
)

type Equipment struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Status      string    `json:"status" db:"status"`
	PricePerDay float64   `json:"pricePerDay" db:"price_per_day"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

func (e Equipment) State() (domain.EquipmentState, error) {
	status, err := domain.ParseEquipmentStatus(e.Status)
	if err != nil {
		return domain.EquipmentState{}, err
	}
	return domain.EquipmentState{
		ID:            e.ID,
		Name:          e.Name,
		Category:      e.Category,
		CurrentStatus: status,
		PricePerDay:   e.PricePerDay,
	}, nil
}

type Booking struct {
	ID          string    `json:"id" db:"id"`
	EquipmentID string    `json:"equipmentId" db:"equipment_id"`
	UserID      string    `json:"userId" db:"user_id"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	Status      string    `json:"status" db:"status"`
	TotalPrice  float64   `json:"totalPrice" db:"total_price"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Interval keeps unknown statuses as they are; they block bookings.
func (b Booking) Interval() (domain.BookingInterval, error) {
	status, err := domain.ParseBookingStatus(b.Status)
	if err != nil {
		status = domain.BookingStatus(b.Status)
	}
	return domain.NewBookingInterval(b.ID, b.EquipmentID, b.StartDate.UTC(), b.EndDate.UTC(), status)
}

type BookingFilter struct {
	EquipmentID string
	// From and To keep bookings overlapping [From, To]; zero means unbounded.
	From     time.Time
	To       time.Time
	Statuses []domain.BookingStatus
}

type CalendarRequest struct {
	EquipmentID        string
	StartDate          *time.Time
	EndDate            *time.Time
	Period             calendar.PeriodName
	IncludeMaintenance bool
	ShowTimeSlots      bool
	Now                time.Time
}

type CalendarResponse struct {
	Success bool         `json:"success"`
	Data    CalendarData `json:"data"`
}

type CalendarData struct {
	MaterielID        string                  `json:"materielId"`
	MaterielName      string                  `json:"materielName"`
	Category          string                  `json:"category"`
	Status            domain.EquipmentStatus  `json:"status"`
	Availability      []calendar.DayOccupancy `json:"availability"`
	Summary           calendar.Summary        `json:"summary"`
	Period            Period                  `json:"period"`
	NextAvailableDate *domain.Date            `json:"nextAvailableDate"`
	ContactSupport    bool                    `json:"contactSupport,omitempty"`
	Degraded          bool                    `json:"degraded,omitempty"`
	Recommendations   Recommendations         `json:"recommendations"`
}

type Period struct {
	Start domain.Date `json:"start"`
	End   domain.Date `json:"end"`
}

type Recommendations struct {
	SuggestedDates       []domain.Date `json:"suggestedDates"`
	AlternativeMaterials []Alternative `json:"alternativeMaterials"`
}

type Alternative struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	PricePerDay float64 `json:"pricePerDay"`
}

type CheckRequest struct {
	EquipmentID string      `json:"-" validate:"required,uuid"`
	StartDate   domain.Date `json:"startDate"`
	EndDate     domain.Date `json:"endDate"`
	Now         time.Time   `json:"-"`
}

type BookingRequest struct {
	EquipmentID string      `json:"equipmentId" validate:"required,uuid"`
	UserID      string      `json:"userId" validate:"required,max=80"`
	StartDate   domain.Date `json:"startDate"`
	EndDate     domain.Date `json:"endDate"`
	Now         time.Time   `json:"-"`
}

type Quote struct {
	EquipmentID  string                `json:"equipmentId"`
	StartDate    domain.Date           `json:"startDate"`
	EndDate      domain.Date           `json:"endDate"`
	TotalDays    int                   `json:"totalDays"`
	PricePerDay  float64               `json:"pricePerDay"`
	TotalPrice   float64               `json:"totalPrice"`
	Availability domain.ConflictResult `json:"availability"`
}

type NextAvailableResponse struct {
	EquipmentID       string                 `json:"equipmentId"`
	Status            domain.EquipmentStatus `json:"status"`
	NextAvailableDate *domain.Date           `json:"nextAvailableDate"`
	ContactSupport    bool                   `json:"contactSupport,omitempty"`
	Message           string                 `json:"message,omitempty"`
}

type StatusUpdateRequest struct {
	EquipmentID string `json:"-" validate:"required,uuid"`
	Status      string `json:"status" validate:"required,oneof=AVAILABLE RENTED MAINTENANCE OUT_OF_ORDER"`
}
