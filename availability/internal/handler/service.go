package handler

import (
	"context"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/model"
	"github.com/Astemirdum/rental-service/availability/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type AvailabilityService interface {
	Calendar(ctx context.Context, req model.CalendarRequest) (model.CalendarResponse, error)
	CheckBooking(ctx context.Context, req model.CheckRequest) (model.Quote, error)
	CreateBooking(ctx context.Context, req model.BookingRequest) (model.Booking, error)
	NextAvailable(ctx context.Context, equipmentID string, now time.Time) (model.NextAvailableResponse, error)
	UpdateEquipmentStatus(ctx context.Context, equipmentID, status string) error
}

var _ AvailabilityService = (*service.Service)(nil)
