package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	_ "github.com/Astemirdum/rental-service/availability/docs"
	"github.com/Astemirdum/rental-service/availability/internal/calendar"
	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/Astemirdum/rental-service/availability/internal/errs"
	"github.com/Astemirdum/rental-service/availability/internal/model"
	md "github.com/Astemirdum/rental-service/pkg/middleware"
	"github.com/Astemirdum/rental-service/pkg/validate"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	availabilitySvc AvailabilityService
	log             *zap.Logger
	now             func() time.Time
}

func New(availabilitySvc AvailabilityService, log *zap.Logger) *Handler {
	return &Handler{
		availabilitySvc: availabilitySvc,
		log:             log.Named("handler"),
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPatch, http.MethodPost},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.GET("/equipment/:equipmentId/calendar", h.GetCalendar)
	api.POST("/equipment/:equipmentId/availability/check", h.CheckAvailability)
	api.GET("/equipment/:equipmentId/next-available", h.GetNextAvailable)
	api.PATCH("/equipment/:equipmentId/status", h.UpdateStatus)

	api.POST("/bookings", h.CreateBooking)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// GetCalendar godoc
// @Summary      Availability calendar
// @Description  Day by day occupancy of one equipment item with summary and recommendations.
// @Tags         equipment
// @Produce      json
// @Param        equipmentId         path   string  true   "equipment id"
// @Param        startDate           query  string  false  "YYYY-MM-DD"
// @Param        endDate             query  string  false  "YYYY-MM-DD"
// @Param        period              query  string  false  "week | month | quarter"
// @Param        includeMaintenance  query  bool    false  "project maintenance windows"
// @Param        showTimeSlots       query  bool    false  "add morning/afternoon slots"
// @Success      200  {object}  model.CalendarResponse
// @Failure      400  {object}  echo.HTTPError
// @Failure      404  {object}  echo.HTTPError
// @Router       /equipment/{equipmentId}/calendar [get]
func (h *Handler) GetCalendar(c echo.Context) error {
	equipmentID, err := equipmentParam(c)
	if err != nil {
		return err
	}
	req := model.CalendarRequest{EquipmentID: equipmentID, Now: h.now()}
	if req.StartDate, err = dateQueryParam(c, "startDate"); err != nil {
		return err
	}
	if req.EndDate, err = dateQueryParam(c, "endDate"); err != nil {
		return err
	}
	if req.Period, err = calendar.ParsePeriodName(c.QueryParam("period")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("period is invalid"))
	}
	if req.IncludeMaintenance, err = boolQueryParam(c, "includeMaintenance"); err != nil {
		return err
	}
	if req.ShowTimeSlots, err = boolQueryParam(c, "showTimeSlots"); err != nil {
		return err
	}

	resp, err := h.availabilitySvc.Calendar(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// CheckAvailability godoc
// @Summary      Check a booking
// @Description  Validates a candidate booking and quotes it without persisting anything.
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        equipmentId  path  string              true  "equipment id"
// @Param        request      body  model.CheckRequest  true  "dates"
// @Success      200  {object}  model.Quote
// @Failure      400  {object}  errs.ValidationErrorResponse
// @Failure      409  {object}  errs.ValidationErrorResponse
// @Failure      503  {object}  echo.HTTPError
// @Router       /equipment/{equipmentId}/availability/check [post]
func (h *Handler) CheckAvailability(c echo.Context) error {
	equipmentID, err := equipmentParam(c)
	if err != nil {
		return err
	}
	var req model.CheckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.EquipmentID = equipmentID
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("startDate and endDate are required"))
	}
	req.Now = h.now()

	quote, err := h.availabilitySvc.CheckBooking(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, quote)
}

// GetNextAvailable godoc
// @Summary      Next available date
// @Tags         equipment
// @Produce      json
// @Param        equipmentId  path  string  true  "equipment id"
// @Success      200  {object}  model.NextAvailableResponse
// @Failure      404  {object}  echo.HTTPError
// @Router       /equipment/{equipmentId}/next-available [get]
func (h *Handler) GetNextAvailable(c echo.Context) error {
	equipmentID, err := equipmentParam(c)
	if err != nil {
		return err
	}
	resp, err := h.availabilitySvc.NextAvailable(c.Request().Context(), equipmentID, h.now())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Set equipment status
// @Tags         equipment
// @Accept       json
// @Param        equipmentId  path  string                     true  "equipment id"
// @Param        request      body  model.StatusUpdateRequest  true  "status"
// @Success      204
// @Failure      400  {object}  echo.HTTPError
// @Failure      404  {object}  echo.HTTPError
// @Router       /equipment/{equipmentId}/status [patch]
func (h *Handler) UpdateStatus(c echo.Context) error {
	equipmentID, err := equipmentParam(c)
	if err != nil {
		return err
	}
	var req model.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.EquipmentID = equipmentID
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.availabilitySvc.UpdateEquipmentStatus(c.Request().Context(), req.EquipmentID, req.Status); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateBooking godoc
// @Summary      Create a booking
// @Description  Books whole days [startDate, endDate]; the booking starts as PENDING.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request  body  model.BookingRequest  true  "booking"
// @Success      201  {object}  model.Booking
// @Failure      400  {object}  errs.ValidationErrorResponse
// @Failure      404  {object}  echo.HTTPError
// @Failure      409  {object}  errs.ValidationErrorResponse
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c echo.Context) error {
	var req model.BookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("startDate and endDate are required"))
	}
	req.Now = h.now()

	booking, err := h.availabilitySvc.CreateBooking(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *Handler) httpError(err error) error {
	var (
		validationErr *domain.ValidationError
		dateErr       *domain.InvalidDateError
		intervalErr   *domain.InvalidIntervalError
	)
	switch {
	case errors.As(err, &validationErr):
		code := http.StatusBadRequest
		if validationErr.Kind == domain.KindConflict {
			code = http.StatusConflict
		}
		return echo.NewHTTPError(code, errs.NewValidationErrorResponse(validationErr))
	case errors.As(err, &dateErr), errors.As(err, &intervalErr),
		errors.Is(err, calendar.ErrUnknownPeriod), errors.Is(err, calendar.ErrPeriodTooLong),
		errors.Is(err, domain.ErrUnknownStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, errs.ErrUnavailable.Error())
	}
	h.log.Error("internal error", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func equipmentParam(c echo.Context) (string, error) {
	id := c.Param("equipmentId")
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, errors.New("empty equipmentId"))
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, errors.New("equipmentId is invalid"))
	}
	return id, nil
}

func dateQueryParam(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Errorf("%s is invalid", name))
	}
	return &t, nil
}

func boolQueryParam(c echo.Context, name string) (bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, echo.NewHTTPError(http.StatusBadRequest, fmt.Errorf("%s is invalid", name))
	}
	return b, nil
}
