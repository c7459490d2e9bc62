package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tingitingi/rental-booking/internal/model"
	"github.com/tingitingi/rental-booking/internal/service"
)

// BookingHandler serves the public booking endpoints: submission of a new
// request and the booked-dates feed consumed by calendar widgets.
type BookingHandler struct {
	Svc BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc BookingService) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc}
}

type createBookingRequest struct {
	UnitID     string `json:"unitId" validate:"required"`
	GuestName  string `json:"guestName" validate:"required"`
	GuestEmail string `json:"guestEmail" validate:"required,email"`
	GuestPhone string `json:"guestPhone" validate:"required"`
	CheckIn    string `json:"checkIn" validate:"required"`
	CheckOut   string `json:"checkOut" validate:"required"`
	Adults     int    `json:"adults" validate:"required,min=1"`
	Children   int    `json:"children" validate:"min=0"`
	Message    string `json:"message"`
}

// CreateBooking handles POST /api/bookings.  A successful submission always
// lands in Pending status; confirmation happens later through the admin
// back office.  Guest notification is dispatched asynchronously and its
// outcome does not affect the response.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	checkIn, err := model.ParseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check-in date"})
	}
	checkOut, err := model.ParseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check-out date"})
	}

	b, err := h.Svc.Create(c.Request().Context(), service.CreateBookingInput{
		UnitID:     req.UnitID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     req.Adults,
		Children:   req.Children,
		Message:    req.Message,
	})
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "booking request received",
		"booking": b,
	})
}

// BookedDates handles GET /api/houses/:id/booked-dates and its /api/others
// twin.  It returns the intervals to block on the calendar for the unit;
// the end date already carries the display-exclusion convention, so the
// frontend excludes [start, end] verbatim.
func (h *BookingHandler) BookedDates(c echo.Context) error {
	unitID := c.Param("id")
	if unitID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid unit id"})
	}
	intervals, err := h.Svc.BookedIntervals(c.Request().Context(), unitID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, intervals)
}
