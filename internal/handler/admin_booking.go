package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tingitingi/rental-booking/internal/model"
	"github.com/tingitingi/rental-booking/internal/service"
)

// AdminBookingHandler serves the back-office booking endpoints: paginated
// listing, single lookup, status transitions, full edits and deletion.
type AdminBookingHandler struct {
	Svc BookingService
}

// NewAdminBookingHandler constructs an AdminBookingHandler.
func NewAdminBookingHandler(svc BookingService) *AdminBookingHandler {
	if svc == nil {
		panic("nil service passed to NewAdminBookingHandler")
	}
	return &AdminBookingHandler{Svc: svc}
}

// List handles GET /api/admin/bookings with pagination, an optional status
// filter, guest name/email search and sorting.
func (h *AdminBookingHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	f := service.BookingFilter{
		Status: model.BookingStatus(c.QueryParam("status")),
		Search: c.QueryParam("search"),
		SortBy: c.QueryParam("sortBy"),
		Page:   page,
		Limit:  limit,
	}
	result, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Get handles GET /api/admin/bookings/:id.
func (h *AdminBookingHandler) Get(c echo.Context) error {
	b, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PUT /api/admin/bookings/:id/status.  A transition
// into Confirmed that collides with an existing confirmed booking is
// refused with 409 and the conflicting booking's id; the record is left
// untouched.
func (h *AdminBookingHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	b, err := h.Svc.ChangeStatus(c.Request().Context(), c.Param("id"), model.BookingStatus(req.Status))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "booking status updated",
		"booking": b,
	})
}

type updateBookingRequest struct {
	UnitID     *string `json:"unitId"`
	GuestName  *string `json:"guestName"`
	GuestEmail *string `json:"guestEmail"`
	GuestPhone *string `json:"guestPhone"`
	CheckIn    *string `json:"checkIn"`
	CheckOut   *string `json:"checkOut"`
	Adults     *int    `json:"adults"`
	Children   *int    `json:"children"`
	Message    *string `json:"message"`
	Status     *string `json:"status"`
}

// Update handles PUT /api/admin/bookings/:id, a partial edit.  Dates are
// re-validated on every edit; when the resulting status is Confirmed the
// conflict check re-runs against the final dates.
func (h *AdminBookingHandler) Update(c echo.Context) error {
	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	in := service.UpdateBookingInput{
		UnitID:     req.UnitID,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
		Adults:     req.Adults,
		Children:   req.Children,
		Message:    req.Message,
	}
	if req.CheckIn != nil {
		t, err := model.ParseDate(*req.CheckIn)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check-in date"})
		}
		in.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, err := model.ParseDate(*req.CheckOut)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check-out date"})
		}
		in.CheckOut = &t
	}
	if req.Status != nil {
		s := model.BookingStatus(*req.Status)
		in.Status = &s
	}

	b, err := h.Svc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "booking updated",
		"booking": b,
	})
}

// Delete handles DELETE /api/admin/bookings/:id.  Deletion is irreversible
// and frees the unit for those dates; a repeated delete reports 404.
func (h *AdminBookingHandler) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking deleted"})
}
