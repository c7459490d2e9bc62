// Package handler implements the HTTP layer: public catalog, booking
// submission, availability feed, blog, contact form and the admin back
// office.  Handlers bind and validate request payloads, delegate to the
// service or repository layer and translate the error taxonomy into HTTP
// responses.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/tingitingi/rental-booking/internal/model"
	"github.com/tingitingi/rental-booking/internal/repository"
	"github.com/tingitingi/rental-booking/internal/service"
)

// Validator adapts go-playground/validator to echo's Validator interface so
// handlers can call c.Validate on bound request structs.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns the validator wired into the echo instance at startup.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.  Violations surface as 400 responses.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// BookingService is the slice of the lifecycle controller the HTTP layer
// depends on.  Narrowing it to an interface keeps handlers testable with an
// in-memory fake.
type BookingService interface {
	Create(ctx context.Context, in service.CreateBookingInput) (*model.Booking, error)
	Get(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, f service.BookingFilter) (*service.BookingPage, error)
	ChangeStatus(ctx context.Context, id string, next model.BookingStatus) (*model.Booking, error)
	Update(ctx context.Context, id string, in service.UpdateBookingInput) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	BookedIntervals(ctx context.Context, unitID string) ([]model.BookedInterval, error)
}

// bookingError maps service and repository errors onto the HTTP error
// contract: 400 for validation, 409 with the conflicting booking id, 404
// for unknown ids, and a generic 500 that leaks nothing else.
func bookingError(c echo.Context, err error) error {
	var (
		verr *service.ValidationError
		cerr *service.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error(), "field": verr.Field})
	case errors.As(err, &cerr):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":                "the selected dates conflict with a confirmed booking",
			"conflictingBookingId": cerr.ConflictingBookingID,
		})
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
