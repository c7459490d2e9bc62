package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tingitingi/rental-booking/internal/queue"
	"github.com/tingitingi/rental-booking/internal/service"
)

// ContactHandler accepts contact-form submissions and forwards them to the
// notification queue.  Unlike booking notifications, a publish failure here
// is an error: the message has no database record to fall back on, so
// losing it silently would lose it forever.
type ContactHandler struct {
	Events service.EventPublisher
	Log    *zap.Logger
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(events service.EventPublisher, log *zap.Logger) *ContactHandler {
	if events == nil {
		panic("nil publisher passed to NewContactHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactHandler{Events: events, Log: log}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	n := queue.Notification{
		Kind: queue.KindContactMessage,
		Contact: &queue.ContactNotification{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		},
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Events.Publish(c.Request().Context(), n); err != nil {
		h.Log.Error("contact message publish failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not send message, please try again later"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "message sent"})
}
