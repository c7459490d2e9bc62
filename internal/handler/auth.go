package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tingitingi/rental-booking/internal/repository"
	"github.com/tingitingi/rental-booking/internal/utils"
)

// AuthHandler issues admin access tokens.  There is no public registration;
// admin accounts are provisioned out of band.
type AuthHandler struct {
	Admins *repository.AdminUserRepo
	Secret string
	TTLMin int
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(admins *repository.AdminUserRepo, secret string, ttlMin int) *AuthHandler {
	if admins == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{Admins: admins, Secret: secret, TTLMin: ttlMin}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/admin/auth/login.  Unknown email and wrong
// password return the same 401 so the endpoint cannot be used to probe
// which admin accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.Admins.GetByEmail(c.Request().Context(), req.Email)
	if errors.Is(err, repository.ErrAdminUserNotFound) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if !utils.CheckPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	tok, err := utils.NewAccessToken(h.Secret, u.ID, u.Email, h.TTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":     tok.Token,
		"expiresAt": tok.Exp,
	})
}
