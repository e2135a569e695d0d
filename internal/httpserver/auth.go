package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, err := h.Svc.Signup(ctx, req.Name, req.Email, req.Password); err != nil {
		reason := "cannot create user"
		if errors.Is(err, service.ErrConflict) {
			reason = "email already registered"
		}
		l.Error("signup_error", "status", 500, "reason", reason, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Signup failed")
	}

	return c.JSON(http.StatusCreated, transport.MessageResponse{Message: "User registered"})
}

func (h *AuthHTTP) LoginUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login_user")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Login failed")
	}

	return c.JSON(http.StatusOK, transport.UserLoginResponse{
		Token: res.Token,
		Role:  res.Role,
		User: transport.UserProfile{
			ID:    res.User.ID,
			Name:  res.User.Name,
			Email: res.User.Email,
		},
	})
}

func (h *AuthHTTP) LoginAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login_admin")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.LoginAdmin(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
		}
		l.Error("admin_login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Admin login failed")
	}

	return c.JSON(http.StatusOK, transport.AdminLoginResponse{Token: res.Token, Role: res.Role})
}
