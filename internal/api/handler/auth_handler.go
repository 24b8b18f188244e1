package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helpconnect/marketplace-api/internal/api/metrics"
	"github.com/helpconnect/marketplace-api/internal/core/domain"
	"github.com/helpconnect/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a client or helper profile.
//
// @Summary      Register a new profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Profile details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req, "Missing required registration fields."); err != nil {
		return err
	}

	profile, err := h.authService.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return echo.NewHTTPError(http.StatusBadRequest, "Missing required registration fields.")
		case errors.Is(err, domain.ErrInvalidEmail):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid email format.")
		case errors.Is(err, domain.ErrInvalidRole):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid role.")
		case errors.Is(err, domain.ErrUserExists):
			return echo.NewHTTPError(http.StatusConflict, "User with this email already exists.")
		}
		return internalError("Database error during registration.", err)
	}

	metrics.RegistrationsTotal.WithLabelValues(string(profile.Role)).Inc()

	return c.JSON(http.StatusCreated, registerResponse{
		Message: "Registration successful! (Use 'password' to login)",
		UserID:  profile.ID,
		Role:    string(profile.Role),
	})
}

// Login checks the shared mock credentials and issues a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req, "Email and password are required."); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required.")
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password.")
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return internalError("Database error during login.", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Message:  "Login successful!",
		UserID:   res.Profile.ID,
		FullName: res.Profile.FullName,
		Role:     string(res.Profile.Role),
		Token:    res.Token,
	})
}

// Me returns the profile of the authenticated caller.
//
// @Summary      Current profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  profileResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return internalError("Could not retrieve profile.", err)
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}
