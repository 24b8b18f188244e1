package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
)

const msgInternal = "Internal server error."

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// error as {"error": "<message>"}. Causes attached with SetInternal and
// unexpected errors are logged, never returned to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			logEvent(log, he.Code, c).Err(he.Internal).Msg(fmt.Sprint(he.Message))
		}
		return he.Code, fmt.Sprint(he.Message)
	}

	// Domain errors that escaped a handler without an explicit mapping.
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password."
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "User with this email already exists."
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrHelperNotFound):
		return http.StatusNotFound, "Helper not found"
	}

	logEvent(log, http.StatusInternalServerError, c).Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, msgInternal
}

func logEvent(log zerolog.Logger, code int, c echo.Context) *zerolog.Event {
	ev := log.Warn()
	if code >= http.StatusInternalServerError {
		ev = log.Error()
	}
	return ev.
		Int("status", code).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
}
