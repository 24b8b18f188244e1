package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const msgInvalidPayload = "Invalid request payload."

// bindAndValidate decodes the request into req and runs its validation
// rules. Any rule violation is reported with invalidMsg.
func bindAndValidate(c echo.Context, req any, invalidMsg string) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidPayload).SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, invalidMsg).SetInternal(err)
	}
	return nil
}

// internalError hides err from the client behind msg. The central error
// handler logs the cause.
func internalError(msg string, err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
}

// ctxUserID returns the authenticated profile id set by the Auth middleware.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication claims.")
	}
	return id, nil
}
