package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/helpconnect/marketplace-api/internal/core/domain"
)

// RBAC rejects requests whose authenticated role is not listed. It must run
// after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden.")
			}
			return next(c)
		}
	}
}
