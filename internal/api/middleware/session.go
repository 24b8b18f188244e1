package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/helpconnect/marketplace-api/internal/infrastructure/db/sqlstore"
)

// Session binds one store connection to each request and returns it to the
// pool when the handler chain finishes, including when it panics.
func Session(db *sqlstore.DB, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			sess, err := db.Acquire(req.Context())
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "Database unavailable.").SetInternal(err)
			}
			defer func() {
				if err := sess.Release(); err != nil {
					log.Warn().Err(err).Str("path", c.Path()).Msg("failed to release db session")
				}
			}()

			c.SetRequest(req.WithContext(sqlstore.WithSession(req.Context(), sess)))
			return next(c)
		}
	}
}
