package http

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/helpconnect/marketplace-api/internal/infrastructure/http/handlers"
)

// RegisterHealthRoutes mounts the liveness and readiness probes. mdb and rdb
// may be nil when the optional stores are not configured.
func RegisterHealthRoutes(e *echo.Echo, db handlers.Pinger, mdb *mongo.Database, rdb *redis.Client) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, mdb, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
}
