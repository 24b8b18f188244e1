package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/helpconnect/marketplace-api/docs"
	"github.com/helpconnect/marketplace-api/internal/api/handler"
	"github.com/helpconnect/marketplace-api/internal/api/middleware"
	"github.com/helpconnect/marketplace-api/internal/core/domain"
	"github.com/helpconnect/marketplace-api/internal/core/service"
	mongostore "github.com/helpconnect/marketplace-api/internal/infrastructure/db/mongo"
	redisstore "github.com/helpconnect/marketplace-api/internal/infrastructure/db/redis"
	"github.com/helpconnect/marketplace-api/internal/infrastructure/db/sqlstore"
	infrahttp "github.com/helpconnect/marketplace-api/internal/infrastructure/http"
)

// Dependencies are the collaborators NewRouter wires into the handlers.
// Mongo and Redis are optional; a nil value disables the audit trail or
// idempotency replay respectively.
type Dependencies struct {
	DB    *sqlstore.DB
	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret      string
	JWTTTL         time.Duration
	IdempotencyTTL time.Duration
	AllowOrigins   []string

	Logger zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics. They default to the
	// prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if len(deps.AllowOrigins) == 0 {
		deps.AllowOrigins = []string{"*"}
	}
	log := deps.Logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.AllowOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			"Idempotency-Key",
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "helpconnect",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	profileRepo := sqlstore.NewProfileRepository(deps.DB)
	jobRepo := sqlstore.NewJobRepository(deps.DB)

	var jobOpts []service.JobServiceOption
	if deps.Redis != nil {
		jobOpts = append(jobOpts, service.WithIdempotency(redisstore.NewIdempotencyStore(deps.Redis), deps.IdempotencyTTL))
	}
	if deps.Mongo != nil {
		jobOpts = append(jobOpts, service.WithAudit(mongostore.NewJobEventRepository(deps.Mongo)))
	}

	authService := service.NewAuthService(profileRepo, deps.JWTSecret, deps.JWTTTL, log.With().Str("component", "auth").Logger())
	helperService := service.NewHelperService(profileRepo, log.With().Str("component", "helpers").Logger())
	jobService := service.NewJobService(jobRepo, log.With().Str("component", "jobs").Logger(), jobOpts...)

	authHandler := handler.NewAuthHandler(authService)
	helperHandler := handler.NewHelperHandler(helperService)
	jobHandler := handler.NewJobHandler(jobService)

	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Marketplace routes ---
	g := e.Group("/api", middleware.Session(deps.DB, log))

	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)

	g.GET("/helpers", helperHandler.Search)
	g.GET("/helpers/:id", helperHandler.Get)

	g.POST("/jobs", jobHandler.Create)
	g.GET("/jobs/helper/:id", jobHandler.ListForHelper)
	g.PUT("/jobs/:id/status", jobHandler.UpdateStatus)

	g.GET("/me", authHandler.Me, authMiddleware)
	g.GET("/me/jobs", jobHandler.MyJobs, authMiddleware, middleware.RBAC(domain.RoleHelper))

	// --- Operational routes ---
	infrahttp.RegisterHealthRoutes(e, deps.DB, deps.Mongo, deps.Redis)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			}
			ev.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
