package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/helpconnect/marketplace-api/internal/api"
	mongostore "github.com/helpconnect/marketplace-api/internal/infrastructure/db/mongo"
	redisstore "github.com/helpconnect/marketplace-api/internal/infrastructure/db/redis"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log := setupLogging(cfg)

	log.Info().
		Str("version", version).
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Str("db_driver", cfg.Database.Driver).
		Msg("Starting HelpConnect")

	db, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	var mdb *mongo.Database
	if cfg.Mongo.URI != "" {
		client, database, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("MongoDB disconnect failed")
			}
		}()
		if err := mongostore.NewJobEventRepository(database).EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to ensure job_events indexes")
		}
		mdb = database
		log.Info().Str("database", cfg.Mongo.Database).Msg("Job audit trail enabled")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer client.Close()
		rdb = client
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.IdempotencyTTL).Msg("Idempotency keys enabled")
	}

	e := api.NewRouter(api.Dependencies{
		DB:             db,
		Mongo:          mdb,
		Redis:          rdb,
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTTTL,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		AllowOrigins:   cfg.AllowOrigins(),
		Logger:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()
	log.Info().Str("addr", ":"+cfg.Port).Msg("HTTP server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
		return err
	}

	log.Info().Msg("Server stopped")
	return nil
}
