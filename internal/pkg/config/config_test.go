package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "helpconnect.db" {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %v", cfg.JWTTTL)
	}
	if cfg.Mongo.URI != "" || cfg.Redis.Addr != "" {
		t.Errorf("optional stores must be disabled by default: mongo=%q redis=%q", cfg.Mongo.URI, cfg.Redis.Addr)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development env by default")
	}
	if got := cfg.AllowOrigins(); len(got) != 1 || got[0] != "*" {
		t.Errorf("expected wildcard CORS, got %v", got)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":               "8081",
		"ENV":                "production",
		"DB_DRIVER":          "postgres",
		"DB_DSN":             "postgres://u:p@localhost:5432/helpconnect",
		"REDIS_ADDR":         "localhost:6379",
		"IDEMPOTENCY_TTL":    "10m",
		"LOG_FILE":           "/var/log/helpconnect.log",
		"CORS_ALLOW_ORIGINS": "https://a.example, https://b.example ,",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8081" || cfg.IsDevelopment() {
		t.Errorf("unexpected port/env: %q/%q", cfg.Port, cfg.Env)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("unexpected driver %q", cfg.Database.Driver)
	}
	if cfg.Redis.IdempotencyTTL != 10*time.Minute {
		t.Errorf("unexpected idempotency ttl %v", cfg.Redis.IdempotencyTTL)
	}
	if cfg.Log.File != "/var/log/helpconnect.log" || cfg.Log.MaxSizeMB != 50 {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	origins := cfg.AllowOrigins()
	if len(origins) != 2 || origins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", origins)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"DB_DRIVER": "mysql"}))
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
