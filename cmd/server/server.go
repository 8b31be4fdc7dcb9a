package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/userhub/server/internal/config"
	"codeberg.org/userhub/server/internal/logger"
	"codeberg.org/userhub/server/internal/oauth"
	"codeberg.org/userhub/server/userhub/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	registry := oauth.NewRegistry(cfg)

	logger.Info("oauth providers enabled", "providers", registry.Names())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &Server{
		db:       db,
		config:   cfg,
		userRepo: users.NewRepository(db),
		registry: registry,
		router:   gin.Default(),
	}

	RegisterRoutes(server.router, server)

	return server, nil
}
