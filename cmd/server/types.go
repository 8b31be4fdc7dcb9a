package main

import (
	"codeberg.org/userhub/server/internal/config"
	"codeberg.org/userhub/server/internal/oauth"
	"codeberg.org/userhub/server/userhub/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	userRepo users.Store
	registry *oauth.Registry
	router   *gin.Engine
}
