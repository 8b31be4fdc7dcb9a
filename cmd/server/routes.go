package main

import (
	"codeberg.org/userhub/server/api/rest/admin"
	"codeberg.org/userhub/server/api/rest/auth"
	"codeberg.org/userhub/server/api/rest/health"
	"codeberg.org/userhub/server/api/rest/users"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(server.config))

	router.GET("/health", health.Handler)
	router.GET("/ping", health.PingHandler)

	// login endpoints are the abuse magnet, so they get the rate limiter
	auth.RegisterRoutes(router, server.registry, server.userRepo, server.config, AuthRateLimiter())

	api := router.Group("/api")

	{
		users.RegisterRoutes(api, server.userRepo)
		admin.RegisterRoutes(api, server.userRepo)
	}
}
