package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"dbexplorer/internal/auth"
	"dbexplorer/internal/config"
	"dbexplorer/internal/handlers"
	"dbexplorer/internal/logger"
	"dbexplorer/internal/middlewares"
	"dbexplorer/internal/routes"
)

// NewRouter builds the gin engine serving the explorer API.
func NewRouter(cfg *config.Config, app *App, validator auth.SessionValidator, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middlewares.RequestID(),
		middlewares.RequestLogger(log),
		cors.New(corsConfig(cfg.CORS)),
	)

	tableHandler := handlers.NewTableHandler(app.Tables, handlers.PageLimits{
		Default: cfg.Explorer.DefaultPageSize,
		Max:     cfg.Explorer.MaxPageSize,
	})
	relationshipHandler := handlers.NewRelationshipHandler(app.Relationships)

	routes.RegisterRoutes(router,
		middlewares.Authenticate(validator, cfg.Auth.CookieName),
		tableHandler,
		relationshipHandler,
	)

	return router
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
		c.AllowCredentials = cfg.AllowCredentials
	}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middlewares.RequestIDHeader)
	c.ExposeHeaders = []string{middlewares.RequestIDHeader}
	c.MaxAge = 12 * time.Hour
	return c
}

// NewServer creates and configures the HTTP server.
func NewServer(cfg *config.Config, app *App, log *logger.Logger) *http.Server {
	validator := auth.NewJWTValidator(cfg.Auth.Secret)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      NewRouter(cfg, app, validator, log),
		IdleTimeout:  cfg.Server.IdleTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
