package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"creatorverse.backend/internal/interfaces/http/handlers"
	"creatorverse.backend/internal/interfaces/http/middleware"
)

const (
	serviceName    = "creatorverse-backend"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	pageHandler    *handlers.PageHandler
	creatorHandler *handlers.CreatorHandler
	metricsHandler http.Handler
	storeHealthy   func() bool
	submitTTL      time.Duration
}

// applyCORSMiddleware lets the configured origins call the JSON API.
// An empty list or "*" echoes any origin back.
func applyCORSMiddleware(r *gin.Engine, allowed ...string) {
	origins := map[string]bool{}
	for _, o := range allowed {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins[part] = true
			}
		}
	}
	allowAll := len(origins) == 0 || origins["*"]

	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" && (allowAll || origins[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+middleware.IdempotencyHeader+", "+middleware.RequestIDHeader)
		c.Header("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

// registerHealthRoute serves GET /health. With a checker, an unreachable
// store turns the answer into 503.
func registerHealthRoute(r *gin.Engine, checks ...func() bool) {
	r.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		for _, healthy := range checks {
			if healthy != nil && !healthy() {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	registerHealthRoute(r, d.storeHealthy)
	if d.metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(d.metricsHandler))
	}

	guard := middleware.SubmitGuard(d.submitTTL)
	registerPageRoutes(r, d.pageHandler, guard)
	registerAPIV1Routes(r, d.creatorHandler, guard)

	r.NoRoute(d.pageHandler.NotFound)
}

func registerPageRoutes(r *gin.Engine, h *handlers.PageHandler, guard gin.HandlerFunc) {
	r.GET("/", h.ListCreators)

	creators := r.Group("/creators")
	{
		creators.GET("/new", h.NewCreatorForm)
		creators.POST("/new", guard, h.CreateCreator)
		creators.GET("/:id", h.ViewCreator)
		creators.POST("/:id/delete", guard, h.DeleteFromView)
		creators.GET("/:id/edit", h.EditCreatorForm)
		creators.POST("/:id/edit", guard, h.UpdateCreator)
		creators.POST("/:id/edit/delete", guard, h.DeleteFromEdit)
	}
}

func registerAPIV1Routes(r *gin.Engine, h *handlers.CreatorHandler, guard gin.HandlerFunc) {
	v1 := r.Group("/api/v1")
	{
		creators := v1.Group("/creators")
		{
			creators.GET("", h.ListCreators)
			creators.POST("", guard, h.CreateCreator)
			creators.GET("/:id", h.GetCreator)
			creators.PUT("/:id", h.UpdateCreator)
			creators.DELETE("/:id", h.DeleteCreator)
		}
	}
}
