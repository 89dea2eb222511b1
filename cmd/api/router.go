package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookmanager-backend/internal/shared/middleware"
	"bookmanager-backend/internal/shared/response"
	"bookmanager-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupBookRoutes(v1, c)
	}

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("/authors/:authorId", c.BookHandler.ListBooksByAuthor)
		books.POST("", c.BookHandler.CreateBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		if err := c.HealthCheck(checkCtx); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Storage is not reachable")
			return
		}

		data := gin.H{
			"status":  "healthy",
			"service": c.Config.App.Name,
			"version": c.Config.App.Version,
			"storage": c.Config.Storage.Driver,
		}
		if c.Postgres != nil {
			if stats, err := c.Postgres.Stats(); err == nil {
				data["pool"] = stats
			}
		}

		response.Success(ctx, http.StatusOK, data)
	}
}
