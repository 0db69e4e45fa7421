package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"contacts-backend/internal/shared/middleware"
	"contacts-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.Auth(c.Tokens),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))
		setupContactRoutes(api, c)
	}

	return router
}

func setupContactRoutes(api *gin.RouterGroup, c *container.Container) {
	contacts := api.Group("/contacts")
	{
		contacts.GET("/count", c.ContactHandler.Count)
		contacts.GET("/first", c.ContactHandler.First)
		contacts.GET("/briefs", c.ContactHandler.ListBriefs)
		contacts.GET("/hash", c.ContactHandler.GetWithHash)
		contacts.GET("", c.ContactHandler.List)
		contacts.GET("/:id", c.ContactHandler.Get)

		contacts.POST("", c.ContactHandler.Create)
		contacts.POST("/check", c.ContactHandler.Check)
		contacts.POST("/part", c.ContactHandler.CreatePart)

		contacts.PUT("", c.ContactHandler.Save)

		contacts.DELETE("/hash", c.ContactHandler.DeleteWithHash)
		contacts.DELETE("/:id", c.ContactHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error"
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
