package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler(c))

		books := v1.Group("/books")
		{
			books.GET("", c.BookHandler.List)
			books.POST("", c.BookHandler.Create)
			books.POST("/import", c.ImportHandler.Import)
			books.GET("/:id", c.BookHandler.Get)
			books.PUT("/:id", c.BookHandler.Update)
			books.DELETE("/:id", c.BookHandler.Delete)

			books.GET("/:id/copies", c.CopyHandler.ListByBook)
			books.POST("/:id/copies", c.CopyHandler.Create)
		}

		copies := v1.Group("/copies")
		{
			copies.GET("/:id", c.CopyHandler.Get)
			copies.PUT("/:id", c.CopyHandler.Update)
			copies.DELETE("/:id", c.CopyHandler.Delete)
		}

		members := v1.Group("/members")
		{
			// static route registered before /:id
			members.GET("/stats", c.MemberHandler.Stats)

			members.GET("", c.MemberHandler.List)
			members.POST("", c.MemberHandler.Create)
			members.GET("/:id", c.MemberHandler.Get)
			members.PUT("/:id", c.MemberHandler.Update)
			members.DELETE("/:id", c.MemberHandler.Delete)
			members.POST("/:id/renew", c.MemberHandler.Renew)
			members.GET("/:id/loans", c.MemberHandler.Loans)
			members.GET("/:id/fines", c.MemberHandler.Fines)
			members.GET("/:id/eligibility", c.MemberHandler.Eligibility)
		}
	}

	return router
}

// healthHandler reports service liveness plus a database ping.
func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "up"
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.DB.Ping(pingCtx); err != nil {
			dbStatus = "down"
		}

		status := http.StatusOK
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
		}

		response.Success(ctx, status, gin.H{
			"status":      "ok",
			"database":    dbStatus,
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
		})
	}
}
