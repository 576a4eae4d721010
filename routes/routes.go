package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/controllers"
)

func InitializeRoutes(router *gin.Engine, sales *controllers.SalesController, dbPing func(context.Context) error) {
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		database := "connected"
		if err := dbPing(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			database = "unreachable"
		}
		c.JSON(status, gin.H{
			"status":    "active",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  database,
		})
	})

	api := router.Group("/api")
	{
		api.GET("/transactions", sales.GetTransactions)
		api.GET("/transactions/:id", sales.GetTransaction)
		api.GET("/filters", sales.GetFilters)
		api.GET("/stats", sales.GetStats)
	}
}
