package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planforge/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, planHandler *handlers.PlanHandler, docHandler *handlers.DocumentHandler) {
	api := router.Group("/api/v1")

	planRoutes := NewPlanRoutes(planHandler, docHandler)
	planRoutes.RegisterRoutes(api)

	api.GET("/field-types", docHandler.FieldTypes)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
