package routes

import (
	"github.com/gin-gonic/gin"

	"planforge/internal/handlers"
)

type PlanRoutes struct {
	planHandler *handlers.PlanHandler
	docHandler  *handlers.DocumentHandler
}

func NewPlanRoutes(planHandler *handlers.PlanHandler, docHandler *handlers.DocumentHandler) *PlanRoutes {
	return &PlanRoutes{
		planHandler: planHandler,
		docHandler:  docHandler,
	}
}

func (r *PlanRoutes) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/plans")
	{
		plans.POST("", r.planHandler.CreatePlan)
		plans.GET("", r.planHandler.ListPlans)
		plans.GET("/:id", r.planHandler.GetPlan)
		plans.DELETE("/:id", r.planHandler.DeletePlan)

		plans.GET("/:id/graph", r.docHandler.GetGraph)
		plans.PUT("/:id/graph", r.docHandler.SaveGraph)
		plans.POST("/:id/graph/arrange", r.docHandler.ArrangeGraph)
		plans.POST("/:id/graph/sync-fks", r.docHandler.SyncForeignKeys)
		plans.GET("/:id/graph/mermaid", r.docHandler.Mermaid)
		plans.POST("/:id/generate", r.docHandler.Generate)

		plans.GET("/:id/flow", r.docHandler.GetFlow)
		plans.PUT("/:id/flow", r.docHandler.SaveFlow)
	}
}
