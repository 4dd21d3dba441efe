package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"planforge/internal/responses"
	"planforge/internal/services"
)

type PlanHandler struct {
	planService *services.PlanService
}

func NewPlanHandler(planService *services.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// CreatePlan handles POST /api/v1/plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req services.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to create plan")
		return
	}

	responses.Success(c, http.StatusCreated, plan, "Plan created successfully")
}

// ListPlans handles GET /api/v1/plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to list plans")
		return
	}

	responses.Success(c, http.StatusOK, plans, "Plans retrieved successfully")
}

// GetPlan handles GET /api/v1/plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID := c.Param("id")
	if planID == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Plan id is required")
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), planID)
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to get plan")
		return
	}

	responses.Success(c, http.StatusOK, plan, "Plan retrieved successfully")
}

// DeletePlan handles DELETE /api/v1/plans/:id
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	planID := c.Param("id")
	if planID == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Plan id is required")
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), planID); err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to delete plan")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Plan deleted successfully")
}

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "invalid"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
