package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planforge/internal/models"
	"planforge/internal/responses"
	"planforge/internal/services"
)

// DocumentHandler exposes the graph/flow document operations of a plan:
// load, save, auto-layout, FK sync, generation, and Mermaid export.
type DocumentHandler struct {
	planService *services.PlanService
}

func NewDocumentHandler(planService *services.PlanService) *DocumentHandler {
	return &DocumentHandler{
		planService: planService,
	}
}

// GetGraph handles GET /api/v1/plans/:id/graph
func (h *DocumentHandler) GetGraph(c *gin.Context) {
	doc, err := h.planService.LoadGraph(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to load graph document")
		return
	}

	responses.Success(c, http.StatusOK, doc, "Graph document retrieved successfully")
}

// SaveGraph handles PUT /api/v1/plans/:id/graph
func (h *DocumentHandler) SaveGraph(c *gin.Context) {
	var doc models.GraphDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	if err := h.planService.SaveGraph(c.Request.Context(), c.Param("id"), doc); err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to save graph document")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Graph document saved successfully")
}

// ArrangeGraph handles POST /api/v1/plans/:id/graph/arrange
func (h *DocumentHandler) ArrangeGraph(c *gin.Context) {
	nodes, err := h.planService.ArrangeGraph(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to arrange graph")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"nodes": nodes}, "Graph arranged successfully")
}

// SyncForeignKeys handles POST /api/v1/plans/:id/graph/sync-fks
func (h *DocumentHandler) SyncForeignKeys(c *gin.Context) {
	result, err := h.planService.SyncForeignKeys(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to sync foreign keys")
		return
	}

	message := "No missing FK links found"
	if result.Added > 0 {
		message = "Added missing FK links"
	}
	responses.Success(c, http.StatusOK, result, message)
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Generate handles POST /api/v1/plans/:id/generate
func (h *DocumentHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	doc, err := h.planService.Generate(c.Request.Context(), c.Param("id"), req.Prompt)
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to generate graph document")
		return
	}

	responses.Success(c, http.StatusOK, doc, "Graph document generated successfully")
}

// Mermaid handles GET /api/v1/plans/:id/graph/mermaid
func (h *DocumentHandler) Mermaid(c *gin.Context) {
	diagram, err := h.planService.Mermaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to export diagram")
		return
	}

	responses.Success(c, http.StatusOK, gin.H{"mermaid": diagram}, "Diagram exported successfully")
}

// GetFlow handles GET /api/v1/plans/:id/flow
func (h *DocumentHandler) GetFlow(c *gin.Context) {
	doc, err := h.planService.LoadFlow(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to load flow document")
		return
	}

	responses.Success(c, http.StatusOK, doc, "Flow document retrieved successfully")
}

// SaveFlow handles PUT /api/v1/plans/:id/flow
func (h *DocumentHandler) SaveFlow(c *gin.Context) {
	var doc models.FlowDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	if err := h.planService.SaveFlow(c.Request.Context(), c.Param("id"), doc); err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to save flow document")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Flow document saved successfully")
}

// FieldTypes handles GET /api/v1/field-types
func (h *DocumentHandler) FieldTypes(c *gin.Context) {
	responses.Success(c, http.StatusOK, models.SuggestedFieldTypes, "Field types retrieved successfully")
}
