package services

import (
	"context"
	"fmt"

	"planforge/internal/inference"
	"planforge/internal/layout"
	"planforge/internal/models"
	"planforge/internal/repositories"
	"planforge/internal/utils"
)

type PlanService struct {
	planRepo  *repositories.PlanRepository
	docRepo   *repositories.DocumentRepository
	generator Generator
}

func NewPlanService(
	planRepo *repositories.PlanRepository,
	docRepo *repositories.DocumentRepository,
	generator Generator,
) *PlanService {
	return &PlanService{
		planRepo:  planRepo,
		docRepo:   docRepo,
		generator: generator,
	}
}

type CreatePlanRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	Prompt      string  `json:"prompt"`
}

func (s *PlanService) CreatePlan(ctx context.Context, req CreatePlanRequest) (*models.Plan, error) {
	plan := &models.Plan{
		Name:        req.Name,
		Description: req.Description,
		Prompt:      req.Prompt,
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	return plan, nil
}

func (s *PlanService) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	planUUID, err := utils.ParseUUID(planID)
	if err != nil {
		return nil, fmt.Errorf("invalid plan ID: %w", err)
	}

	plan, err := s.planRepo.GetByID(ctx, planUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan not found")
	}

	return plan, nil
}

func (s *PlanService) ListPlans(ctx context.Context) ([]models.Plan, error) {
	return s.planRepo.List(ctx)
}

func (s *PlanService) DeletePlan(ctx context.Context, planID string) error {
	planUUID, err := utils.ParseUUID(planID)
	if err != nil {
		return fmt.Errorf("invalid plan ID: %w", err)
	}

	// Documents go with the plan via ON DELETE CASCADE.
	return s.planRepo.Delete(ctx, planUUID)
}

// LoadGraph returns the plan's graph document, empty when none was saved
// yet. Stored documents are healed on the way in so a bad write can never
// wedge the editor.
func (s *PlanService) LoadGraph(ctx context.Context, planID string) (models.GraphDocument, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return models.GraphDocument{}, err
	}

	doc, err := s.docRepo.LoadGraph(ctx, plan.ID)
	if err != nil {
		return models.GraphDocument{}, fmt.Errorf("failed to load graph document: %w", err)
	}
	if doc == nil {
		return models.GraphDocument{}, nil
	}

	doc.Normalize()
	return *doc, nil
}

// SaveGraph persists a full graph document, restoring the edge invariant
// first.
func (s *PlanService) SaveGraph(ctx context.Context, planID string, doc models.GraphDocument) error {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return err
	}

	doc.Normalize()
	return s.docRepo.SaveGraph(ctx, plan.ID, doc)
}

// ArrangeGraph runs auto-layout over the stored document, persists the new
// positions, and returns the repositioned nodes.
func (s *PlanService) ArrangeGraph(ctx context.Context, planID string) ([]models.EntityNode, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	doc, err := s.LoadGraph(ctx, planID)
	if err != nil {
		return nil, err
	}

	doc.Nodes = layout.Arrange(doc.Nodes, doc.Edges)

	if err := s.docRepo.SaveGraph(ctx, plan.ID, doc); err != nil {
		return nil, fmt.Errorf("failed to save arranged document: %w", err)
	}
	return doc.Nodes, nil
}

type SyncResult struct {
	Edges []models.RelationshipEdge `json:"edges"`
	Added int                       `json:"added"`
}

// SyncForeignKeys runs FK inference over the stored document and persists
// any additions. Safe to call repeatedly; a fully linked graph adds zero.
func (s *PlanService) SyncForeignKeys(ctx context.Context, planID string) (*SyncResult, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	doc, err := s.LoadGraph(ctx, planID)
	if err != nil {
		return nil, err
	}

	edges, added := inference.SyncForeignKeys(doc.Nodes, doc.Edges)
	if added > 0 {
		doc.Edges = edges
		if err := s.docRepo.SaveGraph(ctx, plan.ID, doc); err != nil {
			return nil, fmt.Errorf("failed to save synced document: %w", err)
		}
	}

	return &SyncResult{Edges: edges, Added: added}, nil
}

// Generate produces an initial graph document from the plan's prompt (or an
// override), lays it out, and persists it. Generated positions are never
// trusted, so layout always runs before the first save.
func (s *PlanService) Generate(ctx context.Context, planID string, prompt string) (models.GraphDocument, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return models.GraphDocument{}, err
	}

	if prompt == "" {
		prompt = plan.Prompt
	}

	doc, err := s.generator.GenerateGraph(ctx, prompt)
	if err != nil {
		return models.GraphDocument{}, fmt.Errorf("generation failed: %w", err)
	}

	doc.Normalize()
	doc.Nodes = layout.Arrange(doc.Nodes, doc.Edges)

	if err := s.docRepo.SaveGraph(ctx, plan.ID, doc); err != nil {
		return models.GraphDocument{}, fmt.Errorf("failed to save generated document: %w", err)
	}
	return doc, nil
}

// Mermaid renders the stored graph document as a Mermaid erDiagram.
func (s *PlanService) Mermaid(ctx context.Context, planID string) (string, error) {
	doc, err := s.LoadGraph(ctx, planID)
	if err != nil {
		return "", err
	}
	return GenerateMermaid(doc), nil
}

func (s *PlanService) LoadFlow(ctx context.Context, planID string) (models.FlowDocument, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return models.FlowDocument{}, err
	}

	doc, err := s.docRepo.LoadFlow(ctx, plan.ID)
	if err != nil {
		return models.FlowDocument{}, fmt.Errorf("failed to load flow document: %w", err)
	}
	if doc == nil {
		return models.FlowDocument{}, nil
	}

	doc.Normalize()
	return *doc, nil
}

func (s *PlanService) SaveFlow(ctx context.Context, planID string, doc models.FlowDocument) error {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return err
	}

	doc.Normalize()
	return s.docRepo.SaveFlow(ctx, plan.ID, doc)
}
