package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"planforge/internal/models"
)

const (
	kindGraph = "graph"
	kindFlow  = "flow"
)

// DocumentRepository stores the graph and flow documents of a plan as JSONB
// rows, one per kind. Saves are idempotent upserts: the editor is
// single-owner per session, so last write wins by design.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func (r *DocumentRepository) save(ctx context.Context, planID uuid.UUID, kind string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", kind, err)
	}

	query := `
		INSERT INTO plan_documents (plan_id, kind, body, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (plan_id, kind)
		DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()
	`

	_, err = r.pool.Exec(ctx, query, planID, kind, body)
	return err
}

func (r *DocumentRepository) load(ctx context.Context, planID uuid.UUID, kind string, doc any) (bool, error) {
	query := `SELECT body FROM plan_documents WHERE plan_id = $1 AND kind = $2`

	var body []byte
	err := r.pool.QueryRow(ctx, query, planID, kind).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(body, doc); err != nil {
		return false, fmt.Errorf("failed to decode %s document: %w", kind, err)
	}
	return true, nil
}

func (r *DocumentRepository) SaveGraph(ctx context.Context, planID uuid.UUID, doc models.GraphDocument) error {
	return r.save(ctx, planID, kindGraph, doc)
}

// LoadGraph returns the stored graph document, or nil when the plan has
// none yet.
func (r *DocumentRepository) LoadGraph(ctx context.Context, planID uuid.UUID) (*models.GraphDocument, error) {
	var doc models.GraphDocument
	found, err := r.load(ctx, planID, kindGraph, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) SaveFlow(ctx context.Context, planID uuid.UUID, doc models.FlowDocument) error {
	return r.save(ctx, planID, kindFlow, doc)
}

func (r *DocumentRepository) LoadFlow(ctx context.Context, planID uuid.UUID) (*models.FlowDocument, error) {
	var doc models.FlowDocument
	found, err := r.load(ctx, planID, kindFlow, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &doc, nil
}
