package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"planforge/internal/database"
	"planforge/internal/models"
	"planforge/internal/repositories"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed repository test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("planforge_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(pool))
	return pool
}

func TestDocumentRepository(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	planRepo := repositories.NewPlanRepository(pool)
	docRepo := repositories.NewDocumentRepository(pool)

	plan := &models.Plan{Name: "Checkout flow", Prompt: "Users place orders"}
	require.NoError(t, planRepo.Create(ctx, plan))

	t.Run("load before save returns nil", func(t *testing.T) {
		doc, err := docRepo.LoadGraph(ctx, plan.ID)
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	graph := models.GraphDocument{
		Nodes: []models.EntityNode{
			{ID: "n1", Name: "User", Position: models.Position{X: 40, Y: 40},
				Fields: []models.Field{{Name: "id", Type: "uuid", IsPrimary: true}}},
			{ID: "n2", Name: "Order", Position: models.Position{X: 40, Y: 240},
				Fields: []models.Field{{Name: "id", Type: "uuid", IsPrimary: true}, {Name: "userId", Type: "uuid"}}},
		},
		Edges: []models.RelationshipEdge{
			{ID: "e1", Source: "n1", Target: "n2", RelationshipType: "has-many"},
		},
	}

	t.Run("save and load round-trip", func(t *testing.T) {
		require.NoError(t, docRepo.SaveGraph(ctx, plan.ID, graph))

		loaded, err := docRepo.LoadGraph(ctx, plan.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, graph, *loaded)
	})

	t.Run("save is an idempotent upsert", func(t *testing.T) {
		updated := graph.Clone()
		updated.Nodes[0].Position = models.Position{X: 100, Y: 100}

		require.NoError(t, docRepo.SaveGraph(ctx, plan.ID, updated))
		require.NoError(t, docRepo.SaveGraph(ctx, plan.ID, updated))

		loaded, err := docRepo.LoadGraph(ctx, plan.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, updated, *loaded)
	})

	t.Run("flow document is stored independently", func(t *testing.T) {
		flow := models.FlowDocument{
			Nodes: []models.FlowNode{
				{ID: "f1", Type: models.FlowStart, Label: "Start"},
				{ID: "f2", Type: models.FlowEnd, Label: "Done"},
			},
			Transitions: []models.FlowTransition{
				{ID: "t1", Source: "f1", Target: "f2", Label: "submit"},
			},
		}
		require.NoError(t, docRepo.SaveFlow(ctx, plan.ID, flow))

		loadedFlow, err := docRepo.LoadFlow(ctx, plan.ID)
		require.NoError(t, err)
		require.NotNil(t, loadedFlow)
		assert.Equal(t, flow, *loadedFlow)

		loadedGraph, err := docRepo.LoadGraph(ctx, plan.ID)
		require.NoError(t, err)
		require.NotNil(t, loadedGraph, "flow save must not clobber the graph document")
	})

	t.Run("deleting the plan cascades to documents", func(t *testing.T) {
		require.NoError(t, planRepo.Delete(ctx, plan.ID))

		doc, err := docRepo.LoadGraph(ctx, plan.ID)
		require.NoError(t, err)
		assert.Nil(t, doc)
	})
}

func TestPlanRepository(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	repo := repositories.NewPlanRepository(pool)

	desc := "cart, checkout, payment"
	plan := &models.Plan{Name: "Cart", Description: &desc, Prompt: "Customers buy products"}
	require.NoError(t, repo.Create(ctx, plan))
	require.NotEqual(t, plan.ID.String(), "00000000-0000-0000-0000-000000000000")

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, plan.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, plan.Name, got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, desc, *got.Description)
	})

	t.Run("list includes the plan", func(t *testing.T) {
		plans, err := repo.List(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, plans)
	})

	t.Run("delete then get returns nil", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, plan.ID))

		got, err := repo.GetByID(ctx, plan.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		assert.Error(t, repo.Delete(ctx, plan.ID))
	})
}
