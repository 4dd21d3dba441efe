package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/internal/models"
)

func TestGenerateMermaid(t *testing.T) {
	doc := models.GraphDocument{
		Nodes: []models.EntityNode{
			{ID: "n1", Name: "User", Fields: []models.Field{
				{Name: "id", Type: "uuid", IsPrimary: true},
				{Name: "email", Type: "string"},
			}},
			{ID: "n2", Name: "Order Item", Fields: []models.Field{
				{Name: "id", Type: "uuid", IsPrimary: true},
			}},
		},
		Edges: []models.RelationshipEdge{
			{ID: "e1", Source: "n1", Target: "n2", RelationshipType: "has-many"},
			{ID: "e2", Source: "n1", Target: "n2", RelationshipType: "1:N"}, // duplicate pair, legacy label
		},
	}

	out := GenerateMermaid(doc)

	assert.True(t, strings.HasPrefix(out, "erDiagram\n"))
	assert.Contains(t, out, "USER ||--o{ ORDER_ITEM")
	assert.Equal(t, 1, strings.Count(out, "||--o{"), "duplicate relationships are deduplicated")
	assert.Contains(t, out, "uuid id PK")
	assert.Contains(t, out, "string email")
	assert.Contains(t, out, "USER {")
	assert.Contains(t, out, "ORDER_ITEM {")
}

func TestGenerateMermaidEmpty(t *testing.T) {
	out := GenerateMermaid(models.GraphDocument{})
	assert.Equal(t, "erDiagram\n", out)
}

func TestSeedGeneratorDerivesEntities(t *testing.T) {
	g := NewSeedGenerator()

	doc, err := g.GenerateGraph(context.Background(), "Users place Orders containing Products")
	require.NoError(t, err)

	var names []string
	for _, n := range doc.Nodes {
		names = append(names, n.Name)
		require.NotEmpty(t, n.ID)
		require.NotEmpty(t, n.Fields)
		assert.True(t, n.Fields[0].IsPrimary)
	}
	assert.Equal(t, []string{"Users", "Orders", "Products"}, names)
	assert.Empty(t, doc.Edges, "linking is left to FK inference")
}

func TestSeedGeneratorIgnoresLowercaseAndShortWords(t *testing.T) {
	g := NewSeedGenerator()

	doc, err := g.GenerateGraph(context.Background(), "a user buys An Item")
	require.NoError(t, err)

	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, "Item", doc.Nodes[0].Name)
}
