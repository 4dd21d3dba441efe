package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/internal/models"
)

func sampleDoc() models.GraphDocument {
	return models.GraphDocument{
		Nodes: []models.EntityNode{
			{ID: "n1", Name: "User", Fields: []models.Field{{Name: "id", Type: "uuid", IsPrimary: true}}},
			{ID: "n2", Name: "Order", Fields: []models.Field{{Name: "id", Type: "uuid", IsPrimary: true}, {Name: "userId", Type: "uuid"}}},
			{ID: "n3", Name: "Invoice"},
		},
		Edges: []models.RelationshipEdge{
			{ID: "e1", Source: "n1", Target: "n2", RelationshipType: "has-many"},
			{ID: "e2", Source: "n2", Target: "n3", RelationshipType: "has-many"},
			{ID: "e3", Source: "n3", Target: "n1", RelationshipType: "references"},
		},
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := sampleDoc()
	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Nodes[0].Name = "Account"
	clone.Nodes[1].Fields[0].Name = "uid"
	clone.Edges[0].RelationshipType = "has-one"

	assert.Equal(t, "User", original.Nodes[0].Name)
	assert.Equal(t, "id", original.Nodes[1].Fields[0].Name)
	assert.Equal(t, "has-many", original.Edges[0].RelationshipType)
}

func TestRemoveNodesCascades(t *testing.T) {
	doc := sampleDoc()
	doc.RemoveNodes("n2")

	require.Len(t, doc.Nodes, 2)
	assert.False(t, doc.HasNode("n2"))

	// Every edge touching n2 is gone, and none dangles.
	require.Len(t, doc.Edges, 1)
	assert.Equal(t, "e3", doc.Edges[0].ID)
	assert.Zero(t, doc.Normalize())
}

func TestRemoveNodesBatch(t *testing.T) {
	doc := sampleDoc()
	doc.RemoveNodes("n1", "n3")

	require.Len(t, doc.Nodes, 1)
	assert.Empty(t, doc.Edges)
}

func TestNormalizeDropsDanglingEdges(t *testing.T) {
	doc := sampleDoc()
	doc.Edges = append(doc.Edges, models.RelationshipEdge{ID: "e4", Source: "n1", Target: "ghost"})

	dropped := doc.Normalize()
	assert.Equal(t, 1, dropped)
	require.Len(t, doc.Edges, 3)
	assert.Nil(t, doc.Edge("e4"))
}

func TestRemoveEdges(t *testing.T) {
	doc := sampleDoc()
	doc.RemoveEdges("e1", "e3")

	require.Len(t, doc.Edges, 1)
	assert.Equal(t, "e2", doc.Edges[0].ID)
	assert.Len(t, doc.Nodes, 3, "edge removal never touches nodes")
}

func TestFlowRemoveNodesCascades(t *testing.T) {
	doc := models.FlowDocument{
		Nodes: []models.FlowNode{
			{ID: "f1", Type: models.FlowStart, Label: "Start"},
			{ID: "f2", Type: models.FlowDecision, Label: "Valid?"},
			{ID: "f3", Type: models.FlowEnd, Label: "Done"},
		},
		Transitions: []models.FlowTransition{
			{ID: "t1", Source: "f1", Target: "f2"},
			{ID: "t2", Source: "f2", Target: "f3", Label: "yes"},
		},
	}

	doc.RemoveNodes("f2")
	require.Len(t, doc.Nodes, 2)
	assert.Empty(t, doc.Transitions)
	assert.Zero(t, doc.Normalize())
}
