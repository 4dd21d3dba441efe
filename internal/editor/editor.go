// Package editor is the mutation façade the UI calls. Every method is one
// logical user action: it updates the document, restores the edge
// invariant, records exactly one history snapshot, and schedules a
// debounced save. Algorithms live in layout, inference, and relationship;
// this layer only wires them together.
package editor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"planforge/internal/history"
	"planforge/internal/inference"
	"planforge/internal/layout"
	"planforge/internal/models"
	"planforge/internal/relationship"
)

// DefaultSaveWindow is the quiet period after the last edit before the
// document is written across the persistence boundary.
const DefaultSaveWindow = 800 * time.Millisecond

// Saver is the persistence boundary. Saves are fire-and-forget and
// last-write-wins; the editor logs failures and keeps going.
type Saver interface {
	SaveGraph(ctx context.Context, planID uuid.UUID, doc models.GraphDocument) error
}

// Selection is the set of diagram elements a delete acts on. The whole
// selection is removed as one history entry.
type Selection struct {
	NodeIDs []string `json:"nodeIds"`
	EdgeIDs []string `json:"edgeIds"`
}

type Editor struct {
	planID uuid.UUID
	doc    models.GraphDocument
	hist   *history.Stack[models.GraphDocument]
	saver  Saver
	saves  *debouncer
}

func New(planID uuid.UUID, doc models.GraphDocument, saver Saver, saveWindow time.Duration) *Editor {
	if saveWindow <= 0 {
		saveWindow = DefaultSaveWindow
	}
	doc = doc.Clone()
	doc.Normalize()
	return &Editor{
		planID: planID,
		doc:    doc,
		hist:   history.New(doc),
		saver:  saver,
		saves:  newDebouncer(saveWindow),
	}
}

// Document returns a copy of the current state; callers never hold a live
// reference into the editor.
func (e *Editor) Document() models.GraphDocument {
	return e.doc.Clone()
}

func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// commit restores the edge invariant, records one snapshot, and schedules a
// save. Every mutation funnels through here exactly once.
func (e *Editor) commit() {
	if dropped := e.doc.Normalize(); dropped > 0 {
		log.Printf("plan %s: dropped %d dangling edge(s)", e.planID, dropped)
	}
	e.hist.Push(e.doc)
	e.scheduleSave()
}

func (e *Editor) scheduleSave() {
	snapshot := e.doc.Clone()
	e.saves.Do(func() {
		if err := e.saver.SaveGraph(context.Background(), e.planID, snapshot); err != nil {
			// Local state stays authoritative; the next edit retries.
			log.Printf("plan %s: save failed: %v", e.planID, err)
		}
	})
}

// Flush forces any pending save through, e.g. when the session closes.
func (e *Editor) Flush() {
	e.saves.Flush()
}

// AddEntity creates an entity at the given position with a primary id field
// and returns it.
func (e *Editor) AddEntity(name string, pos models.Position) models.EntityNode {
	node := models.EntityNode{
		ID:       uuid.NewString(),
		Position: pos,
		Name:     name,
		Fields: []models.Field{
			{Name: "id", Type: "uuid", IsPrimary: true},
		},
	}
	e.doc.Nodes = append(e.doc.Nodes, node)
	e.commit()
	return node.Clone()
}

// RenameEntity commits the new name and description in one entry; callers
// invoke it on blur/confirm, not per keystroke.
func (e *Editor) RenameEntity(nodeID, name, description string) error {
	node := e.doc.Node(nodeID)
	if node == nil {
		return fmt.Errorf("entity %s not found", nodeID)
	}
	node.Name = name
	node.Description = description
	e.commit()
	return nil
}

// MoveEntity records a drag at its end position. Intermediate drag frames
// never reach the editor.
func (e *Editor) MoveEntity(nodeID string, pos models.Position) error {
	node := e.doc.Node(nodeID)
	if node == nil {
		return fmt.Errorf("entity %s not found", nodeID)
	}
	node.Position = pos
	e.commit()
	return nil
}

func (e *Editor) AddField(nodeID string, field models.Field) error {
	node := e.doc.Node(nodeID)
	if node == nil {
		return fmt.Errorf("entity %s not found", nodeID)
	}
	node.Fields = append(node.Fields, field)
	e.commit()
	return nil
}

func (e *Editor) UpdateField(nodeID string, index int, field models.Field) error {
	node := e.doc.Node(nodeID)
	if node == nil {
		return fmt.Errorf("entity %s not found", nodeID)
	}
	if index < 0 || index >= len(node.Fields) {
		return fmt.Errorf("entity %s has no field %d", nodeID, index)
	}
	node.Fields[index] = field
	e.commit()
	return nil
}

func (e *Editor) RemoveField(nodeID string, index int) error {
	node := e.doc.Node(nodeID)
	if node == nil {
		return fmt.Errorf("entity %s not found", nodeID)
	}
	if index < 0 || index >= len(node.Fields) {
		return fmt.Errorf("entity %s has no field %d", nodeID, index)
	}
	node.Fields = append(node.Fields[:index], node.Fields[index+1:]...)
	e.commit()
	return nil
}

// Connect creates an edge between two entities with the default
// relationship type.
func (e *Editor) Connect(sourceID, targetID string) (models.RelationshipEdge, error) {
	if !e.doc.HasNode(sourceID) {
		return models.RelationshipEdge{}, fmt.Errorf("entity %s not found", sourceID)
	}
	if !e.doc.HasNode(targetID) {
		return models.RelationshipEdge{}, fmt.Errorf("entity %s not found", targetID)
	}
	edge := models.RelationshipEdge{
		ID:               uuid.NewString(),
		Source:           sourceID,
		Target:           targetID,
		RelationshipType: string(relationship.HasMany),
	}
	e.doc.Edges = append(e.doc.Edges, edge)
	e.commit()
	return edge, nil
}

// RelabelEdge replaces an edge's relationship type, canonicalizing legacy
// notations on the way in.
func (e *Editor) RelabelEdge(edgeID, label string) error {
	edge := e.doc.Edge(edgeID)
	if edge == nil {
		return fmt.Errorf("edge %s not found", edgeID)
	}
	edge.RelationshipType = string(relationship.Canonicalize(label))
	e.commit()
	return nil
}

// DeleteSelection removes the selected nodes (cascading to their incident
// edges) and the selected edges as a single history entry.
func (e *Editor) DeleteSelection(sel Selection) {
	if len(sel.NodeIDs) == 0 && len(sel.EdgeIDs) == 0 {
		return
	}
	e.doc.RemoveEdges(sel.EdgeIDs...)
	e.doc.RemoveNodes(sel.NodeIDs...)
	e.commit()
}

// Arrange runs auto-layout over the current document. Only positions
// change; the relationship graph is untouched.
func (e *Editor) Arrange() []models.EntityNode {
	e.doc.Nodes = layout.Arrange(e.doc.Nodes, e.doc.Edges)
	e.commit()
	return e.Document().Nodes
}

// SyncForeignKeys runs FK inference and returns how many edges it added.
// Zero additions means the graph was already fully linked; that is not
// recorded in history and not saved.
func (e *Editor) SyncForeignKeys() int {
	edges, added := inference.SyncForeignKeys(e.doc.Nodes, e.doc.Edges)
	if added == 0 {
		return 0
	}
	e.doc.Edges = edges
	e.commit()
	return added
}

// Undo applies the previous snapshot. Returns false at the oldest entry.
func (e *Editor) Undo() bool {
	doc, ok := e.hist.Undo()
	if !ok {
		return false
	}
	e.doc = doc
	e.scheduleSave()
	return true
}

// Redo applies the next snapshot. Returns false at the newest entry.
func (e *Editor) Redo() bool {
	doc, ok := e.hist.Redo()
	if !ok {
		return false
	}
	e.doc = doc
	e.scheduleSave()
	return true
}
