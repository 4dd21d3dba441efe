package models

// Position is a node's top-left corner on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Field struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	IsPrimary  bool   `json:"isPrimary"`
	IsNullable bool   `json:"isNullable"`
}

// EntityNode is one entity in the data-model diagram. Identity is ID;
// Name is a user-facing label and is not unique.
type EntityNode struct {
	ID          string   `json:"id"`
	Position    Position `json:"position"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Fields      []Field  `json:"fields"`
}

func (n EntityNode) Clone() EntityNode {
	c := n
	if n.Fields != nil {
		c.Fields = make([]Field, len(n.Fields))
		copy(c.Fields, n.Fields)
	}
	return c
}

// RelationshipEdge is a typed, directed connection between two entities.
// For "has-many" the source is the one-side (parent) and the target is the
// many-side (child); "belongs-to" is its mirror.
type RelationshipEdge struct {
	ID               string `json:"id"`
	Source           string `json:"source"`
	Target           string `json:"target"`
	RelationshipType string `json:"relationshipType"`
}

// GraphDocument is the unit of undo/redo snapshots and of persistence.
type GraphDocument struct {
	Nodes []EntityNode       `json:"nodes"`
	Edges []RelationshipEdge `json:"edges"`
}

// Clone deep-copies the document so snapshots never alias live state.
// Nil slices stay nil, keeping clones comparable to their source.
func (d GraphDocument) Clone() GraphDocument {
	c := d
	if d.Nodes != nil {
		c.Nodes = make([]EntityNode, len(d.Nodes))
		for i, n := range d.Nodes {
			c.Nodes[i] = n.Clone()
		}
	}
	if d.Edges != nil {
		c.Edges = make([]RelationshipEdge, len(d.Edges))
		copy(c.Edges, d.Edges)
	}
	return c
}

func (d *GraphDocument) HasNode(id string) bool {
	for _, n := range d.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

func (d *GraphDocument) Node(id string) *EntityNode {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

func (d *GraphDocument) Edge(id string) *RelationshipEdge {
	for i := range d.Edges {
		if d.Edges[i].ID == id {
			return &d.Edges[i]
		}
	}
	return nil
}

// Normalize drops edges whose source or target no longer resolves to a node
// and returns how many were dropped. Healing beats failing here: a dangling
// edge blocks the user, a dropped one does not.
func (d *GraphDocument) Normalize() int {
	ids := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		ids[n.ID] = true
	}

	kept := d.Edges[:0]
	dropped := 0
	for _, e := range d.Edges {
		if ids[e.Source] && ids[e.Target] {
			kept = append(kept, e)
		} else {
			dropped++
		}
	}
	d.Edges = kept
	return dropped
}

// RemoveNodes deletes the given nodes and cascades to every incident edge,
// atomically within the call.
func (d *GraphDocument) RemoveNodes(ids ...string) {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	nodes := d.Nodes[:0]
	for _, n := range d.Nodes {
		if !doomed[n.ID] {
			nodes = append(nodes, n)
		}
	}
	d.Nodes = nodes

	edges := d.Edges[:0]
	for _, e := range d.Edges {
		if !doomed[e.Source] && !doomed[e.Target] {
			edges = append(edges, e)
		}
	}
	d.Edges = edges
}

// RemoveEdges deletes the given edges by id.
func (d *GraphDocument) RemoveEdges(ids ...string) {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	edges := d.Edges[:0]
	for _, e := range d.Edges {
		if !doomed[e.ID] {
			edges = append(edges, e)
		}
	}
	d.Edges = edges
}

// SuggestedFieldTypes is the type vocabulary offered by the field editor.
// Field.Type stays free-form; this list is advisory only.
var SuggestedFieldTypes = []string{
	"string",
	"text",
	"int",
	"bigint",
	"float",
	"decimal",
	"boolean",
	"date",
	"datetime",
	"timestamp",
	"uuid",
	"json",
	"enum",
}
