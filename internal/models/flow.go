package models

// Flow node kinds. Flows describe user journeys, not data relationships,
// so transitions carry a free-form label instead of a relationship type.
const (
	FlowStart    = "start"
	FlowStep     = "step"
	FlowDecision = "decision"
	FlowEnd      = "end"
)

type FlowNode struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"` // start, step, decision, end
	Label    string   `json:"label"`
	Position Position `json:"position"`
}

type FlowTransition struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// FlowDocument is the user-flow counterpart of GraphDocument. It shares the
// same snapshot/persistence primitives but has no relationship typing.
type FlowDocument struct {
	Nodes       []FlowNode       `json:"nodes"`
	Transitions []FlowTransition `json:"transitions"`
}

func (d FlowDocument) Clone() FlowDocument {
	c := d
	if d.Nodes != nil {
		c.Nodes = make([]FlowNode, len(d.Nodes))
		copy(c.Nodes, d.Nodes)
	}
	if d.Transitions != nil {
		c.Transitions = make([]FlowTransition, len(d.Transitions))
		copy(c.Transitions, d.Transitions)
	}
	return c
}

// Normalize drops transitions that reference missing nodes, mirroring
// GraphDocument.Normalize.
func (d *FlowDocument) Normalize() int {
	ids := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		ids[n.ID] = true
	}

	kept := d.Transitions[:0]
	dropped := 0
	for _, t := range d.Transitions {
		if ids[t.Source] && ids[t.Target] {
			kept = append(kept, t)
		} else {
			dropped++
		}
	}
	d.Transitions = kept
	return dropped
}

// RemoveNodes deletes the given flow nodes and cascades to their transitions.
func (d *FlowDocument) RemoveNodes(ids ...string) {
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

	transitions := d.Transitions[:0]
	for _, t := range d.Transitions {
		if !doomed[t.Source] && !doomed[t.Target] {
			transitions = append(transitions, t)
		}
	}
	d.Transitions = transitions
}
