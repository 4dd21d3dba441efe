// Package layout computes non-overlapping canvas positions for the
// data-model diagram. Hierarchy comes from relationship direction: has-many
// and belongs-to edges define parent→child, everything else is decoration.
// The result is deterministic for a given input; the ordering keys are the
// input slice order, never map iteration.
package layout

import (
	"math"
	"sort"

	"planforge/internal/models"
	"planforge/internal/relationship"
)

// Spacing constants sized to the rendered entity card (fixed width, header
// plus one row per field) with enough margin that labels never collide.
const (
	NodeWidth       = 220.0
	NodeHeaderH     = 48.0
	FieldRowH       = 28.0
	HorizontalGap   = 80.0
	VerticalGap     = 100.0
	CanvasMargin    = 40.0
	IsolatedColumns = 4
)

func nodeHeight(n models.EntityNode) float64 {
	return NodeHeaderH + FieldRowH*float64(len(n.Fields))
}

// Arrange returns a copy of nodes, in input order, with recomputed
// positions. Edges are read-only. It never fails: an empty input yields an
// empty result and a fully disconnected graph falls back to the grid path.
func Arrange(nodes []models.EntityNode, edges []models.RelationshipEdge) []models.EntityNode {
	out := make([]models.EntityNode, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	if len(out) == 0 {
		return out
	}

	index := make(map[string]int, len(out))
	for i, n := range out {
		index[n.ID] = i
	}

	// parents[i] lists hierarchy parents of node i, in edge order.
	parents := make([][]int, len(out))
	connected := make([]bool, len(out))
	for _, e := range edges {
		si, sok := index[e.Source]
		ti, tok := index[e.Target]
		if !sok || !tok {
			continue
		}
		connected[si] = true
		connected[ti] = true

		switch relationship.Canonicalize(e.RelationshipType) {
		case relationship.HasMany:
			parents[ti] = append(parents[ti], si)
		case relationship.BelongsTo:
			parents[si] = append(parents[si], ti)
		}
		// many-to-many and references do not constrain hierarchy.
	}

	depths := computeDepths(parents)

	// Partition preserving input order.
	var linked, isolated []int
	for i := range out {
		if connected[i] {
			linked = append(linked, i)
		} else {
			isolated = append(isolated, i)
		}
	}

	bottom := CanvasMargin
	if len(linked) > 0 {
		bottom = placeRows(out, linked, parents, depths)
	}
	if len(isolated) > 0 {
		placeGrid(out, isolated, bottom)
	}
	return out
}

// computeDepths assigns each node its longest path from a root, treating
// back-edges found on the DFS stack as non-hierarchy edges so cycles
// terminate instead of looping.
func computeDepths(parents [][]int) []int {
	n := len(parents)
	depths := make([]int, n)
	state := make([]int, n) // 0 unvisited, 1 on stack, 2 done

	var visit func(i int) int
	visit = func(i int) int {
		switch state[i] {
		case 1:
			// Cycle: ignore this link for layout purposes only.
			return -1
		case 2:
			return depths[i]
		}
		state[i] = 1
		d := 0
		for _, p := range parents[i] {
			if pd := visit(p); pd >= 0 && pd+1 > d {
				d = pd + 1
			}
		}
		state[i] = 2
		depths[i] = d
		return d
	}

	for i := 0; i < n; i++ {
		visit(i)
	}
	return depths
}

// placeRows lays the connected nodes out in depth rows, orders each row by
// parent barycenter to keep edge crossings low, and returns the y
// coordinate just below the last row.
func placeRows(out []models.EntityNode, linked []int, parents [][]int, depths []int) float64 {
	maxDepth := 0
	for _, i := range linked {
		if depths[i] > maxDepth {
			maxDepth = depths[i]
		}
	}

	rows := make([][]int, maxDepth+1)
	for _, i := range linked {
		rows[depths[i]] = append(rows[depths[i]], i)
	}

	// column[i] is the node's slot within its row, filled top row first so
	// children can average their parents' slots.
	column := make(map[int]float64, len(linked))
	for d, row := range rows {
		if d > 0 {
			sort.SliceStable(row, func(a, b int) bool {
				return barycenter(row[a], parents, column) < barycenter(row[b], parents, column)
			})
		}
		for slot, i := range row {
			column[i] = float64(slot)
		}
	}

	y := CanvasMargin
	for _, row := range rows {
		rowH := 0.0
		for slot, i := range row {
			out[i].Position = models.Position{
				X: CanvasMargin + float64(slot)*(NodeWidth+HorizontalGap),
				Y: y,
			}
			if h := nodeHeight(out[i]); h > rowH {
				rowH = h
			}
		}
		y += rowH + VerticalGap
	}
	return y
}

// barycenter is the mean slot of a node's already-placed parents; nodes
// without placed parents keep their insertion position via a large sentinel
// tempered by stable sort.
func barycenter(i int, parents [][]int, column map[int]float64) float64 {
	sum, count := 0.0, 0
	for _, p := range parents[i] {
		if c, ok := column[p]; ok {
			sum += c
			count++
		}
	}
	if count == 0 {
		return math.MaxFloat64
	}
	return sum / float64(count)
}

// placeGrid appends nodes with no edges at all below the laid-out forest in
// a fixed-width grid, never interleaved with connected clusters.
func placeGrid(out []models.EntityNode, isolated []int, top float64) {
	y := top + VerticalGap
	rowH := 0.0
	for k, i := range isolated {
		col := k % IsolatedColumns
		if col == 0 && k > 0 {
			y += rowH + VerticalGap
			rowH = 0
		}
		out[i].Position = models.Position{
			X: CanvasMargin + float64(col)*(NodeWidth+HorizontalGap),
			Y: y,
		}
		if h := nodeHeight(out[i]); h > rowH {
			rowH = h
		}
	}
}
