// Package inference proposes relationship edges from naming conventions. A
// field named like "userId" or "user_id" on Order suggests User has-many
// Order; the sync is additive-only and idempotent, so it can back a "find
// missing FK links" button the user mashes freely.
package inference

import (
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/google/uuid"

	"planforge/internal/models"
	"planforge/internal/relationship"
)

// ForeignKeyField reports whether a field name is a foreign-key candidate:
// it ends in "Id"/"_id" (case-insensitive) and is not the bare primary key
// field itself.
func ForeignKeyField(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "id" || lower == "_id" {
		return false
	}
	return strings.HasSuffix(lower, "id")
}

// baseToken strips the id suffix: "userId" → "user", "user_id" → "user".
func baseToken(name string) string {
	base := strings.TrimSpace(name)
	base = base[:len(base)-len("id")]
	return strings.TrimSuffix(base, "_")
}

// normalize lower-cases and strips non-alphanumeric characters so
// "Order Item" and "orderItem" compare equal.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// singularize applies the naive English rule: "ies" → "y", then a trailing
// "s" unless the word ends in "ss".
func singularize(s string) string {
	if strings.HasSuffix(s, "ies") {
		return s[:len(s)-3] + "y"
	}
	if strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") {
		return s[:len(s)-1]
	}
	return s
}

// forms returns the comparable shapes of a name: normalized, naive singular,
// and the inflect singular for irregular plurals ("people", "statuses").
func forms(name string) map[string]bool {
	n := normalize(name)
	set := map[string]bool{n: true}
	set[singularize(n)] = true
	if s := normalize(inflect.Singularize(n)); s != "" {
		set[s] = true
	}
	return set
}

// SyncForeignKeys scans every entity's fields for foreign-key candidates,
// matches each candidate's base token against the other entities' names,
// and synthesizes a has-many edge from the inferred parent to the child
// when no edge connects that pair yet. When a token matches several
// entities the first match in document order wins; ambiguity is not
// surfaced. The inputs are not mutated; the returned slice is the input
// edges plus any additions, and the int is the addition count.
func SyncForeignKeys(nodes []models.EntityNode, edges []models.RelationshipEdge) ([]models.RelationshipEdge, int) {
	out := make([]models.RelationshipEdge, len(edges))
	copy(out, edges)

	// Existing parent→child pairs, any relationship type. Checked before
	// each addition so repeated syncs settle at zero.
	pairs := make(map[string]bool, len(edges))
	for _, e := range edges {
		pairs[e.Source+"->"+e.Target] = true
	}

	entityForms := make([]map[string]bool, len(nodes))
	for i, n := range nodes {
		entityForms[i] = forms(n.Name)
	}

	added := 0
	for ci, child := range nodes {
		for _, f := range child.Fields {
			if !ForeignKeyField(f.Name) {
				continue
			}
			candidate := forms(baseToken(f.Name))

			parent := bestParent(nodes, entityForms, ci, candidate)
			if parent == "" || parent == child.ID {
				continue
			}

			key := parent + "->" + child.ID
			if pairs[key] {
				continue
			}
			pairs[key] = true
			out = append(out, models.RelationshipEdge{
				ID:               uuid.NewString(),
				Source:           parent,
				Target:           child.ID,
				RelationshipType: string(relationship.HasMany),
			})
			added++
		}
	}
	return out, added
}

// bestParent returns the id of the first entity, in document order, whose
// name forms intersect the candidate token forms. First match wins by
// policy, not accident: the tie-break is deliberate and documented on
// SyncForeignKeys.
func bestParent(nodes []models.EntityNode, entityForms []map[string]bool, childIdx int, candidate map[string]bool) string {
	for i, n := range nodes {
		if i == childIdx {
			continue
		}
		for form := range candidate {
			if entityForms[i][form] {
				return n.ID
			}
		}
	}
	return ""
}
