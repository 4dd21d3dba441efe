package services

import (
	"fmt"
	"strings"

	"planforge/internal/models"
	"planforge/internal/relationship"
)

// GenerateMermaid renders a graph document as a Mermaid erDiagram. The
// relationship notation comes from the registry so the export and the
// canvas agree on semantics.
func GenerateMermaid(doc models.GraphDocument) string {
	var sb strings.Builder

	sb.WriteString("erDiagram\n")

	names := make(map[string]string, len(doc.Nodes))
	for _, node := range doc.Nodes {
		names[node.ID] = mermaidName(node.Name)
	}

	if len(doc.Edges) > 0 {
		// Deduplicate: the document may hold several edges per pair.
		seen := make(map[string]bool)
		for _, edge := range doc.Edges {
			style := relationship.Describe(relationship.Canonicalize(edge.RelationshipType))

			key := fmt.Sprintf("%s:%s:%s", edge.Source, style.Notation, edge.Target)
			if seen[key] {
				continue
			}
			seen[key] = true

			// Mermaid requires a label even when empty.
			sb.WriteString(fmt.Sprintf("    %s %s %s : \"\"\n",
				names[edge.Source],
				style.Notation,
				names[edge.Target]))
		}
		sb.WriteString("\n")
	}

	for _, node := range doc.Nodes {
		sb.WriteString(fmt.Sprintf("    %s {\n", names[node.ID]))

		for _, field := range node.Fields {
			annotations := ""
			if field.IsPrimary {
				annotations = " PK"
			}

			sb.WriteString(fmt.Sprintf("        %s %s%s\n",
				sanitize(field.Type, "unknown"),
				sanitize(field.Name, "unnamed"),
				annotations))
		}

		sb.WriteString("    }\n\n")
	}

	return sb.String()
}

// mermaidName is the entity identifier form: sanitized and upper-cased.
func mermaidName(s string) string {
	return strings.ToUpper(sanitize(s, "unnamed"))
}

// sanitize strips characters Mermaid identifiers cannot carry.
func sanitize(s, fallback string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}
