package services

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"planforge/internal/models"
)

// Generator is the generation boundary: it turns a natural-language feature
// description into an initial graph document. The real implementation calls
// the model backend; the core treats its output like any other document and
// runs auto-layout on it, since generated positions are not trusted.
type Generator interface {
	GenerateGraph(ctx context.Context, prompt string) (models.GraphDocument, error)
}

// SeedGenerator is the in-process fallback used when no model backend is
// configured. It derives one entity per distinct capitalized word in the
// prompt, seeds each with an id field, and leaves linking to FK inference.
// Deterministic: same prompt, same document (modulo generated ids).
type SeedGenerator struct{}

func NewSeedGenerator() *SeedGenerator {
	return &SeedGenerator{}
}

func (g *SeedGenerator) GenerateGraph(ctx context.Context, prompt string) (models.GraphDocument, error) {
	var doc models.GraphDocument

	seen := make(map[string]bool)
	for _, word := range strings.FieldsFunc(prompt, func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if !unicode.IsUpper(rune(word[0])) || len(word) < 3 {
			continue
		}
		name := strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		if seen[name] {
			continue
		}
		seen[name] = true

		doc.Nodes = append(doc.Nodes, models.EntityNode{
			ID:   uuid.NewString(),
			Name: name,
			Fields: []models.Field{
				{Name: "id", Type: "uuid", IsPrimary: true},
				{Name: "createdAt", Type: "timestamp"},
			},
		})
	}

	return doc, nil
}
