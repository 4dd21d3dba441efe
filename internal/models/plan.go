package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is one technical plan: the prose prompt it was generated from plus
// the graph/flow documents stored alongside it.
type Plan struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Prompt      string    `json:"prompt,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Plan) Prepare() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
}
