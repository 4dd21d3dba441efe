// Package relationship canonicalizes the labels attached to edges in the
// data-model diagram. Legacy notations ("1:N", "FK", Mermaid crow's feet)
// enter here once and leave as one of five canonical types; anything else
// passes through as a custom label with a default style.
package relationship

import "strings"

type Type string

const (
	HasMany    Type = "has-many"
	BelongsTo  Type = "belongs-to"
	HasOne     Type = "has-one"
	ManyToMany Type = "many-to-many"
	References Type = "references"
)

// aliases maps lower-cased legacy/alternate notations to canonical types.
var aliases = map[string]Type{
	"has-many":     HasMany,
	"belongs-to":   BelongsTo,
	"has-one":      HasOne,
	"many-to-many": ManyToMany,
	"references":   References,

	"1:n":         HasMany,
	"one-to-many": HasMany,
	"hasmany":     HasMany,
	"||--o{":      HasMany,

	"n:1":         BelongsTo,
	"many-to-one": BelongsTo,
	"belongsto":   BelongsTo,
	"}o--||":      BelongsTo,

	"1:1":        HasOne,
	"one-to-one": HasOne,
	"hasone":     HasOne,
	"||--||":     HasOne,

	"n:m":        ManyToMany,
	"m:n":        ManyToMany,
	"manytomany": ManyToMany,
	"}o--o{":     ManyToMany,

	"fk":   References,
	"fk→":  References,
	"fk->": References,
	"ref":  References,
}

// Canonicalize resolves a label to a canonical type. Unrecognized labels are
// returned unchanged as custom types; there is no error path.
func Canonicalize(label string) Type {
	key := strings.ToLower(strings.TrimSpace(label))
	if t, ok := aliases[key]; ok {
		return t
	}
	return Type(label)
}

// IsCanonical reports whether t is one of the five closed types.
func IsCanonical(t Type) bool {
	switch t {
	case HasMany, BelongsTo, HasOne, ManyToMany, References:
		return true
	}
	return false
}

// Style is per-type rendering metadata. Pure presentation data; the editor
// core never branches on it.
type Style struct {
	Color       string `json:"color"`
	Notation    string `json:"notation"`
	MarkerStart string `json:"markerStart"`
	MarkerEnd   string `json:"markerEnd"`
}

var styles = map[Type]Style{
	HasMany:    {Color: "#2563eb", Notation: "||--o{", MarkerStart: "one", MarkerEnd: "many"},
	BelongsTo:  {Color: "#7c3aed", Notation: "}o--||", MarkerStart: "many", MarkerEnd: "one"},
	HasOne:     {Color: "#059669", Notation: "||--||", MarkerStart: "one", MarkerEnd: "one"},
	ManyToMany: {Color: "#db2777", Notation: "}o--o{", MarkerStart: "many", MarkerEnd: "many"},
	References: {Color: "#64748b", Notation: "||..o{", MarkerStart: "none", MarkerEnd: "arrow"},
}

// Describe returns the rendering metadata for a type. Custom types get the
// has-many style so every label renders somehow.
func Describe(t Type) Style {
	if s, ok := styles[t]; ok {
		return s
	}
	return styles[HasMany]
}
