//go:build !windows
// +build !windows

package cursor

// staticResolver reports a single fixed glyph. Platforms without a cursor
// glyph query still get a stable id so the rest of the pipeline behaves the
// same way everywhere.
type staticResolver struct {
	id   ShapeID
	name string
}

// NewResolver returns the fallback resolver for platforms where the
// displayed glyph cannot be queried.
func NewResolver() Resolver {
	return &staticResolver{id: 1, name: "default"}
}

func (r *staticResolver) Resolve() (ShapeID, string) {
	return r.id, r.name
}
