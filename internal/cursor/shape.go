// Package cursor resolves the glyph currently displayed for the pointer and
// rate-limits how often that resolution happens.
package cursor

import "fmt"

// ShapeID identifies a cursor glyph. Two equal ids denote the same glyph.
// Ids are stable for the lifetime of the process only. The zero value is
// reserved as "no shape observed yet".
type ShapeID uint64

// ShapeNone is the sentinel id meaning no glyph has been observed.
const ShapeNone ShapeID = 0

// ErrorShapeName is the label reported when the OS query fails. Resolution
// runs inside the input hook callback, so failures degrade to this sentinel
// instead of retrying.
const ErrorShapeName = "error"

// Resolver queries the OS for the currently displayed cursor glyph.
// Implementations must be callable from the hook callback's thread and must
// not block on locks held by event consumers.
type Resolver interface {
	Resolve() (ShapeID, string)
}

// ResolverFunc adapts a function literal to the Resolver interface.
type ResolverFunc func() (ShapeID, string)

// Resolve calls the underlying function.
func (f ResolverFunc) Resolve() (ShapeID, string) {
	return f()
}

func customShapeName(id ShapeID) string {
	return fmt.Sprintf("custom_0x%x", uint64(id))
}
