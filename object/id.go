package object

import (
	"github.com/google/uuid"

	"github.com/tickforge/engine/vector"
)

// NewAutoID constructs an Object with a freshly generated unique id,
// for callers that do not need a caller-chosen id (spec §3 only
// requires a non-empty unique string id, not any particular scheme).
func NewAutoID(kind string, position vector.Vec2, maxHealth float64) *Object {
	return New(uuid.NewString(), kind, position, maxHealth)
}
