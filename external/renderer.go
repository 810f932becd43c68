package external

// NodeHandle identifies an opaque display node owned by a Renderer. The
// engine core only ever passes handles back to the Renderer that minted
// them; it never inspects or stores their contents.
type NodeHandle uint64

// Renderer creates and manipulates opaque display nodes by handle. It
// lives entirely outside the determinism boundary: the engine calls it
// as a side effect of object lifecycle events, never reads anything
// back from it, and a Renderer implementation must not feed anything
// back into the engine.
type Renderer interface {
	// CreateNode allocates a display node for kind (e.g. an object's
	// Kind()) and returns a handle to it.
	CreateNode(kind string) NodeHandle

	// UpdateNode pushes new visual state (position, rotation, size, ...)
	// for an existing handle. Implementations decide what fields matter.
	UpdateNode(handle NodeHandle, state any)

	// DestroyNode releases a previously created node. Idempotent.
	DestroyNode(handle NodeHandle)
}

// NoopRenderer satisfies Renderer with no side effects whatsoever,
// matching spec §6's requirement that a headless implementation produce
// no side effects observable by the core. Useful for servers and batch
// replay where no display surface exists.
type NoopRenderer struct{}

// CreateNode implements Renderer; the returned handle is always 0.
func (NoopRenderer) CreateNode(kind string) NodeHandle { return 0 }

// UpdateNode implements Renderer; it does nothing.
func (NoopRenderer) UpdateNode(handle NodeHandle, state any) {}

// DestroyNode implements Renderer; it does nothing.
func (NoopRenderer) DestroyNode(handle NodeHandle) {}

var _ Renderer = NoopRenderer{}
