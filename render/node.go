// Package render provides two concrete external.Renderer collaborators:
// an ASCII renderer adapted from the reference game's RenderToASCII, and
// a PNG raster renderer built on fogleman/gg. Neither is consulted
// during determinism checks (spec §6); both exist purely so a headful
// host (terminal client, debug server) has something to draw object
// state with.
package render

import (
	"sync"

	"github.com/tickforge/engine/external"
	"github.com/tickforge/engine/vector"
)

// RGBPixel is an 8-bit-per-channel color, the unit the ASCII renderer
// converts to grayscale and the image renderer fills shapes with.
type RGBPixel struct {
	R, G, B uint8
}

// NodeState is the state UpdateNode expects in its state parameter. It
// carries everything either renderer in this package needs to draw an
// object: where it is, how big it is, and what color represents it.
type NodeState struct {
	Position vector.Vec2
	Size     vector.Vec2
	Color    RGBPixel
}

type node struct {
	kind  string
	state NodeState
}

// nodeTable is the handle-indexed node store shared by both renderers in
// this package; it is the only stateful part of the external.Renderer
// contract, so both ASCIIRenderer and ImageRenderer embed one rather than
// duplicating bookkeeping.
type nodeTable struct {
	mu     sync.Mutex
	nodes  map[external.NodeHandle]*node
	nextID external.NodeHandle
}

func newNodeTable() *nodeTable {
	return &nodeTable{nodes: make(map[external.NodeHandle]*node)}
}

func (t *nodeTable) create(kind string) external.NodeHandle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.nodes[t.nextID] = &node{kind: kind}
	return t.nextID
}

func (t *nodeTable) update(handle external.NodeHandle, state any) {
	ns, ok := state.(NodeState)
	if !ok {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if n, ok := t.nodes[handle]; ok {
		n.state = ns
	}
}

func (t *nodeTable) destroy(handle external.NodeHandle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.nodes, handle)
}

// snapshot returns the live nodes in ascending handle order, giving a
// deterministic draw order for a single frame.
func (t *nodeTable) snapshot() []*node {
	t.mu.Lock()
	defer t.mu.Unlock()
	handles := make([]external.NodeHandle, 0, len(t.nodes))
	for h := range t.nodes {
		handles = append(handles, h)
	}
	for i := 1; i < len(handles); i++ {
		for j := i; j > 0 && handles[j-1] > handles[j]; j-- {
			handles[j-1], handles[j] = handles[j], handles[j-1]
		}
	}
	out := make([]*node, 0, len(handles))
	for _, h := range handles {
		out = append(out, t.nodes[h])
	}
	return out
}
