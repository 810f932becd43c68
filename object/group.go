package object

import "github.com/tickforge/engine/emitter"

// Group is an insertion-ordered id → *Object registry for one declared
// object type, per spec §4.5. It is not safe for concurrent use.
type Group struct {
	byID  map[string]*Object
	order []string

	events *emitter.Emitter
}

// NewGroup constructs an empty Group.
func NewGroup() *Group {
	return &Group{
		byID:   make(map[string]*Object),
		events: emitter.New(),
	}
}

// On registers a handler for one of this group's events (ITEM_ADDED,
// ITEM_REMOVED, LIST_CLEARED, DESTROYED_ITEMS_CLEARED).
func (g *Group) On(event string, fn emitter.Handler) emitter.HandlerID {
	return g.events.On(event, fn)
}

// Add registers obj. Adding an id already present is idempotent: no
// double insert, no error, no event.
func (g *Group) Add(obj *Object) {
	if _, exists := g.byID[obj.ID()]; exists {
		return
	}
	g.byID[obj.ID()] = obj
	g.order = append(g.order, obj.ID())
	g.events.Emit("ITEM_ADDED", obj)
}

// Remove unregisters obj by id, emitting ITEM_REMOVED. No-op (and no
// event) if it was not present.
func (g *Group) Remove(obj *Object) {
	if g.removeByID(obj.ID()) {
		g.events.Emit("ITEM_REMOVED", obj)
	}
}

func (g *Group) removeByID(id string) bool {
	if _, exists := g.byID[id]; !exists {
		return false
	}
	delete(g.byID, id)
	for i, oid := range g.order {
		if oid == id {
			g.order = append(g.order[:i:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

// HasID reports whether id is currently registered (destroyed or not).
func (g *Group) HasID(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// GetByID returns the object registered under id, or nil if absent.
func (g *Group) GetByID(id string) *Object {
	return g.byID[id]
}

// GetAll returns every registered object (destroyed or not), in
// insertion order.
func (g *Group) GetAll() []*Object {
	out := make([]*Object, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.byID[id])
	}
	return out
}

// GetAllActive returns every non-destroyed object, in insertion order.
func (g *Group) GetAllActive() []*Object {
	out := make([]*Object, 0, len(g.order))
	for _, id := range g.order {
		if obj := g.byID[id]; !obj.Destroyed() {
			out = append(out, obj)
		}
	}
	return out
}

// Size returns the total number of registered objects, destroyed or
// not.
func (g *Group) Size() int { return len(g.order) }

// ActiveSize returns the number of non-destroyed registered objects.
func (g *Group) ActiveSize() int {
	n := 0
	for _, id := range g.order {
		if !g.byID[id].Destroyed() {
			n++
		}
	}
	return n
}

// Clear removes every object without destroying them, emitting
// LIST_CLEARED.
func (g *Group) Clear() {
	g.byID = make(map[string]*Object)
	g.order = nil
	g.events.Emit("LIST_CLEARED", nil)
}

// ClearAndDestroy destroys every object (emitting their DESTROYED events)
// then removes them, emitting LIST_CLEARED.
func (g *Group) ClearAndDestroy() {
	for _, id := range g.order {
		g.byID[id].Destroy()
	}
	g.Clear()
}

// ClearDestroyed removes every currently destroyed object from the
// group, emitting DESTROYED_ITEMS_CLEARED if any were removed.
func (g *Group) ClearDestroyed() {
	var removed []*Object
	remaining := make([]string, 0, len(g.order))
	for _, id := range g.order {
		if obj := g.byID[id]; obj.Destroyed() {
			removed = append(removed, obj)
			delete(g.byID, id)
			continue
		}
		remaining = append(remaining, id)
	}
	g.order = remaining
	if len(removed) > 0 {
		g.events.Emit("DESTROYED_ITEMS_CLEARED", removed)
	}
}

// Update invokes Update(deltaTicks, totalTicks) on every non-destroyed
// object, in insertion order.
func (g *Group) Update(deltaTicks, totalTicks int64) {
	for _, id := range g.order {
		if obj := g.byID[id]; !obj.Destroyed() {
			obj.Update(deltaTicks, totalTicks)
		}
	}
}
