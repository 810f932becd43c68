// Package collision implements spec §4.6's point-keyed spatial index: a
// forward map from exact (x, y) keys to the sources occupying that
// point, plus a reverse index from source to its occupied keys, so
// removeSource stays O(|sources of s|) instead of a full grid scan.
package collision

import "github.com/tickforge/engine/vector"

// Key is the coordinate used to bucket points: the float64 values
// themselves, with no rounding or quantization, so two points share a
// bucket only if their coordinates compare equal with ==. Keys are
// compared by value, not by bit pattern: +0 and -0 share a bucket, and a
// point with a NaN coordinate is never found again by ContainsPoint.
type Key struct {
	X, Y float64
}

func keyFor(p vector.Vec2) Key {
	return Key{X: p.X, Y: p.Y}
}

// Source identifies whatever owns a point in the grid (an object id, a
// brick coordinate, …). Callers pick whatever comparable type suits
// their domain.
type Source any

// Index is the spec §4.6 contract satisfied by Grid. It is factored out
// so an alternative spatial structure (a quadtree or BSP tree, per the
// Open Question in spec §9) could be dropped in without touching
// callers; no such alternative is implemented here since no example in
// the pack provides a grounded one worth adapting (see DESIGN.md).
type Index interface {
	Add(point vector.Vec2, source Source) bool
	Remove(point vector.Vec2, source Source) bool
	RemoveSource(source Source) bool
	ContainsPoint(point vector.Vec2) []Source
	Clear()
}

var _ Index = (*Grid)(nil)

type bucketEntry struct {
	source Source
	point  vector.Vec2
}

// Grid is a point-keyed spatial index. Not safe for concurrent use.
type Grid struct {
	buckets map[Key][]bucketEntry
	bySrc   map[Source]map[Key]bool
	emit    func(event string, payload any)
}

// New constructs an empty Grid. emit, if non-nil, is called with
// "POINTS_CHANGED" whenever the grid's contents change, per spec §4.6.
func New(emit func(event string, payload any)) *Grid {
	if emit == nil {
		emit = func(string, any) {}
	}
	return &Grid{
		buckets: make(map[Key][]bucketEntry),
		bySrc:   make(map[Source]map[Key]bool),
		emit:    emit,
	}
}

// Add inserts (source, point). Returns false without modifying the grid
// if the pair is already present.
func (g *Grid) Add(point vector.Vec2, source Source) bool {
	k := keyFor(point)
	for _, e := range g.buckets[k] {
		if e.source == source {
			return false
		}
	}
	g.buckets[k] = append(g.buckets[k], bucketEntry{source: source, point: point})

	if g.bySrc[source] == nil {
		g.bySrc[source] = make(map[Key]bool)
	}
	g.bySrc[source][k] = true

	g.emit("POINTS_CHANGED", point)
	return true
}

// Remove deletes (source, point). Returns false if the pair was not
// present.
func (g *Grid) Remove(point vector.Vec2, source Source) bool {
	k := keyFor(point)
	entries := g.buckets[k]
	for i, e := range entries {
		if e.source == source {
			g.buckets[k] = append(entries[:i:i], entries[i+1:]...)
			if len(g.buckets[k]) == 0 {
				delete(g.buckets, k)
			}
			if keys := g.bySrc[source]; keys != nil {
				delete(keys, k)
				if len(keys) == 0 {
					delete(g.bySrc, source)
				}
			}
			g.emit("POINTS_CHANGED", point)
			return true
		}
	}
	return false
}

// RemoveSource deletes every point owned by source, emitting at most one
// POINTS_CHANGED event. Returns false if source owned nothing.
func (g *Grid) RemoveSource(source Source) bool {
	keys := g.bySrc[source]
	if len(keys) == 0 {
		return false
	}
	for k := range keys {
		entries := g.buckets[k]
		for i, e := range entries {
			if e.source == source {
				g.buckets[k] = append(entries[:i:i], entries[i+1:]...)
				break
			}
		}
		if len(g.buckets[k]) == 0 {
			delete(g.buckets, k)
		}
	}
	delete(g.bySrc, source)
	g.emit("POINTS_CHANGED", nil)
	return true
}

// ContainsPoint returns the sources occupying point, in insertion order
// within that bucket.
func (g *Grid) ContainsPoint(point vector.Vec2) []Source {
	entries := g.buckets[keyFor(point)]
	if len(entries) == 0 {
		return nil
	}
	out := make([]Source, len(entries))
	for i, e := range entries {
		out[i] = e.source
	}
	return out
}

// Clear empties the grid.
func (g *Grid) Clear() {
	g.buckets = make(map[Key][]bucketEntry)
	g.bySrc = make(map[Source]map[Key]bool)
	g.emit("POINTS_CHANGED", nil)
}

// Size returns the total number of (source, point) entries in the grid.
func (g *Grid) Size() int {
	n := 0
	for _, entries := range g.buckets {
		n += len(entries)
	}
	return n
}
