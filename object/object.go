// Package object implements spec §3/§4.5's GameObject and ObjectGroup:
// a positioned, health-bearing entity with change events, and an
// insertion-ordered registry of such entities keyed by id.
package object

import (
	"github.com/tickforge/engine/emitter"
	"github.com/tickforge/engine/vector"
)

// Object is a single simulated entity. It is not safe for concurrent
// use; like the rest of the engine it is only ever touched from the
// thread driving ticks.
type Object struct {
	id       string
	kind     string
	position vector.Vec2
	velocity vector.Vec2
	size     vector.Vec2
	rotation float64
	health   float64
	maxHP    float64
	destroyed bool

	events *emitter.Emitter
}

// PositionChanged is the payload of a POSITION_CHANGED event.
type PositionChanged struct{ Old, New vector.Vec2 }

// HealthChanged is the payload of a HEALTH_CHANGED event.
type HealthChanged struct{ Current, Max float64 }

// MaxHealthChanged is the payload of a MAX_HEALTH_CHANGED event.
type MaxHealthChanged struct{ Old, New float64 }

// New constructs an Object. kind is the type string used to bucket it
// into an ObjectGroup when registered with the engine.
func New(id, kind string, position vector.Vec2, maxHealth float64) *Object {
	return &Object{
		id:       id,
		kind:     kind,
		position: position,
		health:   maxHealth,
		maxHP:    maxHealth,
		events:   emitter.New(),
	}
}

// ID returns the object's unique id.
func (o *Object) ID() string { return o.id }

// Kind returns the object's declared type, used to select its
// ObjectGroup.
func (o *Object) Kind() string { return o.kind }

// On registers a handler for one of this object's events
// (POSITION_CHANGED, HEALTH_CHANGED, MAX_HEALTH_CHANGED, SIZE_CHANGED,
// VELOCITY_CHANGED, ROTATION_CHANGED, DESTROYED).
func (o *Object) On(event string, fn emitter.Handler) emitter.HandlerID {
	return o.events.On(event, fn)
}

// Off removes a previously registered handler.
func (o *Object) Off(id emitter.HandlerID) { o.events.Off(id) }

// Position returns the object's current position.
func (o *Object) Position() vector.Vec2 { return o.position }

// SetPosition moves the object, emitting POSITION_CHANGED if it changed.
func (o *Object) SetPosition(p vector.Vec2) {
	if o.position.Equal(p) {
		return
	}
	old := o.position
	o.position = p
	o.events.Emit("POSITION_CHANGED", PositionChanged{Old: old, New: p})
}

// Velocity returns the object's current velocity.
func (o *Object) Velocity() vector.Vec2 { return o.velocity }

// SetVelocity sets the object's velocity, emitting VELOCITY_CHANGED if
// it changed.
func (o *Object) SetVelocity(v vector.Vec2) {
	if o.velocity.Equal(v) {
		return
	}
	o.velocity = v
	o.events.Emit("VELOCITY_CHANGED", v)
}

// Size returns the object's current size.
func (o *Object) Size() vector.Vec2 { return o.size }

// SetSize sets the object's size, emitting SIZE_CHANGED if it changed.
func (o *Object) SetSize(s vector.Vec2) {
	if o.size.Equal(s) {
		return
	}
	o.size = s
	o.events.Emit("SIZE_CHANGED", s)
}

// Rotation returns the object's current rotation in radians.
func (o *Object) Rotation() float64 { return o.rotation }

// SetRotation sets the object's rotation, emitting ROTATION_CHANGED if
// it changed.
func (o *Object) SetRotation(r float64) {
	if o.rotation == r {
		return
	}
	o.rotation = r
	o.events.Emit("ROTATION_CHANGED", r)
}

// Health returns the object's current health.
func (o *Object) Health() float64 { return o.health }

// MaxHealth returns the object's max health.
func (o *Object) MaxHealth() float64 { return o.maxHP }

// SetHealth clamps health to [0, maxHealth], emitting HEALTH_CHANGED,
// and destroys the object (emitting DESTROYED once) if it reaches 0.
func (o *Object) SetHealth(h float64) {
	clamped := clamp(h, 0, o.maxHP)
	if clamped == o.health {
		return
	}
	o.health = clamped
	o.events.Emit("HEALTH_CHANGED", HealthChanged{Current: o.health, Max: o.maxHP})
	if o.health <= 0 {
		o.Destroy()
	}
}

// TakeDamage reduces health by amount (clamped).
func (o *Object) TakeDamage(amount float64) { o.SetHealth(o.health - amount) }

// Heal increases health by amount (clamped).
func (o *Object) Heal(amount float64) { o.SetHealth(o.health + amount) }

// SetMaxHealth changes the max health, emitting MAX_HEALTH_CHANGED and
// re-clamping current health if it now exceeds the new max.
func (o *Object) SetMaxHealth(max float64) {
	if max == o.maxHP {
		return
	}
	old := o.maxHP
	o.maxHP = max
	o.events.Emit("MAX_HEALTH_CHANGED", MaxHealthChanged{Old: old, New: max})
	if o.health > o.maxHP {
		o.SetHealth(o.maxHP)
	}
}

// Destroyed reports whether Destroy has been called (directly or via
// SetHealth reaching 0).
func (o *Object) Destroyed() bool { return o.destroyed }

// Destroy marks the object destroyed and emits DESTROYED exactly once
// per lifetime. Calling it again is a no-op.
func (o *Object) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	o.events.Emit("DESTROYED", o.id)
}

// Update advances the object by one tick: for non-destroyed objects,
// position += velocity * deltaTicks. Callers are expected to skip
// destroyed objects, but Update itself is also a no-op on them as a
// defensive backstop.
func (o *Object) Update(deltaTicks int64, totalTicks int64) {
	if o.destroyed {
		return
	}
	if o.velocity.IsZero() {
		return
	}
	o.SetPosition(o.position.Add(o.velocity.Scale(float64(deltaTicks))))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
