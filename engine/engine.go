// Package engine implements spec §4.1's tick loop and lifecycle: it owns
// the PRNG, timer wheel, object groups, event manager, and an optional
// recorder hook, and drives a single tick through the canonical order
// described in spec §2 and §4.1.
package engine

import (
	"log/slog"
	"runtime/debug"

	"github.com/tickforge/engine/collision"
	"github.com/tickforge/engine/enginerr"
	"github.com/tickforge/engine/eventing"
	"github.com/tickforge/engine/object"
	"github.com/tickforge/engine/prng"
	"github.com/tickforge/engine/recorder"
	"github.com/tickforge/engine/timer"
)

// Config is the opaque game configuration passed to Reset and on to
// Setup, per spec §3's GameConfig. Extra carries whatever
// caller-specific configuration the embedding game needs; the engine
// itself only reads Seed.
type Config struct {
	Seed  string
	Extra any
}

// SetupFunc is user code invoked by Reset once the engine has cleared
// its state and reseeded its PRNG. The engine remains in Ready while
// Setup runs; Update fails with BadState until Reset completes.
type SetupFunc func(cfg *Config) error

// Options configures a new Engine.
type Options struct {
	Logger        *slog.Logger
	Setup         SetupFunc
	PruneEachTick bool
}

// Engine drives one simulation. It is strictly single-threaded per spec
// §5: Update must never be called re-entrantly, and the engine must not
// be shared across goroutines without external synchronization. It
// exclusively owns its PRNG, timer, groups, and collision grid.
type Engine struct {
	log *slog.Logger

	state      State
	totalTicks int64
	seed       string
	config     *Config
	setup      SetupFunc

	prng  *prng.PRNG
	timer *timer.Wheel
	grid  *collision.Grid

	groups     map[string]*object.Group
	groupOrder []string

	events *eventing.Manager
	rec    *recorder.Recorder

	pruneEachTick bool
	inUpdate      bool
}

// New constructs an Engine in the Ready state.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		log:           log,
		state:         Ready,
		setup:         opts.Setup,
		prng:          prng.New(""),
		timer:         timer.New(),
		groups:        make(map[string]*object.Group),
		events:        eventing.NewManager(),
		pruneEachTick: opts.PruneEachTick,
	}
	e.grid = collision.New(e.emitGridEvent)
	e.events.SetPanicHandler(e.onHandlerPanic)
	return e
}

func (e *Engine) emitGridEvent(kind string, payload any) {
	e.events.Dispatch(eventing.Event{Kind: kind, Tick: e.totalTicks, Params: payload})
}

func (e *Engine) onHandlerPanic(ev eventing.Event, recovered any) {
	err := enginerr.NewHandlerFault(recovered, string(debug.Stack()))
	e.log.Error("event handler panicked", "kind", ev.Kind, "error", err)
}

// GetState returns the engine's current lifecycle state.
func (e *Engine) GetState() State { return e.state }

// GetTotalTicks returns the accumulated tick count.
func (e *Engine) GetTotalTicks() int64 { return e.totalTicks }

// GetSeed returns the PRNG seed currently in effect.
func (e *Engine) GetSeed() string { return e.seed }

// GetPRNG returns the engine-owned PRNG.
func (e *Engine) GetPRNG() *prng.PRNG { return e.prng }

// GetGrid returns the engine-owned spatial index.
func (e *Engine) GetGrid() *collision.Grid { return e.grid }

// GetRegisteredTypes returns every object-group type currently
// registered, in the order their first object was registered.
func (e *Engine) GetRegisteredTypes() []string {
	out := make([]string, len(e.groupOrder))
	copy(out, e.groupOrder)
	return out
}

// GetObjectGroup returns the group for kind, creating it (empty) if it
// does not yet exist.
func (e *Engine) GetObjectGroup(kind string) *object.Group {
	return e.groupFor(kind)
}

func (e *Engine) groupFor(kind string) *object.Group {
	g, ok := e.groups[kind]
	if !ok {
		g = object.NewGroup()
		e.groups[kind] = g
		e.groupOrder = append(e.groupOrder, kind)
	}
	return g
}

// RegisterObject places obj into the group matching its declared Kind,
// creating the group if new. Registering an id already present in its
// group is idempotent.
func (e *Engine) RegisterObject(obj *object.Object) {
	e.groupFor(obj.Kind()).Add(obj)
}

// SetEventSource swaps the active event source.
func (e *Engine) SetEventSource(src eventing.Source) {
	e.events.SetSource(src)
}

// GetEventSource returns the active event source.
func (e *Engine) GetEventSource() eventing.Source {
	return e.events.Source()
}

// On registers a handler for events of kind, optionally scoped to a
// specific inputType.
func (e *Engine) On(kind, inputType string, fn eventing.Handler) {
	e.events.On(kind, inputType, fn)
}

// SetRecorder attaches rec, wiring it to observe every event delivered
// through the active LiveSource.
func (e *Engine) SetRecorder(rec *recorder.Recorder) {
	e.rec = rec
	e.events.SetObserver(rec.ObserveEvent)
}

// ClearRecorder detaches the current recorder, if any.
func (e *Engine) ClearRecorder() {
	e.rec = nil
	e.events.ClearObserver()
}

// SetTimeout delegates to the engine's Timer.
func (e *Engine) SetTimeout(cb timer.Callback, ticks int64) timer.ID {
	return e.timer.SetTimeout(cb, ticks)
}

// SetInterval delegates to the engine's Timer.
func (e *Engine) SetInterval(cb timer.Callback, ticks int64) timer.ID {
	return e.timer.SetInterval(cb, ticks)
}

// ClearTimer delegates to the engine's Timer.
func (e *Engine) ClearTimer(id timer.ID) { e.timer.ClearTimer(id) }

// PauseTimer delegates to the engine's Timer.
func (e *Engine) PauseTimer(id timer.ID) { e.timer.PauseTimer(id) }

// ResumeTimer delegates to the engine's Timer.
func (e *Engine) ResumeTimer(id timer.ID) { e.timer.ResumeTimer(id) }

// Reset clears all groups, resets the Timer's current tick (but not its
// id counter), rebuilds the PRNG from cfg.Seed (or the prior seed if
// cfg is nil or cfg.Seed is empty), sets state to Ready, and calls
// Setup if one was configured. It fails with BadState if called while
// Update is in progress.
func (e *Engine) Reset(cfg *Config) error {
	if e.inUpdate {
		return enginerr.NewBadState("reset called while update is in progress")
	}

	e.groups = make(map[string]*object.Group)
	e.groupOrder = nil
	e.timer.Reset()
	e.grid.Clear()
	e.totalTicks = 0

	seed := e.seed
	if cfg != nil && cfg.Seed != "" {
		seed = cfg.Seed
	}
	e.prng.Reset(seed)
	e.seed = seed
	e.config = cfg

	if src := e.events.Source(); src != nil {
		src.Reset()
	}

	e.state = Ready

	if e.setup != nil {
		if err := e.setup(cfg); err != nil {
			return err
		}
	}
	return nil
}

// Start transitions Ready→Playing and, if a recorder is attached, marks
// the start of a new recording with the current seed and config.
func (e *Engine) Start() error {
	if e.state != Ready {
		return enginerr.NewBadState("start called while %s, expected READY", e.state)
	}
	e.state = Playing
	if e.rec != nil {
		var extra any
		if e.config != nil {
			extra = e.config.Extra
		}
		e.rec.StartRecording(e.seed, extra)
	}
	return nil
}

// Pause transitions Playing→Paused.
func (e *Engine) Pause() error {
	if e.state != Playing {
		return enginerr.NewBadState("pause called while %s, expected PLAYING", e.state)
	}
	e.state = Paused
	return nil
}

// Resume transitions Paused→Playing.
func (e *Engine) Resume() error {
	if e.state != Paused {
		return enginerr.NewBadState("resume called while %s, expected PAUSED", e.state)
	}
	e.state = Playing
	return nil
}

// End transitions to Ended from any state.
func (e *Engine) End() error {
	e.state = Ended
	return nil
}

// Update performs exactly one canonical tick step, per spec §4.1:
// fetch due events, advance totalTicks, dispatch due events, advance
// the Timer, update every non-destroyed object in every group in
// registration/insertion order, and (if configured) prune destroyed
// objects. It is only valid in Playing. deltaTicks == 0 is a no-op that
// still validates state and returns without error (spec §8's boundary
// behavior, resolved this way and held stable across a run); negative
// deltaTicks is rejected as BadState.
func (e *Engine) Update(deltaTicks int64) error {
	if e.state != Playing {
		return enginerr.NewBadState("update called while %s, expected PLAYING", e.state)
	}
	if deltaTicks < 0 {
		return enginerr.NewBadState("update requires deltaTicks >= 0, got %d", deltaTicks)
	}
	if e.inUpdate {
		return enginerr.NewBadState("update called re-entrantly")
	}
	if deltaTicks == 0 {
		return nil
	}

	e.inUpdate = true
	defer func() { e.inUpdate = false }()

	targetTick := e.totalTicks + deltaTicks
	due := e.events.FetchDue(targetTick)

	e.totalTicks = targetTick

	if e.rec != nil {
		e.rec.ObserveUpdate(deltaTicks, e.totalTicks)
	}

	for _, ev := range due {
		e.events.Dispatch(ev)
	}

	if err := e.timer.Update(deltaTicks, e.totalTicks); err != nil {
		return err
	}

	for _, kind := range e.groupOrder {
		e.groups[kind].Update(deltaTicks, e.totalTicks)
	}

	if e.pruneEachTick {
		for _, kind := range e.groupOrder {
			e.groups[kind].ClearDestroyed()
		}
	}

	return nil
}
