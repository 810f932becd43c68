// Package timer implements spec §4.4's tick-indexed timer wheel: entries
// ordered by (targetTick, id), one-shot and interval semantics, and a
// bounded re-entrant firing loop so callbacks that schedule new due
// timers cannot loop forever within a single update.
package timer

import (
	"sort"

	"github.com/tickforge/engine/enginerr"
)

// ID identifies a scheduled timer, monotonic within a Wheel's lifetime.
// It is never reset by Reset, matching spec §4.4's id-counter invariant.
type ID uint64

// Callback is invoked when a timer fires.
type Callback func()

// maxFirePasses bounds Update's re-entrant collection loop per spec
// §4.4 step 5: exceeding it on one update call is a fatal error for that
// tick.
const maxFirePasses = 1000

type entry struct {
	id         ID
	callback   Callback
	targetTick int64
	interval   int64
	isInterval bool
	active     bool
	paused     bool
}

// Wheel is a tick-indexed timer wheel. It is not safe for concurrent use;
// like the rest of the engine it is driven from a single tick thread.
type Wheel struct {
	next        ID
	entries     map[ID]*entry
	currentTick int64

	// updateStartTick is the tick at entry to the current Update call, used
	// as the base for setTimeout/setInterval calls made from inside a
	// firing callback, per spec §4.4.
	updateStartTick int64
	inUpdate        bool
}

// New constructs an empty Wheel.
func New() *Wheel {
	return &Wheel{entries: make(map[ID]*entry)}
}

// baseTick returns updateStartTick while a callback-triggered schedule is
// in flight, otherwise the wheel's current tick.
func (w *Wheel) baseTick() int64 {
	if w.inUpdate {
		return w.updateStartTick
	}
	return w.currentTick
}

// SetTimeout schedules a one-shot callback at baseTick()+ticks.
func (w *Wheel) SetTimeout(cb Callback, ticks int64) ID {
	id := w.next
	w.next++
	w.entries[id] = &entry{
		id:         id,
		callback:   cb,
		targetTick: w.baseTick() + ticks,
		active:     true,
	}
	return id
}

// SetInterval schedules a repeating callback every ticks ticks, starting
// at baseTick()+ticks. An interval of 0 fires once per subsequent tick.
func (w *Wheel) SetInterval(cb Callback, ticks int64) ID {
	id := w.next
	w.next++
	interval := ticks
	if interval < 0 {
		interval = 0
	}
	w.entries[id] = &entry{
		id:         id,
		callback:   cb,
		targetTick: w.baseTick() + ticks,
		interval:   interval,
		isInterval: true,
		active:     true,
	}
	return id
}

// ClearTimer deactivates and removes a timer. It is a no-op for unknown
// ids.
func (w *Wheel) ClearTimer(id ID) {
	delete(w.entries, id)
}

// PauseTimer marks a timer inactive without losing its schedule; it will
// not fire until ResumeTimer is called. No-op for unknown ids.
func (w *Wheel) PauseTimer(id ID) {
	if e, ok := w.entries[id]; ok {
		e.paused = true
	}
}

// ResumeTimer reactivates a previously paused timer. No-op for unknown
// ids.
func (w *Wheel) ResumeTimer(id ID) {
	if e, ok := w.entries[id]; ok {
		e.paused = false
	}
}

// Update fires every active, non-paused timer with targetTick ≤
// totalTicks, in (targetTick, id) ascending order, re-collecting newly
// due timers scheduled by fired callbacks within the same pass, bounded
// by maxFirePasses.
func (w *Wheel) Update(deltaTicks, totalTicks int64) error {
	w.updateStartTick = w.currentTick
	w.inUpdate = true
	defer func() { w.inUpdate = false }()

	w.currentTick = totalTicks

	for pass := 0; ; pass++ {
		if pass >= maxFirePasses {
			return enginerr.NewTimerLimitExceeded("exceeded %d firing passes in one update", maxFirePasses)
		}

		due := w.collectDue(totalTicks)
		if len(due) == 0 {
			return nil
		}

		for _, e := range due {
			w.fire(e, totalTicks)
		}
	}
}

func (w *Wheel) collectDue(totalTicks int64) []*entry {
	var due []*entry
	for _, e := range w.entries {
		if e.active && !e.paused && e.targetTick <= totalTicks {
			due = append(due, e)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].targetTick != due[j].targetTick {
			return due[i].targetTick < due[j].targetTick
		}
		return due[i].id < due[j].id
	})
	return due
}

func (w *Wheel) fire(e *entry, totalTicks int64) {
	// A timer can be cleared by an earlier callback in the same pass;
	// re-check it is still present before firing.
	if _, ok := w.entries[e.id]; !ok {
		return
	}

	if e.callback != nil {
		e.callback()
	}

	if _, stillPresent := w.entries[e.id]; !stillPresent {
		return
	}

	if e.isInterval {
		if e.interval == 0 {
			e.targetTick = totalTicks + 1
		} else {
			e.targetTick += e.interval
		}
		return
	}

	delete(w.entries, e.id)
}

// Reset clears all scheduled timers and the current tick, leaving the id
// counter unchanged per spec §4.4.
func (w *Wheel) Reset() {
	w.entries = make(map[ID]*entry)
	w.currentTick = 0
	w.updateStartTick = 0
	w.inUpdate = false
}

// CurrentTick returns the tick this wheel last advanced to.
func (w *Wheel) CurrentTick() int64 {
	return w.currentTick
}

// Count returns the number of timers currently scheduled, active or
// paused.
func (w *Wheel) Count() int {
	return len(w.entries)
}
