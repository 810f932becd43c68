// Package recorder implements spec §4.7's GameRecorder: it attaches to
// an eventing.Manager as the manager's Observer, capturing every event
// delivered through the LiveSource path plus the deltaTicks of every
// update call made while recording, and exposes the result as a
// portable Recording value.
package recorder

import (
	"github.com/google/uuid"

	"github.com/tickforge/engine/eventing"
)

// Recording is a self-contained, portable capture of one run, per spec
// §3 and §6's wire schema. Ticks are modeled as int64 (the engine's
// native tick unit) rather than the spec's generic "number", so
// DeltaTicks sums exactly without floating-point tolerance; see
// DESIGN.md's Open Question resolutions.
type Recording struct {
	Seed       string
	Events     []eventing.Event
	DeltaTicks []int64
	TotalTicks int64
	GameConfig any
	Metadata   map[string]any
}

// Clock supplies the informational CreatedAt metadata timestamp.
type Clock func() int64

// Recorder captures a run in progress. It is not safe for concurrent
// use.
type Recorder struct {
	active    bool
	recording Recording
	clock     Clock
}

// New constructs a Recorder not yet recording. clock, if non-nil,
// supplies Metadata["createdAt"] on StartRecording.
func New(clock Clock) *Recorder {
	return &Recorder{clock: clock}
}

// Active reports whether a recording is currently in progress.
func (r *Recorder) Active() bool { return r.active }

// StartRecording begins a new recording, discarding any prior one.
func (r *Recorder) StartRecording(seed string, gameConfig any) {
	meta := map[string]any{"version": "1", "id": uuid.NewString()}
	if r.clock != nil {
		meta["createdAt"] = r.clock()
	}
	r.recording = Recording{
		Seed:       seed,
		GameConfig: gameConfig,
		Metadata:   meta,
	}
	r.active = true
}

// ObserveEvent appends e to the recording. It is wired as the
// eventing.Manager's Observer, so it is only ever called for events
// delivered through a LiveSource. No-op if not recording.
func (r *Recorder) ObserveEvent(e eventing.Event) {
	if !r.active {
		return
	}
	r.recording.Events = append(r.recording.Events, e)
}

// ObserveUpdate appends one update call's deltaTicks and records the
// accumulated totalTicks. No-op if not recording.
func (r *Recorder) ObserveUpdate(deltaTicks, totalTicks int64) {
	if !r.active {
		return
	}
	r.recording.DeltaTicks = append(r.recording.DeltaTicks, deltaTicks)
	r.recording.TotalTicks = totalTicks
}

// StopRecording finalizes and returns the captured Recording, then
// deactivates the recorder.
func (r *Recorder) StopRecording() Recording {
	r.active = false
	return r.recording
}
