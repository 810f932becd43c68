// Package replay implements spec §4.7's ReplayManager: given a
// Recording and a fresh Engine, it reproduces the recorded run tick by
// tick through a RecordedSource, never re-recording.
package replay

import (
	"github.com/tickforge/engine/engine"
	"github.com/tickforge/engine/enginerr"
	"github.com/tickforge/engine/eventing"
	"github.com/tickforge/engine/recorder"
)

// Options configures a replay run.
type Options struct {
	// PauseOnEnd, if true, leaves the engine Paused once deltaTicks is
	// exhausted; if false (the zero value), the engine transitions to
	// Ended.
	PauseOnEnd bool
}

// Manager drives a Recording into a target Engine.
type Manager struct {
	eng *engine.Engine
	rec recorder.Recording
	opt Options
}

// New constructs a Manager for replaying rec into eng. eng should be
// freshly constructed (Ready, never started).
func New(eng *engine.Engine, rec recorder.Recording, opts Options) (*Manager, error) {
	if err := recorder.Validate(rec); err != nil {
		return nil, err
	}
	return &Manager{eng: eng, rec: rec, opt: opts}, nil
}

// Run performs the full replay: resets eng with rec.GameConfig (which
// reseeds the PRNG identically), installs a RecordedSource over
// rec.Events, transitions to Playing, drives update calls with each
// entry of rec.DeltaTicks in order, and finally pauses (or ends) the
// engine per Options.PauseOnEnd.
func (m *Manager) Run() error {
	if err := m.eng.Reset(&engine.Config{Seed: m.rec.Seed, Extra: m.rec.GameConfig}); err != nil {
		return err
	}

	m.eng.SetEventSource(eventing.NewRecordedSource(m.rec.Events))

	if err := m.eng.Start(); err != nil {
		return err
	}

	for _, delta := range m.rec.DeltaTicks {
		if delta <= 0 {
			return enginerr.NewInvalidRecording("deltaTicks entry %d is not positive", delta)
		}
		if err := m.eng.Update(delta); err != nil {
			return err
		}
	}

	if m.opt.PauseOnEnd {
		return m.eng.Pause()
	}
	return m.eng.End()
}
