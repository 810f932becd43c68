package recorder

import "github.com/tickforge/engine/enginerr"

// Validate checks the invariants of spec §3/§8: events sorted
// non-decreasing by Tick, every event.Tick ≤ TotalTicks, every
// DeltaTicks entry positive, and sum(DeltaTicks) == TotalTicks exactly
// (ticks are integers here, so no tolerance is needed; see
// Recording's doc comment).
func Validate(r Recording) error {
	for i := 1; i < len(r.Events); i++ {
		if r.Events[i].Tick < r.Events[i-1].Tick {
			return enginerr.NewInvalidRecording("events not sorted: event %d has tick %d < preceding tick %d", i, r.Events[i].Tick, r.Events[i-1].Tick)
		}
	}
	for i, e := range r.Events {
		if e.Tick > r.TotalTicks {
			return enginerr.NewInvalidRecording("event %d has tick %d beyond totalTicks %d", i, e.Tick, r.TotalTicks)
		}
	}

	var sum int64
	for i, d := range r.DeltaTicks {
		if d <= 0 {
			return enginerr.NewInvalidRecording("deltaTicks[%d] = %d is not positive", i, d)
		}
		sum += d
	}
	if sum != r.TotalTicks {
		return enginerr.NewInvalidRecording("sum(deltaTicks) = %d does not match totalTicks = %d", sum, r.TotalTicks)
	}
	return nil
}
