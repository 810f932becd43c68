// Package engineconfig holds the tunables for an engine deployment:
// collision grid resolution, timer bounds, and default tick pacing. It
// mirrors the reference game's utils.Config / DefaultConfig trio.
// cmd/server reads it directly; it is not passed to Engine.Reset as
// gameConfig.Extra.
package engineconfig

import "time"

// Config holds the tunables read by cmd/server. Of its fields,
// cmd/server uses only TickPeriod and PruneEachTick.
type Config struct {
	// TickPeriod is a wall-clock interval; cmd/server uses it as the
	// management API's snapshot push interval. No loop in this module
	// calls Engine.Update on this period. It has no bearing on
	// determinism, which is purely tick-counted.
	TickPeriod time.Duration `toml:"tick_period"`

	// DefaultDeltaTicks is the per-step deltaTicks for a host loop that
	// drives Update in fixed-size steps. Nothing in this module reads it.
	DefaultDeltaTicks int64 `toml:"default_delta_ticks"`

	// TimerIterationCap records a bound for timer.Wheel's re-entrant
	// firing loop. Nothing reads it: timer.Wheel always uses its own
	// fixed bound of 1000 passes.
	TimerIterationCap int `toml:"timer_iteration_cap"`

	// CollisionBucketSize records a spatial quantization for collision
	// grid points. Nothing reads it: collision.Grid always buckets by
	// exact coordinates.
	CollisionBucketSize float64 `toml:"collision_bucket_size"`

	// PruneEachTick mirrors engine.Options.PruneEachTick.
	PruneEachTick bool `toml:"prune_each_tick"`
}

// DefaultConfig returns the tunables used when no config file is given.
func DefaultConfig() Config {
	return Config{
		TickPeriod:          16 * time.Millisecond,
		DefaultDeltaTicks:   1,
		TimerIterationCap:   1000,
		CollisionBucketSize: 1.0,
		PruneEachTick:       true,
	}
}

// FastConfig returns a config tuned for quick, high-throughput runs
// (headless batch replay, load testing), mirroring the reference
// FastGameConfig's role of exercising a different tuning profile.
func FastConfig() Config {
	cfg := DefaultConfig()
	cfg.TickPeriod = 4 * time.Millisecond
	cfg.DefaultDeltaTicks = 4
	return cfg
}
