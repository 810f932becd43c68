package timer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickforge/engine/enginerr"
	"github.com/tickforge/engine/timer"
)

func TestSetTimeoutFiresOnceAtTargetTick(t *testing.T) {
	w := timer.New()
	fired := 0
	w.SetTimeout(func() { fired++ }, 5)

	require.NoError(t, w.Update(1, 1))
	assert.Equal(t, 0, fired)

	require.NoError(t, w.Update(4, 5))
	assert.Equal(t, 1, fired)

	require.NoError(t, w.Update(1, 6))
	assert.Equal(t, 1, fired, "one-shot must not fire twice")
}

func TestSetIntervalRepeats(t *testing.T) {
	w := timer.New()
	fired := 0
	w.SetInterval(func() { fired++ }, 3)

	require.NoError(t, w.Update(3, 3))
	assert.Equal(t, 1, fired)
	require.NoError(t, w.Update(3, 6))
	assert.Equal(t, 2, fired)
	require.NoError(t, w.Update(3, 9))
	assert.Equal(t, 3, fired)
}

func TestIntervalReschedulesFromTargetTickNotFireTick(t *testing.T) {
	w := timer.New()
	fired := 0
	w.SetInterval(func() { fired++ }, 5)

	// A late first firing (deltaTicks=3 skips past the targetTick=5
	// boundary at totalTicks=6) must not shift the next targetTick by
	// the lateness: it should land at 10, not 11.
	require.NoError(t, w.Update(3, 3))
	assert.Equal(t, 0, fired)
	require.NoError(t, w.Update(3, 6))
	assert.Equal(t, 1, fired)

	require.NoError(t, w.Update(3, 9))
	assert.Equal(t, 1, fired, "must not fire before its rescheduled targetTick of 10")
	require.NoError(t, w.Update(1, 10))
	assert.Equal(t, 2, fired, "must fire exactly at targetTick 10, not drift to 11")
}

func TestZeroIntervalFiresOncePerSubsequentTick(t *testing.T) {
	w := timer.New()
	fired := 0
	w.SetInterval(func() { fired++ }, 0)

	require.NoError(t, w.Update(1, 1))
	assert.Equal(t, 1, fired, "must fire exactly once, not loop forever in the same pass")

	require.NoError(t, w.Update(1, 2))
	assert.Equal(t, 2, fired)
}

func TestOrderingByTargetTickThenID(t *testing.T) {
	w := timer.New()
	var order []int
	w.SetTimeout(func() { order = append(order, 1) }, 1)
	w.SetTimeout(func() { order = append(order, 2) }, 1)
	w.SetTimeout(func() { order = append(order, 3) }, 2)

	require.NoError(t, w.Update(2, 2))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestChainedTimersFireInSamePass(t *testing.T) {
	w := timer.New()
	fired := 0
	var second timer.ID
	w.SetTimeout(func() {
		fired++
		second = w.SetTimeout(func() { fired++ }, 0)
	}, 1)

	require.NoError(t, w.Update(1, 1))
	assert.Equal(t, 2, fired, "a zero-delay timer scheduled by a firing callback must fire in the same update")
	_ = second
}

func TestPauseAndResumeTimer(t *testing.T) {
	w := timer.New()
	fired := 0
	id := w.SetTimeout(func() { fired++ }, 1)
	w.PauseTimer(id)

	require.NoError(t, w.Update(1, 1))
	assert.Equal(t, 0, fired)

	w.ResumeTimer(id)
	require.NoError(t, w.Update(1, 2))
	assert.Equal(t, 1, fired)
}

func TestClearTimerPreventsFiring(t *testing.T) {
	w := timer.New()
	fired := 0
	id := w.SetTimeout(func() { fired++ }, 1)
	w.ClearTimer(id)

	require.NoError(t, w.Update(1, 1))
	assert.Equal(t, 0, fired)
}

func TestRunawayReschedulingExceedsMaxPasses(t *testing.T) {
	w := timer.New()
	var reschedule func()
	reschedule = func() {
		w.SetTimeout(reschedule, 0)
	}
	w.SetTimeout(reschedule, 0)

	err := w.Update(1, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, enginerr.TimerLimitExceeded))
}

func TestResetClearsTimersButKeepsIDCounter(t *testing.T) {
	w := timer.New()
	id1 := w.SetTimeout(func() {}, 1)
	w.Reset()
	id2 := w.SetTimeout(func() {}, 1)

	assert.Equal(t, 0, w.Count())
	assert.Less(t, id1, id2, "id counter must not reset")
}

func TestBaseTickUsesUpdateStartTickInsideCallback(t *testing.T) {
	w := timer.New()
	var scheduledAt timer.ID
	var fired []int64

	w.SetTimeout(func() {
		scheduledAt = w.SetTimeout(func() { fired = append(fired, 1) }, 10)
	}, 1)

	require.NoError(t, w.Update(1, 1))
	require.NoError(t, w.Update(9, 10))
	assert.Equal(t, []int64{1}, fired)
	_ = scheduledAt
}
