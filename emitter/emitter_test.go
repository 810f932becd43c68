package emitter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tickforge/engine/emitter"
)

func TestEmitInvokesRegistrationOrder(t *testing.T) {
	e := emitter.New()
	var order []int
	e.On("tick", func(payload any) { order = append(order, 1) })
	e.On("tick", func(payload any) { order = append(order, 2) })
	e.On("tick", func(payload any) { order = append(order, 3) })

	e.Emit("tick", nil)

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestEmitPassesPayload(t *testing.T) {
	e := emitter.New()
	var got any
	e.On("health", func(payload any) { got = payload })
	e.Emit("health", 42)
	assert.Equal(t, 42, got)
}

func TestOffRemovesHandler(t *testing.T) {
	e := emitter.New()
	calls := 0
	id := e.On("x", func(payload any) { calls++ })
	e.Off(id)
	e.Emit("x", nil)
	assert.Equal(t, 0, calls)
}

func TestOffUnknownIDIsNoop(t *testing.T) {
	e := emitter.New()
	calls := 0
	e.On("x", func(payload any) { calls++ })
	e.Off(emitter.HandlerID(9999))
	e.Emit("x", nil)
	assert.Equal(t, 1, calls)
}

func TestHandlerAddedDuringEmissionDoesNotRunThisEmission(t *testing.T) {
	e := emitter.New()
	ran := false
	e.On("x", func(payload any) {
		e.On("x", func(payload any) { ran = true })
	})
	e.Emit("x", nil)
	assert.False(t, ran, "handler added mid-emission must not run in the same Emit call")

	e.Emit("x", nil)
	assert.True(t, ran, "handler should run on the next emission")
}

func TestOffAll(t *testing.T) {
	e := emitter.New()
	calls := 0
	e.On("x", func(payload any) { calls++ })
	e.On("x", func(payload any) { calls++ })
	e.OffAll("x")
	e.Emit("x", nil)
	assert.Equal(t, 0, calls)
}

func TestListenerCount(t *testing.T) {
	e := emitter.New()
	assert.Equal(t, 0, e.ListenerCount("x"))
	e.On("x", func(payload any) {})
	e.On("x", func(payload any) {})
	assert.Equal(t, 2, e.ListenerCount("x"))
}
