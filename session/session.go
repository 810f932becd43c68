// Package session hosts many independent engine.Engine instances
// concurrently in one process. Spec §5 requires single-threaded access
// to any one engine; this package gets that for free by giving each
// session its own bollywood actor and mailbox, so every call into an
// engine.Engine funnels through exactly one goroutine. Adapted from the
// reference bollywood actor engine: here an actor owns exactly one
// engine.Engine and serializes all access to it through message
// passing instead of a mutex.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/tickforge/engine/bollywood"
	"github.com/tickforge/engine/engine"
	"github.com/tickforge/engine/eventing"
)

// ID identifies one hosted session.
type ID string

// Host runs a bollywood actor engine dedicated to session actors; one
// Host can manage any number of concurrently running sessions.
type Host struct {
	actors *bollywood.Engine
	pids   map[ID]*bollywood.PID
}

// NewHost creates an empty Host.
func NewHost() *Host {
	return &Host{
		actors: bollywood.NewEngine(),
		pids:   make(map[ID]*bollywood.PID),
	}
}

// Spawn starts a new session running its own engine.Engine built from
// opts, and registers it under id. Spawning under an id already in use
// replaces the previous mapping without stopping the old actor; callers
// should End the old session first.
func (h *Host) Spawn(id ID, opts engine.Options) *Session {
	eng := engine.New(opts)
	props := bollywood.NewProps(func() bollywood.Actor {
		return &actor{id: id, engine: eng}
	})
	pid := h.actors.Spawn(props)
	h.pids[id] = pid
	return &Session{id: id, pid: pid, host: h}
}

// Lookup returns the running session for id, if any.
func (h *Host) Lookup(id ID) (*Session, bool) {
	pid, ok := h.pids[id]
	if !ok {
		return nil, false
	}
	return &Session{id: id, pid: pid, host: h}, true
}

// End stops the session's actor and removes it from the host.
func (h *Host) End(id ID) {
	pid, ok := h.pids[id]
	if !ok {
		return
	}
	h.actors.Stop(pid)
	delete(h.pids, id)
}

// Shutdown stops every hosted session, waiting up to timeout for a
// graceful drain, mirroring the reference Engine.Shutdown.
func (h *Host) Shutdown(timeout time.Duration) {
	h.actors.Shutdown(timeout)
}

// Session is a handle a caller uses to drive one hosted engine.Engine
// without ever touching it directly; every method round-trips through
// the owning actor's mailbox.
type Session struct {
	id   ID
	pid  *bollywood.PID
	host *Host
}

// ID returns the session's id.
func (s *Session) ID() ID { return s.id }

// Update asks the session's actor to advance its engine by deltaTicks
// and waits for the result.
func (s *Session) Update(ctx context.Context, deltaTicks int64) error {
	reply := make(chan error, 1)
	s.host.actors.Send(s.pid, updateRequest{deltaTicks: deltaTicks, reply: reply}, nil)
	return awaitReply(ctx, reply)
}

// Start asks the session's actor to start its engine.
func (s *Session) Start(ctx context.Context) error {
	reply := make(chan error, 1)
	s.host.actors.Send(s.pid, lifecycleRequest{op: opStart, reply: reply}, nil)
	return awaitReply(ctx, reply)
}

// Pause asks the session's actor to pause its engine.
func (s *Session) Pause(ctx context.Context) error {
	reply := make(chan error, 1)
	s.host.actors.Send(s.pid, lifecycleRequest{op: opPause, reply: reply}, nil)
	return awaitReply(ctx, reply)
}

// Resume asks the session's actor to resume its engine.
func (s *Session) Resume(ctx context.Context) error {
	reply := make(chan error, 1)
	s.host.actors.Send(s.pid, lifecycleRequest{op: opResume, reply: reply}, nil)
	return awaitReply(ctx, reply)
}

// Snapshot asks the session's actor for a read-only view of its engine
// state: lifecycle state, total ticks, and seed.
func (s *Session) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan snapshotReply, 1)
	s.host.actors.Send(s.pid, snapshotRequest{reply: reply}, nil)
	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case r := <-reply:
		return r.snapshot, r.err
	}
}

// QueueInput queues a user input event on the session's LiveSource, if
// one is installed.
func (s *Session) QueueInput(ctx context.Context, inputType string, params any) error {
	reply := make(chan error, 1)
	s.host.actors.Send(s.pid, queueInputRequest{inputType: inputType, params: params, reply: reply}, nil)
	return awaitReply(ctx, reply)
}

func awaitReply(ctx context.Context, reply chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-reply:
		return err
	}
}

// Snapshot is a read-only view of a session's engine state at the
// moment it was taken.
type Snapshot struct {
	State      engine.State
	TotalTicks int64
	Seed       string
}

type lifecycleOp int

const (
	opStart lifecycleOp = iota
	opPause
	opResume
)

type lifecycleRequest struct {
	op    lifecycleOp
	reply chan error
}

type updateRequest struct {
	deltaTicks int64
	reply      chan error
}

type snapshotRequest struct {
	reply chan snapshotReply
}

type snapshotReply struct {
	snapshot Snapshot
	err      error
}

type queueInputRequest struct {
	inputType string
	params    any
	reply     chan error
}

// actor owns exactly one engine.Engine and is the only goroutine that
// ever touches it, satisfying spec §5's single-threading requirement.
type actor struct {
	id     ID
	engine *engine.Engine
	live   *eventing.LiveSource
}

func (a *actor) Receive(ctx bollywood.Context) {
	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		// nothing to do until the caller drives lifecycle transitions.
	case bollywood.Stopping:
		_ = a.engine.End()
	case bollywood.Stopped:
	case lifecycleRequest:
		msg.reply <- a.handleLifecycle(msg.op)
	case updateRequest:
		msg.reply <- a.engine.Update(msg.deltaTicks)
	case snapshotRequest:
		msg.reply <- snapshotReply{snapshot: Snapshot{
			State:      a.engine.GetState(),
			TotalTicks: a.engine.GetTotalTicks(),
			Seed:       a.engine.GetSeed(),
		}}
	case queueInputRequest:
		if a.live == nil {
			msg.reply <- fmt.Errorf("session %s: no live event source installed", a.id)
			return
		}
		a.live.QueueInput(msg.inputType, msg.params)
		msg.reply <- nil
	}
}

func (a *actor) handleLifecycle(op lifecycleOp) error {
	switch op {
	case opStart:
		if a.live == nil {
			a.live = eventing.NewLiveSource(nil)
			a.engine.SetEventSource(a.live)
		}
		return a.engine.Start()
	case opPause:
		return a.engine.Pause()
	case opResume:
		return a.engine.Resume()
	default:
		return fmt.Errorf("session: unknown lifecycle op %d", op)
	}
}
