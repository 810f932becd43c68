package bollywood

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Engine manages the lifecycle and message dispatching for actors.
type Engine struct {
	pidCounter uint64
	actors     map[string]*process
	mu         sync.RWMutex
	stopping   atomic.Bool
	log        *slog.Logger
}

// NewEngine creates a new actor engine, logging through slog.Default().
func NewEngine() *Engine {
	return &Engine{
		actors: make(map[string]*process),
		log:    slog.Default(),
	}
}

func (e *Engine) nextPID() *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("actor-%d", id)}
}

// Spawn creates and starts a new actor from props and returns its PID.
// Returns nil if the engine is shutting down.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		e.log.Warn("spawn rejected, engine is stopping")
		return nil
	}

	pid := e.nextPID()
	proc := newProcess(e, pid, props)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()

	e.Send(pid, Started{}, nil)

	return pid
}

// Send delivers message to the actor identified by pid. sender may be
// nil for messages not sent by another actor.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	_, isStopping := message.(Stopping)
	_, isStopped := message.(Stopped)
	_, isStarted := message.(Started)
	isSystemMsg := isStopping || isStopped || isStarted

	if e.stopping.Load() && !isSystemMsg {
		return
	}

	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()

	if ok {
		proc.sendMessage(message, sender)
	}
}

// Stop requests the actor at pid to wind down: it sends Stopping and
// closes the process's stop channel so the loop exits even if the
// mailbox is full.
func (e *Engine) Stop(pid *PID) {
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()

	if !ok {
		return
	}

	e.Send(pid, Stopping{}, nil)

	select {
	case <-proc.stopCh:
	default:
		close(proc.stopCh)
	}
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops every actor and blocks until they all terminate or
// timeout elapses, whichever comes first. Remaining actors are dropped
// from tracking at timeout.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		return
	}

	e.mu.RLock()
	pidsToStop := make([]*PID, 0, len(e.actors))
	for _, proc := range e.actors {
		pidsToStop = append(pidsToStop, proc.pid)
	}
	e.mu.RUnlock()

	for _, pid := range pidsToStop {
		e.Stop(pid)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		e.mu.RLock()
		remaining := len(e.actors)
		e.mu.RUnlock()
		if remaining == 0 {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}

	e.mu.Lock()
	remainingCount := len(e.actors)
	if remainingCount > 0 {
		e.log.Warn("engine shutdown timed out", "remaining_actors", remainingCount)
		e.actors = make(map[string]*process)
	}
	e.mu.Unlock()
}
