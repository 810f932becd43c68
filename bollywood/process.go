package bollywood

import (
	"runtime/debug"
	"sync/atomic"
)

const defaultMailboxSize = 1024

// process is the running instance of an actor: its state, mailbox, and
// the goroutine driving its message loop.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	mailbox chan *messageEnvelope
	props   *Props
	stopCh  chan struct{}
	stopped atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

func (p *process) sendMessage(message interface{}, sender *PID) {
	_, isStopping := message.(Stopping)
	_, isStopped := message.(Stopped)
	if p.stopped.Load() && !isStopping && !isStopped {
		return
	}

	envelope := &messageEnvelope{Sender: sender, Message: message}

	select {
	case p.mailbox <- envelope:
	default:
		p.engine.log.Warn("actor mailbox full, dropping message", "actor", p.pid.ID, "type", message)
	}
}

// run is the actor's main message loop.
func (p *process) run() {
	var stoppingInvoked bool

	defer func() {
		p.stopped.Store(true)
		defer func() {
			if r := recover(); r != nil {
				p.engine.log.Error("actor panicked during final cleanup", "actor", p.pid.ID, "panic", r)
			}
			p.engine.remove(p.pid)
		}()
		if p.actor != nil {
			p.invokeReceive(Stopped{}, nil)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			p.engine.log.Error("actor panicked", "actor", p.pid.ID, "panic", r, "stack", string(debug.Stack()))
			if p.stopped.CompareAndSwap(false, true) {
				closeStopCh(p.stopCh)
				if p.actor != nil && !stoppingInvoked {
					p.invokeReceive(Stopping{}, nil)
					stoppingInvoked = true
				}
			}
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic("bollywood: producer returned nil actor for " + p.pid.ID)
	}
	p.invokeReceive(Started{}, nil)

	for {
		select {
		case <-p.stopCh:
			if p.stopped.CompareAndSwap(false, true) && !stoppingInvoked {
				p.invokeReceive(Stopping{}, nil)
				stoppingInvoked = true
			}
			return

		case envelope, ok := <-p.mailbox:
			if !ok {
				return
			}

			_, isStopping := envelope.Message.(Stopping)
			_, isStoppedMsg := envelope.Message.(Stopped)
			if p.stopped.Load() && !isStopping && !isStoppedMsg {
				continue
			}

			switch msg := envelope.Message.(type) {
			case Stopping:
				if p.stopped.CompareAndSwap(false, true) {
					if !stoppingInvoked {
						p.invokeReceive(msg, envelope.Sender)
						stoppingInvoked = true
					}
					closeStopCh(p.stopCh)
				}
			case Stopped:
				if p.stopped.CompareAndSwap(false, true) {
					if !stoppingInvoked {
						p.invokeReceive(Stopping{}, nil)
						stoppingInvoked = true
					}
					p.invokeReceive(msg, envelope.Sender)
					closeStopCh(p.stopCh)
				}
			default:
				p.invokeReceive(envelope.Message, envelope.Sender)
			}
		}
	}
}

func closeStopCh(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}

// invokeReceive calls the actor's Receive, recovering from any panic it
// raises so the loop can still tear the actor down cleanly.
func (p *process) invokeReceive(msg interface{}, sender *PID) {
	ctx := &context{engine: p.engine, self: p.pid, sender: sender, message: msg}

	defer func() {
		if r := recover(); r != nil {
			p.engine.log.Error("actor panicked in Receive", "actor", p.pid.ID, "message_type", msg, "panic", r, "stack", string(debug.Stack()))
			if p.stopped.CompareAndSwap(false, true) {
				closeStopCh(p.stopCh)
			}
		}
	}()
	p.actor.Receive(ctx)
}
