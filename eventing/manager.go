package eventing

// Handler receives one dispatched event.
type Handler func(Event)

// Observer is notified of every event dispatched through the
// LiveSource path, used by the recorder (spec §4.2, §4.7). It is never
// called for events delivered through a RecordedSource, so replays
// never re-record.
type Observer func(Event)

type handlerKey struct {
	kind      string
	inputType string
}

// PanicHandler is notified when a Handler panics during Dispatch, with
// the event it was handling and the recovered value. Dispatch recovers
// per handler so one faulting handler never prevents the next one (or
// the rest of the tick) from running, per spec §4.1's failure semantics.
type PanicHandler func(e Event, recovered any)

// Manager holds the currently active Source and a mapping from
// (kind, inputType?) to ordered handler lists, per spec §4.2.
type Manager struct {
	source   Source
	handlers map[handlerKey][]Handler
	observer Observer
	onPanic  PanicHandler
}

// NewManager constructs a Manager with no source and no handlers.
func NewManager() *Manager {
	return &Manager{handlers: make(map[handlerKey][]Handler)}
}

// SetSource swaps the active event source.
func (m *Manager) SetSource(s Source) { m.source = s }

// Source returns the active event source.
func (m *Manager) Source() Source { return m.source }

// SetObserver attaches the recorder's observer, called for every event
// delivered through a LiveSource.
func (m *Manager) SetObserver(obs Observer) { m.observer = obs }

// ClearObserver detaches the recorder's observer.
func (m *Manager) ClearObserver() { m.observer = nil }

// SetPanicHandler installs the callback notified when a Handler panics.
func (m *Manager) SetPanicHandler(fn PanicHandler) { m.onPanic = fn }

// On registers fn to run for events of kind. If inputType is non-empty,
// fn only runs for events of kind whose InputType matches;
// otherwise it runs for every event of kind. Handlers for one key run in
// registration order.
func (m *Manager) On(kind, inputType string, fn Handler) {
	k := handlerKey{kind: kind, inputType: inputType}
	m.handlers[k] = append(m.handlers[k], fn)
}

// FetchDue asks the active source for all events due at currentTick, in
// the source's (tick, insertion) order.
func (m *Manager) FetchDue(currentTick int64) []Event {
	if m.source == nil {
		return nil
	}
	return m.source.GetNextEvents(currentTick)
}

// Dispatch notifies the recorder observer (only if the active source is
// a *LiveSource) and then invokes every handler matching e's kind, in
// registration order: first the kind-wide handlers, then those
// registered for e's specific InputType.
func (m *Manager) Dispatch(e Event) {
	if _, live := m.source.(*LiveSource); live && m.observer != nil {
		m.observer(e)
	}

	for _, fn := range m.handlers[handlerKey{kind: e.Kind}] {
		m.safeCall(fn, e)
	}
	if e.InputType != "" {
		for _, fn := range m.handlers[handlerKey{kind: e.Kind, inputType: e.InputType}] {
			m.safeCall(fn, e)
		}
	}
}

func (m *Manager) safeCall(fn Handler, e Event) {
	defer func() {
		if r := recover(); r != nil && m.onPanic != nil {
			m.onPanic(e, r)
		}
	}()
	fn(e)
}
