package bollywood

// Context gives an Actor access to the engine, its own PID, the sender
// of the message currently being processed, and the message itself.
type Context interface {
	Engine() *Engine
	Self() *PID
	Sender() *PID
	Message() interface{}
}

type context struct {
	engine  *Engine
	self    *PID
	sender  *PID
	message interface{}
}

func (c *context) Engine() *Engine      { return c.engine }
func (c *context) Self() *PID           { return c.self }
func (c *context) Sender() *PID         { return c.sender }
func (c *context) Message() interface{} { return c.message }
