package bollywood

// Producer creates a new Actor instance.
type Producer func() Actor

// Props configures how an actor is produced by the engine on Spawn.
type Props struct {
	producer Producer
}

// NewProps builds Props around the given producer.
func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("bollywood: producer cannot be nil")
	}
	return &Props{producer: producer}
}

// Produce creates a new actor instance.
func (p *Props) Produce() Actor {
	return p.producer()
}
