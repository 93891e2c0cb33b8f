package core

// Client is a connected chat participant as seen by the core layer.
// Name and Room are owned by the hub goroutine after registration;
// Room is empty while the client has not created or joined a room.
type Client struct {
	ID       string
	Name     string
	Room     string
	Commands chan *Command
	Events   chan *Event

	done chan struct{}
}

// NewClient constructs an unbound client with initialized channels.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = defaultClientBuffer
	}
	return &Client{
		ID:       id,
		Commands: make(chan *Command, buffer),
		Events:   make(chan *Event, buffer),
		done:     make(chan struct{}),
	}
}

const defaultClientBuffer = 16

// trySend queues an event without blocking. Events to a slow consumer
// whose buffer is full are dropped so one stuck peer cannot stall the hub.
func (c *Client) trySend(event *Event) {
	select {
	case c.Events <- event:
	default:
	}
}
